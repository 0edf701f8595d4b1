package romset

import (
	"archive/zip"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source is a fs.FS searching ROM files in a list of directories and zip
// archives, in order.
type Source struct {
	fss  []fs.FS
	zips []*zip.ReadCloser
}

// OpenSource opens the given directories and zip archives.
func OpenSource(paths ...string) (*Source, error) {
	src := &Source{}
	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			src.Close()
			return nil, err
		}
		if fi.IsDir() {
			src.fss = append(src.fss, os.DirFS(path))
			continue
		}
		zr, err := zip.OpenReader(path)
		if err != nil {
			src.Close()
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		src.zips = append(src.zips, zr)
		src.fss = append(src.fss, zr)
	}
	return src, nil
}

// SetPaths returns the candidate locations of a rom set in dir: the
// <dir>/<set> directory and the <dir>/<set>.zip archive, when they exist.
func SetPaths(dir string, sets ...string) []string {
	var paths []string
	for _, set := range sets {
		for _, p := range []string{filepath.Join(dir, set), filepath.Join(dir, set+".zip")} {
			if _, err := os.Stat(p); err == nil {
				paths = append(paths, p)
			}
		}
	}
	return paths
}

func (s *Source) Open(name string) (fs.File, error) {
	for _, fsys := range s.fss {
		f, err := fsys.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

func (s *Source) Close() error {
	var errs []error
	for _, zr := range s.zips {
		errs = append(errs, zr.Close())
	}
	s.zips = nil
	s.fss = nil
	return errors.Join(errs...)
}
