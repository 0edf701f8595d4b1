package romset

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"io/fs"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type Status int

const (
	StatusOK Status = iota
	StatusMissing
	StatusBadLength
	StatusBadCRC
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMissing:
		return "missing"
	case StatusBadLength:
		return "bad length"
	case StatusBadCRC:
		return "bad crc"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is the verification outcome of one ROM file.
type Result struct {
	Region string
	ROM    ROM
	Status Status
	Length int // actual length, 0 if missing
	CRC    CRC // actual checksum
}

func (r Result) Err() error {
	switch r.Status {
	case StatusOK:
		return nil
	case StatusBadLength:
		return fmt.Errorf("%s: length %#x, want %#x", r.ROM.File, r.Length, r.ROM.Length)
	case StatusBadCRC:
		return fmt.Errorf("%s: crc %s, want %s", r.ROM.File, r.CRC, r.ROM.CRC)
	}
	return fmt.Errorf("%s: %s", r.ROM.File, r.Status)
}

// Regions maps region names to their contents.
type Regions map[string][]byte

type fileData struct {
	res  Result
	data []byte
}

// readAll reads and checks all the files of the manifest concurrently.
func readAll(ctx context.Context, m *Manifest, fsys fs.FS) ([]fileData, error) {
	var files []fileData
	for _, reg := range m.Regions {
		for _, rom := range reg.ROMs {
			files = append(files, fileData{res: Result{Region: reg.Name, ROM: rom}})
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f := &files[i]
			data, err := fs.ReadFile(fsys, f.res.ROM.File)
			if errors.Is(err, fs.ErrNotExist) {
				f.res.Status = StatusMissing
				return nil
			}
			if err != nil {
				return fmt.Errorf("%s: %w", f.res.ROM.File, err)
			}

			f.data = data
			f.res.Length = len(data)
			f.res.CRC = CRC(crc32.ChecksumIEEE(data))
			switch {
			case f.res.Length != f.res.ROM.Length:
				f.res.Status = StatusBadLength
			case f.res.CRC != f.res.ROM.CRC:
				f.res.Status = StatusBadCRC
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// Verify checks every ROM file of the manifest, reporting one result per
// file in manifest order. The error is only non-nil for I/O failures.
func Verify(ctx context.Context, m *Manifest, fsys fs.FS) ([]Result, error) {
	files, err := readAll(ctx, m, fsys)
	if err != nil {
		return nil, err
	}
	res := make([]Result, len(files))
	for i := range files {
		res[i] = files[i].res
	}
	return res, nil
}

// Load builds all the regions of the manifest from the ROM files in fsys.
// All files must be present and match their checksums.
func Load(ctx context.Context, m *Manifest, fsys fs.FS) (Regions, error) {
	files, err := readAll(ctx, m, fsys)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, f := range files {
		if err := f.res.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", m.Game, errors.Join(errs...))
	}

	regions := make(Regions, len(m.Regions))
	for _, reg := range m.Regions {
		buf := make([]byte, reg.Size)
		if reg.Fill != 0 {
			for i := range buf {
				buf[i] = reg.Fill
			}
		}
		regions[reg.Name] = buf
	}
	for _, f := range files {
		place(regions[f.res.Region], f.res.ROM, f.data)
	}
	return regions, nil
}

// place copies data into region according to the rom load method.
func place(region []byte, rom ROM, data []byte) {
	dst := region[rom.Offset:]
	switch rom.Load {
	case LoadWordSwap:
		for i := 0; i+1 < len(data); i += 2 {
			dst[i], dst[i+1] = data[i+1], data[i]
		}
	case LoadWord64:
		for i := 0; i+1 < len(data); i += 2 {
			dst[i*4], dst[i*4+1] = data[i], data[i+1]
		}
	default:
		copy(dst, data)
	}
}
