// Package romset loads the ROM regions of a game from a manifest describing
// where each ROM file goes, and verifies ROM sets against it.
package romset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest lists the memory regions of a game and the ROM files they are
// built from.
type Manifest struct {
	Game    string   `toml:"game"`
	Regions []Region `toml:"region"`
}

type Region struct {
	Name string `toml:"name"`
	Size int    `toml:"size"`
	Fill uint8  `toml:"fill"` // initial value of bytes not covered by ROMs
	ROMs []ROM  `toml:"rom"`
}

type ROM struct {
	File   string     `toml:"file"`
	Offset int        `toml:"offset"`
	Length int        `toml:"length"`
	CRC    CRC        `toml:"crc"`
	Load   LoadMethod `toml:"load"`
}

// CRC is a CRC32 checksum, written as 8 hex digits.
type CRC uint32

func (c CRC) String() string {
	return fmt.Sprintf("%08x", uint32(c))
}

func (c CRC) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *CRC) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(string(text), 16, 32)
	if err != nil {
		return fmt.Errorf("invalid crc %q", text)
	}
	*c = CRC(v)
	return nil
}

// LoadMethod tells how the bytes of a ROM file are laid out in its region.
type LoadMethod string

const (
	LoadByte     LoadMethod = "byte"      // copied as is
	LoadWordSwap LoadMethod = "word_swap" // bytes of each 16-bit word swapped
	LoadWord64   LoadMethod = "word64"    // one 16-bit word every 8 bytes
)

func (lm *LoadMethod) UnmarshalText(text []byte) error {
	switch m := LoadMethod(text); m {
	case "":
		*lm = LoadByte
	case LoadByte, LoadWordSwap, LoadWord64:
		*lm = m
	default:
		return fmt.Errorf("unknown load method %q", text)
	}
	return nil
}

// footprint returns the number of region bytes spanned by the rom, starting
// at its offset.
func (r ROM) footprint() int {
	switch r.Load {
	case LoadWord64:
		return (r.Length/2-1)*8 + 2
	}
	return r.Length
}

// Decode reads a manifest in TOML format. Unknown keys are errors.
func Decode(r io.Reader) (*Manifest, error) {
	var m Manifest
	md, err := toml.NewDecoder(r).Decode(&m)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("manifest: unknown keys: %s", strings.Join(keys, ", "))
	}
	for i := range m.Regions {
		for j := range m.Regions[i].ROMs {
			if m.Regions[i].ROMs[j].Load == "" {
				m.Regions[i].ROMs[j].Load = LoadByte
			}
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ReadFile reads the manifest at path.
func ReadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Validate checks the manifest is self-consistent: every ROM fits in its
// region.
func (m *Manifest) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	for _, reg := range m.Regions {
		switch {
		case reg.Name == "":
			errs = append(errs, errors.New("region with no name"))
			continue
		case seen[reg.Name]:
			errs = append(errs, fmt.Errorf("region %s: duplicate", reg.Name))
		case reg.Size <= 0:
			errs = append(errs, fmt.Errorf("region %s: invalid size %d", reg.Name, reg.Size))
		}
		seen[reg.Name] = true

		for _, rom := range reg.ROMs {
			if err := rom.validate(reg); err != nil {
				errs = append(errs, fmt.Errorf("region %s: %s: %w", reg.Name, rom.File, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (r ROM) validate(reg Region) error {
	switch {
	case r.File == "":
		return errors.New("missing file name")
	case r.Length <= 0:
		return fmt.Errorf("invalid length %d", r.Length)
	case r.Offset < 0:
		return fmt.Errorf("invalid offset %d", r.Offset)
	case r.Load != LoadByte && r.Length%2 != 0:
		return fmt.Errorf("odd length %#x for %s load", r.Length, r.Load)
	case r.Offset+r.footprint() > reg.Size:
		return fmt.Errorf("%#x bytes at %#x overflow region size %#x", r.footprint(), r.Offset, reg.Size)
	}
	return nil
}

// Region returns the region with the given name.
func (m *Manifest) Region(name string) (Region, bool) {
	for _, reg := range m.Regions {
		if reg.Name == name {
			return reg, true
		}
	}
	return Region{}, false
}
