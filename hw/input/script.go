package input

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
)

// A Script is a list of input events, each applied at the start of a given
// frame. Scripts drive headless runs, for example:
//
//	[[event]]
//	frame = 60
//	press = ["coin1"]
//
//	[[event]]
//	frame = 64
//	release = ["coin1"]
type Script struct {
	Events []Event `toml:"event"`
}

type Event struct {
	Frame   int      `toml:"frame"`
	Press   []Button `toml:"press"`
	Release []Button `toml:"release"`
	Paddles []uint8  `toml:"paddles"` // positions of paddle 1 then 2
}

// DecodeScript reads a TOML script from r.
func DecodeScript(r io.Reader) (*Script, error) {
	var s Script
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, fmt.Errorf("input script: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("input script: unknown key %q", undec[0].String())
	}
	for i, ev := range s.Events {
		if ev.Frame < 0 {
			return nil, fmt.Errorf("input script: event %d: negative frame %d", i, ev.Frame)
		}
		if len(ev.Paddles) > 2 {
			return nil, fmt.Errorf("input script: event %d: %d paddles, max 2", i, len(ev.Paddles))
		}
	}
	slices.SortStableFunc(s.Events, func(a, b Event) int { return cmp.Compare(a.Frame, b.Frame) })
	return &s, nil
}

// ReadScript reads a TOML script from a file.
func ReadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeScript(f)
}

// Apply applies to p the events of the given frame, in file order.
func (s *Script) Apply(frame int, p *Panel) {
	i, _ := slices.BinarySearchFunc(s.Events, frame, func(ev Event, f int) int { return cmp.Compare(ev.Frame, f) })
	for ; i < len(s.Events) && s.Events[i].Frame == frame; i++ {
		ev := &s.Events[i]
		for _, b := range ev.Release {
			p.Release(b)
		}
		for _, b := range ev.Press {
			p.Press(b)
		}
		for n, pos := range ev.Paddles {
			p.SetPaddle(n, pos)
		}
	}
}

// Len returns the frame following the last event.
func (s *Script) Len() int {
	if len(s.Events) == 0 {
		return 0
	}
	return s.Events[len(s.Events)-1].Frame + 1
}
