package rpc

import (
	"errors"
	"os"
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cps2/emu/log"
	"cps2/hw/input"
)

func TestMain(m *testing.M) {
	log.Disable()
	os.Exit(m.Run())
}

type fakeEmu struct {
	mu    sync.Mutex
	calls []string
	snap  []byte
	err   error
}

func (f *fakeEmu) record(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, s)
}

func (f *fakeEmu) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (f *fakeEmu) Reset()                 { f.record("reset") }
func (f *fakeEmu) Restart()               { f.record("restart") }
func (f *fakeEmu) Stop()                  { f.record("stop") }
func (f *fakeEmu) Press(b input.Button)   { f.record("press " + b.String()) }
func (f *fakeEmu) Release(b input.Button) { f.record("release " + b.String()) }
func (f *fakeEmu) FrameNumber() int       { return 42 }
func (f *fakeEmu) Snapshot() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap, f.err
}
func (f *fakeEmu) SetPause(pause bool) {
	if pause {
		f.record("pause")
	} else {
		f.record("resume")
	}
}

func TestClientServer(t *testing.T) {
	emu := &fakeEmu{snap: []byte(`{"version":1}`)}
	srv, err := NewServer("localhost:0", emu)
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Close()

	c, err := NewClient(srv.Addr())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	for _, err := range []error{
		c.SetPause(true),
		c.Press(input.Coin1),
		c.Release(input.Coin1),
		c.SetPause(false),
		c.Reset(),
		c.Restart(),
		c.Stop(),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}

	want := []string{"pause", "press coin1", "release coin1", "resume", "reset", "restart", "stop"}
	if diff := cmp.Diff(want, emu.Calls()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}

	n, err := c.FrameNumber()
	if err != nil || n != 42 {
		t.Errorf("FrameNumber() = %d, %v, want 42", n, err)
	}

	snap, err := c.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if string(snap) != `{"version":1}` {
		t.Errorf("Snapshot() = %q", snap)
	}

	emu.mu.Lock()
	emu.err = errors.New("emulator stopped")
	emu.mu.Unlock()
	if _, err := c.Snapshot(); err == nil {
		t.Errorf("Snapshot() returned nil error")
	}
}
