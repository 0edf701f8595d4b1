package hw

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cps2/emu/log"
	"cps2/hw/hwdefs"
)

func TestMain(m *testing.M) {
	log.Disable()
	os.Exit(m.Run())
}

type rasterEvent struct {
	Kind     string // "raster", "vblank", "update", "sprpri", "objram"
	Scanline int
	Row      int
}

type fakeRasterHost struct {
	it     *Interrupter
	t1, t2 uint16
	events []rasterEvent
}

func newFakeRasterHost(t1, t2 uint16) *fakeRasterHost {
	h := &fakeRasterHost{t1: t1, t2: t2}
	h.it = &Interrupter{host: h}
	h.it.Reset()
	h.it.Raster1, h.it.Raster2 = t1, t2
	return h
}

func (h *fakeRasterHost) add(kind string, row int) {
	h.events = append(h.events, rasterEvent{Kind: kind, Scanline: h.it.Scanline, Row: row})
}

func (h *fakeRasterHost) HoldIRQ(src hwdefs.IRQSource) {
	switch src {
	case hwdefs.VBlank:
		h.add("vblank", 0)
	case hwdefs.Raster:
		h.add("raster", 0)
	}
}

func (h *fakeRasterHost) UpdatePartial(row int)          { h.add("update", row) }
func (h *fakeRasterHost) LatchSpritePriorities()         { h.add("sprpri", 0) }
func (h *fakeRasterHost) LatchObjectRAM()                { h.add("objram", 0) }
func (h *fakeRasterHost) RasterTargets() (r1, r2 uint16) { return h.t1, h.t2 }

// runFrame ticks until the end of the frame and returns its events.
func (h *fakeRasterHost) runFrame() []rasterEvent {
	h.events = nil
	for {
		h.it.Tick()
		if h.it.Scanline == LastScanline {
			break
		}
	}
	return h.events
}

func TestInterrupterScanlineWrap(t *testing.T) {
	h := newFakeRasterHost(100, 200)
	it := h.it

	const frames = 10
	prev := it.Scanline
	wraps := 0
	for range frames * hwdefs.TicksPerFrame {
		it.Tick()
		switch {
		case prev == LastScanline:
			if it.Scanline != 0 {
				t.Fatalf("scanline after %d = %d, want 0", prev, it.Scanline)
			}
			wraps++
		case it.Scanline != prev+1:
			t.Fatalf("scanline after %d = %d, want %d", prev, it.Scanline, prev+1)
		}
		prev = it.Scanline
	}

	// The counter starts at 0 after reset, so the last tick wraps.
	if wraps != frames {
		t.Errorf("got %d wraps in %d frames, want %d", wraps, frames, frames)
	}
}

func TestInterrupterScenario(t *testing.T) {
	h := newFakeRasterHost(100, 200)
	it := h.it

	tick := func(n int) {
		for range n {
			it.Tick()
		}
	}

	tick(99)
	if len(h.events) != 0 {
		t.Fatalf("events before scanline 100: %+v", h.events)
	}

	tick(1)
	if it.Scancalls != 1 {
		t.Fatalf("Scancalls = %d at scanline %d, want 1", it.Scancalls, it.Scanline)
	}
	want := []rasterEvent{
		{Kind: "raster", Scanline: 100},
		{Kind: "sprpri", Scanline: 100},
		{Kind: "update", Scanline: 100, Row: 100 + RasterRowOffset},
	}
	if diff := cmp.Diff(want, h.events); diff != "" {
		t.Fatalf("first split mismatch (-want +got):\n%s", diff)
	}
	if it.Raster1 != 0 {
		t.Errorf("Raster1 = %d after split, want 0", it.Raster1)
	}

	h.events = nil
	tick(100)
	if it.Scancalls != 2 {
		t.Fatalf("Scancalls = %d at scanline %d, want 2", it.Scancalls, it.Scanline)
	}
	want = []rasterEvent{
		{Kind: "raster", Scanline: 200},
		{Kind: "sprpri", Scanline: 200},
		{Kind: "update", Scanline: 200, Row: 200 + RasterRowOffset},
	}
	if diff := cmp.Diff(want, h.events); diff != "" {
		t.Fatalf("second split mismatch (-want +got):\n%s", diff)
	}

	h.events = nil
	tick(40)
	want = []rasterEvent{
		{Kind: "vblank", Scanline: 240},
		{Kind: "sprpri", Scanline: 240},
		{Kind: "update", Scanline: 240, Row: VBlankRow},
		{Kind: "objram", Scanline: 240},
	}
	if diff := cmp.Diff(want, h.events); diff != "" {
		t.Fatalf("vblank mismatch (-want +got):\n%s", diff)
	}
	if it.Raster1 != 100 || it.Raster2 != 200 {
		t.Errorf("registers after vblank = %d, %d, want 100, 200", it.Raster1, it.Raster2)
	}
}

func TestInterrupterNoSplit(t *testing.T) {
	// Targets past the end of the frame never fire.
	h := newFakeRasterHost(0x1ff, 0x1ff)
	h.runFrame()

	want := []rasterEvent{
		{Kind: "vblank", Scanline: 240},
		{Kind: "objram", Scanline: 240},
	}
	for range 3 {
		if diff := cmp.Diff(want, h.runFrame()); diff != "" {
			t.Fatalf("frame mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestInterrupterPendingBit(t *testing.T) {
	h := newFakeRasterHost(0x1ff, 0x1ff)
	it := h.it

	// Bit 15 is dropped and the target in the low bits is kept.
	it.Raster1 = rasterPending | 50
	it.Tick()
	if it.Scancalls != 0 {
		t.Fatalf("Scancalls = %d, want 0", it.Scancalls)
	}
	if it.Raster1 != 50 {
		t.Fatalf("Raster1 = %#x, want 50", it.Raster1)
	}

	for it.Scanline < 50 {
		if len(h.events) != 0 {
			t.Fatalf("events before scanline 50: %+v", h.events)
		}
		it.Tick()
	}
	if it.Scancalls != 1 {
		t.Fatalf("Scancalls = %d at scanline 50, want 1", it.Scancalls)
	}
	if len(h.events) == 0 || h.events[0].Scanline != 50 || h.events[0].Kind != "raster" {
		t.Errorf("first event = %+v, want raster at scanline 50", h.events)
	}
}

func TestInterrupterAtMostTwoSplits(t *testing.T) {
	var targets []uint16
	for v := uint16(0); v <= VBlankScanline; v += 3 {
		targets = append(targets, v)
	}
	targets = append(targets, 1, 239, 240)

	for _, t1 := range targets {
		for _, t2 := range targets {
			h := newFakeRasterHost(t1, t2)

			var frames [][]rasterEvent
			for range 5 {
				frames = append(frames, h.runFrame())
			}

			for i, evs := range frames {
				rasters, before := 0, 0
				vblank, redraw := false, false
				for _, ev := range evs {
					switch {
					case ev.Kind == "raster":
						rasters++
						if !vblank {
							before++
						}
					case ev.Kind == "vblank":
						vblank = true
					case ev.Kind == "update" && vblank && ev.Row == VBlankRow:
						redraw = true
					}
				}
				if rasters > 2 {
					t.Fatalf("targets %d,%d frame %d: %d raster interrupts", t1, t2, i, rasters)
				}
				if redraw != (before > 0) {
					t.Fatalf("targets %d,%d frame %d: redraw=%t with %d splits before vblank", t1, t2, i, redraw, before)
				}
			}

			for i := 3; i < len(frames); i++ {
				if diff := cmp.Diff(frames[2], frames[i]); diff != "" {
					t.Fatalf("targets %d,%d frame %d differs (-want +got):\n%s", t1, t2, i, diff)
				}
			}
		}
	}
}

func TestIRQController(t *testing.T) {
	var ic IRQController

	if lvl := ic.Level(); lvl != 0 {
		t.Fatalf("Level() = %d, want 0", lvl)
	}

	ic.Hold(hwdefs.VBlank)
	if lvl := ic.Level(); lvl != hwdefs.IRQLevelVBlank {
		t.Errorf("Level() = %d, want %d", lvl, hwdefs.IRQLevelVBlank)
	}
	ic.Hold(hwdefs.Raster)
	if lvl := ic.Level(); lvl != hwdefs.IRQLevelBoth {
		t.Errorf("Level() = %d, want %d", lvl, hwdefs.IRQLevelBoth)
	}

	ic.Acknowledge(hwdefs.IRQLevelVBlank)
	if lvl := ic.Level(); lvl != hwdefs.IRQLevelRaster {
		t.Errorf("Level() = %d, want %d", lvl, hwdefs.IRQLevelRaster)
	}

	ic.Hold(hwdefs.VBlank)
	ic.Acknowledge(hwdefs.IRQLevelBoth)
	if p := ic.Pending(); p != 0 {
		t.Errorf("Pending() = %v, want none", p)
	}
}
