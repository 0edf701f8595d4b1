package emu

import (
	"errors"
	"sync/atomic"
	"time"

	"cps2/emu/log"
	"cps2/hw/input"
)

// Output consumes the emulated frames. Poll returns false when the emulator
// must stop.
type Output interface {
	EndFrame(Frame)
	Poll() bool
	Close()
}

type Emulator struct {
	Machine *Machine
	out     Output
	cfg     EmulationConfig

	// These are accessed concurrently by the emulator loop and the UI.
	quit    atomic.Bool
	paused  atomic.Bool
	reset   atomic.Bool
	restart atomic.Bool
	frames  atomic.Int64

	snapreq chan chan []byte
	done    chan struct{}
}

// Launch connects a powered up machine to its output. It doesn't start the
// emulation loop, call Run() for that.
func Launch(m *Machine, out Output, cfg Config) *Emulator {
	if cfg.Audio.DisableAudio {
		log.ModEmu.WarnZ("Audio disabled").End()
	} else {
		log.ModEmu.InfoZ("Audio enabled").Int("rate", m.Mixer.SampleRate()).End()
	}
	return &Emulator{
		Machine: m,
		out:     out,
		cfg:     cfg.Emulation,
		snapreq: make(chan chan []byte),
		done:    make(chan struct{}),
	}
}

func (e *Emulator) RunOneFrame() {
	if e.cfg.RunAheadFrames > 0 {
		e.RunFrameWithRunAhead()
	} else {
		e.out.EndFrame(e.Machine.RunOneFrame())
	}
	e.frames.Add(1)
}

// RunFrameWithRunAhead emulates RunAheadFrames frames in advance, outputs the
// last one and rewinds, hiding the input latency of the game.
func (e *Emulator) RunFrameWithRunAhead() {
	m := e.Machine

	// Run a single frame and make a snapshot, but do not output it.
	m.RunOneFrame()
	buf := m.SaveSnapshot()
	next := m.frame

	for range e.cfg.RunAheadFrames - 1 {
		m.RunOneFrame()
	}

	// Output the frame we're ahead of, then rewind.
	e.out.EndFrame(m.RunOneFrame())
	if err := m.LoadSnapshot(buf); err != nil {
		log.ModEmu.PanicZ("failed to load snapshot").Error("err", err).End()
	}
	m.frame = next
}

func (e *Emulator) loop() {
	defer close(e.done)
	for e.out.Poll() {
		// Handle pause.
		if e.isPaused() {
			// Don't burn cpu while paused.
			time.Sleep(100 * time.Millisecond)
		} else {
			e.RunOneFrame()
		}
		if e.shouldStop() {
			break
		}
		e.handleReset()
		e.handleSnapshot()
	}

	e.out.Close()
}

// Run runs the emulation loop until the output or Stop ends it, then saves
// the EEPROM.
func (e *Emulator) Run() error {
	e.loop()
	log.ModEmu.InfoZ("Emulation loop exited").Int("frames", e.Machine.FrameNumber()).End()
	return e.Machine.Shutdown()
}

// SetPause, Stop, Reset and Restart allows to control
// the emulator loop in a concurrent-safe way.

func (e *Emulator) SetPause(pause bool) { e.paused.CompareAndSwap(!pause, pause) }
func (e *Emulator) Reset()              { e.reset.Store(true) }
func (e *Emulator) Restart()            { e.restart.Store(true) }
func (e *Emulator) Stop() {
	e.quit.Store(true)
}

func (e *Emulator) isPaused() bool {
	return e.paused.Load()
}

func (e *Emulator) shouldStop() bool {
	return e.quit.Load()
}

// ErrStopped is returned when the emulation loop is not running anymore.
var ErrStopped = errors.New("emulator stopped")

// Snapshot returns the machine state, taken between two frames by the
// emulation loop.
func (e *Emulator) Snapshot() ([]byte, error) {
	ch := make(chan []byte, 1)
	select {
	case e.snapreq <- ch:
		return <-ch, nil
	case <-e.done:
		return nil, ErrStopped
	}
}

func (e *Emulator) handleSnapshot() {
	select {
	case ch := <-e.snapreq:
		ch <- e.Machine.SaveSnapshot()
	default:
	}
}

// FrameNumber returns the number of frames run by the emulator.
func (e *Emulator) FrameNumber() int { return int(e.frames.Load()) }

// Press and Release act on the machine control panel.

func (e *Emulator) Press(b input.Button)   { e.Machine.Panel.Press(b) }
func (e *Emulator) Release(b input.Button) { e.Machine.Panel.Release(b) }

func (e *Emulator) handleReset() {
	if e.reset.CompareAndSwap(true, false) {
		log.ModEmu.InfoZ("Performing soft reset").End()
		e.Machine.Reset(true)
	} else if e.restart.CompareAndSwap(true, false) {
		log.ModEmu.InfoZ("Performing hard reset").End()
		e.Machine.Reset(false)
	}
}

// Headless is an Output discarding frames, stopping after a fixed number of
// frames. Zero means no limit.
type Headless struct {
	Frames int
	OnEnd  func(Frame)

	count int
}

func (h *Headless) EndFrame(f Frame) {
	h.count++
	if h.OnEnd != nil {
		h.OnEnd(f)
	}
}

func (h *Headless) Poll() bool { return h.Frames == 0 || h.count < h.Frames }
func (h *Headless) Close()     {}

// Count returns the number of frames received.
func (h *Headless) Count() int { return h.count }
