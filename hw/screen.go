package hw

import (
	"cps2/emu/log"
	"cps2/hw/hwdefs"
)

// A Strip is a band of visible rows composited with the same video state.
type Strip struct {
	Top, Bottom int    // inclusive rows
	Priority    uint16 // sprite priorities latched for the strip
}

// Compositor draws strips of the frame. The actual tile and sprite renderer
// lives outside the board.
type Compositor interface {
	DrawStrip(s Strip)
}

// Screen tracks partial updates of the visible area. Rows are committed top
// to bottom, each row at most once per frame.
type Screen struct {
	Compositor Compositor

	next     int // first uncommitted row
	priority uint16
	strips   []Strip
	last     []Strip
	frames   uint64
}

func NewScreen() *Screen {
	s := &Screen{}
	s.Reset()
	return s
}

func (s *Screen) Reset() {
	s.next = hwdefs.VisibleMinY
	s.priority = 0
	s.strips = s.strips[:0]
	s.last = nil
	s.frames = 0
}

// SetPriority sets the sprite priorities used by the next strips.
func (s *Screen) SetPriority(pri uint16) {
	s.priority = pri
}

// UpdatePartial commits all the uncommitted rows up to row (inclusive),
// clamped to the visible area.
func (s *Screen) UpdatePartial(row int) {
	row = min(row, hwdefs.VisibleMaxY)
	if row < s.next {
		return
	}
	strip := Strip{Top: s.next, Bottom: row, Priority: s.priority}
	log.ModVideo.DebugZ("partial update").Int("top", strip.Top).Int("bottom", strip.Bottom).End()

	s.strips = append(s.strips, strip)
	if s.Compositor != nil {
		s.Compositor.DrawStrip(strip)
	}
	s.next = row + 1
}

// EndFrame commits the rest of the frame and starts a new one.
func (s *Screen) EndFrame() {
	s.UpdatePartial(hwdefs.VisibleMaxY)
	s.last = append(s.last[:0], s.strips...)
	s.strips = s.strips[:0]
	s.next = hwdefs.VisibleMinY
	s.frames++
}

// LastFrame returns the strips of the last completed frame.
func (s *Screen) LastFrame() []Strip {
	return s.last
}

// FrameCount returns the number of completed frames.
func (s *Screen) FrameCount() uint64 {
	return s.frames
}
