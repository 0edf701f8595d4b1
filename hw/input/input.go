package input

import "sync/atomic"

// A Button is a cabinet control wired to one of the IN0/IN1/IN2 ports.
type Button uint8

const (
	P1Right Button = iota
	P1Left
	P1Down
	P1Up
	P1Button1
	P1Button2
	P1Button3
	P1Button4
	P1Button5
	P1Button6

	P2Right
	P2Left
	P2Down
	P2Up
	P2Button1
	P2Button2
	P2Button3
	P2Button4
	P2Button5
	P2Button6

	Start1
	Start2
	Coin1
	Coin2
	Service1
	Test

	ButtonCount
)

// wiring gives the port and bit of each button, for the common 2 players
// 6 buttons harness.
var wiring = [ButtonCount]struct {
	port int
	mask uint16
}{
	P1Right:   {0, 0x0001},
	P1Left:    {0, 0x0002},
	P1Down:    {0, 0x0004},
	P1Up:      {0, 0x0008},
	P1Button1: {0, 0x0010},
	P1Button2: {0, 0x0020},
	P1Button3: {0, 0x0040},
	P1Button4: {1, 0x0001},
	P1Button5: {1, 0x0002},
	P1Button6: {1, 0x0004},

	P2Right:   {0, 0x0100},
	P2Left:    {0, 0x0200},
	P2Down:    {0, 0x0400},
	P2Up:      {0, 0x0800},
	P2Button1: {0, 0x1000},
	P2Button2: {0, 0x2000},
	P2Button3: {0, 0x4000},
	P2Button4: {1, 0x0010},
	P2Button5: {1, 0x0020},
	P2Button6: {1, 0x0040},

	Test:     {2, 0x0002},
	Service1: {2, 0x0004},
	Start1:   {2, 0x0100},
	Start2:   {2, 0x0200},
	Coin1:    {2, 0x1000},
	Coin2:    {2, 0x2000},
}

// Port returns the input port and bit mask the button is wired to.
func (b Button) Port() (port int, mask uint16) {
	w := wiring[b]
	return w.port, w.mask
}

const numPorts = 3

// Panel is the state of the cabinet control panel. It can be updated by the
// front-end while the emulator reads it. Ports are active low.
type Panel struct {
	pressed [numPorts]atomic.Uint32
	paddles [2]atomic.Uint32
}

// NewPanel returns a panel with all buttons released and paddles centered.
func NewPanel() *Panel {
	p := &Panel{}
	p.ReleaseAll()
	return p
}

// Set sets the state of button b.
func (p *Panel) Set(b Button, pressed bool) {
	port, mask := b.Port()
	if pressed {
		p.pressed[port].Or(uint32(mask))
	} else {
		p.pressed[port].And(^uint32(mask))
	}
}

func (p *Panel) Press(b Button)   { p.Set(b, true) }
func (p *Panel) Release(b Button) { p.Set(b, false) }

// Pressed reports whether button b is currently pressed.
func (p *Panel) Pressed(b Button) bool {
	port, mask := b.Port()
	return p.pressed[port].Load()&uint32(mask) != 0
}

// SetPaddle sets the position of paddle n (0 or 1).
func (p *Panel) SetPaddle(n int, pos uint8) {
	p.paddles[n].Store(uint32(pos))
}

// ReleaseAll releases all buttons and centers the paddles.
func (p *Panel) ReleaseAll() {
	for i := range p.pressed {
		p.pressed[i].Store(0)
	}
	for i := range p.paddles {
		p.paddles[i].Store(0x80)
	}
}

// ReadPort returns the active-low value of input port n.
func (p *Panel) ReadPort(n int) uint16 {
	return ^uint16(p.pressed[n].Load())
}

// ReadPaddle returns the position of paddle n.
func (p *Panel) ReadPaddle(n int) uint8 {
	return uint8(p.paddles[n].Load())
}
