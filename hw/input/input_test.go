package input

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestButtonMarshalRoundTrip(t *testing.T) {
	tests := []struct {
		text string
		want string // canonical form, "" for unmarshal errors
	}{
		{"p1 up", "p1 up"},
		{"P1  B3", "p1 b3"},
		{" coin2 ", "coin2"},
		{"start1", "start1"},
		{"test", "test"},

		// unmarshal errors
		{"", ""},
		{"p3 up", ""},
		{"p1b1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			var b Button
			if err := b.UnmarshalText([]byte(tt.text)); err != nil {
				if tt.want != "" {
					t.Fatalf("UnmarshalText(%q) error: %v", tt.text, err)
				}
				return
			}
			if tt.want == "" {
				t.Fatalf("UnmarshalText(%q) = %v, want error", tt.text, b)
			}
			text, err := b.MarshalText()
			if err != nil {
				t.Fatal(err)
			}
			if got := string(text); got != tt.want {
				t.Errorf("MarshalText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWiring(t *testing.T) {
	var seen [numPorts]uint16
	for b := range ButtonCount {
		port, mask := b.Port()
		if mask == 0 || mask&(mask-1) != 0 {
			t.Errorf("%v: mask %04x is not a single bit", b, mask)
		}
		if seen[port]&mask != 0 {
			t.Errorf("%v: port %d bit %04x already used", b, port, mask)
		}
		seen[port] |= mask
	}
	// Bit 0 of IN2 is the EEPROM data line.
	if seen[2]&1 != 0 {
		t.Errorf("a button is wired to the EEPROM data bit")
	}
}

func TestPanel(t *testing.T) {
	p := NewPanel()
	for n := range numPorts {
		if got := p.ReadPort(n); got != 0xffff {
			t.Errorf("ReadPort(%d) = %04x, want ffff", n, got)
		}
	}
	if got := p.ReadPaddle(1); got != 0x80 {
		t.Errorf("ReadPaddle(1) = %02x, want 80", got)
	}

	p.Press(P1Up)
	p.Press(P2Button1)
	p.Press(Coin1)
	p.Press(P1Button6)
	p.SetPaddle(0, 0x12)

	want := [numPorts]uint16{0xeff7, 0xfffb, 0xefff}
	for n := range numPorts {
		if got := p.ReadPort(n); got != want[n] {
			t.Errorf("ReadPort(%d) = %04x, want %04x", n, got, want[n])
		}
	}
	if !p.Pressed(Coin1) || p.Pressed(Coin2) {
		t.Errorf("Pressed(Coin1), Pressed(Coin2) = %t, %t", p.Pressed(Coin1), p.Pressed(Coin2))
	}

	p.Release(P1Up)
	if got := p.ReadPort(0); got != 0xefff {
		t.Errorf("ReadPort(0) = %04x after release, want efff", got)
	}
	if got := p.ReadPaddle(0); got != 0x12 {
		t.Errorf("ReadPaddle(0) = %02x, want 12", got)
	}
}

const testScript = `
[[event]]
frame = 10
release = ["coin1"]

[[event]]
frame = 2
press = ["coin1", "p1 b1"]
paddles = [0x10, 0x20]

[[event]]
frame = 10
press = ["start1"]
`

func TestScript(t *testing.T) {
	s, err := DecodeScript(strings.NewReader(testScript))
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Len(); got != 11 {
		t.Errorf("Len() = %d, want 11", got)
	}

	p := NewPanel()
	var trace []uint16
	for frame := range s.Len() {
		s.Apply(frame, p)
		trace = append(trace, p.ReadPort(2))
	}

	want := []uint16{
		0xffff, 0xffff,
		0xefff, 0xefff, 0xefff, 0xefff, 0xefff, 0xefff, 0xefff, 0xefff,
		0xfeff,
	}
	if diff := cmp.Diff(want, trace); diff != "" {
		t.Errorf("IN2 trace mismatch (-want +got):\n%s", diff)
	}
	if !p.Pressed(P1Button1) {
		t.Errorf("p1 b1 released")
	}
	if got := p.ReadPaddle(1); got != 0x20 {
		t.Errorf("ReadPaddle(1) = %02x, want 20", got)
	}
}

func TestScriptErrors(t *testing.T) {
	for _, src := range []string{
		`[[event]]
frame = -1`,
		`[[event]]
press = ["p5 up"]`,
		`[[event]]
paddles = [1, 2, 3]`,
		`[[event]]
frames = 3`,
	} {
		if _, err := DecodeScript(strings.NewReader(src)); err == nil {
			t.Errorf("DecodeScript(%q) returned nil error", src)
		}
	}
}
