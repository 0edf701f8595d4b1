package input

import (
	"fmt"
	"strings"
)

var buttonNames = [ButtonCount]string{
	P1Right:   "p1 right",
	P1Left:    "p1 left",
	P1Down:    "p1 down",
	P1Up:      "p1 up",
	P1Button1: "p1 b1",
	P1Button2: "p1 b2",
	P1Button3: "p1 b3",
	P1Button4: "p1 b4",
	P1Button5: "p1 b5",
	P1Button6: "p1 b6",
	P2Right:   "p2 right",
	P2Left:    "p2 left",
	P2Down:    "p2 down",
	P2Up:      "p2 up",
	P2Button1: "p2 b1",
	P2Button2: "p2 b2",
	P2Button3: "p2 b3",
	P2Button4: "p2 b4",
	P2Button5: "p2 b5",
	P2Button6: "p2 b6",
	Start1:    "start1",
	Start2:    "start2",
	Coin1:     "coin1",
	Coin2:     "coin2",
	Service1:  "service1",
	Test:      "test",
}

func (b Button) String() string {
	if b >= ButtonCount {
		return fmt.Sprintf("Button(%d)", b)
	}
	return buttonNames[b]
}

func (b Button) MarshalText() ([]byte, error) {
	if b >= ButtonCount {
		return nil, fmt.Errorf("invalid button %d", b)
	}
	return []byte(buttonNames[b]), nil
}

// UnmarshalText parses a button name. Case and spacing between words are
// not significant ("P1  B1" is "p1 b1").
func (b *Button) UnmarshalText(text []byte) error {
	name := strings.Join(strings.Fields(strings.ToLower(string(text))), " ")
	for i, n := range buttonNames {
		if n == name {
			*b = Button(i)
			return nil
		}
	}
	return fmt.Errorf("unknown button %q", text)
}
