package snapshot

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testBoard() *Board {
	return &Board{
		Version: Version,
		Game:    "ssf2",
		Interrupter: Interrupter{
			Scanline:  258,
			Raster1:   100,
			Raster2:   0x1ff,
			Scancalls: 2,
		},
		IRQ: 3,
		Coins: Coins{
			Counters: [2]uint32{12, 0xffffffff},
			Lockouts: [4]bool{true, false, true, true},
			Lines:    [2]bool{false, true},
		},
		IO:     IO{EEPROMPort: 0x4008, PaddleSelect: true},
		EEPROM: []byte{0xde, 0xad, 0xbe, 0xef},
		ObjRAM: ObjRAM{
			Bank:     1,
			Bank1:    []byte{1, 2},
			Bank2:    []byte{3, 4},
			Buffered: []byte{5, 6},
		},
		CPSA:        []uint16{0x9100, 0x9000},
		CPSB:        []uint16{0, 0x8064, 0xffff},
		Output:      make([]byte, 16),
		QSound:      []byte{0x77},
		ExtraRAM:    []byte{0, 1, 2, 3},
		ExtraEnable: 0x1234,
		GfxRAM:      []byte{0xff, 0xfe},
		WorkRAM:     []byte{9, 8, 7},
	}
}

func TestEncodeDecode(t *testing.T) {
	want := testBoard()
	buf := want.Encode()

	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v\n%s", err, buf)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded state mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeUnknownFields(t *testing.T) {
	buf := []byte(`{"version":1,"game":"avsp","future":{"a":[1,2]},"io":{"paddle_select":true,"other":0}}`)
	got, err := Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Game != "avsp" || !got.IO.PaddleSelect {
		t.Errorf("Decode() = %+v", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name, json, errstr string
	}{
		{"version", `{"version":2}`, "unsupported version"},
		{"missing version", `{"game":"x"}`, "unsupported version"},
		{"range", `{"version":1,"irq":300}`, "out of range"},
		{"counters", `{"version":1,"coins":{"counters":[1,2,3]}}`, "invalid counter"},
		{"syntax", `{"version":1,`, "snapshot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.json))
			if err == nil {
				t.Fatal("Decode() returned nil error")
			}
			if !strings.Contains(err.Error(), tt.errstr) {
				t.Errorf("Decode() error = %q, want it to contain %q", err, tt.errstr)
			}
		})
	}
}
