package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type irqName struct{}

func (irqName) String() string { return "vblank" }

func TestFieldValue(t *testing.T) {
	z := &EntryZ{}
	z.String("game", "ssf2").
		Int("scanline", -1).
		Uint("frame", 1200).
		Hex8("reg", 0x12).
		Hex16("status", 0x2021).
		Hex24("addr", 0x80414c).
		Hex32("val", 0xbeef).
		Bool("mute", true).
		Bool("paused", false).
		Error("err", errors.New("bad crc")).
		Error("nil", nil).
		Duration("elapsed", 1500*time.Millisecond).
		Stringer("src", irqName{}).
		Blob("eeprom", []byte{0xde, 0xad, 0x00})

	want := map[string]string{
		"game":     "ssf2",
		"scanline": "-1",
		"frame":    "1200",
		"reg":      "12",
		"status":   "2021",
		"addr":     "80414c",
		"val":      "0000beef",
		"mute":     "true",
		"paused":   "false",
		"err":      "bad crc",
		"nil":      "<nil>",
		"elapsed":  "1.5s",
		"src":      "vblank",
		"eeprom":   "dead00",
	}
	got := make(map[string]string)
	for i := range z.zfbuf[:z.zfidx] {
		got[z.zfbuf[i].Key] = z.zfbuf[i].Value()
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("field values mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldBlobTruncated(t *testing.T) {
	z := &EntryZ{}
	z.Blob("ram", bytes.Repeat([]byte{0xab}, 1024))

	got := z.zfbuf[0].Value()
	want := strings.Repeat("ab", maxBlob) + "... (1024 bytes)"
	if got != want {
		t.Errorf("Value() = %q, want %q", got, want)
	}
}

func TestFieldsDropped(t *testing.T) {
	z := &EntryZ{}
	for range maxZFields + 4 {
		z.Int("n", 1)
	}
	if z.zfidx != maxZFields {
		t.Errorf("fields = %d, want %d", z.zfidx, maxZFields)
	}

	var off *EntryZ
	if off.Int("n", 1).Hex24("addr", 0) != nil {
		t.Errorf("builder on a nil entry returned non-nil")
	}
}
