package hwio

import "testing"

func TestReg16(t *testing.T) {
	r := Reg16{Value: 0x1111, RoMask: 0xF0F0}

	if got := r.Read16(0, false); got != 0x1111 {
		t.Errorf("invalid read: %x", got)
	}
	if got := r.Read16(0x123456, false); got != 0x1111 {
		t.Errorf("invalid read with offset: %x", got)
	}

	r.Write16(0, 0x7777, LaneBoth)
	if r.Value != 0x1717 {
		t.Errorf("writemask not respected: %x", r.Value)
	}
	r.Write16(0, 0x8888, LaneLower)
	if r.Value != 0x1718 {
		t.Errorf("lane mask not respected: %x", r.Value)
	}
	r.Write16(0, 0x0505, LaneUpper)
	if r.Value != 0x1518 {
		t.Errorf("lane mask not respected: %x", r.Value)
	}
}

func TestReg16Callbacks(t *testing.T) {
	var gotOld, gotVal, gotMask uint16
	r := Reg16{
		Value: 0xAB00,
		WriteCb: func(old, val, mask uint16) {
			gotOld, gotVal, gotMask = old, val, mask
		},
		ReadCb: func(val uint16, peek bool) uint16 {
			if peek {
				return 0
			}
			return val | 1
		},
	}

	r.Write16(0, 0x00CD, LaneLower)
	if gotOld != 0xAB00 || gotVal != 0xABCD || gotMask != LaneLower {
		t.Errorf("WriteCb(%04x, %04x, %04x), want (ab00, abcd, 00ff)", gotOld, gotVal, gotMask)
	}
	if got := r.Read16(0, false); got != 0xABCD {
		t.Errorf("Read16 = %04x, want abcd", got)
	}
	if got := r.Read16(0, true); got != 0 {
		t.Errorf("Read16(peek) = %04x, want 0", got)
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		old, val, mask, want uint16
	}{
		{0x1234, 0xABCD, LaneBoth, 0xABCD},
		{0x1234, 0xABCD, LaneUpper, 0xAB34},
		{0x1234, 0xABCD, LaneLower, 0x12CD},
		{0x1234, 0xABCD, 0, 0x1234},
	}
	for _, tt := range tests {
		if got := Combine(tt.old, tt.val, tt.mask); got != tt.want {
			t.Errorf("Combine(%04x, %04x, %04x) = %04x, want %04x", tt.old, tt.val, tt.mask, got, tt.want)
		}
	}
}
