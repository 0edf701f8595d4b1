package hwio_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cps2/hw/hwio"
)

// Unmapped
type openbus struct{}

func (ob *openbus) Read16(addr uint32, peek bool) uint16 {
	if peek {
		return 0xD4D4
	}
	return 0xD3D3
}
func (ob *openbus) Write16(addr uint32, val, mask uint16) {}

type testTable struct {
	t   testing.TB
	Bus *hwio.Table

	// mapped to $000000-$0007FF, mirrored up to $001FFF
	RAM hwio.Mem `hwio:"bank=0,offset=0x0,size=0x800,vsize=0x2000"`

	// $002000
	Reg0 hwio.Reg16 `hwio:"bank=1,offset=0x0,reset=0x7777"`
	// $002002
	Reg1 hwio.Reg16 `hwio:"bank=1,offset=0x2,rwmask=0xF0F0,rcb,reset=0x9999"`
	// $002004
	Reg2 hwio.Reg16 `hwio:"bank=1,offset=0x4,readonly,rcb=ReadStatus"`

	// $004000-$4000FF
	DefaultDev hwio.Device `hwio:"bank=2,offset=0x0,size=0x100"`
	// $004100-$0041FF
	DEV hwio.Device `hwio:"bank=2,offset=0x100,size=0x100,rcb,wcb"`
	// $004200-$0042FF
	RoDEV hwio.Device `hwio:"bank=2,offset=0x200,size=0x100,rcb,readonly"`
	// $004300-$0043FF
	WoDEV hwio.Device `hwio:"bank=2,offset=0x300,size=0x100,wcb,writeonly"`

	devval  uint16
	devmask uint16
}

func newTestTable(tb testing.TB) *testTable {
	tbl := &testTable{t: tb}
	hwio.MustInitRegs(tbl)

	tbl.Bus = hwio.NewTable("bus")
	tbl.Bus.MapBank(0x000000, tbl, 0)
	tbl.Bus.MapBank(0x002000, tbl, 1)
	tbl.Bus.MapBank(0x004000, tbl, 2)
	tbl.Bus.Unmapped = &openbus{}
	return tbl
}

// $002002
func (tbl *testTable) ReadREG1(val uint16, peek bool) uint16 { return tbl.Reg1.Value + 1 }

// $002004
func (tbl *testTable) ReadStatus(val uint16, peek bool) uint16 {
	if peek {
		return 0x1212
	}
	return 0x8000
}

// $004100-$0041FF
func (tbl *testTable) ReadDEV(addr uint32, peek bool) uint16 { return 0xE1E1 }
func (tbl *testTable) WriteDEV(addr uint32, val, mask uint16) {
	tbl.devval = uint16(addr&0xFF) & val
	tbl.devmask = mask
}

// $004200-$0042FF
func (tbl *testTable) ReadRODEV(addr uint32, peek bool) uint16 {
	if peek {
		return 0xC8C8
	}
	return 0xC5C5
}

// $004300-$0043FF
func (tbl *testTable) WriteWODEV(addr uint32, val, mask uint16) { tbl.devval = uint16(addr) &^ val }

func (tbl *testTable) wantRead16(addr uint32, want uint16) {
	tbl.t.Helper()

	if got := tbl.Bus.Read16(addr); got != want {
		tbl.t.Errorf("Read16(%06X) = %04X, want %04X", addr, got, want)
	}
}

func (tbl *testTable) wantPeek16(addr uint32, want uint16) {
	tbl.t.Helper()

	if got := tbl.Bus.Peek16(addr); got != want {
		tbl.t.Errorf("Peek16(%06X) = %04X, want %04X", addr, got, want)
	}
}

func TestTableMem(t *testing.T) {
	tbl := newTestTable(t)

	tbl.wantRead16(0x00, 0)
	tbl.Bus.Write16(0x00, 0x1234, hwio.LaneBoth)
	tbl.wantRead16(0x00, 0x1234)
	tbl.wantRead16(0x800, 0x1234)  // mirror
	tbl.wantRead16(0x1800, 0x1234) // mirror

	// Big endian byte accesses.
	if got := tbl.Bus.Read8(0x00); got != 0x12 {
		t.Errorf("Read8(0) = %02X, want 12", got)
	}
	if got := tbl.Bus.Read8(0x01); got != 0x34 {
		t.Errorf("Read8(1) = %02X, want 34", got)
	}
	tbl.Bus.Write8(0x01, 0xAB)
	tbl.wantRead16(0x00, 0x12AB)
	tbl.Bus.Write8(0x00, 0xCD)
	tbl.wantRead16(0x00, 0xCDAB)

	tbl.Bus.Write32(0x10, 0xDEADBEEF)
	if got := tbl.Bus.Read32(0x10); got != 0xDEADBEEF {
		t.Errorf("Read32(10) = %08X, want DEADBEEF", got)
	}
	tbl.wantRead16(0x12, 0xBEEF)
}

func TestTableRegs(t *testing.T) {
	tbl := newTestTable(t)

	tbl.wantRead16(0x2000, 0x7777)

	// Reg1
	tbl.wantRead16(0x2002, 0x999a)
	tbl.Bus.Write16(0x2002, 0xffff, hwio.LaneBoth)
	tbl.wantRead16(0x2002, 0xf9fa)
	tbl.Bus.Write16(0x2002, 0x0000, hwio.LaneUpper)
	tbl.wantRead16(0x2002, 0x09fa)

	// Reg2
	tbl.wantRead16(0x2004, 0x8000)
	tbl.wantPeek16(0x2004, 0x1212)
	tbl.Bus.Write16(0x2004, 0x9b9b, hwio.LaneBoth)
	tbl.wantRead16(0x2004, 0x8000)
	if tbl.Reg2.Value != 0 {
		t.Errorf("readonly reg written: %04x", tbl.Reg2.Value)
	}
}

func TestTableUnmapped(t *testing.T) {
	tbl := newTestTable(t)
	tbl.wantRead16(0x2020, 0xd3d3)
	tbl.wantPeek16(0x2020, 0xd4d4)

	tbl.Bus.Unmapped = nil
	tbl.wantRead16(0x2020, 0)
}

func TestTableAddressWrap(t *testing.T) {
	tbl := newTestTable(t)
	tbl.Bus.Write16(0x10, 0x5555, hwio.LaneBoth)
	// Only 24 address lines.
	tbl.wantRead16(0xFF000010, 0x5555)
}

func TestTableMapMemorySlice(t *testing.T) {
	tbl := newTestTable(t)

	rom := bytes.Repeat([]byte("\x12\x34"), 0x100)
	tbl.Bus.MapMemorySlice(0x3000, 0x31FF, rom, true, "rom")

	tbl.wantRead16(0x3000, 0x1234)
	tbl.wantRead16(0x31FE, 0x1234)
	tbl.wantRead16(0x3200, 0xd3d3) // unmapped

	tbl.Bus.Write16(0x3000, 0xFFFF, hwio.LaneBoth) // readonly
	tbl.wantRead16(0x3000, 0x1234)
}

func TestTableMapDevice(t *testing.T) {
	tbl := newTestTable(t)

	tbl.Bus.Write16(0x4000, 0xffff, hwio.LaneBoth)
	tbl.wantRead16(0x4000, 0x0000)

	tbl.wantRead16(0x4100, 0xe1e1)
	tbl.Bus.Write16(0x4120, 0x2727, hwio.LaneBoth)
	if tbl.devval != 0x0020 || tbl.devmask != hwio.LaneBoth {
		t.Errorf("devval = %04X mask = %04X, want 0020 ffff", tbl.devval, tbl.devmask)
	}
	tbl.Bus.Write8(0x4121, 0xff)
	if tbl.devmask != hwio.LaneLower {
		t.Errorf("devmask = %04X, want 00ff", tbl.devmask)
	}

	tbl.wantRead16(0x4200, 0xc5c5)
	tbl.wantPeek16(0x4200, 0xc8c8)
	tbl.Bus.Write16(0x4200, 0xffff, hwio.LaneBoth) // readonly
	if tbl.devval != 0x21 {
		t.Errorf("devval = %04X, want 0021", tbl.devval)
	}

	tbl.wantRead16(0x4300, 0x0000) // writeonly
	tbl.Bus.Write16(0x4354, 0x000f, hwio.LaneBoth)
	if tbl.devval != 0x4350 {
		t.Errorf("devval = %04X, want 4350", tbl.devval)
	}
}

func TestUnmapBank(t *testing.T) {
	t.Run("hwio.Mem", func(t *testing.T) {
		tbl := newTestTable(t)

		tbl.Bus.Write16(0x40, 0x1234, hwio.LaneBoth)
		tbl.Bus.UnmapBank(0x0000, tbl, 0)
		tbl.wantRead16(0x40, 0xd3d3)
	})
	t.Run("hwio.Reg16", func(t *testing.T) {
		tbl := newTestTable(t)

		tbl.Bus.UnmapBank(0x2000, tbl, 1)
		tbl.wantRead16(0x2002, 0xd3d3)
	})
	t.Run("hwio.Device", func(t *testing.T) {
		tbl := newTestTable(t)

		tbl.wantRead16(0x417E, 0xE1E1)
		tbl.Bus.UnmapBank(0x4000, tbl, 2)
		tbl.wantRead16(0x417E, 0xd3d3)
	})
}

func TestUnmap(t *testing.T) {
	t.Run("partial", func(t *testing.T) {
		tbl := newTestTable(t)

		tbl.Bus.Write16(0x40, 0x1234, hwio.LaneBoth)
		tbl.Bus.Unmap(0x0000, 0x003F)
		tbl.wantRead16(0x00, 0xd3d3)
		tbl.wantRead16(0x40, 0x1234)
	})
	t.Run("overshoot", func(t *testing.T) {
		tbl := newTestTable(t)

		tbl.Bus.Unmap(0x0000, 0x2001) // overshoot bank0 end
		tbl.wantRead16(0x2000, 0xd3d3)
		tbl.wantRead16(0x2002, 0x999a)
	})
	t.Run("multiple", func(t *testing.T) {
		tbl := newTestTable(t)

		tbl.Bus.Unmap(0x4002, 0x42FF) // unmap 3 devices
		tbl.wantRead16(0x4002, 0xd3d3)
		tbl.wantRead16(0x4100, 0xd3d3)
		tbl.wantRead16(0x4200, 0xd3d3)
		tbl.Bus.Write16(0x4354, 0x000f, hwio.LaneBoth)
		if tbl.devval != 0x4350 {
			t.Errorf("devval = %04X, want 4350", tbl.devval)
		}
	})
}

func TestTableRanges(t *testing.T) {
	tbl := newTestTable(t)

	want := []hwio.Range{
		{Begin: 0x0000, End: 0x1FFF, Name: "RAM"},
		{Begin: 0x2000, End: 0x2001, Name: "Reg0"},
		{Begin: 0x2002, End: 0x2003, Name: "Reg1"},
		{Begin: 0x2004, End: 0x2005, Name: "Reg2"},
		{Begin: 0x4000, End: 0x40FF, Name: "DefaultDev"},
		{Begin: 0x4100, End: 0x41FF, Name: "DEV"},
		{Begin: 0x4200, End: 0x42FF, Name: "RoDEV"},
		{Begin: 0x4300, End: 0x43FF, Name: "WoDEV"},
	}
	if diff := cmp.Diff(want, tbl.Bus.Ranges()); diff != "" {
		t.Errorf("Ranges() mismatch (-want +got):\n%s", diff)
	}
}

func TestTableOverlapPanics(t *testing.T) {
	tbl := newTestTable(t)
	defer func() {
		if recover() == nil {
			t.Errorf("overlapping MapMem should panic")
		}
	}()
	tbl.Bus.MapMemorySlice(0x1000, 0x1FFF, make([]byte, 0x1000), false, "overlap")
}
