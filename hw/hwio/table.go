package hwio

import (
	"fmt"

	"cps2/emu/log"
)

// AddrMask is the width of the 68000 address bus.
const AddrMask = 0xFFFFFF

type BankIO16 interface {
	// Read16 reads the word at the given address. If peek is true, the read
	// shouldn't have any side effects (debugging/tracing).
	Read16(addr uint32, peek bool) uint16
	// Write16 writes the byte lanes of val selected by mask.
	Write16(addr uint32, val, mask uint16)
}

// Range describes a mapped area of a Table.
type Range struct {
	Begin, End uint32
	Name       string
}

type Table struct {
	Name string

	// Unmapped, if non-nil, serves all accesses to unmapped addresses.
	Unmapped BankIO16

	// LogUnmapped enables error logs on unmapped accesses.
	LogUnmapped bool

	table16 rangeMap
}

func NewTable(name string) *Table {
	t := new(Table)
	t.Name = name
	t.Reset()
	return t
}

func (t *Table) Reset() {
	t.table16 = rangeMap{}
}

// MapBank maps a register bank, that is, a structure containing multiple
// Reg16, Mem or Device fields. For this function to work, registers must have
// a struct tag "hwio", containing the following fields:
//
//	offset=0x12     Byte-offset within the register bank at which this
//	                register is mapped. There is no default value: if this
//	                option is missing, the register is assumed not to be
//	                part of the bank, and is ignored by this call.
//
//	bank=NN         Ordinal bank number (if not specified, default to zero).
//	                This option allows for a structure to expose multiple
//	                banks, as regs can be grouped by bank by specified the
//	                bank number.
//
// See InitRegs for the other options.
func (t *Table) MapBank(addr uint32, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(err)
	}

	for _, reg := range regs {
		switch r := reg.regPtr.(type) {
		case *Mem:
			t.MapMem(addr+reg.offset, r)
		case *Reg16:
			t.MapReg16(addr+reg.offset, r)
		case *Device:
			t.MapDevice(addr+reg.offset, r)
		default:
			panic(fmt.Errorf("invalid reg type: %T", r))
		}
	}
}

func (t *Table) UnmapBank(addr uint32, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(err)
	}

	for _, reg := range regs {
		begin := addr + reg.offset
		switch r := reg.regPtr.(type) {
		case *Mem:
			t.Unmap(begin, begin+uint32(r.VSize)-1)
		case *Reg16:
			t.Unmap(begin, begin+1)
		case *Device:
			t.Unmap(begin, begin+uint32(r.Size)-1)
		default:
			panic(fmt.Errorf("invalid reg type: %T", r))
		}
	}
}

func (t *Table) mapBus16(addr, size uint32, io BankIO16, name string) {
	if addr&1 != 0 || size&1 != 0 {
		panic(fmt.Errorf("%s: unaligned mapping %06x+%x (%s)", t.Name, addr, size, name))
	}
	if err := t.table16.InsertRange(addr, addr+size-1, io, name); err != nil {
		panic(fmt.Errorf("%s: %w", t.Name, err))
	}
}

func (t *Table) MapReg16(addr uint32, io *Reg16) {
	t.mapBus16(addr, 2, io, io.Name)
}

func (t *Table) MapDevice(addr uint32, io *Device) {
	t.mapBus16(addr, uint32(io.Size), io, io.Name)
}

func (t *Table) MapMem(addr uint32, mem *Mem) {
	log.ModHwIo.DebugZ("mapping mem").
		Hex24("addr", addr).
		Hex32("size", uint32(mem.VSize)).
		String("area", mem.Name).
		String("bus", t.Name).
		End()

	vsize := mem.VSize
	if vsize == 0 {
		vsize = len(mem.Data)
	}
	t.mapBus16(addr, uint32(vsize), mem.BankIO16(), mem.Name)
}

// MapMemorySlice maps buf in [addr, end], mirrored if the range is bigger.
func (t *Table) MapMemorySlice(addr, end uint32, buf []byte, readonly bool, name string) {
	log.ModHwIo.DebugZ("mapping slice").
		Hex24("addr", addr).
		Hex24("end", end).
		String("bus", t.Name).
		Bool("ro", readonly).
		End()

	var flags MemFlags
	if readonly {
		flags |= MemFlagReadOnly
	}
	t.MapMem(addr, &Mem{
		Name:  name,
		Data:  buf,
		Flags: flags,
		VSize: int(end - addr + 1),
	})
}

func (t *Table) Unmap(begin, end uint32) {
	t.table16.RemoveRange(begin, end)
}

// Ranges lists the mapped areas, sorted by address.
func (t *Table) Ranges() []Range {
	ranges := make([]Range, len(t.table16.entries))
	for i, e := range t.table16.entries {
		ranges[i] = Range{Begin: e.begin, End: e.end, Name: e.name}
	}
	return ranges
}

func (t *Table) search(addr uint32) BankIO16 {
	if io := t.table16.Search(addr); io != nil {
		return io
	}
	return t.Unmapped
}

// Read16 searches in the table for the device mapped at the given address
// and forward the read to it.
func (t *Table) Read16(addr uint32) uint16 {
	return t.read16(addr&AddrMask, false)
}

// Peek16 reads without side effects.
func (t *Table) Peek16(addr uint32) uint16 {
	return t.read16(addr&AddrMask, true)
}

func (t *Table) read16(addr uint32, peek bool) uint16 {
	io := t.search(addr)
	if io == nil {
		if t.LogUnmapped && !peek {
			log.ModHwIo.ErrorZ("unmapped Read16").
				String("name", t.Name).
				Hex24("addr", addr).
				End()
		}
		return 0
	}
	return io.Read16(addr, peek)
}

// Write16 writes the lanes of val selected by mask.
func (t *Table) Write16(addr uint32, val, mask uint16) {
	addr &= AddrMask
	io := t.search(addr)
	if io == nil {
		if t.LogUnmapped {
			log.ModHwIo.ErrorZ("unmapped Write16").
				String("name", t.Name).
				Hex24("addr", addr).
				Hex16("val", val).
				Hex16("mask", mask).
				End()
		}
		return
	}
	io.Write16(addr, val, mask)
}

// Read8 reads a byte; even addresses are the upper lane.
func (t *Table) Read8(addr uint32) uint8 {
	w := t.Read16(addr)
	if addr&1 == 0 {
		return uint8(w >> 8)
	}
	return uint8(w)
}

func (t *Table) Write8(addr uint32, val uint8) {
	t.Write16(addr, uint16(val)<<8|uint16(val), LaneMask(addr))
}

func (t *Table) Read32(addr uint32) uint32 {
	hi := t.Read16(addr)
	lo := t.Read16(addr + 2)
	return uint32(hi)<<16 | uint32(lo)
}

func (t *Table) Write32(addr uint32, val uint32) {
	t.Write16(addr, uint16(val>>16), LaneBoth)
	t.Write16(addr+2, uint16(val), LaneBoth)
}
