package hw

import (
	"encoding/binary"

	"cps2/emu/log"
	"cps2/hw/hwio"
)

// ObjRAMSize is the size of each object RAM bank.
const ObjRAMSize = 0x2000

// objBaseRAM1 is the object base (output register 0) designating bank 1.
const objBaseRAM1 = 0x7000

// ObjectRAM holds the two sprite tables. The CPU writes the hidden table
// through the 0x700000 port while 0x708000 accesses the other one; bit 0 of
// the bank register swaps them. At vblank the table designated by the object
// base register is copied into Buffered, which the compositor draws from.
type ObjectRAM struct {
	RAM1 hwio.Device `hwio:"offset=0x0000,size=0x2000,writeonly,wcb"`
	RAM2 hwio.Device `hwio:"offset=0x8000,size=0x8000,rcb,wcb"`

	Bank1    [ObjRAMSize]byte
	Bank2    [ObjRAMSize]byte
	Buffered [ObjRAMSize]byte

	bank uint16
}

func (o *ObjectRAM) initBus() {
	hwio.MustInitRegs(o)
}

func (o *ObjectRAM) Reset() {
	clear(o.Bank1[:])
	clear(o.Bank2[:])
	clear(o.Buffered[:])
	o.bank = 0
}

// SetBank sets the bank swap bit.
func (o *ObjectRAM) SetBank(bank uint16) {
	o.bank = bank & 1
}

func (o *ObjectRAM) BankSelect() uint16 { return o.bank }

func combine16(buf []byte, off uint32, val, mask uint16) {
	old := binary.BigEndian.Uint16(buf[off:])
	binary.BigEndian.PutUint16(buf[off:], hwio.Combine(old, val, mask))
}

func (o *ObjectRAM) WriteRAM1(addr uint32, val, mask uint16) {
	off := addr & (ObjRAMSize - 1) &^ 1
	if o.bank&1 != 0 {
		combine16(o.Bank2[:], off, val, mask)
	} else {
		combine16(o.Bank1[:], off, val, mask)
	}
}

// visible returns the table accessed through the 0x708000 port.
func (o *ObjectRAM) visible() []byte {
	if o.bank&1 != 0 {
		return o.Bank1[:]
	}
	return o.Bank2[:]
}

func (o *ObjectRAM) ReadRAM2(addr uint32, _ bool) uint16 {
	off := addr & (ObjRAMSize - 1) &^ 1
	return binary.BigEndian.Uint16(o.visible()[off:])
}

func (o *ObjectRAM) WriteRAM2(addr uint32, val, mask uint16) {
	off := addr & (ObjRAMSize - 1) &^ 1
	combine16(o.visible(), off, val, mask)
}

// Latch copies the sprite table designated by base into the buffer.
func (o *ObjectRAM) Latch(base uint16) {
	if o.bank&1 != 0 {
		base ^= 0x0080
	}
	src := o.Bank2[:]
	if base == objBaseRAM1 {
		src = o.Bank1[:]
	}
	copy(o.Buffered[:], src)
	log.ModVideo.DebugZ("object ram latched").Hex16("base", base).End()
}
