package hwio

import (
	"fmt"

	"cps2/emu/log"
)

type RWFlags uint8

const (
	ReadWriteFlag RWFlags = 0
	ReadOnlyFlag  RWFlags = (1 << iota)
	WriteOnlyFlag
)

// Reg16 is a 16-bit register occupying one word of the bus.
type Reg16 struct {
	Name   string
	Value  uint16
	RoMask uint16 // bits that can't be changed by a CPU write

	Flags   RWFlags
	ReadCb  func(val uint16, peek bool) uint16
	WriteCb func(old, val, mask uint16)
}

func (reg Reg16) String() string {
	s := fmt.Sprintf("%s{%04x", reg.Name, reg.Value)
	if reg.ReadCb != nil {
		s += ",r!"
	}
	if reg.WriteCb != nil {
		s += ",w!"
	}
	return s + "}"
}

func (reg *Reg16) write(val, mask uint16) {
	old := reg.Value
	reg.Value = Combine(reg.Value, val, mask&^reg.RoMask)
	if reg.WriteCb != nil {
		reg.WriteCb(old, reg.Value, mask)
	}
}

// Write16 writes the byte lanes of val selected by mask.
func (reg *Reg16) Write16(addr uint32, val, mask uint16) {
	if reg.Flags&ReadOnlyFlag != 0 {
		log.ModHwIo.ErrorZ("invalid Write16 to readonly reg").
			String("name", reg.Name).
			Hex24("addr", addr).
			Hex16("val", val).
			End()
		return
	}
	reg.write(val, mask)
}

func (reg *Reg16) Read16(addr uint32, peek bool) uint16 {
	if reg.Flags&WriteOnlyFlag != 0 {
		if !peek {
			log.ModHwIo.ErrorZ("invalid Read16 from writeonly reg").
				String("name", reg.Name).
				Hex24("addr", addr).
				End()
		}
		return 0
	}
	if reg.ReadCb != nil {
		return reg.ReadCb(reg.Value, peek)
	}
	return reg.Value
}
