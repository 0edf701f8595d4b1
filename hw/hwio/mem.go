package hwio

import (
	"encoding/binary"

	"cps2/emu/log"
)

type MemFlags int

const (
	MemFlagReadWrite MemFlags = 0
	MemFlagReadOnly  MemFlags = (1 << iota) // CPU writes are rejected
	MemFlagNoROLog                          // skip logging attempts to write when configured to readonly
)

// Mem is a linear memory area that can be mapped into a Table. Data is stored
// big endian, as seen by the 68000.
//
// When VSize is bigger than len(Data), the area is mirrored every len(Data)
// bytes, which must then be a power of 2.
type Mem struct {
	Name  string   // name of the memory area (for debugging)
	Data  []byte   // actual memory buffer
	VSize int      // virtual size of the memory (can be bigger than physical size)
	Flags MemFlags // flags determining how the memory can be accessed

	// Optional callback, called after a successful write.
	WriteCb func(addr uint32, mask uint16)
}

// BankIO16 returns the adaptor used to map m onto a bus.
func (m *Mem) BankIO16() BankIO16 {
	return newMem(m)
}

type mem struct {
	name string
	data []byte
	mask uint32
	wcb  func(uint32, uint16)
	ro   MemFlags
}

func newMem(m *Mem) *mem {
	if len(m.Data) < 2 || len(m.Data)&(len(m.Data)-1) != 0 {
		panic("memory buffer size is not pow2: " + m.Name)
	}
	return &mem{
		name: m.Name,
		data: m.Data,
		mask: uint32(len(m.Data) - 1),
		wcb:  m.WriteCb,
		ro:   m.Flags & (MemFlagReadOnly | MemFlagNoROLog),
	}
}

func (m *mem) Read16(addr uint32, _ bool) uint16 {
	off := addr & m.mask &^ 1
	return binary.BigEndian.Uint16(m.data[off:])
}

// write16 reports whether the write went through.
func (m *mem) write16(addr uint32, val, mask uint16) bool {
	if m.ro != 0 {
		return false
	}
	off := addr & m.mask &^ 1
	old := binary.BigEndian.Uint16(m.data[off:])
	binary.BigEndian.PutUint16(m.data[off:], Combine(old, val, mask))
	if m.wcb != nil {
		m.wcb(addr, mask)
	}
	return true
}

func (m *mem) Write16(addr uint32, val, mask uint16) {
	if !m.write16(addr, val, mask) && m.ro&MemFlagNoROLog == 0 {
		log.ModHwIo.ErrorZ("Write16 to readonly memory").
			String("name", m.name).
			Hex24("addr", addr).
			Hex16("val", val).
			End()
	}
}
