package hwio

import "cps2/emu/log"

// Device is a BankIO16 implementation that allows manual management of an
// entire range of the bus. Callbacks receive the full bus address.
type Device struct {
	Name  string // name of the area (for debugging)
	Size  int    // size of the area in bytes
	Flags RWFlags

	ReadCb  func(addr uint32, peek bool) uint16
	WriteCb func(addr uint32, val, mask uint16)
}

func (d *Device) Read16(addr uint32, peek bool) uint16 {
	switch {
	case d.Flags&WriteOnlyFlag != 0:
		if !peek {
			log.ModHwIo.ErrorZ("invalid Read16 from writeonly device").
				String("name", d.Name).
				Hex24("addr", addr).
				End()
		}
		return 0
	case d.ReadCb == nil:
		return 0
	}
	return d.ReadCb(addr, peek)
}

func (d *Device) Write16(addr uint32, val, mask uint16) {
	switch {
	case d.Flags&ReadOnlyFlag != 0:
		log.ModHwIo.ErrorZ("invalid Write16 to readonly device").
			String("name", d.Name).
			Hex24("addr", addr).
			Hex16("val", val).
			End()
		return
	case d.WriteCb == nil:
		return
	}
	d.WriteCb(addr, val, mask)
}
