package hw

import (
	"cps2/emu/log"
	"cps2/hw/hwio"
)

const (
	cpsRegsSize = 0x40

	// CPS-B raster target registers.
	CPSBRaster1 = 0x10
	CPSBRaster2 = 0x12

	rasterTargetMask = 0x1ff
)

// CPSRegs are the CPS-A and CPS-B video controller registers, consumed by the
// external compositor. The bank is mapped at 0x800100 and mirrored at
// 0x804100.
type CPSRegs struct {
	CPSA hwio.Device `hwio:"offset=0x00,size=0x40,writeonly,wcb"`
	CPSB hwio.Device `hwio:"offset=0x40,size=0x40,rcb,wcb"`

	A [cpsRegsSize / 2]uint16
	B [cpsRegsSize / 2]uint16

	raster *Interrupter
}

func (c *CPSRegs) initBus() {
	hwio.MustInitRegs(c)
}

func (c *CPSRegs) Reset() {
	clear(c.A[:])
	clear(c.B[:])
}

func (c *CPSRegs) WriteCPSA(addr uint32, val, mask uint16) {
	i := addr & (cpsRegsSize - 1) >> 1
	c.A[i] = hwio.Combine(c.A[i], val, mask)
}

func (c *CPSRegs) ReadCPSB(addr uint32, _ bool) uint16 {
	return c.B[addr&(cpsRegsSize-1)>>1]
}

func (c *CPSRegs) WriteCPSB(addr uint32, val, mask uint16) {
	off := addr & (cpsRegsSize - 1) &^ 1
	i := off >> 1
	c.B[i] = hwio.Combine(c.B[i], val, mask)

	switch off {
	case CPSBRaster1:
		c.raster.Raster1 = c.B[i] & rasterTargetMask
	case CPSBRaster2:
		c.raster.Raster2 = c.B[i] & rasterTargetMask
	default:
		return
	}
	log.ModIRQ.DebugZ("raster target").Hex8("reg", uint8(off)).Hex16("val", c.B[i]).End()
}

// RasterTargets returns the configured raster split targets.
func (c *CPSRegs) RasterTargets() (r1, r2 uint16) {
	return c.B[CPSBRaster1/2] & rasterTargetMask, c.B[CPSBRaster2/2] & rasterTargetMask
}
