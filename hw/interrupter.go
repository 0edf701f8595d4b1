package hw

import (
	"cps2/emu/log"
	"cps2/hw/hwdefs"
)

const (
	// LastScanline is the last value of the scanline counter in a frame.
	LastScanline = hwdefs.TicksPerFrame - 1

	// VBlankScanline is the counter value at which vblank is signaled.
	VBlankScanline = 240

	// RasterRowOffset converts the scanline counter into the screen row
	// committed by a raster split: visible area top minus the first counted
	// line. Calibrated against hardware, not derived.
	RasterRowOffset = hwdefs.VisibleMinY - 10

	// VBlankRow is the row committed at vblank when splits occurred.
	VBlankRow = 256

	rasterPending = 0x8000
)

// rasterHost is the part of the board the interrupter drives.
type rasterHost interface {
	HoldIRQ(src hwdefs.IRQSource)
	UpdatePartial(row int)
	LatchSpritePriorities()
	LatchObjectRAM()
	RasterTargets() (r1, r2 uint16)
}

// Interrupter generates the vblank and raster interrupts. Tick is called once
// per scanline-equivalent, TicksPerFrame times per frame.
//
// Only two raster splits per frame are honored: games asking for more
// (e.g. the scrolling strips of some stages) show incorrect scrolling. Fixing
// it requires cycle-stepped interrupts rather than scanline-quantized ones.
type Interrupter struct {
	Scanline  int    // 0..LastScanline
	Raster1   uint16 // live comparison registers
	Raster2   uint16
	Scancalls int // raster interrupts fired this frame

	host rasterHost
}

func (it *Interrupter) Reset() {
	it.Scanline = 0
	it.Raster1 = 0
	it.Raster2 = 0
	it.Scancalls = 0
}

func (it *Interrupter) Tick() {
	if it.Scanline >= LastScanline {
		it.Scanline = -1
		it.Scancalls = 0
	}
	it.Scanline++

	if it.Raster1&rasterPending != 0 {
		it.Raster1 &= rasterTargetMask
	}
	if it.Raster2&rasterPending != 0 {
		it.Raster2 &= rasterTargetMask
	}

	it.split(&it.Raster1)
	it.split(&it.Raster2)

	if it.Scanline == VBlankScanline {
		it.Raster1, it.Raster2 = it.host.RasterTargets()
		it.host.HoldIRQ(hwdefs.VBlank)
		if it.Scancalls > 0 {
			it.host.LatchSpritePriorities()
			it.host.UpdatePartial(VBlankRow)
		}
		it.host.LatchObjectRAM()
	}
}

func (it *Interrupter) split(reg *uint16) {
	target := int(*reg)
	if target != it.Scanline && (target >= it.Scanline || it.Scancalls != 0) {
		return
	}

	log.ModIRQ.DebugZ("raster split").
		Int("scanline", it.Scanline).
		Int("target", target).
		Int("calls", it.Scancalls).
		End()

	*reg = 0
	it.host.HoldIRQ(hwdefs.Raster)
	it.host.LatchSpritePriorities()
	it.host.UpdatePartial(RasterRowOffset + it.Scanline)
	it.Scancalls++
}
