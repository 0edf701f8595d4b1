package hw

import (
	"cps2/emu/log"
	"cps2/hw/hwdefs"
)

// IRQController holds the interrupt lines of the main 68000. Lines are held
// until the CPU acknowledges them (HOLD_LINE).
type IRQController struct {
	pending hwdefs.IRQSource
}

func (ic *IRQController) Reset() {
	ic.pending = 0
}

// Hold asserts the interrupt line of src.
func (ic *IRQController) Hold(src hwdefs.IRQSource) {
	log.ModIRQ.DebugZ("hold irq").Stringer("src", src).End()
	ic.pending |= src
}

// Pending returns the held interrupt sources.
func (ic *IRQController) Pending() hwdefs.IRQSource {
	return ic.pending
}

// Level returns the interrupt priority level presented to the 68000, 0 when
// no interrupt is held.
func (ic *IRQController) Level() uint8 {
	switch ic.pending {
	case hwdefs.VBlank | hwdefs.Raster:
		return hwdefs.IRQLevelBoth
	case hwdefs.Raster:
		return hwdefs.IRQLevelRaster
	case hwdefs.VBlank:
		return hwdefs.IRQLevelVBlank
	}
	return 0
}

// Acknowledge is called by the CPU when it services the interrupt at level.
// It releases the lines encoded by that level.
func (ic *IRQController) Acknowledge(level uint8) {
	switch level {
	case hwdefs.IRQLevelBoth:
		ic.pending = 0
	case hwdefs.IRQLevelRaster:
		ic.pending &^= hwdefs.Raster
	case hwdefs.IRQLevelVBlank:
		ic.pending &^= hwdefs.VBlank
	default:
		log.ModIRQ.WarnZ("spurious interrupt acknowledge").Int("level", int(level)).End()
	}
}
