package hwdefs

import "strings"

// IRQSource is a 68000 interrupt source on the CPS2 board.
type IRQSource uint8

const (
	VBlank IRQSource = 1 << iota
	Raster

	numSources = 2
)

var irqSrcNames = [numSources]string{
	"vblank",
	"raster",
}

func (irq IRQSource) String() string {
	var names []string
	for i := range numSources {
		if irq&(1<<i) != 0 {
			names = append(names, irqSrcNames[i])
		}
	}
	return strings.Join(names, "|")
}

// 68000 autovector levels. 2 is vblank, 4 is the raster interrupt and 6 is
// both at the same time.
const (
	IRQLevelVBlank = 2
	IRQLevelRaster = 4
	IRQLevelBoth   = 6
)

// Clocks, in Hz.
const (
	MainClock   = 11_800_000 // 68000
	AudioClock  = 8_000_000  // Z80
	QSoundClock = 60_000_000 // DSP16A

	// Q-Sound DSP clocks per output sample.
	QSoundClocksPerSample = 2496
)

// Video timing.
const (
	RefreshRate = 59.633333

	ScreenWidth  = 64 * 8
	ScreenHeight = 32 * 8

	VisibleMinX = 8 * 8
	VisibleMaxX = (64-8)*8 - 1
	VisibleMinY = 2 * 8
	VisibleMaxY = 30*8 - 1

	// Interrupt generator invocations per frame.
	TicksPerFrame = 259

	// Main CPU cycles per interrupt tick, MainClock / RefreshRate / 259
	// rounded, and per frame.
	CyclesPerTick  int64 = 764
	CyclesPerFrame int64 = CyclesPerTick * TicksPerFrame
)

const (
	SoftReset = true
	HardReset = false
)
