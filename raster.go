package main

import (
	"fmt"

	"cps2/hw"
	"cps2/hw/hwdefs"
	"cps2/hw/hwio"
)

type stripPrinter struct{}

func (stripPrinter) DrawStrip(s hw.Strip) {
	fmt.Printf("  %s rows %3d-%3d  priority %04x\n",
		style.strip.Render("strip"), s.Top, s.Bottom, s.Priority)
}

func irqName(level uint8) string {
	switch level {
	case hwdefs.IRQLevelVBlank:
		return "vblank"
	case hwdefs.IRQLevelRaster:
		return "raster"
	case hwdefs.IRQLevelBoth:
		return "vblank+raster"
	}
	return "?"
}

// rasterMain runs a board with no program, with the raster target registers
// set as the CPU would, and prints the interrupts and screen strips of each
// frame.
func rasterMain(args Raster) {
	board, err := hw.NewBoard(hw.DefaultConfig("raster"), make([]byte, 2))
	checkf(err, "failed to build board")

	board.Screen.Compositor = stripPrinter{}
	board.CPU = &hw.IdleCPU{
		IRQ: &board.IRQ,
		Handler: func(level uint8) {
			fmt.Printf("  %s level %d (%s) at line %d\n",
				style.irq.Render("irq"), level, irqName(level), board.Interrupter.Scanline)
		},
	}

	const cpsb = 0x804140
	board.Bus.Write16(cpsb+hw.CPSBRaster1, args.Line1, hwio.LaneBoth)
	board.Bus.Write16(cpsb+hw.CPSBRaster2, args.Line2, hwio.LaneBoth)

	for frame := range args.Frames {
		fmt.Println(style.header.Render(fmt.Sprintf("frame %d", frame)))
		board.RunFrame()
	}
}
