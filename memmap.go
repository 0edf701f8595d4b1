package main

import (
	"fmt"

	"cps2/hw"
	"cps2/hw/games"
)

func memmapMain(args Memmap) {
	g, err := games.Lookup(args.Game)
	checkf(err, "memmap")

	// The address map doesn't depend on the program contents.
	board, err := hw.NewBoard(g.BoardConfig(), make([]byte, 2))
	checkf(err, "failed to build board")

	fmt.Printf("%s: %s, status %04x\n", style.name.Render(g.Name), g.Description, g.Quirks.StatusValue())
	for _, r := range board.Bus.Ranges() {
		fmt.Println(style.addr.Render(fmt.Sprintf("%06x-%06x", r.Begin, r.End)) + "  " + r.Name)
	}
}
