package main

import (
	"fmt"
	"strings"

	"cps2/hw"
	"cps2/hw/games"
)

func quirkNames(q hw.Quirks) string {
	var names []string
	if q.PaddleMode {
		names = append(names, "paddle")
	}
	if q.ReversedLockout {
		names = append(names, "reversed-lockout")
	}
	if q.NetworkAdapter {
		names = append(names, "network")
	}
	if q.ExtraRAM {
		names = append(names, "extra-ram")
	}
	return strings.Join(names, ",")
}

func gamesMain(args Games) {
	fmt.Println(col(style.header, 10, "name") + col(style.header, 10, "parent") + col(style.header, 6, "year") +
		col(style.header, 8, "status") + col(style.header, 26, "quirks") + style.header.Render("description"))

	for _, name := range games.Names() {
		g := games.All[name]
		if g.Parent != "" && !args.Clones {
			continue
		}
		fmt.Println(col(style.name, 10, g.Name) + col(style.dim, 10, g.Parent) + col(style.dim, 6, g.Year) +
			col(style.addr, 8, fmt.Sprintf("%04x", g.Quirks.StatusValue())) +
			col(style.irq, 26, quirkNames(g.Quirks)) + g.Description)
	}
}
