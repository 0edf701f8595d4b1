package main

import (
	"context"
	"fmt"
	"os"

	"cps2/emu"
	"cps2/hw/games"
	"cps2/romset"
)

// openROMs opens the ROM set of g, searched for in dirs, and decodes its
// manifest.
func openROMs(g games.Game, manifest string, dirs []string) (*romset.Manifest, *romset.Source) {
	m, err := romset.ReadFile(manifest)
	checkf(err, "failed to read manifest")
	if m.Game != "" && m.Game != g.Name && m.Game != g.RomSet() {
		fatalf("manifest %s is for %q, not %q", manifest, m.Game, g.Name)
	}

	var paths []string
	for _, dir := range dirs {
		paths = append(paths, romset.SetPaths(dir, g.Name, g.RomSet())...)
	}
	if len(paths) == 0 {
		fatalf("no rom set found for %s in %v", g.Name, dirs)
	}
	src, err := romset.OpenSource(paths...)
	checkf(err, "failed to open rom set")
	return m, src
}

func romPath(args []string, cfg emu.Config) []string {
	if len(args) > 0 {
		return args
	}
	if len(cfg.General.ROMPath) > 0 {
		return cfg.General.ROMPath
	}
	return []string{"."}
}

func verifyMain(args Verify, cfg emu.Config) {
	g, err := games.Lookup(args.Game)
	checkf(err, "verify")

	m, src := openROMs(g, args.Manifest, romPath(args.ROMPath, cfg))
	defer src.Close()

	results, err := romset.Verify(context.Background(), m, src)
	checkf(err, "verification failed")

	bad := 0
	for _, r := range results {
		status := style.ok.Render(r.Status.String())
		if r.Status != romset.StatusOK {
			status = style.bad.Render(r.Status.String())
			bad++
		}
		fmt.Println(col(style.dim, 10, r.Region) + col(style.name, 16, r.ROM.File) +
			col(style.addr, 10, r.ROM.CRC.String()) + status)
	}

	if bad > 0 {
		fmt.Printf("%s: %d of %d roms are bad\n", g.Name, bad, len(results))
		os.Exit(1)
	}
	fmt.Printf("%s: %d roms ok\n", g.Name, len(results))
}
