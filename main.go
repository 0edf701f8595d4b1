package main

import (
	"os"

	"cps2/emu"
)

func main() {
	cfg := parseArgs(os.Args[1:])

	switch cfg.mode {
	case gamesMode:
		gamesMain(cfg.Games)
	case memmapMode:
		memmapMain(cfg.Memmap)
	case verifyMode:
		verifyMain(cfg.Verify, emu.LoadConfigOrDefault())
	case runMode:
		runMain(cfg.Run, emu.LoadConfigOrDefault())
	case rasterMode:
		rasterMain(cfg.Raster)
	case nvramMode:
		nvramMain(cfg.NVRAM, emu.LoadConfigOrDefault())
	case remoteMode:
		remoteMain(cfg.Remote)
	case versionMode:
		versionMain()
	}
}
