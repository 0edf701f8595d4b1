package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"cps2/emu"
	"cps2/emu/rpc"
	"cps2/hw/games"
	"cps2/hw/input"
	"cps2/romset"
)

// runMain runs the game headless, with the idle CPU standing in for the 68000
// interpreter.
func runMain(args Run, cfg emu.Config) {
	g, err := games.Lookup(args.Game)
	checkf(err, "run")

	m, src := openROMs(g, args.Manifest, romPath(args.ROMPath, cfg))
	regions, err := romset.Load(context.Background(), m, src)
	src.Close()
	checkf(err, "failed to load roms")

	if args.Trace != nil {
		defer args.Trace.Close()
		cfg.TraceOut = args.Trace
	}

	machine, err := emu.PowerUp(g, regions, cfg)
	checkf(err, "error during power up")

	if args.Script != "" {
		script, err := input.ReadScript(args.Script)
		checkf(err, "failed to read input script")
		machine.SetScript(script)
	}

	out := &emu.Headless{Frames: args.Frames}
	emulator := emu.Launch(machine, out, cfg)

	if args.Listen != "" {
		server, err := rpc.NewServer(args.Listen, emulator)
		checkf(err, "failed to start rpc server")
		defer server.Close()
		fmt.Println("remote control on", server.Addr())
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	go func() {
		<-sigc
		emulator.Stop()
	}()

	checkf(emulator.Run(), "failed to save nvram")
	fmt.Printf("%s: ran %d frames\n", g.Name, out.Count())

	if args.Snapshot != nil {
		_, err := args.Snapshot.Write(machine.SaveSnapshot())
		checkf(errors.Join(err, args.Snapshot.Close()), "failed to write snapshot")
	}
}
