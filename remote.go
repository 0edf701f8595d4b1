package main

import (
	"errors"
	"fmt"

	"cps2/emu/rpc"
	"cps2/hw/input"
)

func remoteMain(args Remote) {
	c, err := rpc.NewClient(args.Addr)
	checkf(err, "failed to connect to %s", args.Addr)
	defer c.Close()

	arg := func() string {
		if len(args.Args) != 1 {
			fatalf("%s takes exactly one argument", args.Action)
		}
		return args.Args[0]
	}
	button := func() input.Button {
		var b input.Button
		checkf(b.UnmarshalText([]byte(arg())), "invalid button")
		return b
	}

	switch args.Action {
	case "pause":
		err = c.SetPause(true)
	case "resume":
		err = c.SetPause(false)
	case "reset":
		err = c.Reset()
	case "restart":
		err = c.Restart()
	case "stop":
		err = c.Stop()
	case "press":
		err = c.Press(button())
	case "release":
		err = c.Release(button())
	case "frame":
		var n int
		if n, err = c.FrameNumber(); err == nil {
			fmt.Println(n)
		}
	case "snapshot":
		var buf []byte
		if buf, err = c.Snapshot(); err == nil {
			var out outfile
			if err = out.open(arg()); err == nil {
				_, err = out.Write(buf)
				err = errors.Join(err, out.Close())
			}
		}
	}
	checkf(err, "%s failed", args.Action)
}
