package main

import (
	"fmt"
	"runtime/debug"
)

func versionMain() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		fmt.Println("cps2 (unknown version)")
		return
	}
	version := info.Main.Version
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			version += " " + s.Value
		}
	}
	fmt.Printf("cps2 %s %s\n", version, info.GoVersion)
}
