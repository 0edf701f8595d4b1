package main

import (
	"fmt"
	"os"
	"path/filepath"

	"cps2/emu"
	"cps2/hw"
	"cps2/hw/games"
)

func nvramMain(args NVRAM, cfg emu.Config) {
	g, err := games.Lookup(args.Game)
	checkf(err, "nvram")

	path := filepath.Join(cfg.NVRAMDir(), g.Name+".nv")
	buf, err := os.ReadFile(path)
	checkf(err, "failed to read eeprom")

	eeprom := hw.NewSerialEEPROM(hw.CPS2EEPROM)
	checkf(eeprom.Load(buf), "invalid eeprom file %s", path)

	fmt.Println(style.dim.Render(path))
	words := eeprom.Data()
	for i := 0; i < len(words); i += 8 {
		line := style.addr.Render(fmt.Sprintf("%02x:", i))
		for _, w := range words[i:min(i+8, len(words))] {
			line += fmt.Sprintf(" %04x", w)
		}
		line += "  " + style.dim.Render(printable(buf[2*i:min(2*i+16, len(buf))]))
		fmt.Println(line)
	}
}

func printable(b []byte) string {
	s := make([]byte, len(b))
	for i, c := range b {
		if c < 0x20 || c > 0x7e {
			c = '.'
		}
		s[i] = c
	}
	return string(s)
}
