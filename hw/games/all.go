package games

import (
	"fmt"
	"maps"
	"slices"

	"cps2/hw"
)

// Lookup returns the descriptor of the game with the given short name.
func Lookup(name string) (Game, error) {
	g, ok := All[name]
	if !ok {
		return Game{}, fmt.Errorf("unknown game %q", name)
	}
	return g, nil
}

// Names returns the short names of all the games, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(All))
}

// Clones returns the short names of the clones of parent, sorted.
func Clones(parent string) []string {
	var names []string
	for name, g := range All {
		if g.Parent == parent {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

type Game struct {
	Name         string
	Parent       string // empty for parent sets
	Description  string
	Year         string
	Manufacturer string
	Quirks       hw.Quirks
}

// BoardConfig returns the board configuration for this game.
func (g Game) BoardConfig() hw.Config {
	cfg := hw.DefaultConfig(g.Name)
	cfg.Quirks = g.Quirks
	return cfg
}

// RomSet returns the name of the set holding the game ROMs, that is the
// parent for clones.
func (g Game) RomSet() string {
	if g.Parent != "" {
		return g.Parent
	}
	return g.Name
}

var (
	paddle    = hw.Quirks{PaddleMode: true}
	reversed  = hw.Quirks{ReversedLockout: true}
	netExtRAM = hw.Quirks{NetworkAdapter: true, ExtraRAM: true}
)

var All = map[string]Game{}

func add(games ...Game) {
	for _, g := range games {
		if _, dup := All[g.Name]; dup {
			panic("duplicate game " + g.Name)
		}
		All[g.Name] = g
	}
}

func init() {
	const capcom = "Capcom"

	add(
		Game{Name: "ssf2", Description: "Super Street Fighter II: The New Challengers (World 930911)", Year: "1993", Manufacturer: capcom},
		Game{Name: "ssf2u", Parent: "ssf2", Description: "Super Street Fighter II: The New Challengers (USA 930911)", Year: "1993", Manufacturer: capcom},
		Game{Name: "ssf2j", Parent: "ssf2", Description: "Super Street Fighter II: The New Challengers (Japan 931005)", Year: "1993", Manufacturer: capcom},
		Game{Name: "ssf2tb", Parent: "ssf2", Description: "Super Street Fighter II: The Tournament Battle (World 931119)", Year: "1993", Manufacturer: capcom, Quirks: netExtRAM},
		Game{Name: "ssf2tbj", Parent: "ssf2", Description: "Super Street Fighter II: The Tournament Battle (Japan 930911)", Year: "1993", Manufacturer: capcom, Quirks: netExtRAM},
		Game{Name: "ddtod", Description: "Dungeons & Dragons: Tower of Doom (Euro 940412)", Year: "1993", Manufacturer: capcom},
		Game{Name: "ddtodu", Parent: "ddtod", Description: "Dungeons & Dragons: Tower of Doom (USA 940125)", Year: "1993", Manufacturer: capcom},
		Game{Name: "ecofghtr", Description: "Eco Fighters (World 931203)", Year: "1993", Manufacturer: capcom},
		Game{Name: "ssf2t", Description: "Super Street Fighter II Turbo (World 940223)", Year: "1994", Manufacturer: capcom},
		Game{Name: "ssf2xj", Parent: "ssf2t", Description: "Super Street Fighter II X: Grand Master Challenge (Japan 940223)", Year: "1994", Manufacturer: capcom},
		Game{Name: "avsp", Description: "Alien vs. Predator (Euro 940520)", Year: "1994", Manufacturer: capcom},
		Game{Name: "dstlk", Description: "Darkstalkers: The Night Warriors (Euro 940705)", Year: "1994", Manufacturer: capcom},
		Game{Name: "vampj", Parent: "dstlk", Description: "Vampire: The Night Warriors (Japan 940705)", Year: "1994", Manufacturer: capcom},
		Game{Name: "ringdest", Description: "Ring of Destruction: Slammasters II (Euro 940902)", Year: "1994", Manufacturer: capcom},
		Game{Name: "armwar", Description: "Armored Warriors (Euro 941024)", Year: "1994", Manufacturer: capcom},
		Game{Name: "xmcota", Description: "X-Men: Children of the Atom (Euro 950331)", Year: "1994", Manufacturer: capcom},
		Game{Name: "nwarr", Description: "Night Warriors: Darkstalkers' Revenge (Euro 950316)", Year: "1995", Manufacturer: capcom},
		Game{Name: "cybots", Description: "Cyberbots: Fullmetal Madness (Euro 950424)", Year: "1995", Manufacturer: capcom},
		Game{Name: "sfa", Description: "Street Fighter Alpha: Warriors' Dreams (Euro 950727)", Year: "1995", Manufacturer: capcom},
		Game{Name: "sfzj", Parent: "sfa", Description: "Street Fighter Zero (Japan 950727)", Year: "1995", Manufacturer: capcom},
		Game{Name: "msh", Description: "Marvel Super Heroes (Euro 951024)", Year: "1995", Manufacturer: capcom},
		Game{Name: "19xx", Description: "19XX: The War Against Destiny (USA 951207)", Year: "1995", Manufacturer: capcom},
		Game{Name: "ddsom", Description: "Dungeons & Dragons: Shadow over Mystara (Euro 960619)", Year: "1996", Manufacturer: capcom},
		Game{Name: "sfa2", Description: "Street Fighter Alpha 2 (Euro 960229)", Year: "1996", Manufacturer: capcom},
		Game{Name: "spf2t", Description: "Super Puzzle Fighter II Turbo (Euro 960529)", Year: "1996", Manufacturer: capcom},
		Game{Name: "qndream", Description: "Quiz Nanairo Dreams: Nijiirochou no Kiseki (Japan 960826)", Year: "1996", Manufacturer: capcom},
		Game{Name: "xmvsf", Description: "X-Men Vs. Street Fighter (Euro 961004)", Year: "1996", Manufacturer: capcom},
		Game{Name: "batcir", Description: "Battle Circuit (Euro 970319)", Year: "1997", Manufacturer: capcom},
		Game{Name: "vsav", Description: "Vampire Savior: The Lord of Vampire (Euro 970519)", Year: "1997", Manufacturer: capcom},
		Game{Name: "mshvsf", Description: "Marvel Super Heroes Vs. Street Fighter (Euro 970625)", Year: "1997", Manufacturer: capcom},
		Game{Name: "csclub", Description: "Capcom Sports Club (Euro 971017)", Year: "1997", Manufacturer: capcom},
		Game{Name: "sgemf", Description: "Super Gem Fighter Mini Mix (USA 970904)", Year: "1997", Manufacturer: capcom},
		Game{Name: "vhunt2", Description: "Vampire Hunter 2: Darkstalkers Revenge (Japan 970929)", Year: "1997", Manufacturer: capcom},
		Game{Name: "vsav2", Description: "Vampire Savior 2: The Lord of Vampire (Japan 970913)", Year: "1997", Manufacturer: capcom},
		Game{Name: "mvsc", Description: "Marvel Vs. Capcom: Clash of Super Heroes (Euro 980123)", Year: "1998", Manufacturer: capcom},
		Game{Name: "sfa3", Description: "Street Fighter Alpha 3 (Euro 980904)", Year: "1998", Manufacturer: capcom},
		Game{Name: "gigawing", Description: "Giga Wing (USA 990222)", Year: "1999", Manufacturer: "Takumi (Capcom license)"},
		Game{Name: "jyangoku", Description: "Jyangokushi: Haoh no Saihai (Japan 990527)", Year: "1999", Manufacturer: "Mitchell (Capcom license)"},
		Game{Name: "dimahoo", Description: "Dimahoo (Euro 000121)", Year: "2000", Manufacturer: "Eighting / Raizing (Capcom license)"},
		Game{Name: "1944", Description: "1944: The Loop Master (Euro 000620)", Year: "2000", Manufacturer: "Eighting / Raizing (Capcom license)"},
		Game{Name: "mmatrix", Description: "Mars Matrix: Hyper Solid Shooting (USA 000412)", Year: "2000", Manufacturer: "Takumi (Capcom license)", Quirks: reversed},
		Game{Name: "mmatrixj", Parent: "mmatrix", Description: "Mars Matrix: Hyper Solid Shooting (Japan 000412)", Year: "2000", Manufacturer: "Takumi (Capcom license)", Quirks: reversed},
		Game{Name: "progear", Description: "Progear (USA 010117)", Year: "2001", Manufacturer: "Cave (Capcom license)"},
		Game{Name: "pzloop2", Description: "Puzz Loop 2 (Euro 010302)", Year: "2001", Manufacturer: "Mitchell (Capcom license)", Quirks: paddle},
		Game{Name: "pzloop2j", Parent: "pzloop2", Description: "Puzz Loop 2 (Japan 010226)", Year: "2001", Manufacturer: "Mitchell (Capcom license)", Quirks: paddle},
		Game{Name: "choko", Description: "Janpai Puzzle Choukou (Japan 010820)", Year: "2001", Manufacturer: "Mitchell (Capcom license)"},
		Game{Name: "hsf2", Description: "Hyper Street Fighter II: The Anniversary Edition (USA 040202)", Year: "2003", Manufacturer: capcom},
	)
}
