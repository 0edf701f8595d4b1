package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"cps2/emu/log"
)

type mode byte

const (
	gamesMode   mode = iota // List supported games
	memmapMode              // Show a game address map
	verifyMode              // Verify a ROM set
	runMode                 // Run a game headless
	rasterMode              // Trace the interrupt generator
	nvramMode               // Dump a saved EEPROM
	remoteMode              // Control a running emulator
	versionMode             // Show version
)

type (
	CLI struct {
		Games   Games   `cmd:"" help:"List supported games."`
		Memmap  Memmap  `cmd:"" help:"Show the 68000 address map of a game."`
		Verify  Verify  `cmd:"" help:"Check a ROM set against its manifest."`
		Run     Run     `cmd:"" help:"Run a game without video nor audio output."`
		Raster  Raster  `cmd:"" help:"Trace the scanline interrupts and screen strips."`
		NVRAM   NVRAM   `cmd:"" help:"Dump the saved EEPROM of a game." name:"nvram"`
		Remote  Remote  `cmd:"" help:"Control an emulator started with 'run --listen'."`
		Version Version `cmd:"" help:"Show cps2 version."`

		Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Games struct {
		Clones bool `name:"clones" help:"Include clone sets."`
	}

	Memmap struct {
		Game string `arg:"" help:"Game short name."`
	}

	Verify struct {
		Game     string   `arg:"" help:"Game short name."`
		Manifest string   `name:"manifest" help:"${manifest_help}" type:"existingfile" required:""`
		ROMPath  []string `name:"rompath" help:"${rompath_help}" type:"existingdir"`
	}

	Run struct {
		Game     string   `arg:"" help:"Game short name."`
		Manifest string   `name:"manifest" help:"${manifest_help}" type:"existingfile" required:""`
		ROMPath  []string `name:"rompath" help:"${rompath_help}" type:"existingdir"`

		Frames   int      `name:"frames" help:"Number of frames to run, 0 to run until stopped." default:"600"`
		Script   string   `name:"script" help:"Input script to play." type:"existingfile"`
		Snapshot *outfile `name:"snapshot" help:"Write the final machine state." placeholder:"FILE|stdout|stderr"`
		Trace    *outfile `name:"trace" help:"Write interrupts and screen strips trace." placeholder:"FILE|stdout|stderr"`
		Listen   string   `name:"listen" help:"Accept remote control on this address." placeholder:"HOST:PORT"`
	}

	Raster struct {
		Line1  uint16 `name:"line1" help:"Raster target register 1 (CPS-B 0x10)." default:"511"`
		Line2  uint16 `name:"line2" help:"Raster target register 2 (CPS-B 0x12)." default:"511"`
		Frames int    `name:"frames" help:"Number of frames to trace." default:"2"`
	}

	NVRAM struct {
		Game string `arg:"" help:"Game short name."`
	}

	Remote struct {
		Addr   string   `arg:"" help:"Emulator address (HOST:PORT)."`
		Action string   `arg:"" help:"${remote_help}" enum:"pause,resume,reset,restart,stop,frame,press,release,snapshot"`
		Args   []string `arg:"" optional:"" help:"Button name for press/release, output file for snapshot."`
	}

	Version struct{}
)

var vars = kong.Vars{
	"log_help":      "Enable logging for specified modules.",
	"manifest_help": "ROM manifest (TOML) of the game.",
	"rompath_help":  "Directories holding ROM sets, as directories or zip archives. Defaults to the configured rom_path.",
	"remote_help":   "One of pause, resume, reset, restart, stop, frame, press, release, snapshot.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("cps2"),
		kong.Description("Capcom CPS2 board driver."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")

	switch strings.Fields(ctx.Command())[0] {
	case "games":
		cfg.mode = gamesMode
	case "memmap":
		cfg.mode = memmapMode
	case "verify":
		cfg.mode = verifyMode
	case "run":
		cfg.mode = runMode
	case "raster":
		cfg.mode = rasterMode
	case "nvram":
		cfg.mode = nvramMode
	case "remote":
		cfg.mode = remoteMode
	case "version":
		cfg.mode = versionMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
	var strs []string
	for _, m := range log.ModuleNames() {
		strs = append(strs, "    - "+m)
	}

	fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	return f.open(tok.Value.(string))
}

func (f *outfile) open(name string) error {
	f.name = name
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
