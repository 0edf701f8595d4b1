package emu

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"cps2/emu/log"
	"cps2/hw"
	"cps2/hw/games"
	"cps2/hw/input"
	"cps2/hw/qsound"
	"cps2/hw/snapshot"
	"cps2/romset"
)

// ProgramRegion is the ROM region holding the 68000 program.
const ProgramRegion = "maincpu"

// Frame is the output of one emulated frame.
type Frame struct {
	Number int
	Strips []hw.Strip // screen strips committed during the frame
	Audio  []int16    // interleaved stereo samples, valid until next frame
}

// Machine is a powered up CPS2 board running a game, with its cabinet.
type Machine struct {
	Game  games.Game
	Board *hw.Board
	Panel *input.Panel
	Mixer *qsound.Mixer
	Sound qsound.Source // Q-Sound DSP output, silence if nil

	script    *input.Script
	nvramPath string
	frame     int
	mute      bool
}

// PowerUp builds the board of game from the loaded ROM regions and restores
// the EEPROM contents saved by a previous Shutdown.
func PowerUp(game games.Game, regions romset.Regions, cfg Config) (*Machine, error) {
	prog, ok := regions[ProgramRegion]
	if !ok {
		return nil, fmt.Errorf("missing %q rom region", ProgramRegion)
	}

	bcfg := game.BoardConfig()
	bcfg.LogUnmapped = cfg.Debug.LogUnmapped
	board, err := hw.NewBoard(bcfg, prog)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", game.Name, err)
	}

	m := &Machine{
		Game:      game,
		Board:     board,
		Panel:     input.NewPanel(),
		Mixer:     qsound.NewMixer(cfg.Audio.SampleRate),
		nvramPath: filepath.Join(cfg.NVRAMDir(), game.Name+".nv"),
		mute:      cfg.Audio.DisableAudio,
	}
	m.Mixer.SetVolume(cfg.Audio.Volume)
	board.PlugInput(m.Panel)
	if cfg.TraceOut != nil {
		board.SetTraceOutput(cfg.TraceOut)
	}
	m.PlugCPU(nil)

	if err := m.loadNVRAM(); err != nil {
		log.ModEEPROM.WarnZ("Ignoring saved EEPROM").String("path", m.nvramPath).Error("err", err).End()
	}

	log.ModEmu.InfoZ("Powered up").
		String("game", game.Name).
		String("description", game.Description).
		Hex16("status", game.Quirks.StatusValue()).
		End()
	return m, nil
}

// PlugCPU connects the 68000 interpreter. With nil, the board runs an idle
// CPU which only acknowledges interrupts.
func (m *Machine) PlugCPU(cpu hw.MainCPU) {
	if cpu == nil {
		cpu = &hw.IdleCPU{IRQ: &m.Board.IRQ}
	}
	m.Board.CPU = cpu
	cpu.Reset()
}

// SetScript sets the input script applied at the start of each frame.
func (m *Machine) SetScript(s *input.Script) { m.script = s }

// FrameNumber returns the number of frames run since power up.
func (m *Machine) FrameNumber() int { return m.frame }

// NVRAMPath returns the file storing the EEPROM contents.
func (m *Machine) NVRAMPath() string { return m.nvramPath }

func (m *Machine) loadNVRAM() error {
	buf, err := os.ReadFile(m.nvramPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.ModEEPROM.InfoZ("No saved EEPROM").String("path", m.nvramPath).End()
		return nil
	}
	if err != nil {
		return err
	}
	return m.Board.EEPROM.Load(buf)
}

// Shutdown saves the EEPROM contents.
func (m *Machine) Shutdown() error {
	if err := os.MkdirAll(filepath.Dir(m.nvramPath), 0755); err != nil {
		return fmt.Errorf("save nvram: %w", err)
	}
	if err := os.WriteFile(m.nvramPath, m.Board.EEPROM.Save(), 0644); err != nil {
		return fmt.Errorf("save nvram: %w", err)
	}
	log.ModEEPROM.InfoZ("Saved EEPROM").String("path", m.nvramPath).End()
	return nil
}

// RunOneFrame runs the board for one video frame.
func (m *Machine) RunOneFrame() Frame {
	if m.script != nil {
		m.script.Apply(m.frame, m.Panel)
	}
	m.Board.RunFrame()

	var src qsound.Source
	if !m.Board.AudioInReset() && !m.mute {
		src = m.Sound
	}
	f := Frame{
		Number: m.frame,
		Strips: slices.Clone(m.Board.Screen.LastFrame()),
		Audio:  m.Mixer.EndFrame(src),
	}
	m.frame++
	return f
}

// Reset resets the board. The frame counter keeps running.
func (m *Machine) Reset(soft bool) {
	m.Board.Reset(soft)
	m.Mixer.Reset()
}

// SaveSnapshot returns the encoded board state.
func (m *Machine) SaveSnapshot() []byte {
	return m.Board.State().Encode()
}

// LoadSnapshot restores a board state returned by SaveSnapshot.
func (m *Machine) LoadSnapshot(buf []byte) error {
	state, err := snapshot.Decode(buf)
	if err != nil {
		return err
	}
	if err := m.Board.SetState(state); err != nil {
		m.Board.Reset(false)
		return err
	}
	return nil
}
