package hw

import (
	"errors"
	"fmt"
	"slices"

	"cps2/hw/hwdefs"
	"cps2/hw/snapshot"
)

// State captures the board state. It's meant to be called between frames.
func (b *Board) State() *snapshot.Board {
	return &snapshot.Board{
		Version: snapshot.Version,
		Game:    b.Config.Name,
		Interrupter: snapshot.Interrupter{
			Scanline:  b.Interrupter.Scanline,
			Raster1:   b.Interrupter.Raster1,
			Raster2:   b.Interrupter.Raster2,
			Scancalls: b.Interrupter.Scancalls,
		},
		IRQ: uint8(b.IRQ.pending),
		Coins: snapshot.Coins{
			Counters: b.Coins.Counters,
			Lockouts: b.Coins.Lockouts,
			Lines:    b.Coins.lines,
		},
		IO: snapshot.IO{
			EEPROMPort:   b.IO.EEPROMPORT.Value,
			PaddleSelect: b.IO.readPaddle,
			AudioReset:   b.audioReset,
		},
		EEPROM: b.EEPROM.Save(),
		ObjRAM: snapshot.ObjRAM{
			Bank:     b.ObjRAM.bank,
			Bank1:    slices.Clone(b.ObjRAM.Bank1[:]),
			Bank2:    slices.Clone(b.ObjRAM.Bank2[:]),
			Buffered: slices.Clone(b.ObjRAM.Buffered[:]),
		},
		CPSA:        slices.Clone(b.CPS.A[:]),
		CPSB:        slices.Clone(b.CPS.B[:]),
		Output:      slices.Clone(b.Mem.Output.Data),
		QSound:      slices.Clone(b.Mem.QSound[:]),
		ExtraRAM:    slices.Clone(b.Mem.ExtraRAM.Data),
		ExtraEnable: b.Mem.ExtraEnable.Value,
		GfxRAM:      slices.Clone(b.Mem.GfxRAM.Data),
		WorkRAM:     slices.Clone(b.Mem.WorkRAM.Data),
	}
}

// restore copies a saved memory area into dst, which must be the same size.
// Nothing is copied on size mismatch.
func restore[T any](name string, dst, src []T) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%s: size %d, want %d", name, len(src), len(dst))
	}
	copy(dst, src)
	return nil
}

// SetState restores a state previously captured with State. On error the
// board may be partially restored and should be reset.
func (b *Board) SetState(state *snapshot.Board) error {
	if state.Game != b.Config.Name {
		return fmt.Errorf("snapshot of %q can't be loaded on %q", state.Game, b.Config.Name)
	}

	if err := errors.Join(
		restore("objram bank1", b.ObjRAM.Bank1[:], state.ObjRAM.Bank1),
		restore("objram bank2", b.ObjRAM.Bank2[:], state.ObjRAM.Bank2),
		restore("objram buffer", b.ObjRAM.Buffered[:], state.ObjRAM.Buffered),
		restore("cpsa", b.CPS.A[:], state.CPSA),
		restore("cpsb", b.CPS.B[:], state.CPSB),
		restore("output", b.Mem.Output.Data, state.Output),
		restore("qsound", b.Mem.QSound[:], state.QSound),
		restore("extra ram", b.Mem.ExtraRAM.Data, state.ExtraRAM),
		restore("gfx ram", b.Mem.GfxRAM.Data, state.GfxRAM),
		restore("work ram", b.Mem.WorkRAM.Data, state.WorkRAM),
	); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := b.EEPROM.Load(state.EEPROM); err != nil {
		return fmt.Errorf("snapshot: eeprom: %w", err)
	}

	b.Interrupter.Scanline = state.Interrupter.Scanline
	b.Interrupter.Raster1 = state.Interrupter.Raster1
	b.Interrupter.Raster2 = state.Interrupter.Raster2
	b.Interrupter.Scancalls = state.Interrupter.Scancalls
	b.IRQ.pending = hwdefs.IRQSource(state.IRQ)
	b.Coins.Counters = state.Coins.Counters
	b.Coins.Lockouts = state.Coins.Lockouts
	b.Coins.lines = state.Coins.Lines
	b.IO.EEPROMPORT.Value = state.IO.EEPROMPort
	b.IO.readPaddle = state.IO.PaddleSelect
	b.ObjRAM.SetBank(state.ObjRAM.Bank)
	b.Mem.ExtraEnable.Value = state.ExtraEnable
	b.setAudioReset(state.IO.AudioReset)
	return nil
}
