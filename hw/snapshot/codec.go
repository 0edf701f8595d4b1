package snapshot

import (
	"fmt"
	"math"

	"github.com/go-faster/jx"
)

// Encode returns the JSON encoding of the board state.
func (b *Board) Encode() []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("version", func(e *jx.Encoder) { e.Int(b.Version) })
		e.Field("game", func(e *jx.Encoder) { e.Str(b.Game) })
		e.Field("interrupter", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("scanline", func(e *jx.Encoder) { e.Int(b.Interrupter.Scanline) })
				e.Field("raster1", func(e *jx.Encoder) { e.Int(int(b.Interrupter.Raster1)) })
				e.Field("raster2", func(e *jx.Encoder) { e.Int(int(b.Interrupter.Raster2)) })
				e.Field("scancalls", func(e *jx.Encoder) { e.Int(b.Interrupter.Scancalls) })
			})
		})
		e.Field("irq", func(e *jx.Encoder) { e.Int(int(b.IRQ)) })
		e.Field("coins", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("counters", func(e *jx.Encoder) {
					e.Arr(func(e *jx.Encoder) {
						for _, c := range b.Coins.Counters {
							e.Int64(int64(c))
						}
					})
				})
				e.Field("lockouts", func(e *jx.Encoder) { encodeBools(e, b.Coins.Lockouts[:]) })
				e.Field("lines", func(e *jx.Encoder) { encodeBools(e, b.Coins.Lines[:]) })
			})
		})
		e.Field("io", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("eeprom_port", func(e *jx.Encoder) { e.Int(int(b.IO.EEPROMPort)) })
				e.Field("paddle_select", func(e *jx.Encoder) { e.Bool(b.IO.PaddleSelect) })
				e.Field("audio_reset", func(e *jx.Encoder) { e.Bool(b.IO.AudioReset) })
			})
		})
		e.Field("eeprom", func(e *jx.Encoder) { e.Base64(b.EEPROM) })
		e.Field("objram", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("bank", func(e *jx.Encoder) { e.Int(int(b.ObjRAM.Bank)) })
				e.Field("bank1", func(e *jx.Encoder) { e.Base64(b.ObjRAM.Bank1) })
				e.Field("bank2", func(e *jx.Encoder) { e.Base64(b.ObjRAM.Bank2) })
				e.Field("buffered", func(e *jx.Encoder) { e.Base64(b.ObjRAM.Buffered) })
			})
		})
		e.Field("cpsa", func(e *jx.Encoder) { encodeWords(e, b.CPSA) })
		e.Field("cpsb", func(e *jx.Encoder) { encodeWords(e, b.CPSB) })
		e.Field("output", func(e *jx.Encoder) { e.Base64(b.Output) })
		e.Field("qsound", func(e *jx.Encoder) { e.Base64(b.QSound) })
		e.Field("extra_ram", func(e *jx.Encoder) { e.Base64(b.ExtraRAM) })
		e.Field("extra_enable", func(e *jx.Encoder) { e.Int(int(b.ExtraEnable)) })
		e.Field("gfx_ram", func(e *jx.Encoder) { e.Base64(b.GfxRAM) })
		e.Field("work_ram", func(e *jx.Encoder) { e.Base64(b.WorkRAM) })
	})
	return e.Bytes()
}

func encodeBools(e *jx.Encoder, bs []bool) {
	e.Arr(func(e *jx.Encoder) {
		for _, b := range bs {
			e.Bool(b)
		}
	})
}

func encodeWords(e *jx.Encoder, ws []uint16) {
	e.Arr(func(e *jx.Encoder) {
		for _, w := range ws {
			e.Int(int(w))
		}
	})
}

// Decode parses a board state produced by Encode.
func Decode(buf []byte) (*Board, error) {
	var b Board
	d := jx.DecodeBytes(buf)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "version":
			b.Version, err = d.Int()
		case "game":
			b.Game, err = d.Str()
		case "interrupter":
			err = decodeInterrupter(d, &b.Interrupter)
		case "irq":
			b.IRQ, err = decodeUint8(d)
		case "coins":
			err = decodeCoins(d, &b.Coins)
		case "io":
			err = d.Obj(func(d *jx.Decoder, key string) error {
				var err error
				switch key {
				case "eeprom_port":
					b.IO.EEPROMPort, err = decodeUint16(d)
				case "paddle_select":
					b.IO.PaddleSelect, err = d.Bool()
				case "audio_reset":
					b.IO.AudioReset, err = d.Bool()
				default:
					err = d.Skip()
				}
				return err
			})
		case "eeprom":
			b.EEPROM, err = d.Base64()
		case "objram":
			err = d.Obj(func(d *jx.Decoder, key string) error {
				var err error
				switch key {
				case "bank":
					b.ObjRAM.Bank, err = decodeUint16(d)
				case "bank1":
					b.ObjRAM.Bank1, err = d.Base64()
				case "bank2":
					b.ObjRAM.Bank2, err = d.Base64()
				case "buffered":
					b.ObjRAM.Buffered, err = d.Base64()
				default:
					err = d.Skip()
				}
				return err
			})
		case "cpsa":
			b.CPSA, err = decodeWords(d)
		case "cpsb":
			b.CPSB, err = decodeWords(d)
		case "output":
			b.Output, err = d.Base64()
		case "qsound":
			b.QSound, err = d.Base64()
		case "extra_ram":
			b.ExtraRAM, err = d.Base64()
		case "extra_enable":
			b.ExtraEnable, err = decodeUint16(d)
		case "gfx_ram":
			b.GfxRAM, err = d.Base64()
		case "work_ram":
			b.WorkRAM, err = d.Base64()
		default:
			err = d.Skip()
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if b.Version != Version {
		return nil, fmt.Errorf("snapshot: unsupported version %d, want %d", b.Version, Version)
	}
	return &b, nil
}

func decodeInterrupter(d *jx.Decoder, it *Interrupter) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "scanline":
			it.Scanline, err = d.Int()
		case "raster1":
			it.Raster1, err = decodeUint16(d)
		case "raster2":
			it.Raster2, err = decodeUint16(d)
		case "scancalls":
			it.Scancalls, err = d.Int()
		default:
			err = d.Skip()
		}
		return err
	})
}

func decodeCoins(d *jx.Decoder, c *Coins) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "counters":
			i := 0
			return d.Arr(func(d *jx.Decoder) error {
				v, err := d.Int64()
				if err != nil {
					return err
				}
				if i >= len(c.Counters) || v < 0 || v > math.MaxUint32 {
					return fmt.Errorf("invalid counter %d: %d", i, v)
				}
				c.Counters[i] = uint32(v)
				i++
				return nil
			})
		case "lockouts":
			return decodeBools(d, c.Lockouts[:])
		case "lines":
			return decodeBools(d, c.Lines[:])
		}
		return d.Skip()
	})
}

func decodeBools(d *jx.Decoder, dst []bool) error {
	i := 0
	return d.Arr(func(d *jx.Decoder) error {
		v, err := d.Bool()
		if err != nil {
			return err
		}
		if i >= len(dst) {
			return fmt.Errorf("too many values, want %d", len(dst))
		}
		dst[i] = v
		i++
		return nil
	})
}

func decodeWords(d *jx.Decoder) ([]uint16, error) {
	var ws []uint16
	err := d.Arr(func(d *jx.Decoder) error {
		w, err := decodeUint16(d)
		ws = append(ws, w)
		return err
	})
	return ws, err
}

func decodeUint16(d *jx.Decoder) (uint16, error) {
	v, err := d.Int()
	if err != nil {
		return 0, err
	}
	if v < 0 || v > math.MaxUint16 {
		return 0, fmt.Errorf("value %d out of range", v)
	}
	return uint16(v), nil
}

func decodeUint8(d *jx.Decoder) (uint8, error) {
	v, err := d.Int()
	if err != nil {
		return 0, err
	}
	if v < 0 || v > math.MaxUint8 {
		return 0, fmt.Errorf("value %d out of range", v)
	}
	return uint8(v), nil
}
