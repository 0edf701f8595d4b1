package hw

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"

	"cps2/emu/log"
	"cps2/hw/hwdefs"
	"cps2/hw/hwio"
)

const (
	// MaxProgramROM is the size of the program ROM window.
	MaxProgramROM = 0x400000

	qsoundRAMSize = 0x1000
)

// Offsets of the object output registers, at 0x400000.
const (
	OutObjBase  = 0x00
	OutObjPri   = 0x04
	OutObjXOffs = 0x08
	OutObjYOffs = 0x0a
)

// MainCPU is the 68000 interpreter. Run executes at least cycles cycles.
// Interrupts are read from, and acknowledged to, the board IRQController.
type MainCPU interface {
	Reset()
	Run(cycles int64)
}

// AudioCPU is the Z80 driving the Q-Sound DSP.
type AudioCPU interface {
	SetReset(asserted bool)
}

// Memory holds the RAM areas of the board.
type Memory struct {
	Output      hwio.Mem    `hwio:"offset=0x400000,size=0x10,vsize=0xc"`
	QSoundRAM   hwio.Device `hwio:"offset=0x618000,size=0x2000,rcb,wcb"`
	ExtraRAM    hwio.Mem    `hwio:"offset=0x660000,size=0x4000"`
	ExtraEnable hwio.Reg16  `hwio:"offset=0x664000"`
	GfxRAM      hwio.Mem    `hwio:"offset=0x900000,size=0x40000,vsize=0x30000"`
	WorkRAM     hwio.Mem    `hwio:"offset=0xff0000,size=0x10000"`

	// QSound is the RAM shared with the audio CPU. The 68000 sees it on the
	// lower byte lane.
	QSound [qsoundRAMSize]byte
}

func (m *Memory) ReadQSOUNDRAM(addr uint32, _ bool) uint16 {
	return 0xff00 | uint16(m.QSound[addr>>1&(qsoundRAMSize-1)])
}

func (m *Memory) WriteQSOUNDRAM(addr uint32, val, mask uint16) {
	if mask&hwio.LaneLower != 0 {
		m.QSound[addr>>1&(qsoundRAMSize-1)] = uint8(val)
	}
}

func (m *Memory) Reset() {
	clear(m.Output.Data)
	clear(m.ExtraRAM.Data)
	clear(m.GfxRAM.Data)
	clear(m.WorkRAM.Data)
	clear(m.QSound[:])
	m.ExtraEnable.Value = 0
}

// Board is a CPS2 A+B board set running one title.
type Board struct {
	Config Config
	Bus    *hwio.Table

	IRQ         IRQController
	Interrupter Interrupter
	EEPROM      *SerialEEPROM
	Coins       CoinMech
	IO          IOPorts
	CPS         CPSRegs
	ObjRAM      ObjectRAM
	Mem         Memory
	Screen      *Screen

	ROM []byte // program ROM, padded to a power of 2

	CPU   MainCPU
	Audio AudioCPU
	input InputProvider

	audioReset bool
	tracer     *tracer
}

// NewBoard builds a board for the given title and program ROM, and maps its
// address space. The board is in reset state.
func NewBoard(cfg Config, rom []byte) (*Board, error) {
	if len(rom) == 0 {
		return nil, fmt.Errorf("empty program rom")
	}
	if len(rom) > MaxProgramROM {
		return nil, fmt.Errorf("program rom too big: %#x bytes, max %#x", len(rom), MaxProgramROM)
	}
	if cfg.EEPROM.AddressBits == 0 {
		cfg.EEPROM = CPS2EEPROM
	}

	b := &Board{
		Config: cfg,
		Bus:    hwio.NewTable("main"),
		EEPROM: NewSerialEEPROM(cfg.EEPROM),
		Screen: NewScreen(),
		ROM:    padROM(rom),
		input:  noInput{},
	}
	b.Bus.LogUnmapped = cfg.LogUnmapped
	b.Interrupter.host = b
	b.CPS.raster = &b.Interrupter

	b.IO.quirks = cfg.Quirks
	b.IO.input = b.input
	b.IO.eeprom = b.EEPROM
	b.IO.coins = &b.Coins
	b.IO.objram = &b.ObjRAM
	b.IO.audioReset = b.setAudioReset

	b.InitBus()
	b.Reset(hwdefs.HardReset)
	return b, nil
}

// padROM returns rom, grown to a power of 2 so it can be mirrored.
func padROM(rom []byte) []byte {
	size := max(2, 1<<bits.Len(uint(len(rom)-1)))
	if size == len(rom) {
		return rom
	}
	buf := make([]byte, size)
	copy(buf, rom)
	return buf
}

// InitBus maps all the devices of the board on the main bus.
func (b *Board) InitBus() {
	hwio.MustInitRegs(&b.Mem)
	b.IO.initBus()
	b.CPS.initBus()
	b.ObjRAM.initBus()

	b.Bus.MapMemorySlice(0x000000, MaxProgramROM-1, b.ROM, true, "ROM")
	b.Bus.MapBank(0x000000, &b.Mem, 0)
	b.Bus.MapBank(0x700000, &b.ObjRAM, 0)
	b.Bus.MapBank(0x800100, &b.CPS, 0)
	b.Bus.MapBank(0x804000, &b.IO, 0)
	b.Bus.MapBank(0x804100, &b.CPS, 0)
}

// PlugInput connects the cabinet controls. nil disconnects them.
func (b *Board) PlugInput(in InputProvider) {
	if in == nil {
		in = noInput{}
	}
	b.input = in
	b.IO.input = in
}

// Reset resets the board. A hard reset also clears the RAM areas. The EEPROM
// contents always survive.
func (b *Board) Reset(soft bool) {
	if !soft {
		b.Mem.Reset()
		b.ObjRAM.Reset()
		b.CPS.Reset()
	}
	b.IRQ.Reset()
	b.Interrupter.Reset()
	b.IO.Reset()
	b.Coins.Reset()
	b.Screen.Reset()
	b.EEPROM.SetCSLine(false)
	b.setAudioReset(true)
	if b.CPU != nil {
		b.CPU.Reset()
	}
	log.ModEmu.InfoZ("board reset").String("game", b.Config.Name).Bool("soft", soft).End()
}

func (b *Board) setAudioReset(asserted bool) {
	if asserted != b.audioReset {
		log.ModSound.DebugZ("audio cpu reset line").Bool("asserted", asserted).End()
	}
	b.audioReset = asserted
	if b.Audio != nil {
		b.Audio.SetReset(asserted)
	}
}

// AudioInReset reports whether the audio CPU is held in reset.
func (b *Board) AudioInReset() bool { return b.audioReset }

// Output returns the object output register at byte offset off.
func (b *Board) Output(off int) uint16 {
	return binary.BigEndian.Uint16(b.Mem.Output.Data[off:])
}

// SetTraceOutput writes a line to w for each interrupt and screen strip.
// nil disables the trace.
func (b *Board) SetTraceOutput(w io.Writer) {
	if w == nil {
		b.tracer = nil
		return
	}
	b.tracer = &tracer{w: w}
}

// RunFrame runs the main CPU and the interrupt generator up to the end of the
// current frame, then completes the frame on the screen.
func (b *Board) RunFrame() {
	for {
		if b.CPU != nil {
			b.CPU.Run(hwdefs.CyclesPerTick)
		}
		b.Interrupter.Tick()
		if b.Interrupter.Scanline == LastScanline {
			break
		}
	}
	b.UpdatePartial(hwdefs.VisibleMaxY)
	b.Screen.EndFrame()
}

// rasterHost implementation.

func (b *Board) HoldIRQ(src hwdefs.IRQSource) {
	b.IRQ.Hold(src)
	if b.tracer != nil {
		b.tracer.write(traceEvent{
			Frame:    b.Screen.FrameCount(),
			Scanline: b.Interrupter.Scanline,
			IRQ:      src,
		})
	}
}

func (b *Board) UpdatePartial(row int) {
	n := len(b.Screen.strips)
	b.Screen.UpdatePartial(row)
	if b.tracer != nil && len(b.Screen.strips) > n {
		b.tracer.write(traceEvent{
			Frame:    b.Screen.FrameCount(),
			Scanline: b.Interrupter.Scanline,
			Strip:    b.Screen.strips[n],
		})
	}
}

func (b *Board) LatchSpritePriorities() {
	b.Screen.SetPriority(b.Output(OutObjPri))
}

func (b *Board) LatchObjectRAM() {
	b.LatchSpritePriorities()
	b.ObjRAM.Latch(b.Output(OutObjBase))
}

func (b *Board) RasterTargets() (r1, r2 uint16) {
	return b.CPS.RasterTargets()
}
