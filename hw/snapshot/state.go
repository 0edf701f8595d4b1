package snapshot

// Version is the current version of the snapshot format.
const Version = 1

// Board is the state of a CPS2 board, taken between two frames.
type Board struct {
	Version int
	Game    string

	Interrupter Interrupter
	IRQ         uint8 // held interrupt sources
	Coins       Coins
	IO          IO

	EEPROM []byte // big endian words

	ObjRAM ObjRAM
	CPSA   []uint16
	CPSB   []uint16

	Output      []byte
	QSound      []byte
	ExtraRAM    []byte
	ExtraEnable uint16
	GfxRAM      []byte
	WorkRAM     []byte
}

type Interrupter struct {
	Scanline  int
	Raster1   uint16
	Raster2   uint16
	Scancalls int
}

type Coins struct {
	Counters [2]uint32
	Lockouts [4]bool
	Lines    [2]bool
}

type IO struct {
	EEPROMPort   uint16
	PaddleSelect bool
	AudioReset   bool
}

type ObjRAM struct {
	Bank     uint16
	Bank1    []byte
	Bank2    []byte
	Buffered []byte
}
