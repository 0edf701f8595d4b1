package hw

import (
	"encoding/binary"
	"fmt"
	"strings"

	"cps2/emu/log"
)

// EEPROMInterface describes the serial protocol of a board EEPROM. Commands
// are bit strings sent MSB first after chip select.
type EEPROMInterface struct {
	AddressBits int
	DataBits    int
	ReadCmd     string
	WriteCmd    string
	EraseCmd    string
}

// CPS2EEPROM is the 93C46 found on every CPS2 B board: 64 words of 16 bits.
var CPS2EEPROM = EEPROMInterface{
	AddressBits: 6,
	DataBits:    16,
	ReadCmd:     "0110",
	WriteCmd:    "0101",
	EraseCmd:    "0111",
}

// Words returns the number of words of the EEPROM.
func (intf EEPROMInterface) Words() int {
	return 1 << intf.AddressBits
}

func (intf EEPROMInterface) dataMask() uint16 {
	return uint16(1<<intf.DataBits - 1)
}

// SerialEEPROM emulates a serial EEPROM with separate data-in, data-out,
// clock and chip select lines.
type SerialEEPROM struct {
	intf EEPROMInterface
	data []uint16

	serial strings.Builder // bits received since chip select

	selected bool
	clock    bool
	din      bool

	sending bool
	shift   uint32 // outgoing data, MSB at bit DataBits
}

func NewSerialEEPROM(intf EEPROMInterface) *SerialEEPROM {
	e := &SerialEEPROM{
		intf: intf,
		data: make([]uint16, intf.Words()),
	}
	for i := range e.data {
		e.data[i] = intf.dataMask()
	}
	return e
}

// Interface returns the protocol description of the EEPROM.
func (e *SerialEEPROM) Interface() EEPROMInterface { return e.intf }

// WriteBit latches the data-in line.
func (e *SerialEEPROM) WriteBit(bit bool) {
	e.din = bit
}

// SetCSLine selects or deselects the chip. Deselecting aborts any command.
func (e *SerialEEPROM) SetCSLine(selected bool) {
	e.selected = selected
	if !selected {
		e.serial.Reset()
		e.sending = false
	}
}

// SetClockLine sets the clock line, the chip acts on rising edges.
func (e *SerialEEPROM) SetClockLine(high bool) {
	rising := high && !e.clock
	e.clock = high
	if !rising || !e.selected {
		return
	}

	if e.sending {
		e.shift = e.shift<<1 | 1
		return
	}

	if e.din {
		e.serial.WriteByte('1')
	} else {
		e.serial.WriteByte('0')
	}
	e.exec()
}

// ReadBit returns the data-out line. It reads 1 (ready) when no read is in
// progress.
func (e *SerialEEPROM) ReadBit() bool {
	if !e.sending {
		return true
	}
	return e.shift>>e.intf.DataBits&1 != 0
}

func (e *SerialEEPROM) maxCommandLen() int {
	return max(len(e.intf.ReadCmd), len(e.intf.EraseCmd), len(e.intf.WriteCmd)+e.intf.DataBits) + e.intf.AddressBits
}

func (e *SerialEEPROM) address(bits string) int {
	addr := 0
	for i := range e.intf.AddressBits {
		addr <<= 1
		if bits[i] == '1' {
			addr |= 1
		}
	}
	return addr
}

func (e *SerialEEPROM) exec() {
	bits := e.serial.String()
	abits := e.intf.AddressBits

	match := func(cmd string, payload int) bool {
		return len(bits) == len(cmd)+payload && strings.HasPrefix(bits, cmd)
	}

	switch {
	case match(e.intf.ReadCmd, abits):
		addr := e.address(bits[len(e.intf.ReadCmd):])
		e.shift = uint32(e.data[addr])
		e.sending = true
		e.serial.Reset()
		log.ModEEPROM.DebugZ("read").Int("addr", addr).Hex16("data", e.data[addr]).End()

	case match(e.intf.EraseCmd, abits):
		addr := e.address(bits[len(e.intf.EraseCmd):])
		e.data[addr] = e.intf.dataMask()
		e.serial.Reset()
		log.ModEEPROM.DebugZ("erase").Int("addr", addr).End()

	case match(e.intf.WriteCmd, abits+e.intf.DataBits):
		rest := bits[len(e.intf.WriteCmd):]
		addr := e.address(rest)
		var val uint16
		for _, c := range rest[abits:] {
			val <<= 1
			if c == '1' {
				val |= 1
			}
		}
		e.data[addr] = val
		e.serial.Reset()
		log.ModEEPROM.DebugZ("write").Int("addr", addr).Hex16("data", val).End()

	case len(bits) >= e.maxCommandLen():
		log.ModEEPROM.WarnZ("serial buffer overflow").String("bits", bits).End()
		e.serial.Reset()
	}
}

// Data returns the EEPROM contents.
func (e *SerialEEPROM) Data() []uint16 {
	return e.data
}

// Save returns the EEPROM contents, big endian.
func (e *SerialEEPROM) Save() []byte {
	buf := make([]byte, 2*len(e.data))
	for i, w := range e.data {
		binary.BigEndian.PutUint16(buf[2*i:], w)
	}
	return buf
}

// Load restores contents previously returned by Save.
func (e *SerialEEPROM) Load(buf []byte) error {
	if len(buf) != 2*len(e.data) {
		return fmt.Errorf("eeprom: invalid size %d, want %d", len(buf), 2*len(e.data))
	}
	for i := range e.data {
		e.data[i] = binary.BigEndian.Uint16(buf[2*i:]) & e.intf.dataMask()
	}
	return nil
}
