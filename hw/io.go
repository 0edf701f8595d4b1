package hw

import (
	"cps2/emu/log"
	"cps2/hw/hwio"
)

const (
	eepromDataIn   = 0x1000
	eepromClock    = 0x2000
	eepromSelected = 0x4000

	coinCounter1  = 0x0001
	coinCounter2  = 0x0002
	paddleSelect  = 0x0002
	audioRunning  = 0x0008
	coinLockout0  = 0x0010
	eepromDataOut = 0x0001
)

// IOPorts is the I/O area at 0x804000: input ports, feature status, the
// EEPROM/coin port and the object RAM bank selector.
type IOPorts struct {
	IN0        hwio.Reg16  `hwio:"offset=0x00,readonly,rcb"`
	IN1        hwio.Reg16  `hwio:"offset=0x10,readonly,rcb"`
	IN2        hwio.Reg16  `hwio:"offset=0x20,readonly,rcb"`
	QSNDSTATUS hwio.Reg16  `hwio:"offset=0x30,readonly"`
	EEPROMPORT hwio.Reg16  `hwio:"offset=0x40,wcb"`
	UNK0A0     hwio.Reg16  `hwio:"offset=0xa0,rwmask=0x0"`
	KLUDGE     hwio.Device `hwio:"offset=0xb0,size=0x4,readonly,rcb"`
	OBJBANK    hwio.Reg16  `hwio:"offset=0xe0,writeonly,wcb"`

	quirks Quirks
	input  InputProvider
	eeprom *SerialEEPROM
	coins  *CoinMech
	objram *ObjectRAM

	// audioReset is called with the state of the audio CPU reset line.
	audioReset func(asserted bool)

	// readPaddle is the joystick/paddle selector of paddle titles.
	readPaddle bool
}

func (io *IOPorts) initBus() {
	hwio.MustInitRegs(io)
	io.QSNDSTATUS.Value = io.quirks.StatusValue()
}

func (io *IOPorts) Reset() {
	io.EEPROMPORT.Value = 0
	io.OBJBANK.Value = 0
	io.readPaddle = false
}

// PaddleSelect reports whether IN0 currently reads the joystick on paddle
// titles.
func (io *IOPorts) PaddleSelect() bool { return io.readPaddle }

func (io *IOPorts) ReadIN0(_ uint16, _ bool) uint16 {
	if io.quirks.PaddleMode && !io.readPaddle {
		return uint16(io.input.ReadPaddle(0)) | uint16(io.input.ReadPaddle(1))<<8
	}
	return io.input.ReadPort(0)
}

func (io *IOPorts) ReadIN1(_ uint16, _ bool) uint16 {
	return io.input.ReadPort(1)
}

func (io *IOPorts) ReadIN2(_ uint16, _ bool) uint16 {
	v := io.input.ReadPort(2) &^ eepromDataOut
	if io.eeprom.ReadBit() {
		v |= eepromDataOut
	}
	return v
}

func (io *IOPorts) WriteEEPROMPORT(_, val, mask uint16) {
	if mask&hwio.LaneUpper != 0 {
		io.eeprom.WriteBit(val&eepromDataIn != 0)
		io.eeprom.SetClockLine(val&eepromClock != 0)
		io.eeprom.SetCSLine(val&eepromSelected != 0)
	}

	if mask&hwio.LaneLower == 0 {
		return
	}

	if io.audioReset != nil {
		io.audioReset(val&audioRunning == 0)
	}

	io.coins.SetCounter(0, val&coinCounter1 != 0)
	if io.quirks.PaddleMode {
		io.readPaddle = val&paddleSelect != 0
	} else {
		io.coins.SetCounter(1, val&coinCounter2 != 0)
	}

	for i := range NumCoinLockouts {
		set := val&(coinLockout0<<i) != 0
		io.coins.SetLockout(i, set == io.quirks.ReversedLockout)
	}
}

func (io *IOPorts) ReadKLUDGE(addr uint32, peek bool) uint16 {
	if !peek {
		log.ModHwIo.DebugZ("kludge read").Hex24("addr", addr).End()
	}
	return 0xffff
}

func (io *IOPorts) WriteOBJBANK(_, val, mask uint16) {
	if mask&hwio.LaneLower != 0 {
		io.objram.SetBank(val & 1)
	}
}
