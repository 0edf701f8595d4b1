package hw

// Quirks are the per-title hardware variations of the board, resolved once
// from the game descriptor when the board is built.
type Quirks struct {
	// PaddleMode: bit 1 of the coin port selects between the joystick and
	// the paddle reads of IN0, instead of driving coin counter 2.
	PaddleMode bool `toml:"paddle_mode"`

	// ReversedLockout: coin lockouts are engaged when their bit is set.
	ReversedLockout bool `toml:"reversed_lockout"`

	// NetworkAdapter and ExtraRAM report the daughterboards in the
	// status register.
	NetworkAdapter bool `toml:"network_adapter"`
	ExtraRAM       bool `toml:"extra_ram"`
}

const (
	statusBase         = 0x0021
	statusNoExtraRAM   = 0x4000
	statusNoNetAdapter = 0x8000
)

// StatusValue returns the value read from the feature status register.
func (q Quirks) StatusValue() uint16 {
	v := uint16(statusBase)
	if !q.ExtraRAM {
		v |= statusNoExtraRAM
	}
	if !q.NetworkAdapter {
		v |= statusNoNetAdapter
	}
	return v
}

// Config holds what the board needs to know about the running title.
type Config struct {
	Name   string
	Quirks Quirks
	EEPROM EEPROMInterface

	// LogUnmapped logs accesses to unmapped addresses.
	LogUnmapped bool
}

// DefaultConfig returns the configuration of a title without quirks.
func DefaultConfig(name string) Config {
	return Config{
		Name:   name,
		EEPROM: CPS2EEPROM,
	}
}
