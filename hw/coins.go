package hw

import "cps2/emu/log"

const (
	NumCoinCounters = 2
	NumCoinLockouts = 4
)

// CoinMech models the coin counters and coin lockout coils of the cabinet.
type CoinMech struct {
	Counters [NumCoinCounters]uint32
	Lockouts [NumCoinLockouts]bool // true when the coin slot is locked

	lines [NumCoinCounters]bool
}

func (cm *CoinMech) Reset() {
	cm.lines = [NumCoinCounters]bool{}
	cm.Lockouts = [NumCoinLockouts]bool{}
}

// SetCounter drives the line of coin counter n. The counter advances on each
// rising edge.
func (cm *CoinMech) SetCounter(n int, on bool) {
	if on && !cm.lines[n] {
		cm.Counters[n]++
		log.ModInput.DebugZ("coin counter").Int("n", n).Uint("count", uint64(cm.Counters[n])).End()
	}
	cm.lines[n] = on
}

// Line reports the current state of coin counter n line.
func (cm *CoinMech) Line(n int) bool {
	return cm.lines[n]
}

// SetLockout engages or releases lockout n.
func (cm *CoinMech) SetLockout(n int, locked bool) {
	if cm.Lockouts[n] != locked {
		log.ModInput.DebugZ("coin lockout").Int("n", n).Bool("locked", locked).End()
	}
	cm.Lockouts[n] = locked
}
