package hw

// IdleCPU is a MainCPU that executes no code. Held interrupts are
// acknowledged at the start of the next slice, after Handler has seen them.
// It drives the board when no 68000 interpreter is plugged.
type IdleCPU struct {
	IRQ     *IRQController
	Handler func(level uint8)
	Cycles  int64
}

func (c *IdleCPU) Reset() {
	c.Cycles = 0
}

func (c *IdleCPU) Run(cycles int64) {
	if lvl := c.IRQ.Level(); lvl != 0 {
		if c.Handler != nil {
			c.Handler(lvl)
		}
		c.IRQ.Acknowledge(lvl)
	}
	c.Cycles += cycles
}
