package hw

// InputProvider supplies the state of the cabinet controls. Ports are active
// low, as seen by the 68000.
type InputProvider interface {
	// ReadPort returns input port n (0: IN0, 1: IN1, 2: IN2).
	ReadPort(n int) uint16
	// ReadPaddle returns the position of paddle n (0 or 1).
	ReadPaddle(n int) uint8
}

// NumInputPorts is the number of 16-bit input ports of the board.
const NumInputPorts = 3

type noInput struct{}

func (noInput) ReadPort(int) uint16  { return 0xffff }
func (noInput) ReadPaddle(int) uint8 { return 0 }
