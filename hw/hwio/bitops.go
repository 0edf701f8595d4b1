package hwio

// Byte lanes of a 16-bit bus access. The 68000 is big endian: the upper lane
// is the byte at the even address.
const (
	LaneUpper uint16 = 0xFF00
	LaneLower uint16 = 0x00FF
	LaneBoth  uint16 = 0xFFFF
)

// LaneMask returns the lane mask of a byte access at addr.
func LaneMask(addr uint32) uint16 {
	if addr&1 == 0 {
		return LaneUpper
	}
	return LaneLower
}

// Combine merges val into old, only for the bits selected by mask.
func Combine(old, val, mask uint16) uint16 {
	return old&^mask | val&mask
}

func GetBit16(v uint16, n uint) bool {
	return GetBiti16(v, n) != 0
}

func GetBiti16(v uint16, n uint) uint16 {
	return v >> n & 0x01
}

func SetBit16(v *uint16, n uint) {
	*v |= 1 << n
}

func ClearBit16(v *uint16, n uint) {
	*v &^= 1 << n
}

func FlipBit16(v *uint16, n uint) {
	*v ^= 1 << n
}
