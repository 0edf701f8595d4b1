package hw

import (
	"io"

	"cps2/emu/log"
	"cps2/hw/hwdefs"
)

// traceEvent is one line of the interrupt trace.
type traceEvent struct {
	Frame    uint64
	Scanline int

	IRQ   hwdefs.IRQSource // 0 for strips
	Strip Strip
}

// tracer writes interrupt and strip events to w. It stops on the first
// write error.
type tracer struct {
	w      io.Writer
	buf    []byte
	failed bool
}

func hexEncode(dst []byte, v byte) {
	const hextable = "0123456789ABCDEF"
	dst[0] = hextable[v>>4]
	dst[1] = hextable[v&0x0f]
}

func appendHex(buf []byte, v uint64, nbytes int) []byte {
	var tmp [2]byte
	for i := nbytes - 1; i >= 0; i-- {
		hexEncode(tmp[:], byte(v>>(8*i)))
		buf = append(buf, tmp[:]...)
	}
	return buf
}

// appendDec appends v right-aligned on width characters, v must be
// non-negative.
func appendDec(buf []byte, v, width int) []byte {
	var tmp [8]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
		if v == 0 {
			break
		}
	}
	for n := len(tmp) - i; n < width; n++ {
		buf = append(buf, ' ')
	}
	return append(buf, tmp[i:]...)
}

// write the trace line of an event:
//
//	000002 100 IRQ raster
//	000002 100 STRIP  16-106 0123
func (t *tracer) write(ev traceEvent) {
	if t.failed {
		return
	}
	buf := appendHex(t.buf[:0], ev.Frame, 3)
	buf = append(buf, ' ')
	buf = appendDec(buf, max(ev.Scanline, 0), 3)

	if ev.IRQ != 0 {
		buf = append(buf, " IRQ "...)
		buf = append(buf, ev.IRQ.String()...)
	} else {
		buf = append(buf, " STRIP "...)
		buf = appendDec(buf, ev.Strip.Top, 3)
		buf = append(buf, '-')
		buf = appendDec(buf, ev.Strip.Bottom, 3)
		buf = append(buf, ' ')
		buf = appendHex(buf, uint64(ev.Strip.Priority), 2)
	}
	buf = append(buf, '\n')
	t.buf = buf

	if _, err := t.w.Write(buf); err != nil {
		t.failed = true
		log.ModEmu.WarnZ("trace output failed, tracing disabled").Error("err", err).End()
	}
}
