package log

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

type fieldKind uint8

const (
	kindNone fieldKind = iota
	kindBool
	kindString
	kindInt
	kindUint
	kindHex // zero-padded to width digits
	kindError
	kindDuration
	kindStringer
	kindBlob
)

// maxBlob is the number of bytes of a blob field that are logged, memory
// dumps are truncated past it.
const maxBlob = 64

// ZField is a single key/value pair of an EntryZ. The value is only formatted
// when the entry is emitted.
type ZField struct {
	Key string

	kind  fieldKind
	width uint8 // hex digits
	num   uint64
	str   string
	err   error
	obj   fmt.Stringer
	blob  []byte
}

func hexField(key string, v uint64, width uint8) ZField {
	return ZField{Key: key, kind: kindHex, num: v, width: width}
}

// appendHexPad appends v as lowercase hex, left-padded with zeroes to width
// digits.
func appendHexPad(dst []byte, v uint64, width int) []byte {
	var tmp [16]byte
	digits := strconv.AppendUint(tmp[:0], v, 16)
	for n := len(digits); n < width; n++ {
		dst = append(dst, '0')
	}
	return append(dst, digits...)
}

func (f *ZField) Value() string {
	switch f.kind {
	case kindBool:
		return strconv.FormatBool(f.num != 0)
	case kindString:
		return f.str
	case kindInt:
		return strconv.FormatInt(int64(f.num), 10)
	case kindUint:
		return strconv.FormatUint(f.num, 10)
	case kindHex:
		return string(appendHexPad(make([]byte, 0, 16), f.num, int(f.width)))
	case kindError:
		if f.err == nil {
			return "<nil>"
		}
		return f.err.Error()
	case kindDuration:
		return time.Duration(f.num).String()
	case kindStringer:
		if f.obj == nil {
			return "<nil>"
		}
		return f.obj.String()
	case kindBlob:
		if len(f.blob) > maxBlob {
			return hex.EncodeToString(f.blob[:maxBlob]) + "... (" + strconv.Itoa(len(f.blob)) + " bytes)"
		}
		return hex.EncodeToString(f.blob)
	}
	return ""
}
