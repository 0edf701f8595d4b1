package log

import (
	"fmt"
	"sync"
	"time"

	"gopkg.in/Sirupsen/logrus.v0"
)

const maxZFields = 16

// EntryZ is a log entry built field by field. All methods accept a nil
// receiver, which is what a disabled module returns, so that a disabled log
// line costs a single comparison per field.
type EntryZ struct {
	lvl Level
	msg string
	mod Module

	zfbuf [maxZFields]ZField
	zfidx int
}

var zpool = sync.Pool{
	New: func() any { return new(EntryZ) },
}

func NewEntryZ() *EntryZ {
	z := zpool.Get().(*EntryZ)
	z.zfidx = 0
	return z
}

func (z *EntryZ) field(f ZField) *EntryZ {
	if z == nil {
		return nil
	}
	if z.zfidx < maxZFields {
		z.zfbuf[z.zfidx] = f
		z.zfidx++
	}
	return z
}

func (z *EntryZ) String(key, val string) *EntryZ {
	return z.field(ZField{Key: key, kind: kindString, str: val})
}

func (z *EntryZ) Int(key string, val int) *EntryZ {
	return z.field(ZField{Key: key, kind: kindInt, num: uint64(val)})
}

func (z *EntryZ) Int64(key string, val int64) *EntryZ {
	return z.field(ZField{Key: key, kind: kindInt, num: uint64(val)})
}

func (z *EntryZ) Uint(key string, val uint64) *EntryZ {
	return z.field(ZField{Key: key, kind: kindUint, num: val})
}

func (z *EntryZ) Hex8(key string, val uint8) *EntryZ {
	return z.field(hexField(key, uint64(val), 2))
}

func (z *EntryZ) Hex16(key string, val uint16) *EntryZ {
	return z.field(hexField(key, uint64(val), 4))
}

// Hex24 formats a 68000 bus address.
func (z *EntryZ) Hex24(key string, val uint32) *EntryZ {
	return z.field(hexField(key, uint64(val), 6))
}

func (z *EntryZ) Hex32(key string, val uint32) *EntryZ {
	return z.field(hexField(key, uint64(val), 8))
}

func (z *EntryZ) Bool(key string, val bool) *EntryZ {
	f := ZField{Key: key, kind: kindBool}
	if val {
		f.num = 1
	}
	return z.field(f)
}

func (z *EntryZ) Error(key string, err error) *EntryZ {
	return z.field(ZField{Key: key, kind: kindError, err: err})
}

func (z *EntryZ) Duration(key string, d time.Duration) *EntryZ {
	return z.field(ZField{Key: key, kind: kindDuration, num: uint64(d)})
}

func (z *EntryZ) Stringer(key string, s fmt.Stringer) *EntryZ {
	return z.field(ZField{Key: key, kind: kindStringer, obj: s})
}

func (z *EntryZ) Blob(key string, b []byte) *EntryZ {
	return z.field(ZField{Key: key, kind: kindBlob, blob: b})
}

// End emits the entry and releases it. The entry must not be used afterwards.
func (z *EntryZ) End() {
	if z == nil {
		return
	}
	if !disabled || z.lvl <= FatalLevel {
		z.emit()
	}
	zpool.Put(z)
}

func (z *EntryZ) emit() {
	fields := make(logrus.Fields, z.zfidx+1)
	fields["_mod"] = modNames[z.mod]

	n := z.zfidx
	for _, c := range contexts {
		c.AddLogContext(z)
	}
	for i := range z.zfbuf[:z.zfidx] {
		fields[z.zfbuf[i].Key] = z.zfbuf[i].Value()
	}
	z.zfidx = n

	entry := logrus.StandardLogger().WithFields(fields)
	switch z.lvl {
	case DebugLevel:
		entry.Debug(z.msg)
	case InfoLevel:
		entry.Info(z.msg)
	case WarnLevel:
		entry.Warn(z.msg)
	case ErrorLevel:
		entry.Error(z.msg)
	case FatalLevel:
		entry.Fatal(z.msg)
	case PanicLevel:
		entry.Panic(z.msg)
	}
}
