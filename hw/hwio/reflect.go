package hwio

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

type regInfo struct {
	offset uint32
	regPtr any
}

type regTag struct {
	offset    uint32
	hasOffset bool
	bank      int
	size      uint64
	vsize     uint64
	reset     uint64
	rwmask    uint64
	hasRWMask bool
	readonly  bool
	writeonly bool
	rcb, wcb  string
}

var (
	typeMem    = reflect.TypeOf(Mem{})
	typeReg16  = reflect.TypeOf(Reg16{})
	typeDevice = reflect.TypeOf(Device{})
)

func parseTag(field reflect.StructField, tag string) (regTag, error) {
	var rt regTag
	for _, opt := range strings.Split(tag, ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		key, val, hasVal := strings.Cut(opt, "=")

		num := func() (uint64, error) {
			if !hasVal {
				return 0, fmt.Errorf("%s: option %q requires a value", field.Name, key)
			}
			n, err := strconv.ParseUint(val, 0, 32)
			if err != nil {
				return 0, fmt.Errorf("%s: option %q: %w", field.Name, key, err)
			}
			return n, nil
		}

		var err error
		switch key {
		case "offset":
			var n uint64
			n, err = num()
			rt.offset, rt.hasOffset = uint32(n), true
		case "bank":
			var n uint64
			n, err = num()
			rt.bank = int(n)
		case "size":
			rt.size, err = num()
		case "vsize":
			rt.vsize, err = num()
		case "reset":
			rt.reset, err = num()
		case "rwmask":
			rt.rwmask, err = num()
			rt.hasRWMask = true
		case "readonly":
			rt.readonly = true
		case "writeonly":
			rt.writeonly = true
		case "rcb":
			rt.rcb = "Read" + strings.ToUpper(field.Name)
			if hasVal {
				rt.rcb = val
			}
		case "wcb":
			rt.wcb = "Write" + strings.ToUpper(field.Name)
			if hasVal {
				rt.wcb = val
			}
		default:
			err = fmt.Errorf("%s: unknown hwio option %q", field.Name, key)
		}
		if err != nil {
			return rt, err
		}
	}
	return rt, nil
}

func method(bank reflect.Value, name string, dst any) error {
	m := bank.MethodByName(name)
	if !m.IsValid() {
		return fmt.Errorf("method %s not found on %s", name, bank.Type())
	}
	dv := reflect.ValueOf(dst).Elem()
	if !m.Type().AssignableTo(dv.Type()) {
		return fmt.Errorf("method %s has signature %s, want %s", name, m.Type(), dv.Type())
	}
	dv.Set(m)
	return nil
}

func rwflags(rt regTag) RWFlags {
	var f RWFlags
	if rt.readonly {
		f |= ReadOnlyFlag
	}
	if rt.writeonly {
		f |= WriteOnlyFlag
	}
	return f
}

func initReg16(bank reflect.Value, name string, reg *Reg16, rt regTag) error {
	if rt.reset > 0xFFFF {
		return fmt.Errorf("%s: reset value %#x too big", name, rt.reset)
	}
	if rt.rwmask > 0xFFFF {
		return fmt.Errorf("%s: rwmask %#x too big", name, rt.rwmask)
	}
	reg.Name = name
	reg.Value = uint16(rt.reset)
	if rt.hasRWMask {
		reg.RoMask = ^uint16(rt.rwmask)
	}
	reg.Flags = rwflags(rt)
	if rt.rcb != "" {
		if err := method(bank, rt.rcb, &reg.ReadCb); err != nil {
			return err
		}
	}
	if rt.wcb != "" {
		if err := method(bank, rt.wcb, &reg.WriteCb); err != nil {
			return err
		}
	}
	return nil
}

func initMem(bank reflect.Value, name string, mem *Mem, rt regTag) error {
	if rt.size == 0 && mem.Data == nil {
		return fmt.Errorf("%s: mem requires size", name)
	}
	mem.Name = name
	if mem.Data == nil {
		mem.Data = make([]byte, rt.size)
	}
	mem.VSize = len(mem.Data)
	if rt.vsize != 0 {
		mem.VSize = int(rt.vsize)
	}
	if rt.readonly {
		mem.Flags |= MemFlagReadOnly
	}
	if rt.wcb != "" {
		if err := method(bank, rt.wcb, &mem.WriteCb); err != nil {
			return err
		}
	}
	return nil
}

func initDevice(bank reflect.Value, name string, dev *Device, rt regTag) error {
	if rt.size == 0 {
		return fmt.Errorf("%s: device requires size", name)
	}
	dev.Name = name
	dev.Size = int(rt.size)
	dev.Flags = rwflags(rt)
	if rt.rcb != "" {
		if err := method(bank, rt.rcb, &dev.ReadCb); err != nil {
			return err
		}
	}
	if rt.wcb != "" {
		if err := method(bank, rt.wcb, &dev.WriteCb); err != nil {
			return err
		}
	}
	return nil
}

func structValue(bank any) (reflect.Value, reflect.Value, error) {
	ptr := reflect.ValueOf(bank)
	if ptr.Kind() != reflect.Pointer || ptr.Elem().Kind() != reflect.Struct {
		return ptr, reflect.Value{}, errors.New("hwio: bank must be a pointer to struct")
	}
	return ptr, ptr.Elem(), nil
}

// InitRegs initializes all the Reg16, Mem and Device fields of the structure
// pointed by bank, according to their "hwio" struct tags. Besides offset and
// bank (see Table.MapBank), these options are recognized:
//
//	size=0x100      Size in bytes of a Mem or Device. Mem buffers are
//	                allocated if nil.
//	vsize=0x400     Virtual size of a Mem: the buffer is mirrored.
//	reset=0x12      Reg16 value at power-up.
//	rwmask=0xF0     Reg16 bits that the CPU can write (default all).
//	readonly        Reject CPU writes.
//	writeonly       Reject CPU reads.
//	rcb[=Name]      Read callback. Defaults to the method Read<FIELD>.
//	wcb[=Name]      Write callback. Defaults to the method Write<FIELD>.
func InitRegs(bank any) error {
	ptr, sv, err := structValue(bank)
	if err != nil {
		return err
	}
	st := sv.Type()
	for i := range st.NumField() {
		field := st.Field(i)
		tag, ok := field.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		rt, err := parseTag(field, tag)
		if err != nil {
			return err
		}
		fptr := sv.Field(i).Addr().Interface()
		switch field.Type {
		case typeReg16:
			err = initReg16(ptr, field.Name, fptr.(*Reg16), rt)
		case typeMem:
			err = initMem(ptr, field.Name, fptr.(*Mem), rt)
		case typeDevice:
			err = initDevice(ptr, field.Name, fptr.(*Device), rt)
		default:
			err = fmt.Errorf("%s: unsupported hwio field type %s", field.Name, field.Type)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func MustInitRegs(bank any) {
	if err := InitRegs(bank); err != nil {
		panic(err)
	}
}

func bankGetRegs(bank any, bankNum int) ([]regInfo, error) {
	_, sv, err := structValue(bank)
	if err != nil {
		return nil, err
	}
	var regs []regInfo
	st := sv.Type()
	for i := range st.NumField() {
		field := st.Field(i)
		tag, ok := field.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		rt, err := parseTag(field, tag)
		if err != nil {
			return nil, err
		}
		if !rt.hasOffset || rt.bank != bankNum {
			continue
		}
		regs = append(regs, regInfo{
			offset: rt.offset,
			regPtr: sv.Field(i).Addr().Interface(),
		})
	}
	return regs, nil
}
