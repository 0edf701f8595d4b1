package hwio

import "testing"

type test1 struct {
	Reg1   Reg16 `hwio:"offset=0x110,reset=0x23,rwmask=0x1,wcb"`
	Reg2   Reg16 `hwio:"offset=0x444,bank=1,rcb"`
	called bool
}

func (t *test1) WriteREG1(old, val, mask uint16) {
	t.called = true
}

func (t *test1) ReadREG2(val uint16, peek bool) uint16 {
	return val | 1
}

func TestReflect(t *testing.T) {
	ts := &test1{}

	err := InitRegs(ts)
	if err != nil {
		t.Fatal(err)
	}

	if ts.Reg1.Name != "Reg1" || ts.Reg2.Name != "Reg2" {
		t.Error("invalid names:", ts.Reg1, ts.Reg2)
	}

	if got := ts.Reg2.Read16(0, false); got != 1 {
		t.Error("invalid Read16:", got)
	}

	if got := ts.Reg1.Read16(0, false); got != 0x23 {
		t.Error("invalid Read16", got)
	}

	ts.Reg1.Write16(0, 0, LaneBoth)
	if ts.Reg1.Value != 0x22 {
		t.Error("invalid read after rwmask", ts.Reg1.Value)
	}
	if !ts.called {
		t.Error("callback not called")
	}
}

func TestParseBank(t *testing.T) {
	ts := &test1{}
	info, err := bankGetRegs(ts, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(info) != 1 {
		t.Fatal("wrong number of regs in bank:", len(info))
	}
	if info[0].offset != 0x110 {
		t.Errorf("invalid reg offset: %x", info[0].offset)
	}

	rptr, ok := info[0].regPtr.(*Reg16)
	if !ok {
		t.Errorf("invalid reg ptr type: %T", info[0].regPtr)
	} else if rptr != &ts.Reg1 {
		t.Errorf("invalid reg ptr")
	}

	info, err = bankGetRegs(ts, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(info) != 1 {
		t.Fatal("wrong number of regs in bank:", len(info))
	}
	if info[0].offset != 0x444 {
		t.Errorf("invalid reg offset: %x", info[0].offset)
	}
}

func TestReadWriteOnly(t *testing.T) {
	type test2 struct {
		Reg1 Reg16 `hwio:"reset=0x23,readonly"`
		Reg2 Reg16 `hwio:"writeonly"`
	}

	ts := &test2{}
	if err := InitRegs(ts); err != nil {
		t.Fatal(err)
	}

	ts.Reg1.Write16(0, 0, LaneBoth) // ignored
	if got := ts.Reg1.Read16(0, false); got != 0x23 {
		t.Error("invalid reg1 read:", got)
	}

	ts.Reg2.Write16(0, 0x23, LaneBoth)
	if got := ts.Reg2.Read16(0, false); got != 0 {
		t.Error("invalid reg2 read:", got)
	}
}

func TestInitRegsErrors(t *testing.T) {
	type tooBig struct {
		R Reg16 `hwio:"reset=0x12345"`
	}
	type badMask struct {
		R Reg16 `hwio:"rwmask=0x12345"`
	}
	type missingCb struct {
		R Reg16 `hwio:"rcb"`
	}
	type unknownOpt struct {
		R Reg16 `hwio:"frobnicate"`
	}
	type deviceNoSize struct {
		D Device `hwio:"offset=0"`
	}

	tests := []struct {
		name string
		bank any
	}{
		{"reset too big", &tooBig{}},
		{"rwmask too big", &badMask{}},
		{"missing callback", &missingCb{}},
		{"unknown option", &unknownOpt{}},
		{"device without size", &deviceNoSize{}},
		{"not a pointer", tooBig{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := InitRegs(tt.bank); err == nil {
				t.Fatal("InitRegs should fail")
			} else {
				t.Log(err)
			}
		})
	}
}
