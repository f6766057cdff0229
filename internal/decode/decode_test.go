package decode

import "testing"

func TestDecodeNOPVariants(t *testing.T) {
	for _, w := range []uint16{0x0000, 0x0020, 0x0040, 0x0060} {
		if ins := Decode(w); ins.Op != OpNOP {
			t.Errorf("Decode(%#04x): expected OpNOP, got %v", w, ins.Op)
		}
	}
}

func TestDecodeReturnAndRetfie(t *testing.T) {
	if ins := Decode(0x0008); ins.Op != OpRETURN {
		t.Errorf("expected OpRETURN, got %v", ins.Op)
	}
	if ins := Decode(0x0009); ins.Op != OpRETFIE {
		t.Errorf("expected OpRETFIE, got %v", ins.Op)
	}
}

func TestDecodeMOVWF(t *testing.T) {
	ins := Decode(0x0085) // 00 0000 1 0000101
	if ins.Op != OpMOVWF {
		t.Fatalf("expected OpMOVWF, got %v", ins.Op)
	}
	if ins.Reg != 0x05 {
		t.Errorf("expected reg 0x05, got %#02x", ins.Reg)
	}
}

func TestDecodeCLRWAndCLRF(t *testing.T) {
	if ins := Decode(0x0100); ins.Op != OpCLRW {
		t.Errorf("expected OpCLRW, got %v", ins.Op)
	}
	ins := Decode(0x0180 | 0x20) // 00 0001 1 0100000
	if ins.Op != OpCLRF || ins.Reg != 0x20 {
		t.Errorf("expected OpCLRF reg 0x20, got %v reg %#02x", ins.Op, ins.Reg)
	}
}

func TestDecodeArithmeticGroup(t *testing.T) {
	cases := []struct {
		hi  uint8
		op  Op
	}{
		{0x02, OpSUBWF}, {0x03, OpDECF}, {0x04, OpIORWF}, {0x05, OpANDWF},
		{0x06, OpXORWF}, {0x07, OpADDWF}, {0x08, OpMOVF}, {0x09, OpCOMF},
		{0x0A, OpINCF}, {0x0B, OpDECFSZ}, {0x0C, OpRRF}, {0x0D, OpRLF},
		{0x0E, OpSWAPF}, {0x0F, OpINCFSZ},
	}
	for _, c := range cases {
		word := uint16(c.hi)<<8 | 0x80 | 0x10 // dest=1, reg=0x10
		ins := Decode(word)
		if ins.Op != c.op {
			t.Errorf("hi=%#02x: expected %v, got %v", c.hi, c.op, ins.Op)
		}
		if !ins.Dest {
			t.Errorf("hi=%#02x: expected dest=true", c.hi)
		}
		if ins.Reg != 0x10 {
			t.Errorf("hi=%#02x: expected reg 0x10, got %#02x", c.hi, ins.Reg)
		}
	}
}

func TestDecodeBitOps(t *testing.T) {
	// reg=0x10, bit=3: word = 01 oo 011 0010000
	base := uint16(0x10) | uint16(3)<<7
	cases := []struct {
		oo uint16
		op Op
	}{{0, OpBCF}, {1, OpBSF}, {2, OpBTFSC}, {3, OpBTFSS}}
	for _, c := range cases {
		word := (uint16(0b01)<<12 | c.oo<<10) | base
		ins := Decode(word)
		if ins.Op != c.op {
			t.Errorf("oo=%d: expected %v, got %v", c.oo, c.op, ins.Op)
		}
		if ins.Reg != 0x10 || ins.Bit != 3 {
			t.Errorf("oo=%d: expected reg 0x10 bit 3, got reg %#02x bit %d", c.oo, ins.Reg, ins.Bit)
		}
	}
}

func TestDecodeCallGoto(t *testing.T) {
	call := Decode(uint16(0b10)<<12 | 0x010)
	if call.Op != OpCALL || call.Lit != 0x010 {
		t.Errorf("expected CALL lit 0x010, got %v lit %#03x", call.Op, call.Lit)
	}
	goTo := Decode(uint16(0b10)<<12 | uint16(1)<<11 | 0x010)
	if goTo.Op != OpGOTO || goTo.Lit != 0x010 {
		t.Errorf("expected GOTO lit 0x010, got %v lit %#03x", goTo.Op, goTo.Lit)
	}
}

func TestDecodeLiteralGroup(t *testing.T) {
	cases := []struct {
		opcd uint16
		op   Op
	}{
		{0x0, OpMOVLW}, {0x1, OpMOVLW}, {0x2, OpMOVLW}, {0x3, OpMOVLW},
		{0x4, OpRETLW}, {0x5, OpRETLW}, {0x6, OpRETLW}, {0x7, OpRETLW},
		{0x8, OpIORLW}, {0x9, OpANDLW}, {0xA, OpXORLW},
		{0xC, OpSUBLW}, {0xD, OpSUBLW}, {0xE, OpADDLW}, {0xF, OpADDLW},
	}
	for _, c := range cases {
		word := uint16(0b11)<<12 | c.opcd<<8 | 0x42
		ins := Decode(word)
		if ins.Op != c.op {
			t.Errorf("opcd=%#x: expected %v, got %v", c.opcd, c.op, ins.Op)
		}
		if ins.Lit != 0x42 {
			t.Errorf("opcd=%#x: expected lit 0x42, got %#02x", c.opcd, ins.Lit)
		}
	}
}

func TestDecodeTrapsOnUnknownAndUnsupported(t *testing.T) {
	cases := []uint16{
		0x0064, // CLRWDT
		0x0063, // SLEEP
		uint16(0b11)<<12 | 0xB<<8, // unassigned literal opcd
	}
	for _, w := range cases {
		ins := Decode(w)
		if ins.Op != OpTrap {
			t.Errorf("Decode(%#04x): expected OpTrap, got %v", w, ins.Op)
		}
		if ins.Reason == "" {
			t.Errorf("Decode(%#04x): expected a trap reason", w)
		}
	}
}
