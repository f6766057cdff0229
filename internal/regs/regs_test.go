package regs

import "testing"

func TestStatusRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		var s Status
		s.SetValue(uint8(v))
		if got := s.Value(); got != uint8(v) {
			t.Errorf("Status round trip: set %#02x got %#02x", v, got)
		}
	}
}

func TestStatusBankAddr(t *testing.T) {
	var s Status
	s.SetValue(0x00)
	if s.BankAddr() != 0 {
		t.Errorf("BankAddr: expected 0, got %d", s.BankAddr())
	}
	s.SetValue(0x60) // RP1,RP0 set
	if s.BankAddr() != 3 {
		t.Errorf("BankAddr: expected 3, got %d", s.BankAddr())
	}
}

func TestOptionPrescale(t *testing.T) {
	var o Option
	o.SetValue(0x01)
	if p := o.Prescale(); p != 2 {
		t.Errorf("Prescale(PS=1): expected 2, got %d", p)
	}
	o.SetValue(0x07)
	if p := o.Prescale(); p != 128 {
		t.Errorf("Prescale(PS=7): expected 128, got %d", p)
	}
}

func TestIntconRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		var i Intcon
		i.SetValue(uint8(v))
		if got := i.Value(); got != uint8(v) {
			t.Errorf("Intcon round trip: set %#02x got %#02x", v, got)
		}
	}
}

func TestPIR1MasksReadOnlyBits(t *testing.T) {
	var p PIR1
	p.SetValue(0xFF)
	if v := p.Value(); v != 0xCF {
		t.Errorf("PIR1 after SetValue(0xFF): expected 0xCF, got %#02x", v)
	}
	if p.RC || p.TX {
		t.Errorf("PIR1: RC/TX must stay false, got RC=%v TX=%v", p.RC, p.TX)
	}
}

func TestT1conPrescaleAndReserved(t *testing.T) {
	var tc T1con
	tc.SetValue(0xFF)
	if v := tc.Value(); v != 0x3F {
		t.Errorf("T1CON after SetValue(0xFF): expected 0x3F (bits 7..6 reserved zero), got %#02x", v)
	}
	if p := tc.Prescale(); p != 8 {
		t.Errorf("Prescale(T1CKPS=3): expected 8, got %d", p)
	}
}
