/*
 * p16sim - Bit-field control/status register views.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package regs holds the named PIC16F control/status registers as plain
// Go structs, each with a byte view (Value/SetValue) and a field view (the
// struct fields themselves). Bits the silicon reserves or makes read-only
// are handled in SetValue, not by the caller.
package regs

// Status holds STATUS (bits IRP,RP1,RP0,TO,PD,Z,DC,C, MSB to LSB).
// TO and PD are preserved by every SetValue caller that only intends to
// write the flag bits; direct register writes mask them explicitly at the
// call site (see cpu.Core.Write), not here.
type Status struct {
	IRP bool
	RP1 bool
	RP0 bool
	TO  bool
	PD  bool
	Z   bool
	DC  bool
	C   bool
}

// Value packs the field view into the STATUS byte.
func (s Status) Value() uint8 {
	var v uint8
	v |= boolBit(s.IRP, 7)
	v |= boolBit(s.RP1, 6)
	v |= boolBit(s.RP0, 5)
	v |= boolBit(s.TO, 4)
	v |= boolBit(s.PD, 3)
	v |= boolBit(s.Z, 2)
	v |= boolBit(s.DC, 1)
	v |= boolBit(s.C, 0)
	return v
}

// SetValue unpacks every bit of v into the field view with no masking.
// Callers that must preserve TO/PD on a direct register write do so before
// calling SetValue.
func (s *Status) SetValue(v uint8) {
	s.IRP = v&(1<<7) != 0
	s.RP1 = v&(1<<6) != 0
	s.RP0 = v&(1<<5) != 0
	s.TO = v&(1<<4) != 0
	s.PD = v&(1<<3) != 0
	s.Z = v&(1<<2) != 0
	s.DC = v&(1<<1) != 0
	s.C = v&(1<<0) != 0
}

// BankAddr returns the two-bit bank selector RP1:RP0.
func (s Status) BankAddr() uint8 {
	var b uint8
	if s.RP1 {
		b |= 2
	}
	if s.RP0 {
		b |= 1
	}
	return b
}

// Option holds OPTION_REG (RBPU,INTEDG,T0CS,T0SE,PSA,PS2,PS1,PS0).
type Option struct {
	RBPU   bool
	INTEDG bool
	T0CS   bool
	T0SE   bool
	PSA    bool
	PS     uint8 // 3-bit prescale exponent, PS2..PS0
}

func (o Option) Value() uint8 {
	var v uint8
	v |= boolBit(o.RBPU, 7)
	v |= boolBit(o.INTEDG, 6)
	v |= boolBit(o.T0CS, 5)
	v |= boolBit(o.T0SE, 4)
	v |= boolBit(o.PSA, 3)
	v |= (o.PS & 0x7)
	return v
}

func (o *Option) SetValue(v uint8) {
	o.RBPU = v&(1<<7) != 0
	o.INTEDG = v&(1<<6) != 0
	o.T0CS = v&(1<<5) != 0
	o.T0SE = v&(1<<4) != 0
	o.PSA = v&(1<<3) != 0
	o.PS = v & 0x7
}

// Prescale returns the Timer0 prescale ratio, 1<<PS.
func (o Option) Prescale() int {
	return 1 << o.PS
}

// Intcon holds INTCON (GIE,PEIE,TMR0IE,INTE,RBIE,TMR0IF,INTF,RBIF).
type Intcon struct {
	GIE    bool
	PEIE   bool
	TMR0IE bool
	INTE   bool
	RBIE   bool
	TMR0IF bool
	INTF   bool
	RBIF   bool
}

func (i Intcon) Value() uint8 {
	var v uint8
	v |= boolBit(i.GIE, 7)
	v |= boolBit(i.PEIE, 6)
	v |= boolBit(i.TMR0IE, 5)
	v |= boolBit(i.INTE, 4)
	v |= boolBit(i.RBIE, 3)
	v |= boolBit(i.TMR0IF, 2)
	v |= boolBit(i.INTF, 1)
	v |= boolBit(i.RBIF, 0)
	return v
}

func (i *Intcon) SetValue(v uint8) {
	i.GIE = v&(1<<7) != 0
	i.PEIE = v&(1<<6) != 0
	i.TMR0IE = v&(1<<5) != 0
	i.INTE = v&(1<<4) != 0
	i.RBIE = v&(1<<3) != 0
	i.TMR0IF = v&(1<<2) != 0
	i.INTF = v&(1<<1) != 0
	i.RBIF = v&(1<<0) != 0
}

// PIE1 holds the peripheral interrupt enables (PSP,AD,RC,TX,SSP,CCP1,TMR2,TMR1).
type PIE1 struct {
	PSP  bool
	AD   bool
	RC   bool
	TX   bool
	SSP  bool
	CCP1 bool
	TMR2 bool
	TMR1 bool
}

func (p PIE1) Value() uint8 {
	var v uint8
	v |= boolBit(p.PSP, 7)
	v |= boolBit(p.AD, 6)
	v |= boolBit(p.RC, 5)
	v |= boolBit(p.TX, 4)
	v |= boolBit(p.SSP, 3)
	v |= boolBit(p.CCP1, 2)
	v |= boolBit(p.TMR2, 1)
	v |= boolBit(p.TMR1, 0)
	return v
}

func (p *PIE1) SetValue(v uint8) {
	p.PSP = v&(1<<7) != 0
	p.AD = v&(1<<6) != 0
	p.RC = v&(1<<5) != 0
	p.TX = v&(1<<4) != 0
	p.SSP = v&(1<<3) != 0
	p.CCP1 = v&(1<<2) != 0
	p.TMR2 = v&(1<<1) != 0
	p.TMR1 = v&(1<<0) != 0
}

// PIR1 holds the peripheral interrupt flags. Bits 5..4 (RC, TX) are
// read-only zero on silicon and are masked out of every SetValue.
type PIR1 struct {
	PSP  bool
	AD   bool
	RC   bool
	TX   bool
	SSP  bool
	CCP1 bool
	TMR2 bool
	TMR1 bool
}

func (p PIR1) Value() uint8 {
	var v uint8
	v |= boolBit(p.PSP, 7)
	v |= boolBit(p.AD, 6)
	// bits 5..4 (RC, TX) read back zero regardless of stored state
	v |= boolBit(p.SSP, 3)
	v |= boolBit(p.CCP1, 2)
	v |= boolBit(p.TMR2, 1)
	v |= boolBit(p.TMR1, 0)
	return v
}

// SetValue masks bits 5..4 out of v, preserving whatever the register
// already held there (they are always false, but this keeps the masking
// explicit and mirrors the silicon "(cur & 0x30) | (val & 0xCF)" rule).
func (p *PIR1) SetValue(v uint8) {
	cur := p.Value() & 0x30
	merged := (cur) | (v & 0xCF)
	p.PSP = merged&(1<<7) != 0
	p.AD = merged&(1<<6) != 0
	p.RC = false
	p.TX = false
	p.SSP = merged&(1<<3) != 0
	p.CCP1 = merged&(1<<2) != 0
	p.TMR2 = merged&(1<<1) != 0
	p.TMR1 = merged&(1<<0) != 0
}

// T1con holds T1CON (bits 5..0; bits 7..6 reserved zero).
type T1con struct {
	T1CKPS uint8 // 2-bit prescale exponent, T1CKPS1:T1CKPS0
	T1OSCEN bool
	T1SYNC  bool
	TMR1CS  bool
	TMR1ON  bool
}

func (t T1con) Value() uint8 {
	var v uint8
	v |= (t.T1CKPS & 0x3) << 4
	v |= boolBit(t.T1OSCEN, 3)
	v |= boolBit(t.T1SYNC, 2)
	v |= boolBit(t.TMR1CS, 1)
	v |= boolBit(t.TMR1ON, 0)
	return v
}

func (t *T1con) SetValue(v uint8) {
	t.T1CKPS = (v >> 4) & 0x3
	t.T1OSCEN = v&(1<<3) != 0
	t.T1SYNC = v&(1<<2) != 0
	t.TMR1CS = v&(1<<1) != 0
	t.TMR1ON = v&(1<<0) != 0
}

// Prescale returns the Timer1 prescale ratio, 1<<T1CKPS.
func (t T1con) Prescale() int {
	return 1 << t.T1CKPS
}

func boolBit(b bool, shift uint8) uint8 {
	if b {
		return 1 << shift
	}
	return 0
}
