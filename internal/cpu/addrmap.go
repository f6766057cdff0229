/*
 * p16sim - Banked data address map.
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

package cpu

// The data address space is 9 bits: 2 bank-select bits (RP1:RP0, or IRP for
// indirect access) times a 7-bit offset, giving 4 banks of 0x80 bytes each.
// bankOf packs the pair into the top two bits of a 9-bit address.
func bankOf(bank uint8, offset uint8) uint16 {
	return uint16(bank&0x3)<<7 | uint16(offset&0x7F)
}

// directAddr resolves a 7-bit instruction operand f against the current
// RP1:RP0 bank select.
func (c *Core) directAddr(f uint8) uint16 {
	return bankOf(c.Status.BankAddr(), f)
}

// indirectAddr resolves the address an INDF access redirects to: IRP
// supplies the bank-pair bit, FSR supplies the rest, matching the
// instruction operand's own 9-bit range.
func (c *Core) indirectAddr() uint16 {
	irp := uint8(0)
	if c.Status.IRP {
		irp = 1
	}
	return uint16(irp)<<8 | uint16(c.FSR)
}

// Read performs a direct-addressed data memory read from instruction
// operand f, honoring the current bank.
func (c *Core) Read(f uint8) uint8 {
	return c.read9(c.directAddr(f), 0)
}

// Write performs a direct-addressed data memory write.
func (c *Core) Write(f uint8, v uint8) {
	c.write9(c.directAddr(f), v, 0)
}

// read9 and write9 implement the full register/RAM dispatch over the
// 9-bit bank-qualified address space. Addresses that are reachable through
// INDF0 recurse once into the same dispatch via indirectAddr.
func (c *Core) read9(addr uint16, word uint16) uint8 {
	switch {
	case addr == 0x000 || addr == 0x080 || addr == 0x100 || addr == 0x180:
		if c.FSR&0x7F == 0 {
			return 0 // FSR 0x00/0x80 reads as 0 rather than re-dispatching INDF0 through itself
		}
		return c.read9(c.indirectAddr(), word)
	case addr == 0x001 || addr == 0x101:
		return c.TMR0
	case addr == 0x081 || addr == 0x181:
		return c.Option.Value()
	case addr == 0x002 || addr == 0x082 || addr == 0x102 || addr == 0x182:
		return uint8(c.PC & 0xFF)
	case addr == 0x003 || addr == 0x083 || addr == 0x103 || addr == 0x183:
		return c.Status.Value()
	case addr == 0x004 || addr == 0x084 || addr == 0x104 || addr == 0x184:
		return c.FSR
	case addr == 0x005:
		return c.PortA
	case addr == 0x006:
		return c.PortB
	case addr == 0x007:
		return c.PortC
	case addr == 0x008:
		return c.PortD
	case addr == 0x00A || addr == 0x08A || addr == 0x10A || addr == 0x18A:
		return c.PCLATH
	case addr == 0x00B || addr == 0x08B || addr == 0x10B || addr == 0x18B:
		return c.Intcon.Value()
	case addr == 0x00C:
		return c.PIR1.Value()
	case addr == 0x08C:
		return c.PIE1.Value()
	case addr == 0x00E || addr == 0x08E || addr == 0x10E || addr == 0x18E:
		return c.INDF1
	case addr == 0x00F || addr == 0x08F || addr == 0x10F || addr == 0x18F:
		return c.INDF2
	case addr == 0x010:
		return c.T1CON.Value()
	case addr == 0x011:
		return uint8(c.TMR1 & 0xFF)
	case addr == 0x012:
		return uint8(c.TMR1 >> 8)
	case addr == 0x013:
		return c.DAN
	case addr == 0x014:
		return c.DSEG
	case addr == 0x018:
		return c.RCSTA
	case addr == 0x019:
		return c.TXREG
	case addr == 0x01A:
		return c.RCREG
	case addr == 0x01C:
		return c.PTR1L
	case addr == 0x01D:
		return c.PTR1H
	case addr == 0x01E:
		return c.PTR2L
	case addr == 0x01F:
		return c.PTR2H
	case inRange(addr, 0x020, 0x06F), inRange(addr, 0x0A0, 0x0EF),
		inRange(addr, 0x120, 0x16F), inRange(addr, 0x1A0, 0x1EF):
		return c.ram.Read(addr)
	case inRange(addr, 0x110, 0x11F), inRange(addr, 0x190, 0x19F):
		return c.ram.Read(addr)
	case inRange(addr, 0x070, 0x07F), inRange(addr, 0x0F0, 0x0FF),
		inRange(addr, 0x170, 0x17F), inRange(addr, 0x1F0, 0x1FF):
		return c.ram.Read(0x070 | (addr & 0xF))
	default:
		return c.fault("unassigned data address", word)
	}
}

func (c *Core) write9(addr uint16, v uint8, word uint16) {
	switch {
	case addr == 0x000 || addr == 0x080 || addr == 0x100 || addr == 0x180:
		if c.FSR&0x7F == 0 {
			return // FSR 0x00/0x80 silently drops the write rather than re-dispatching INDF0 through itself
		}
		c.write9(c.indirectAddr(), v, word)
	case addr == 0x001 || addr == 0x101:
		c.TMR0 = v
		c.tmr0Prescale = 0
	case addr == 0x081 || addr == 0x181:
		c.Option.SetValue(v)
	case addr == 0x002 || addr == 0x082 || addr == 0x102 || addr == 0x182:
		c.PC = uint16(c.PCLATH&0x1F)<<8 | uint16(v)
	case addr == 0x003 || addr == 0x083 || addr == 0x103 || addr == 0x183:
		cur := c.Status.Value() & 0x18
		c.Status.SetValue(cur | (v & 0xE7))
	case addr == 0x004 || addr == 0x084 || addr == 0x104 || addr == 0x184:
		c.FSR = v
	case addr == 0x005:
		c.PortA = v
	case addr == 0x006:
		c.PortB = v
	case addr == 0x007:
		c.PortC = v
	case addr == 0x008:
		c.PortD = v
	case addr == 0x00A || addr == 0x08A || addr == 0x10A || addr == 0x18A:
		c.PCLATH = v
	case addr == 0x00B || addr == 0x08B || addr == 0x10B || addr == 0x18B:
		c.Intcon.SetValue(v)
	case addr == 0x00C:
		c.PIR1.SetValue(v)
	case addr == 0x08C:
		c.PIE1.SetValue(v)
	case addr == 0x00E || addr == 0x08E || addr == 0x10E || addr == 0x18E:
		c.INDF1 = v
	case addr == 0x00F || addr == 0x08F || addr == 0x10F || addr == 0x18F:
		c.INDF2 = v
	case addr == 0x010:
		c.T1CON.SetValue(v)
	case addr == 0x011:
		c.TMR1 = c.TMR1&0xFF00 | uint16(v)
	case addr == 0x012:
		c.TMR1 = c.TMR1&0x00FF | uint16(v)<<8
	case addr == 0x013:
		c.DAN = v
	case addr == 0x014:
		c.DSEG = v
	case addr == 0x018:
		c.RCSTA = v
	case addr == 0x019:
		c.TXREG = v
	case addr == 0x01A:
		c.RCREG = v
	case addr == 0x01C:
		c.PTR1L = v
	case addr == 0x01D:
		c.PTR1H = v
	case addr == 0x01E:
		c.PTR2L = v
	case addr == 0x01F:
		c.PTR2H = v
	case inRange(addr, 0x020, 0x06F), inRange(addr, 0x0A0, 0x0EF),
		inRange(addr, 0x120, 0x16F), inRange(addr, 0x1A0, 0x1EF):
		c.ram.Write(addr, v)
	case inRange(addr, 0x110, 0x11F), inRange(addr, 0x190, 0x19F):
		c.ram.Write(addr, v)
	case inRange(addr, 0x070, 0x07F), inRange(addr, 0x0F0, 0x0FF),
		inRange(addr, 0x170, 0x17F), inRange(addr, 0x1F0, 0x1FF):
		c.ram.Write(0x070|(addr&0xF), v)
	default:
		c.fault("unassigned data address", word)
	}
}

func inRange(addr, lo, hi uint16) bool {
	return addr >= lo && addr <= hi
}
