/*
 * p16sim - Instruction execution semantics.
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

import "github.com/rcornwell/p16sim/internal/decode"

// execFunc carries out one decoded instruction against a Core. Faults are
// reported through Core.fault rather than a return value, mirroring the
// teacher's table-of-function-pointers dispatch (emu/cpu's opcode table)
// generalized from a [256]func to a map keyed by decode.Op.
type execFunc func(c *Core, ins decode.Instruction)

var opTable = map[decode.Op]execFunc{
	decode.OpNOP:     execNOP,
	decode.OpRETURN:  execRETURN,
	decode.OpRETFIE:  execRETFIE,
	decode.OpMOVWF:   execMOVWF,
	decode.OpCLRW:    execCLRW,
	decode.OpCLRF:    execCLRF,
	decode.OpSUBWF:   execSUBWF,
	decode.OpDECF:    execDECF,
	decode.OpIORWF:   execIORWF,
	decode.OpANDWF:   execANDWF,
	decode.OpXORWF:   execXORWF,
	decode.OpADDWF:   execADDWF,
	decode.OpMOVF:    execMOVF,
	decode.OpCOMF:    execCOMF,
	decode.OpINCF:    execINCF,
	decode.OpDECFSZ:  execDECFSZ,
	decode.OpRRF:     execRRF,
	decode.OpRLF:     execRLF,
	decode.OpSWAPF:   execSWAPF,
	decode.OpINCFSZ:  execINCFSZ,
	decode.OpBCF:     execBCF,
	decode.OpBSF:     execBSF,
	decode.OpBTFSC:   execBTFSC,
	decode.OpBTFSS:   execBTFSS,
	decode.OpCALL:    execCALL,
	decode.OpGOTO:    execGOTO,
	decode.OpMOVLW:   execMOVLW,
	decode.OpRETLW:   execRETLW,
	decode.OpIORLW:   execIORLW,
	decode.OpANDLW:   execANDLW,
	decode.OpXORLW:   execXORLW,
	decode.OpSUBLW:   execSUBLW,
	decode.OpADDLW:   execADDLW,
}

// writeDest stores result in f when d is set, in W otherwise, and updates Z
// (the overwhelming majority of instruction forms only ever touch Z besides
// the arithmetic carries handled separately).
func (c *Core) writeDest(ins decode.Instruction, result uint8) {
	if ins.Dest {
		c.Write(ins.Reg, result)
	} else {
		c.W = result
	}
	c.Status.Z = result == 0
}

func addFlags(a, b uint8) (result uint8, carry, digitCarry bool) {
	sum := uint16(a) + uint16(b)
	digitCarry = (a&0xF)+(b&0xF) > 0xF
	return uint8(sum), sum > 0xFF, digitCarry
}

// subFlags computes a-b with PIC borrow polarity: C=1 and DC=1 mean no
// borrow occurred, the opposite sense from a plain subtract-with-borrow.
func subFlags(a, b uint8) (result uint8, carry, digitCarry bool) {
	return a - b, a >= b, (a & 0xF) >= (b & 0xF)
}

func execNOP(c *Core, ins decode.Instruction) {}

func execRETURN(c *Core, ins decode.Instruction) {
	addr, ok := c.stack.pop()
	if !ok {
		c.fault("RETURN: return stack underflow", ins.Word)
		return
	}
	c.PC = addr
}

func execRETFIE(c *Core, ins decode.Instruction) {
	addr, ok := c.stack.pop()
	if !ok {
		c.fault("RETFIE: return stack underflow", ins.Word)
		return
	}
	c.PC = addr
	c.Intcon.GIE = true
}

func execMOVWF(c *Core, ins decode.Instruction) {
	c.Write(ins.Reg, c.W)
}

func execCLRW(c *Core, ins decode.Instruction) {
	c.W = 0
	c.Status.Z = true
}

func execCLRF(c *Core, ins decode.Instruction) {
	c.Write(ins.Reg, 0)
	c.Status.Z = true
}

func execSUBWF(c *Core, ins decode.Instruction) {
	result, carry, dc := subFlags(c.Read(ins.Reg), c.W)
	c.Status.C = carry
	c.Status.DC = dc
	c.writeDest(ins, result)
}

func execDECF(c *Core, ins decode.Instruction) {
	c.writeDest(ins, c.Read(ins.Reg)-1)
}

func execIORWF(c *Core, ins decode.Instruction) {
	c.writeDest(ins, c.Read(ins.Reg)|c.W)
}

func execANDWF(c *Core, ins decode.Instruction) {
	c.writeDest(ins, c.Read(ins.Reg)&c.W)
}

func execXORWF(c *Core, ins decode.Instruction) {
	c.writeDest(ins, c.Read(ins.Reg)^c.W)
}

func execADDWF(c *Core, ins decode.Instruction) {
	result, carry, dc := addFlags(c.Read(ins.Reg), c.W)
	c.Status.C = carry
	c.Status.DC = dc
	c.writeDest(ins, result)
}

func execMOVF(c *Core, ins decode.Instruction) {
	c.writeDest(ins, c.Read(ins.Reg))
}

func execCOMF(c *Core, ins decode.Instruction) {
	c.writeDest(ins, ^c.Read(ins.Reg))
}

func execINCF(c *Core, ins decode.Instruction) {
	c.writeDest(ins, c.Read(ins.Reg)+1)
}

// execDECFSZ and execINCFSZ do not touch Z/C/DC on real silicon; only the
// skip is observable.
func execDECFSZ(c *Core, ins decode.Instruction) {
	result := c.Read(ins.Reg) - 1
	if ins.Dest {
		c.Write(ins.Reg, result)
	} else {
		c.W = result
	}
	if result == 0 {
		c.skipNext = true
	}
}

func execRRF(c *Core, ins decode.Instruction) {
	v := c.Read(ins.Reg)
	newCarry := v&0x01 != 0
	var hi uint8
	if c.Status.C {
		hi = 0x80
	}
	result := (v >> 1) | hi
	c.Status.C = newCarry
	if ins.Dest {
		c.Write(ins.Reg, result)
	} else {
		c.W = result
	}
}

func execRLF(c *Core, ins decode.Instruction) {
	v := c.Read(ins.Reg)
	newCarry := v&0x80 != 0
	var lo uint8
	if c.Status.C {
		lo = 0x01
	}
	result := (v << 1) | lo
	c.Status.C = newCarry
	if ins.Dest {
		c.Write(ins.Reg, result)
	} else {
		c.W = result
	}
}

func execSWAPF(c *Core, ins decode.Instruction) {
	v := c.Read(ins.Reg)
	result := (v << 4) | (v >> 4)
	if ins.Dest {
		c.Write(ins.Reg, result)
	} else {
		c.W = result
	}
}

func execINCFSZ(c *Core, ins decode.Instruction) {
	result := c.Read(ins.Reg) + 1
	if ins.Dest {
		c.Write(ins.Reg, result)
	} else {
		c.W = result
	}
	if result == 0 {
		c.skipNext = true
	}
}

func execBCF(c *Core, ins decode.Instruction) {
	c.Write(ins.Reg, c.Read(ins.Reg)&^(1<<ins.Bit))
}

func execBSF(c *Core, ins decode.Instruction) {
	c.Write(ins.Reg, c.Read(ins.Reg)|(1<<ins.Bit))
}

func execBTFSC(c *Core, ins decode.Instruction) {
	if c.Read(ins.Reg)&(1<<ins.Bit) == 0 {
		c.skipNext = true
	}
}

func execBTFSS(c *Core, ins decode.Instruction) {
	if c.Read(ins.Reg)&(1<<ins.Bit) != 0 {
		c.skipNext = true
	}
}

// branchTarget applies the silicon-correct PCLATH<4:3> high-bits mask for
// CALL/GOTO. The Rust reference this core is modeled on instead computes
// "pclath & 0x18 << 7" -- Rust parses that as pclath & (0x18 << 7), i.e.
// pclath & 0x0C00, which is always zero for an 8-bit PCLATH, so the bank
// bits never reach bits 12:11 of PC. That bug is not reproduced here.
func (c *Core) branchTarget(lit uint16) uint16 {
	return uint16(c.PCLATH&0x18)<<8 | (lit & 0x7FF)
}

func execCALL(c *Core, ins decode.Instruction) {
	c.stack.push(c.PC)
	c.PC = c.branchTarget(ins.Lit)
}

func execGOTO(c *Core, ins decode.Instruction) {
	c.PC = c.branchTarget(ins.Lit)
}

func execMOVLW(c *Core, ins decode.Instruction) {
	c.W = uint8(ins.Lit)
}

func execRETLW(c *Core, ins decode.Instruction) {
	addr, ok := c.stack.pop()
	if !ok {
		c.fault("RETLW: return stack underflow", ins.Word)
		return
	}
	c.W = uint8(ins.Lit)
	c.PC = addr
}

func execIORLW(c *Core, ins decode.Instruction) {
	c.W |= uint8(ins.Lit)
	c.Status.Z = c.W == 0
}

func execANDLW(c *Core, ins decode.Instruction) {
	c.W &= uint8(ins.Lit)
	c.Status.Z = c.W == 0
}

func execXORLW(c *Core, ins decode.Instruction) {
	c.W ^= uint8(ins.Lit)
	c.Status.Z = c.W == 0
}

func execSUBLW(c *Core, ins decode.Instruction) {
	result, carry, dc := subFlags(uint8(ins.Lit), c.W)
	c.Status.C = carry
	c.Status.DC = dc
	c.W = result
	c.Status.Z = result == 0
}

func execADDLW(c *Core, ins decode.Instruction) {
	result, carry, dc := addFlags(c.W, uint8(ins.Lit))
	c.Status.C = carry
	c.Status.DC = dc
	c.W = result
	c.Status.Z = result == 0
}
