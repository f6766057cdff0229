/*
 * p16sim - Instruction decoder.
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

// Package decode turns a 14-bit program word into a tagged Instruction.
// Decode is pure and total: every possible uint16 input produces an
// Instruction, with recognized-but-unsupported and genuinely unassigned
// encodings both tagged OpTrap rather than panicking (the executor is the
// only place a trap becomes an error).
package decode

// Op tags the ~33 recognized instruction forms plus OpTrap.
type Op int

const (
	OpTrap Op = iota
	OpNOP
	OpRETURN
	OpRETFIE
	OpMOVWF
	OpCLRW
	OpCLRF
	OpSUBWF
	OpDECF
	OpIORWF
	OpANDWF
	OpXORWF
	OpADDWF
	OpMOVF
	OpCOMF
	OpINCF
	OpDECFSZ
	OpRRF
	OpRLF
	OpSWAPF
	OpINCFSZ
	OpBCF
	OpBSF
	OpBTFSC
	OpBTFSS
	OpCALL
	OpGOTO
	OpMOVLW
	OpRETLW
	OpIORLW
	OpANDLW
	OpXORLW
	OpSUBLW
	OpADDLW
)

// Instruction is the decoded form of one program word: a Kind tag plus
// whichever payload fields that form uses.
type Instruction struct {
	Op     Op
	Reg    uint8  // f: 7-bit file register address
	Dest   bool   // d: true writes the result back to Reg, false to W
	Bit    uint8  // b: 0..7 bit position for BCF/BSF/BTFSC/BTFSS
	Lit    uint16 // k: literal, 8 bits for *LW forms, 11 bits for CALL/GOTO
	Word   uint16 // the original program word, for trap diagnostics
	Reason string // populated only when Op == OpTrap
}

// Decode maps a 14-bit word (high bits beyond 14 are ignored) to its
// Instruction.
func Decode(word uint16) Instruction {
	word &= 0x3FFF
	hi := uint8((word >> 8) & 0x3F)

	switch {
	case hi <= 0x0F:
		return decodeGroup0(word, hi)
	case hi <= 0x1F:
		return decodeBitOp(word)
	case hi <= 0x2F:
		return decodeCallGoto(word)
	default:
		return decodeLiteral(word)
	}
}

func trap(word uint16, reason string) Instruction {
	return Instruction{Op: OpTrap, Word: word, Reason: reason}
}

func decodeGroup0(word uint16, hi uint8) Instruction {
	reg := uint8(word & 0x7F)
	dest := (word>>7)&1 == 1

	switch hi {
	case 0x00:
		low := uint8(word & 0xFF)
		switch low {
		case 0x00, 0x20, 0x40, 0x60:
			return Instruction{Op: OpNOP, Word: word}
		case 0x08:
			return Instruction{Op: OpRETURN, Word: word}
		case 0x09:
			return Instruction{Op: OpRETFIE, Word: word}
		case 0x64:
			return trap(word, "CLRWDT: watchdog not implemented")
		case 0x63:
			return trap(word, "SLEEP: low-power mode not implemented")
		default:
			if low&0x80 != 0 {
				return Instruction{Op: OpMOVWF, Reg: reg, Word: word}
			}
			return trap(word, "unassigned opcode")
		}
	case 0x01:
		if !dest {
			return Instruction{Op: OpCLRW, Word: word}
		}
		return Instruction{Op: OpCLRF, Reg: reg, Word: word}
	case 0x02:
		return Instruction{Op: OpSUBWF, Reg: reg, Dest: dest, Word: word}
	case 0x03:
		return Instruction{Op: OpDECF, Reg: reg, Dest: dest, Word: word}
	case 0x04:
		return Instruction{Op: OpIORWF, Reg: reg, Dest: dest, Word: word}
	case 0x05:
		return Instruction{Op: OpANDWF, Reg: reg, Dest: dest, Word: word}
	case 0x06:
		return Instruction{Op: OpXORWF, Reg: reg, Dest: dest, Word: word}
	case 0x07:
		return Instruction{Op: OpADDWF, Reg: reg, Dest: dest, Word: word}
	case 0x08:
		return Instruction{Op: OpMOVF, Reg: reg, Dest: dest, Word: word}
	case 0x09:
		return Instruction{Op: OpCOMF, Reg: reg, Dest: dest, Word: word}
	case 0x0A:
		return Instruction{Op: OpINCF, Reg: reg, Dest: dest, Word: word}
	case 0x0B:
		return Instruction{Op: OpDECFSZ, Reg: reg, Dest: dest, Word: word}
	case 0x0C:
		return Instruction{Op: OpRRF, Reg: reg, Dest: dest, Word: word}
	case 0x0D:
		return Instruction{Op: OpRLF, Reg: reg, Dest: dest, Word: word}
	case 0x0E:
		return Instruction{Op: OpSWAPF, Reg: reg, Dest: dest, Word: word}
	case 0x0F:
		return Instruction{Op: OpINCFSZ, Reg: reg, Dest: dest, Word: word}
	default:
		return trap(word, "unassigned opcode")
	}
}

func decodeBitOp(word uint16) Instruction {
	reg := uint8(word & 0x7F)
	bit := uint8((word >> 7) & 0x7)
	sel := (word >> 10) & 0x3

	var op Op
	switch sel {
	case 0:
		op = OpBCF
	case 1:
		op = OpBSF
	case 2:
		op = OpBTFSC
	default:
		op = OpBTFSS
	}
	return Instruction{Op: op, Reg: reg, Bit: bit, Word: word}
}

func decodeCallGoto(word uint16) Instruction {
	lit := word & 0x7FF
	if (word>>11)&1 == 0 {
		return Instruction{Op: OpCALL, Lit: lit, Word: word}
	}
	return Instruction{Op: OpGOTO, Lit: lit, Word: word}
}

func decodeLiteral(word uint16) Instruction {
	opcd := (word >> 8) & 0xF
	lit := word & 0xFF

	switch opcd {
	case 0x0, 0x1, 0x2, 0x3:
		return Instruction{Op: OpMOVLW, Lit: lit, Word: word}
	case 0x4, 0x5, 0x6, 0x7:
		return Instruction{Op: OpRETLW, Lit: lit, Word: word}
	case 0x8:
		return Instruction{Op: OpIORLW, Lit: lit, Word: word}
	case 0x9:
		return Instruction{Op: OpANDLW, Lit: lit, Word: word}
	case 0xA:
		return Instruction{Op: OpXORLW, Lit: lit, Word: word}
	case 0xC, 0xD:
		return Instruction{Op: OpSUBLW, Lit: lit, Word: word}
	case 0xE, 0xF:
		return Instruction{Op: OpADDLW, Lit: lit, Word: word}
	default:
		return trap(word, "unassigned opcode")
	}
}
