/*
 * p16sim - CPU state aggregate.
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

// Package cpu is the PIC16F Mid-Range Enhanced instruction-level core: the
// address map, the instruction decoder's execution semantics, the
// Timer0/Timer1/interrupt peripheral tick, and the fetch loop. Every
// operation is a method on *Core; there is no package-level mutable state,
// so a host can run any number of independent cores.
package cpu

import (
	"github.com/rcornwell/p16sim/internal/loader"
	"github.com/rcornwell/p16sim/internal/memory"
	"github.com/rcornwell/p16sim/internal/regs"
)

// stackDepth is the fixed capacity of the hardware return-address stack.
const stackDepth = 8

// returnStack is a fixed-capacity LIFO, push at front / pop from front.
// Pushing past capacity silently rotates out the oldest entry rather than
// trapping, matching PIC silicon (§9 Design Notes).
type returnStack struct {
	data [stackDepth]uint16
	n    int
}

func (s *returnStack) push(v uint16) {
	n := s.n
	if n < stackDepth {
		n++
	}
	for i := n - 1; i > 0; i-- {
		s.data[i] = s.data[i-1]
	}
	s.data[0] = v
	s.n = n
}

// pop reports ok=false on an empty stack; the caller traps.
func (s *returnStack) pop() (v uint16, ok bool) {
	if s.n == 0 {
		return 0, false
	}
	v = s.data[0]
	for i := 0; i < s.n-1; i++ {
		s.data[i] = s.data[i+1]
	}
	s.n--
	return v, true
}

func (s *returnStack) depth() int {
	return s.n
}

// Core is the complete PIC16F-class CPU state: registers, flags, return
// stack, data memory, and the loaded program image.
type Core struct {
	W      uint8
	PC     uint16 // 13-bit value held in 16 bits; see Step for wraparound.
	Status regs.Status
	Option regs.Option
	Intcon regs.Intcon
	PIE1   regs.PIE1
	PIR1   regs.PIR1
	T1CON  regs.T1con

	TMR0   uint8
	TMR1   uint16
	PCLATH uint8
	FSR    uint8

	PortA, PortB, PortC, PortD uint8
	RCSTA, TXREG, RCREG        uint8
	PTR1L, PTR1H               uint8
	PTR2L, PTR2H               uint8
	DAN, DSEG                  uint8
	INDF1, INDF2               uint8

	skipNext bool
	stack    returnStack
	ram      memory.RAM
	program  [loader.ProgramWords]uint16

	tmr0Prescale uint8
	tmr1Prescale uint8

	pendingTrap *Trap
}

// NewCore builds a Core with the given program image loaded and every
// register at its power-on default: all zero except STATUS (TO=PD=1) and
// OPTION_REG (0xFF), per §3's Lifecycle.
func NewCore(img *loader.Image) *Core {
	c := &Core{}
	if img != nil {
		c.program = img.Program
	}
	c.powerOnReset()
	return c
}

// Reset re-initializes every register to its power-on default while
// preserving the loaded program, per §6's reset() contract.
func (c *Core) Reset() {
	program := c.program
	*c = Core{}
	c.program = program
	c.powerOnReset()
}

func (c *Core) powerOnReset() {
	c.Status.SetValue(0b0001_1000) // TO=1, PD=1
	c.Option.SetValue(0xFF)
	c.PC = 0
	c.stack = returnStack{}
	c.pendingTrap = nil
}

// StackDepth reports the current return-stack depth, an observable per §6.
func (c *Core) StackDepth() int {
	return c.stack.depth()
}

// MemorySnapshot returns a copy of the 512-byte data memory, an
// observable per §6.
func (c *Core) MemorySnapshot() [memory.Size]byte {
	return c.ram.Snapshot()
}

// fault records the first trap of the current Step and returns zero, so
// call sites that need a uint8 placeholder value can write
// `return c.fault(...)` without a second statement.
func (c *Core) fault(reason string, word uint16) uint8 {
	if c.pendingTrap == nil {
		c.pendingTrap = &Trap{PC: c.PC, Word: word, Reason: reason}
	}
	return 0
}
