/*
 * p16sim - The fetch/decode/execute loop.
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

// Step runs exactly one instruction cycle: peripheral tick and interrupt
// dispatch, fetch, PC advance, decode, execute. It returns a *Trap when the
// cycle cannot complete (unassigned opcode, unmapped data address, return
// stack underflow); the Core should not be stepped again without Reset.
func (c *Core) Step() error {
	c.pendingTrap = nil

	c.tickTimers()
	c.dispatchInterrupt()

	word := uint16(0)
	if !c.skipNext {
		word = c.program[int(c.PC)%len(c.program)]
	}
	c.PC = (c.PC + 1) & 0x1FFF
	c.skipNext = false

	ins := decode.Decode(word)
	if ins.Op == decode.OpTrap {
		return &Trap{PC: c.PC, Word: ins.Word, Reason: ins.Reason}
	}

	fn, ok := opTable[ins.Op]
	if !ok {
		return &Trap{PC: c.PC, Word: ins.Word, Reason: "no executor registered for this op"}
	}
	fn(c, ins)

	if c.pendingTrap != nil {
		return c.pendingTrap
	}
	return nil
}

// Run steps the core up to n times, stopping early and returning the
// number of cycles actually executed if a Step fails. n <= 0 means run
// until Step returns an error, with no cycle budget at all.
func (c *Core) Run(n int) (int, error) {
	if n <= 0 {
		for i := 0; ; i++ {
			if err := c.Step(); err != nil {
				return i, err
			}
		}
	}
	for i := 0; i < n; i++ {
		if err := c.Step(); err != nil {
			return i, err
		}
	}
	return n, nil
}
