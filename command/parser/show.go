/*
 * p16sim - "show" command rendering.
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

package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rcornwell/p16sim/internal/cpu"
	"github.com/rcornwell/p16sim/internal/session"
)

func showRegs(sess *session.Session) string {
	var b strings.Builder
	sess.WithCore(func(c *cpu.Core) {
		fmt.Fprintf(&b, "PC=%#04x W=%#02x PCLATH=%#02x FSR=%#02x\n", c.PC, c.W, c.PCLATH, c.FSR)
		fmt.Fprintf(&b, "STATUS=%#02x (Z=%v C=%v DC=%v RP1=%v RP0=%v IRP=%v)\n",
			c.Status.Value(), c.Status.Z, c.Status.C, c.Status.DC, c.Status.RP1, c.Status.RP0, c.Status.IRP)
		fmt.Fprintf(&b, "INTCON=%#02x OPTION=%#02x\n", c.Intcon.Value(), c.Option.Value())
		fmt.Fprintf(&b, "TMR0=%#02x TMR1=%#04x\n", c.TMR0, c.TMR1)
	})
	return strings.TrimRight(b.String(), "\n")
}

func showMem(sess *session.Session) string {
	var b strings.Builder
	sess.WithCore(func(c *cpu.Core) {
		snap := c.MemorySnapshot()
		for base := 0; base < len(snap); base += 16 {
			fmt.Fprintf(&b, "%#04x:", base)
			for i := 0; i < 16 && base+i < len(snap); i++ {
				fmt.Fprintf(&b, " %02x", snap[base+i])
			}
			b.WriteByte('\n')
		}
	})
	return strings.TrimRight(b.String(), "\n")
}

func showStack(sess *session.Session) string {
	var depth int
	sess.WithCore(func(c *cpu.Core) { depth = c.StackDepth() })
	breaks := sess.Breakpoints()
	sort.Slice(breaks, func(i, j int) bool { return breaks[i] < breaks[j] })
	var b strings.Builder
	fmt.Fprintf(&b, "return stack depth: %d\n", depth)
	fmt.Fprintf(&b, "breakpoints: %v", breaks)
	return b.String()
}
