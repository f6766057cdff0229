/*
 * p16sim - Timer0, Timer1, and interrupt dispatch.
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

// tickTimers advances Timer0 and Timer1 (when enabled) by one cycle,
// applying their respective prescalers and latching the matching interrupt
// flag on rollover. Timer0's prescaler advances every cycle regardless of
// OPTION_REG T0CS: this core has no external T0CKI pin to source an alternate
// clock from, so the instruction clock is the only source that can ever drive
// it. The Timer0 ratio is always 1<<PS; PSA is not consulted.
func (c *Core) tickTimers() {
	c.tmr0Prescale++
	if int(c.tmr0Prescale) >= c.Option.Prescale() {
		c.tmr0Prescale = 0
		if c.TMR0 == 0xFF {
			c.TMR0 = 0
			c.Intcon.TMR0IF = true
		} else {
			c.TMR0++
		}
	}

	if c.T1CON.TMR1ON {
		c.tmr1Prescale++
		if int(c.tmr1Prescale) >= c.T1CON.Prescale() {
			c.tmr1Prescale = 0
			if c.TMR1 == 0xFFFF {
				c.TMR1 = 0
				c.PIR1.TMR1 = true
			} else {
				c.TMR1++
			}
		}
	}
}

// dispatchInterrupt vectors to 0x0004 when an enabled source has its flag
// set and GIE is on, pushing the return address and clearing GIE so a
// handler's own RETFIE can restore it. No source flags are cleared here:
// a handler clears them itself, as on real silicon.
func (c *Core) dispatchInterrupt() {
	if !c.Intcon.GIE {
		return
	}
	pending := (c.Intcon.TMR0IE && c.Intcon.TMR0IF) ||
		(c.Intcon.INTE && c.Intcon.INTF) ||
		(c.Intcon.RBIE && c.Intcon.RBIF) ||
		(c.PIE1.TMR1 && c.PIR1.TMR1)
	if !pending {
		return
	}
	c.stack.push(c.PC)
	c.Intcon.GIE = false
	c.PC = 0x0004
}
