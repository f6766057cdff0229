/*
 * p16sim - Session tests.
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

package session

import (
	"testing"
	"time"

	"github.com/rcornwell/p16sim/internal/cpu"
	"github.com/rcornwell/p16sim/internal/loader"
)

func newTestCore(words ...uint16) *cpu.Core {
	img := &loader.Image{}
	copy(img.Program[:], words)
	return cpu.NewCore(img)
}

func waitUntilStopped(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if !s.IsRunning() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("session never stopped")
}

func TestStartCyclesStopsAtBudget(t *testing.T) {
	// MOVLW 0x05, looping forever: with no trap and no breakpoint, a
	// bounded run must still halt once it hits its cycle budget.
	s := New(newTestCore(0x3005, 0x3005, 0x3005, 0x3005), 0)
	s.StartCycles(3)
	waitUntilStopped(t, s)
	var pc uint16
	s.WithCore(func(c *cpu.Core) { pc = c.PC })
	if pc != 3 {
		t.Errorf("PC after a 3-cycle budget = %#04x, want 0x0003", pc)
	}
}

func TestStartUsesDefaultCycles(t *testing.T) {
	s := New(newTestCore(0x3005, 0x3005, 0x3005, 0x3005), 2)
	s.Start()
	waitUntilStopped(t, s)
	var pc uint16
	s.WithCore(func(c *cpu.Core) { pc = c.PC })
	if pc != 2 {
		t.Errorf("PC after default-cycle run = %#04x, want 0x0002", pc)
	}
}

func TestStartCyclesZeroRunsUntilStop(t *testing.T) {
	s := New(newTestCore(0x3005, 0x2800), 0) // MOVLW 0x05; GOTO 0x000 (infinite loop)
	s.StartCycles(0)
	time.Sleep(10 * time.Millisecond)
	if !s.IsRunning() {
		t.Fatal("expected an unbounded run to still be in progress")
	}
	s.Stop()
	if s.IsRunning() {
		t.Error("expected Stop to halt the run loop")
	}
}

func TestBreakpointHaltsRun(t *testing.T) {
	s := New(newTestCore(0x3005, 0x3005, 0x3005, 0x3005), 0)
	s.AddBreak(0x0002)
	s.StartCycles(0)
	waitUntilStopped(t, s)
	var pc uint16
	s.WithCore(func(c *cpu.Core) { pc = c.PC })
	if pc != 2 {
		t.Errorf("PC after hitting breakpoint at 0x0002 = %#04x, want 0x0002", pc)
	}
}
