/*
 * p16sim - Running session: a Core plus start/stop control and breakpoints.
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

// Package session wraps a *cpu.Core with the run/stop control the console
// needs: a background goroutine that free-runs the fetch loop until told to
// stop, hits a breakpoint, or traps, and a mutex so the console goroutine can
// safely inspect registers and memory while that loop is running. This plays
// the role the teacher's emu/core.Core.Start/Stop goroutine pair plays for
// the S/370 CPU, generalized to a single free-running core instead of a
// channel-driven multi-device system.
package session

import (
	"sync"

	"github.com/rcornwell/p16sim/internal/cpu"
)

// Session coordinates exclusive access to one Core between the console
// goroutine and the background run loop.
type Session struct {
	mu            sync.Mutex
	core          *cpu.Core
	breakpoints   map[uint16]bool
	running       bool
	stopCh        chan struct{}
	doneCh        chan struct{}
	lastErr       error
	defaultCycles int // run budget Start() uses with no explicit override; <= 0 means unlimited
}

// New wraps core in a Session with no breakpoints set. defaultCycles is the
// run budget a bare Start() (no explicit count) uses; <= 0 means an
// unbounded free-run, per the run configuration file's "cycles" key.
func New(core *cpu.Core, defaultCycles int) *Session {
	return &Session{core: core, breakpoints: map[uint16]bool{}, defaultCycles: defaultCycles}
}

// WithCore runs fn with exclusive access to the underlying Core, safe to
// call whether or not a background run is in progress.
func (s *Session) WithCore(fn func(c *cpu.Core)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.core)
}

// IsRunning reports whether a background run loop is active.
func (s *Session) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// LastError returns the trap, if any, that ended the most recent run.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// AddBreak arms a breakpoint at addr.
func (s *Session) AddBreak(addr uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.breakpoints[addr] = true
}

// RemoveBreak disarms a breakpoint at addr.
func (s *Session) RemoveBreak(addr uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.breakpoints, addr)
}

// Breakpoints lists every armed breakpoint address.
func (s *Session) Breakpoints() []uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	addrs := make([]uint16, 0, len(s.breakpoints))
	for a := range s.breakpoints {
		addrs = append(addrs, a)
	}
	return addrs
}

// StepOnce executes a single instruction cycle. It refuses while a
// background run is active, since single-stepping a core another goroutine
// is also stepping would race.
func (s *Session) StepOnce() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errAlreadyRunning
	}
	s.lastErr = s.core.Step()
	return s.lastErr
}

// Reset reinitializes the Core to its power-on state, refusing while a
// background run is active.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errAlreadyRunning
	}
	s.core.Reset()
	s.lastErr = nil
	return nil
}

// Start launches the background free-run goroutine with the session's
// default cycle budget. It is a no-op if a run is already active.
func (s *Session) Start() {
	s.mu.Lock()
	n := s.defaultCycles
	s.mu.Unlock()
	s.StartCycles(n)
}

// StartCycles launches the background free-run goroutine capped at n
// cycles (n <= 0 means unbounded), overriding the session's default
// budget for this run. It is a no-op if a run is already active.
func (s *Session) StartCycles(n int) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	go s.runLoop(n)
}

// Stop signals the background run loop to halt and waits for it to exit.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	stopCh := s.stopCh
	doneCh := s.doneCh
	s.mu.Unlock()

	close(stopCh)
	<-doneCh
}

func (s *Session) runLoop(maxCycles int) {
	defer close(s.doneCh)
	for count := 0; maxCycles <= 0 || count < maxCycles; count++ {
		select {
		case <-s.stopCh:
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			return
		default:
		}

		s.mu.Lock()
		err := s.core.Step()
		pc := s.core.PC
		hitBreak := s.breakpoints[pc]
		if err != nil {
			s.lastErr = err
		}
		s.mu.Unlock()

		if err != nil || hitBreak {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			return
		}
	}
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

var errAlreadyRunning = sessionError("session is already running")

type sessionError string

func (e sessionError) Error() string { return string(e) }
