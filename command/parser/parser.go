/*
 * p16sim - Console command parser.
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

// Package parser implements the console command language: step, run, stop,
// reset, show, break, unbreak, quit. Commands may be abbreviated down to
// their minimum unambiguous length, the same as the teacher's command/parser
// cmdList did for device commands; this package just has a much smaller
// table since there are no devices to attach, detach, or examine.
package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rcornwell/p16sim/internal/session"
)

// cmdFunc executes one parsed command line against sess. quit tells the
// caller (the console reader) to stop reading further commands.
type cmdFunc func(args []string, sess *session.Session) (quit bool, err error)

type cmdEntry struct {
	name   string
	minLen int
	fn     cmdFunc
	help   string
}

// cmdList is filled in by init: cmdHelp reads cmdList, so listing it in a
// package-level initializer of cmdList would be an initialization cycle.
var cmdList []cmdEntry

func init() {
	cmdList = []cmdEntry{
		{"step", 3, cmdStep, "step [n]          execute n instructions (default 1)"},
		{"run", 1, cmdRun, "run [n]           free-run (optionally capped at n cycles) until breakpoint, trap, or stop"},
		{"stop", 4, cmdStop, "stop              halt a free-run in progress"},
		{"reset", 2, cmdReset, "reset             return the core to its power-on state"},
		{"show", 2, cmdShow, "show [regs|mem|stack]   display core state"},
		{"break", 2, cmdBreak, "break <addr>      set a breakpoint at a hex address"},
		{"unbreak", 2, cmdUnbreak, "unbreak <addr>    clear a breakpoint"},
		{"quit", 1, cmdQuit, "quit              exit the console"},
		{"help", 1, cmdHelp, "help              list commands"},
	}
}

// ProcessCommand scans one console line, matches its leading word against
// cmdList by minimum abbreviation, and runs it.
func ProcessCommand(line string, sess *session.Session) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	entry, err := matchCommand(fields[0])
	if err != nil {
		return false, err
	}
	return entry.fn(fields[1:], sess)
}

// CompleteCmd returns every command name that starts with the whole of line
// (case-insensitive), for liner's tab completion.
func CompleteCmd(line string) []string {
	var out []string
	for _, c := range cmdList {
		if strings.HasPrefix(c.name, strings.ToLower(line)) {
			out = append(out, c.name)
		}
	}
	sort.Strings(out)
	return out
}

func matchCommand(word string) (*cmdEntry, error) {
	word = strings.ToLower(word)
	var matches []*cmdEntry
	for i := range cmdList {
		c := &cmdList[i]
		if strings.HasPrefix(c.name, word) && len(word) >= c.minLen {
			matches = append(matches, c)
			if c.name == word {
				return c, nil
			}
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("unknown command %q", word)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("ambiguous command %q", word)
	}
}

func cmdStep(args []string, sess *session.Session) (bool, error) {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("step: %w", err)
		}
		n = v
	}
	ran, err := stepN(sess, n)
	if err != nil {
		return false, fmt.Errorf("trap after %d cycle(s): %w", ran, err)
	}
	return false, nil
}

func stepN(sess *session.Session, n int) (int, error) {
	for i := 0; i < n; i++ {
		if err := sess.StepOnce(); err != nil {
			return i, err
		}
	}
	return n, nil
}

func cmdRun(args []string, sess *session.Session) (bool, error) {
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("run: %w", err)
		}
		sess.StartCycles(n)
		return false, nil
	}
	sess.Start()
	return false, nil
}

func cmdStop(args []string, sess *session.Session) (bool, error) {
	sess.Stop()
	if err := sess.LastError(); err != nil {
		return false, err
	}
	return false, nil
}

func cmdReset(args []string, sess *session.Session) (bool, error) {
	return false, sess.Reset()
}

func cmdShow(args []string, sess *session.Session) (bool, error) {
	what := "regs"
	if len(args) > 0 {
		what = strings.ToLower(args[0])
	}
	var out string
	switch what {
	case "regs":
		out = showRegs(sess)
	case "mem":
		out = showMem(sess)
	case "stack":
		out = showStack(sess)
	default:
		return false, fmt.Errorf("show: unknown target %q", what)
	}
	fmt.Println(out)
	return false, nil
}

func cmdBreak(args []string, sess *session.Session) (bool, error) {
	if len(args) == 0 {
		return false, fmt.Errorf("break requires an address")
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		return false, err
	}
	sess.AddBreak(addr)
	return false, nil
}

func cmdUnbreak(args []string, sess *session.Session) (bool, error) {
	if len(args) == 0 {
		return false, fmt.Errorf("unbreak requires an address")
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		return false, err
	}
	sess.RemoveBreak(addr)
	return false, nil
}

func cmdQuit(args []string, sess *session.Session) (bool, error) {
	sess.Stop()
	return true, nil
}

func cmdHelp(args []string, sess *session.Session) (bool, error) {
	for _, c := range cmdList {
		fmt.Println("  " + c.help)
	}
	return false, nil
}

func parseAddr(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %w", s, err)
	}
	return uint16(v), nil
}
