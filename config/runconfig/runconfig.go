/*
 * p16sim - Run configuration file parser.
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

// Package runconfig parses the run configuration file: one "key value" pair
// per line, '#' starts a trailing comment. The line scanner (skipSpace,
// getName, parseQuoteString) follows the same hand-rolled-recursive-descent
// shape as the teacher's device config parser, trimmed from a device-model
// registry down to this program's small fixed set of keys.
package runconfig

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// Config is the result of parsing a run configuration file.
type Config struct {
	ProgramPath string
	Cycles      int
	Breakpoints []uint16
	LogPath     string
	LogLevel    string
}

// Error reports a malformed configuration line, carrying its 1-based line
// number in the same style as loader.Error.
type Error struct {
	Line   int
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config error at line %d: %s", e.Line, e.Reason)
}

// Load reads and parses a run configuration file from path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := &Config{}
	scanner := bufio.NewScanner(f)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		ol := optionLine{line: scanner.Text()}
		if err := ol.apply(cfg); err != nil {
			return nil, &Error{Line: lineNumber, Reason: err.Error()}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// optionLine scans one configuration line, tracking position the way the
// teacher's configparser.optionLine does.
type optionLine struct {
	line string
	pos  int
}

func (ol *optionLine) apply(cfg *Config) error {
	ol.skipSpace()
	if ol.isEOL() {
		return nil
	}

	key := ol.getName()
	if key == "" {
		return fmt.Errorf("expected a key, found %q", ol.line)
	}
	ol.skipSpace()

	switch strings.ToLower(key) {
	case "program":
		v, ok := ol.parseQuoteString()
		if !ok {
			return fmt.Errorf("program requires a path")
		}
		cfg.ProgramPath = v
	case "cycles":
		v, ok := ol.parseQuoteString()
		if !ok {
			return fmt.Errorf("cycles requires a count")
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("cycles: %w", err)
		}
		cfg.Cycles = n
	case "break":
		v, ok := ol.parseQuoteString()
		if !ok {
			return fmt.Errorf("break requires an address")
		}
		addr, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(v), "0x"), 16, 16)
		if err != nil {
			return fmt.Errorf("break: %w", err)
		}
		cfg.Breakpoints = append(cfg.Breakpoints, uint16(addr))
	case "log":
		v, ok := ol.parseQuoteString()
		if !ok {
			return fmt.Errorf("log requires a path")
		}
		cfg.LogPath = v
	case "loglevel":
		v, ok := ol.parseQuoteString()
		if !ok {
			return fmt.Errorf("loglevel requires a value")
		}
		cfg.LogLevel = v
	default:
		return fmt.Errorf("unknown option %q", key)
	}
	return nil
}

func (ol *optionLine) skipSpace() {
	for !ol.isEOL() && unicode.IsSpace(rune(ol.line[ol.pos])) {
		ol.pos++
	}
}

func (ol *optionLine) isEOL() bool {
	return ol.pos >= len(ol.line) || ol.line[ol.pos] == '#'
}

func (ol *optionLine) getName() string {
	start := ol.pos
	for !ol.isEOL() && (unicode.IsLetter(rune(ol.line[ol.pos])) || unicode.IsNumber(rune(ol.line[ol.pos]))) {
		ol.pos++
	}
	return ol.line[start:ol.pos]
}

// parseQuoteString reads either a "quoted string" or a bare run of
// non-space characters, per the teacher's parser.
func (ol *optionLine) parseQuoteString() (string, bool) {
	ol.skipSpace()
	if ol.isEOL() {
		return "", false
	}
	if ol.line[ol.pos] == '"' {
		ol.pos++
		start := ol.pos
		for ol.pos < len(ol.line) && ol.line[ol.pos] != '"' {
			ol.pos++
		}
		if ol.pos >= len(ol.line) {
			return "", false
		}
		v := ol.line[start:ol.pos]
		ol.pos++
		return v, true
	}
	start := ol.pos
	for !ol.isEOL() && !unicode.IsSpace(rune(ol.line[ol.pos])) {
		ol.pos++
	}
	return ol.line[start:ol.pos], true
}
