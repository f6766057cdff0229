/*
 * p16sim - Main process.
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

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/p16sim/command/reader"
	"github.com/rcornwell/p16sim/config/runconfig"
	"github.com/rcornwell/p16sim/internal/cpu"
	"github.com/rcornwell/p16sim/internal/loader"
	"github.com/rcornwell/p16sim/internal/session"
	logger "github.com/rcornwell/p16sim/util/logger"
)

var Logger *slog.Logger

func main() {
	optProgram := getopt.StringLong("program", 'p', "", "Intel HEX firmware image")
	optConfig := getopt.StringLong("config", 'c', "", "Run configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optLogLevel := getopt.StringLong("loglevel", 'L', "", "Log level (debug, info, warn, error)")
	optCycles := getopt.IntLong("cycles", 'n', 0, "Cycle budget for 'run' with no explicit count (0 = config file's value, else unlimited)")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	cfg := &runconfig.Config{}
	if *optConfig != "" {
		c, err := runconfig.Load(*optConfig)
		if err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
		cfg = c
	}

	logPath := *optLogFile
	if logPath == "" {
		logPath = cfg.LogPath
	}
	logLevel := *optLogLevel
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}

	var file *os.File
	if logPath != "" {
		file, _ = os.Create(logPath)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(parseLogLevel(logLevel))
	debug := programLevel.Level() <= slog.LevelDebug
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, &debug))
	slog.SetDefault(Logger)

	Logger.Info("p16sim started")

	programPath := *optProgram
	if programPath == "" {
		programPath = cfg.ProgramPath
	}
	if programPath == "" {
		Logger.Error("please specify a firmware image with --program or a config file's \"program\" key")
		os.Exit(1)
	}

	img, err := loader.LoadFile(programPath)
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}

	cycles := *optCycles
	if cycles == 0 {
		cycles = cfg.Cycles
	}

	core := cpu.NewCore(img)
	sess := session.New(core, cycles)
	for _, addr := range cfg.Breakpoints {
		sess.AddBreak(addr)
	}

	// Shut the background run loop down cleanly on SIGINT/SIGTERM, mirroring
	// the teacher's graceful-shutdown signal handling but without the
	// telnet/channel servers this single-core emulator has no use for.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		Logger.Info("shutting down")
		sess.Stop()
		os.Exit(0)
	}()

	reader.ConsoleReader(sess)

	Logger.Info("console exited")
}

// parseLogLevel maps a run configuration / flag log level name to its
// slog.Level, defaulting to Debug (the teacher's own default) for an empty
// or unrecognized value.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
