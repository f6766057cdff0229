package runconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "run.cfg")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadParsesAllKeys(t *testing.T) {
	path := writeTemp(t, `
# sample run config
program "blink.hex"
cycles 1000
break 0x0010
break 0x20
log "run.log"
loglevel debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ProgramPath != "blink.hex" {
		t.Errorf("ProgramPath = %q, want blink.hex", cfg.ProgramPath)
	}
	if cfg.Cycles != 1000 {
		t.Errorf("Cycles = %d, want 1000", cfg.Cycles)
	}
	if len(cfg.Breakpoints) != 2 || cfg.Breakpoints[0] != 0x10 || cfg.Breakpoints[1] != 0x20 {
		t.Errorf("Breakpoints = %v, want [0x10 0x20]", cfg.Breakpoints)
	}
	if cfg.LogPath != "run.log" {
		t.Errorf("LogPath = %q, want run.log", cfg.LogPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadUnquotedValues(t *testing.T) {
	path := writeTemp(t, "program blink.hex\ncycles 50\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ProgramPath != "blink.hex" || cfg.Cycles != 50 {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeTemp(t, "bogus 1\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unknown key")
	}
}

func TestLoadRejectsBadBreakAddress(t *testing.T) {
	path := writeTemp(t, "break zzzz\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a malformed break address")
	}
}
