package cpu

import (
	"testing"

	"github.com/rcornwell/p16sim/internal/loader"
)

func programOf(words ...uint16) *loader.Image {
	img := &loader.Image{}
	copy(img.Program[:], words)
	return img
}

func TestEndToEndAddwfScenario(t *testing.T) {
	// MOVLW 0x05; MOVWF 0x20; MOVLW 0x03; ADDWF 0x20,1
	c := NewCore(programOf(0x3005, 0x00A0, 0x3003, 0x07A0))
	if _, err := c.Run(4); err != nil {
		t.Fatalf("unexpected trap: %v", err)
	}
	if got := c.MemorySnapshot()[0x20]; got != 0x08 {
		t.Errorf("file[0x20] = %#02x, want 0x08", got)
	}
	if c.W != 0x03 {
		t.Errorf("W = %#02x, want 0x03", c.W)
	}
	if c.Status.Z || c.Status.C || c.Status.DC {
		t.Errorf("flags Z=%v C=%v DC=%v, want all false", c.Status.Z, c.Status.C, c.Status.DC)
	}
}

func TestCallReturnRoundTrip(t *testing.T) {
	// 0: CALL 0x0003; 1: GOTO 0x0001 (infinite loop if CALL failed)
	// 3: MOVLW 0x11; 4: RETURN
	c := NewCore(programOf(
		0x2003, // CALL 0x003
		0x2801, // GOTO 0x001
		0x0000,
		0x3011, // MOVLW 0x11
		0x0008, // RETURN
	))
	if _, err := c.Run(3); err != nil {
		t.Fatalf("unexpected trap: %v", err)
	}
	if c.W != 0x11 {
		t.Errorf("W = %#02x, want 0x11", c.W)
	}
	if c.PC != 1 {
		t.Errorf("PC after RETURN = %#04x, want 0x0001 (the instruction after CALL)", c.PC)
	}
	if c.StackDepth() != 0 {
		t.Errorf("stack depth = %d, want 0 after RETURN", c.StackDepth())
	}
}

func TestReturnStackUnderflowTraps(t *testing.T) {
	c := NewCore(programOf(0x0008)) // RETURN with nothing pushed
	_, err := c.Run(1)
	if err == nil {
		t.Fatal("expected a trap on RETURN with an empty stack")
	}
	var trap *Trap
	if !asTrap(err, &trap) {
		t.Fatalf("expected *cpu.Trap, got %T", err)
	}
}

func TestRunWithNonPositiveCountRunsUntilError(t *testing.T) {
	// MOVLW 0x05 in a loop, followed by a RETURN with nothing pushed: with
	// no cycle budget, Run must keep stepping past however many harmless
	// cycles it takes to reach the trap rather than returning immediately.
	c := NewCore(programOf(0x3005, 0x3005, 0x3005, 0x0008))
	ran, err := c.Run(0)
	if err == nil {
		t.Fatal("expected Run(0) to run until the RETURN trap")
	}
	if ran != 3 {
		t.Errorf("Run(0) ran = %d cycles, want 3 (stopping on the 4th, trapping)", ran)
	}
}

func TestReturnStackOverflowRotatesRatherThanTraps(t *testing.T) {
	c := NewCore(programOf(0x2000)) // CALL 0x000, loops on itself
	for i := 0; i < 9; i++ {
		if _, err := c.Run(1); err != nil {
			t.Fatalf("CALL should never trap, got: %v", err)
		}
	}
	if c.StackDepth() != 8 {
		t.Errorf("stack depth = %d, want capped at 8", c.StackDepth())
	}
}

func TestUnassignedDataAddressTraps(t *testing.T) {
	// MOVWF 0x09 -- 0x009 is listed unassigned in every bank.
	c := NewCore(programOf(0x0089))
	_, err := c.Run(1)
	if err == nil {
		t.Fatal("expected a trap writing an unassigned data address")
	}
}

func TestDecodeTrapSurfacesAsStepError(t *testing.T) {
	c := NewCore(programOf(0x0064)) // CLRWDT
	_, err := c.Run(1)
	if err == nil {
		t.Fatal("expected a trap decoding CLRWDT")
	}
}

func TestBranchTargetUsesCorrectedPclathMask(t *testing.T) {
	c := NewCore(programOf(0x2100)) // CALL 0x100 (same target computation as GOTO)
	c.PCLATH = 0x18
	if _, err := c.Run(1); err != nil {
		t.Fatalf("unexpected trap: %v", err)
	}
	want := uint16(0x18)<<8 | 0x100
	if c.PC != want {
		t.Errorf("PC = %#04x, want %#04x", c.PC, want)
	}
}

func TestBankedRamWriteAndRead(t *testing.T) {
	c := NewCore(programOf(
		0x3055,                 // MOVLW 0x55
		uint16(0x00)<<8|0x80|0x20, // MOVWF 0x20 (bank 0)
	))
	if _, err := c.Run(2); err != nil {
		t.Fatalf("unexpected trap: %v", err)
	}
	if c.Read(0x20) != 0x55 {
		t.Errorf("Read(0x20) = %#02x, want 0x55", c.Read(0x20))
	}
}

func TestSharedRamAliasesAcrossBanks(t *testing.T) {
	c := NewCore(programOf(0))
	c.Write(0x70, 0xAB) // bank0 shared region
	c.Status.RP1 = true
	c.Status.RP0 = true // bank3
	if got := c.Read(0x70); got != 0xAB {
		t.Errorf("bank3 offset 0x70 = %#02x, want 0xAB (shared with bank0)", got)
	}
}

func TestIndirectAccessWithFSRZeroDoesNotRecurse(t *testing.T) {
	c := NewCore(programOf(0))
	c.FSR = 0
	c.Write(0x00, 0xAB) // MOVWF-style write to INDF0 with FSR=0
	if got := c.Read(0x00); got != 0 {
		t.Errorf("INDF0 read with FSR=0 = %#02x, want 0 (write silently dropped)", got)
	}
}

func TestInterruptDispatchGatedOnGIE(t *testing.T) {
	c := NewCore(programOf(0x0000, 0x0000))
	c.Intcon.TMR0IE = true
	c.Intcon.TMR0IF = true
	c.Intcon.GIE = false
	if _, err := c.Run(1); err != nil {
		t.Fatalf("unexpected trap: %v", err)
	}
	if c.PC == 0x0004 {
		t.Error("interrupt dispatched while GIE was clear")
	}

	c2 := NewCore(programOf(0x0000, 0x0000))
	c2.Intcon.TMR0IE = true
	c2.Intcon.TMR0IF = true
	c2.Intcon.GIE = true
	if _, err := c2.Run(1); err != nil {
		t.Fatalf("unexpected trap: %v", err)
	}
	if c2.PC != 0x0005 {
		t.Errorf("PC after interrupt dispatch + one fetch = %#04x, want 0x0005", c2.PC)
	}
	if c2.Intcon.GIE {
		t.Error("GIE should be cleared on interrupt entry")
	}
	if c2.StackDepth() != 1 {
		t.Errorf("stack depth after dispatch = %d, want 1", c2.StackDepth())
	}
}

func TestTimer0RolloverSetsFlag(t *testing.T) {
	c := NewCore(programOf(0, 0, 0, 0, 0))
	c.Option.PS = 0 // prescale 1<<0, so Timer0 increments every cycle
	c.TMR0 = 0xFF
	if _, err := c.Run(1); err != nil {
		t.Fatalf("unexpected trap: %v", err)
	}
	if c.TMR0 != 0 {
		t.Errorf("TMR0 = %#02x, want 0 after rollover", c.TMR0)
	}
	if !c.Intcon.TMR0IF {
		t.Error("expected TMR0IF set after rollover")
	}
}

func TestTimer0LiveAtPowerOnDefault(t *testing.T) {
	// Power-on OPTION_REG is 0xFF (PSA=1, prescaler assigned to the
	// watchdog), so Timer0 should tick every cycle with no setup at all.
	c := NewCore(programOf(0, 0))
	if _, err := c.Run(1); err != nil {
		t.Fatalf("unexpected trap: %v", err)
	}
	if c.TMR0 != 1 {
		t.Errorf("TMR0 after one cycle out of reset = %#02x, want 1", c.TMR0)
	}
}

func asTrap(err error, target **Trap) bool {
	t, ok := err.(*Trap)
	if !ok {
		return false
	}
	*target = t
	return true
}
