package asm

import (
	"testing"

	"nitro-core-dx/internal/emulator"
)

// assembleAndLoad assembles src into a cartridge image and loads it into
// a fresh Machine.
func assembleAndLoad(t *testing.T, src string) *emulator.Machine {
	t.Helper()
	res, err := AssembleSource(src, "test.asm", nil)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	m, err := emulator.New(res.ROMBytes)
	if err != nil {
		t.Fatalf("load assembled rom: %v", err)
	}
	return m
}

func stepN(t *testing.T, m *emulator.Machine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if m.CPU.Halted() {
			return
		}
		if _, err := m.StepOne(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}

func TestAssembleCountingLoopWritesResultToMemory(t *testing.T) {
	src := `
start:
    LD A, 0
loop:
    INC A
    CP 5
    JR NZ, loop
    LD (0xC000), A
    HALT
`
	m := assembleAndLoad(t, src)
	stepN(t, m, 64)

	if got := m.Bus.Read8(0xC000); got != 5 {
		t.Fatalf("result byte = %d, want 5", got)
	}
	if !m.CPU.Halted() {
		t.Fatalf("expected CPU to be halted after the loop")
	}
}

func TestAssembleCallAndReturn(t *testing.T) {
	src := `
start:
    LD A, 1
    CALL double
    LD (0xC000), A
    HALT
double:
    ADD A, A
    RET
`
	m := assembleAndLoad(t, src)
	stepN(t, m, 32)

	if got := m.Bus.Read8(0xC000); got != 2 {
		t.Fatalf("result byte = %d, want 2", got)
	}
}

func TestAssembleCBBitOps(t *testing.T) {
	src := `
start:
    LD A, 0x00
    SET 3, A
    BIT 3, A
    JR Z, fail
    LD (0xC000), A
    HALT
fail:
    LD A, 0xFF
    LD (0xC000), A
    HALT
`
	m := assembleAndLoad(t, src)
	stepN(t, m, 32)

	if got := m.Bus.Read8(0xC000); got != 0x08 {
		t.Fatalf("result byte = 0x%02X, want 0x08", got)
	}
}

func TestAssembleLabelOutOfRangeForJRFails(t *testing.T) {
	src := "JR far\n"
	for i := 0; i < 200; i++ {
		src += "NOP\n"
	}
	src += "far:\nHALT\n"

	if _, err := AssembleSource(src, "far.asm", nil); err == nil {
		t.Fatalf("expected an out-of-range JR error")
	}
}
