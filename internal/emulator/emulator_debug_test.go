package emulator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nitro-core-dx/internal/cpu"
	"nitro-core-dx/internal/debug"
	"nitro-core-dx/internal/romgen"
)

// TestCPULoggerReceivesTraceEventsWhenEnabled checks that wiring a debug
// logger and enabling CPU tracing actually records one entry per retired
// instruction, and that tracing never changes CPU behavior (PC still
// advances normally).
func TestCPULoggerReceivesTraceEventsWhenEnabled(t *testing.T) {
	logger := debug.NewLogger(1000)
	logger.SetComponentEnabled(debug.ComponentCPU, true)

	rom, err := romgen.BuildSerialPassROM()
	require.NoError(t, err)

	m, err := NewWithLogger(rom, logger)
	require.NoError(t, err)

	adapter, ok := m.CPU.Logger.(*cpu.LoggerAdapter)
	require.True(t, ok)
	adapter.SetLevel(cpu.LogInstructions)

	startPC := m.CPU.Regs.PC
	for i := 0; i < 10; i++ {
		_, err := m.StepOne()
		require.NoError(t, err)
	}

	require.NotEqual(t, startPC, m.CPU.Regs.PC)
	logger.Shutdown()
	require.NotEmpty(t, logger.GetEntries())
}

// TestEnableCycleLoggerWritesTraceFile checks that the per-cycle trace
// file logger accepts being enabled mid-run and that subsequent steps do
// not error while it is recording.
func TestEnableCycleLoggerWritesTraceFile(t *testing.T) {
	rom, err := romgen.BuildCheckerboardROM()
	require.NoError(t, err)

	m, err := New(rom)
	require.NoError(t, err)

	path := t.TempDir() + "/trace.log"
	require.NoError(t, m.EnableCycleLogger(path, 100, 0))

	for i := 0; i < 50; i++ {
		_, err := m.StepOne()
		require.NoError(t, err)
	}
}
