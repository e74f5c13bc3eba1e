package cpu

import (
	"fmt"

	"nitro-core-dx/internal/debug"
)

// LogLevel is a granular logging level for CPU trace output, independent
// of debug.LogLevel so callers can dial detail without touching the
// logger's own filter.
type LogLevel int

const (
	LogNone LogLevel = iota
	LogBranches
	LogInstructions
	LogTrace
)

// LoggerAdapter adapts a debug.Logger to cpu.LoggerInterface, translating
// retired-instruction events into debug.LogEntry records tagged
// debug.ComponentCPU.
type LoggerAdapter struct {
	logger    *debug.Logger
	level     LogLevel
	lastRegs  Registers
	haveLast  bool
}

// NewLoggerAdapter creates a CPU trace adapter writing to logger at level.
func NewLoggerAdapter(logger *debug.Logger, level LogLevel) *LoggerAdapter {
	return &LoggerAdapter{logger: logger, level: level}
}

// SetLevel adjusts the trace detail level.
func (a *LoggerAdapter) SetLevel(level LogLevel) { a.level = level }

// LogCPU implements cpu.LoggerInterface.
func (a *LoggerAdapter) LogCPU(pc uint16, opcode uint8, mnemonic string, regs Registers, cycles int) {
	if a.logger == nil || a.level == LogNone {
		return
	}

	isBranch := isBranchMnemonic(mnemonic)
	switch a.level {
	case LogBranches:
		if !isBranch {
			return
		}
	case LogInstructions, LogTrace:
		// fall through, always logged
	default:
		return
	}

	level := debug.LogLevelDebug
	if a.level == LogTrace {
		level = debug.LogLevelTrace
	}

	msg := fmt.Sprintf("%04X: %02X %-4s  A=%02X F=%02X BC=%04X DE=%04X HL=%04X SP=%04X (%d cyc)",
		pc, opcode, mnemonic, regs.A, regs.F, regs.BC(), regs.DE(), regs.HL(), regs.SP, cycles)

	a.logger.Log(debug.ComponentCPU, level, msg, nil)
	a.lastRegs = regs
	a.haveLast = true
}

func isBranchMnemonic(mnemonic string) bool {
	switch mnemonic {
	case "JP", "JP NZ", "JP Z", "JP NC", "JP C", "JP (HL)",
		"JR", "JR NZ", "JR Z", "JR NC", "JR C",
		"CALL", "CALL NZ", "CALL Z", "CALL NC", "CALL C",
		"RET", "RETI", "RET NZ", "RET Z", "RET NC", "RET C",
		"RST":
		return true
	default:
		return false
	}
}
