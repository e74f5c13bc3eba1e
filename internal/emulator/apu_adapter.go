package emulator

import (
	"nitro-core-dx/internal/apu"
	"nitro-core-dx/internal/debug"
)

// apuTraceAdapter narrows a *apu.APU down to debug.APUStateReader for the
// cycle logger.
type apuTraceAdapter struct {
	apu *apu.APU
}

func (a *apuTraceAdapter) ChannelEnabled(ch int) bool { return a.apu.ChannelEnabled(ch) }
func (a *apuTraceAdapter) MasterVolume() (left, right uint8) { return a.apu.MasterVolume() }

// newAPUTraceAdapter wraps a for use with debug.NewCycleLogger.
func newAPUTraceAdapter(a *apu.APU) debug.APUStateReader {
	return &apuTraceAdapter{apu: a}
}
