package emulator

import (
	"nitro-core-dx/internal/debug"
	"nitro-core-dx/internal/ppu"
)

// ppuTraceAdapter narrows a *ppu.PPU down to debug.PPUStateReader for the
// cycle logger, since LY is a field rather than a method on PPU itself.
type ppuTraceAdapter struct {
	ppu *ppu.PPU
}

func (a *ppuTraceAdapter) LY() uint8            { return a.ppu.LY }
func (a *ppuTraceAdapter) Mode() int            { return a.ppu.Mode() }
func (a *ppuTraceAdapter) FrameCounter() uint64 { return a.ppu.FrameCounter() }

// newPPUTraceAdapter wraps p for use with debug.NewCycleLogger.
func newPPUTraceAdapter(p *ppu.PPU) debug.PPUStateReader {
	return &ppuTraceAdapter{ppu: p}
}
