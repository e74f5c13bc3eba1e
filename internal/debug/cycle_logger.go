package debug

import (
	"fmt"
	"os"
	"sync"
)

// MemoryReader reads a byte from the flat 16-bit address space, used here
// only to avoid an import cycle back into internal/memory.
type MemoryReader interface {
	Read8(addr uint16) uint8
}

// PPUStateReader exposes the PPU's scanline position, used for trace output.
type PPUStateReader interface {
	LY() uint8
	Mode() int
	FrameCounter() uint64
}

// APUStateReader exposes per-channel enable/volume state for trace output.
type APUStateReader interface {
	ChannelEnabled(channel int) bool
	MasterVolume() (left, right uint8)
}

// CPUStateSnapshot is a flattened copy of cpu.Registers plus interpreter
// flags, kept separate to avoid internal/debug importing internal/cpu.
type CPUStateSnapshot struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8
	SP   uint16
	PC   uint16
	IME  bool
}

// CycleLogger writes one line per retired instruction, combining CPU, PPU,
// and APU state -- useful for diffing two runs of the same ROM instruction
// by instruction.
type CycleLogger struct {
	file         *os.File
	maxCycles    uint64
	startCycle   uint64
	currentCycle uint64
	totalCycles  uint64
	enabled      bool
	mu           sync.Mutex

	bus MemoryReader
	ppu PPUStateReader
	apu APUStateReader
}

// NewCycleLogger opens filename and returns a logger that records up to
// maxCycles instructions (0 = unlimited) starting after startCycle have
// elapsed (0 = from the first instruction).
func NewCycleLogger(filename string, maxCycles, startCycle uint64, bus MemoryReader, ppu PPUStateReader, apu APUStateReader) (*CycleLogger, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create cycle log: %w", err)
	}

	logger := &CycleLogger{
		file:       file,
		maxCycles:  maxCycles,
		startCycle: startCycle,
		enabled:    true,
		bus:        bus,
		ppu:        ppu,
		apu:        apu,
	}

	fmt.Fprintf(file, "Cycle-by-cycle trace\n====================\n\n")
	if startCycle > 0 {
		fmt.Fprintf(file, "start offset: %d\n", startCycle)
	}
	if maxCycles > 0 {
		fmt.Fprintf(file, "max cycles: %d\n", maxCycles)
	}
	fmt.Fprintf(file, "\nformat: cycle | PC | AF BC DE HL SP | IME | PPU LY/mode | APU ch0-3\n\n")

	return logger, nil
}

// LogCycle records one instruction's retired state.
func (c *CycleLogger) LogCycle(s *CPUStateSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return
	}
	c.totalCycles++
	if c.totalCycles <= c.startCycle {
		return
	}
	if c.maxCycles > 0 && c.currentCycle >= c.maxCycles {
		c.enabled = false
		return
	}
	c.currentCycle++

	ly, mode := uint8(0), 0
	if c.ppu != nil {
		ly = c.ppu.LY()
		mode = c.ppu.Mode()
	}

	fmt.Fprintf(c.file, "%6d | PC:%04X | AF:%02X%02X BC:%02X%02X DE:%02X%02X HL:%02X%02X SP:%04X | IME:%v | LY:%03d M%d | ",
		c.totalCycles, s.PC, s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L, s.SP, s.IME, ly, mode)

	if c.apu != nil {
		for ch := 0; ch < 4; ch++ {
			if c.apu.ChannelEnabled(ch) {
				fmt.Fprintf(c.file, "ch%d:on ", ch)
			} else {
				fmt.Fprintf(c.file, "ch%d:-- ", ch)
			}
		}
	}
	fmt.Fprintln(c.file)
}

// SetEnabled enables or disables logging.
func (c *CycleLogger) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

// Toggle flips the enabled state.
func (c *CycleLogger) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = !c.enabled
}

// Close flushes the trailer and closes the log file.
func (c *CycleLogger) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = false
	if c.file == nil {
		return nil
	}
	fmt.Fprintf(c.file, "\ntotal cycles logged: %d\n", c.currentCycle)
	err := c.file.Close()
	c.file = nil
	return err
}

// IsEnabled reports whether the logger is currently accepting entries.
func (c *CycleLogger) IsEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled && (c.maxCycles == 0 || c.currentCycle < c.maxCycles)
}

// GetStatus reports the logger's counters.
func (c *CycleLogger) GetStatus() (enabled bool, currentCycle, totalCycles, maxCycles uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled, c.currentCycle, c.totalCycles, c.maxCycles
}
