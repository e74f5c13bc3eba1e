// Package clock drives the Game Boy's single shared dot clock: one CPU
// instruction retires a variable number of dots, and every other
// component -- PPU, APU, timer, serial port -- catches up by exactly that
// many dots before the next instruction starts.
package clock

import "fmt"

// MasterClock accumulates the total dot count the machine has run and
// dispatches each instruction's dot count to the subsystems that need to
// stay in lock-step with the CPU.
type MasterClock struct {
	// Cycle is the total number of dots run since the last Reset.
	Cycle uint64

	// CPUStep executes exactly one CPU instruction and returns the
	// number of dots it consumed.
	CPUStep func() (int, error)

	// PPUStep, APUStep, TimerStep, and SerialStep advance their
	// component by the given number of dots. Any may be left nil.
	PPUStep    func(dots int)
	APUStep    func(dots int)
	TimerStep  func(dots int)
	SerialStep func(dots int)
}

// NewMasterClock creates a clock with no subsystems wired yet; the caller
// assigns the *Step callbacks before calling Step.
func NewMasterClock() *MasterClock {
	return &MasterClock{}
}

// Step runs exactly one CPU instruction, then advances every other
// registered subsystem by the dots that instruction consumed. It returns
// the dot count so callers can track frame/sample boundaries.
func (c *MasterClock) Step() (int, error) {
	if c.CPUStep == nil {
		return 0, fmt.Errorf("clock: no CPUStep registered")
	}
	dots, err := c.CPUStep()
	if err != nil {
		return 0, err
	}

	if c.PPUStep != nil {
		c.PPUStep(dots)
	}
	if c.APUStep != nil {
		c.APUStep(dots)
	}
	if c.TimerStep != nil {
		c.TimerStep(dots)
	}
	if c.SerialStep != nil {
		c.SerialStep(dots)
	}

	c.Cycle += uint64(dots)
	return dots, nil
}

// GetCycle returns the total number of dots run since the last Reset.
func (c *MasterClock) GetCycle() uint64 {
	return c.Cycle
}

// Reset zeroes the dot counter. Subsystem state is not touched; callers
// reset those components independently.
func (c *MasterClock) Reset() {
	c.Cycle = 0
}
