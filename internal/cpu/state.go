package cpu

// State is a complete, serializable snapshot of the interpreter's
// register file and control-flow flags, used by save states.
type State struct {
	Regs           Registers
	Halted         bool
	Locked         bool
	IME            bool
	IMEPending     bool
	HaltBugPending bool
}

// Snapshot captures the CPU's current state.
func (c *CPU) Snapshot() State {
	return State{
		Regs:           c.Regs,
		Halted:         c.halted,
		Locked:         c.locked,
		IME:            c.ime,
		IMEPending:     c.imePending,
		HaltBugPending: c.haltBugPending,
	}
}

// Restore installs a previously captured State.
func (c *CPU) Restore(s State) {
	c.Regs = s.Regs
	c.halted = s.Halted
	c.locked = s.Locked
	c.ime = s.IME
	c.imePending = s.IMEPending
	c.haltBugPending = s.HaltBugPending
}
