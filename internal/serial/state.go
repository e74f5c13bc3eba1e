package serial

// State is a serializable snapshot of the serial port's registers and
// any in-flight internal-clock transfer, used by save states.
type State struct {
	SB, SC    uint8
	Remaining int
	Active    bool
}

// Snapshot captures the port's current state.
func (p *Port) Snapshot() State {
	return State{SB: p.sb, SC: p.sc, Remaining: p.remaining, Active: p.active}
}

// Restore installs a previously captured State.
func (p *Port) Restore(s State) {
	p.sb, p.sc = s.SB, s.SC
	p.remaining, p.active = s.Remaining, s.Active
}
