package joypad

// State is a serializable snapshot of the joypad's button latches and
// last-written select bits, used by save states.
type State struct {
	Dpad, Buttons, P1 uint8
}

// Snapshot captures the joypad's current state.
func (j *Joypad) Snapshot() State {
	return State{Dpad: j.dpad, Buttons: j.buttons, P1: j.p1}
}

// Restore installs a previously captured State.
func (j *Joypad) Restore(s State) {
	j.dpad, j.buttons, j.p1 = s.Dpad, s.Buttons, s.P1
}
