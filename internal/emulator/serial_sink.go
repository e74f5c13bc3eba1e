package emulator

// serialCapture is the Sink a Machine hands to the serial port when the
// host does not supply one of its own: every byte shifted out over the
// internal clock is appended for later inspection, which is exactly what
// the serial-port conformance fixtures check (a test ROM that writes its
// pass/fail marker byte over SB/SC instead of to the framebuffer).
type serialCapture struct {
	out []byte
}

func (s *serialCapture) WriteByte(b byte) error {
	s.out = append(s.out, b)
	return nil
}
