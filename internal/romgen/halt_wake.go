package romgen

import "nitro-core-dx/internal/rom"

// BuildHaltWakeROM returns a cartridge that enables the VBlank interrupt
// source (IE=0x01) but leaves IME false, then executes HALT with no
// interrupt yet pending. A test is expected to assert IF externally
// (Bus.Write8(0xFF0F, 0x01)) after the CPU has halted and then step
// once more: with IME false, the CPU must resume past HALT without
// servicing the interrupt.
func BuildHaltWakeROM() ([]byte, error) {
	b := rom.NewBuilder()

	b.Byte(opLDAn)
	b.Byte(0x01)
	b.Byte(opLDHnA)
	b.Byte(portIE)

	b.Byte(opHALT)

	b.Label("spin")
	b.Byte(opNOP)
	b.Byte(opJR)
	b.RefRel8("spin")

	return b.Build("HALTWAKE")
}
