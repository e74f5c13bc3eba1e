package romgen

import "nitro-core-dx/internal/rom"

// BuildEIDelayROM returns a cartridge that artificially pre-asserts a
// pending VBlank interrupt (IF=0x01) with it enabled (IE=0x01), then
// executes EI immediately followed by a NOP. EI's effect is deferred by
// one instruction on real hardware, so a test stepping this ROM one
// instruction at a time should see no dispatch directly after EI
// retires, and dispatch landing PC at the VBlank vector (0x0040) only
// after the following NOP retires.
func BuildEIDelayROM() ([]byte, error) {
	b := rom.NewBuilder()

	b.Byte(opLDAn)
	b.Byte(0x01)
	b.Byte(opLDHnA)
	b.Byte(portIF)

	b.Byte(opLDAn)
	b.Byte(0x01)
	b.Byte(opLDHnA)
	b.Byte(portIE)

	b.Byte(opEI)
	b.Byte(opNOP)

	b.Label("spin")
	b.Byte(opNOP)
	b.Byte(opJR)
	b.RefRel8("spin")

	// The VBlank vector is never meant to run meaningful code in this
	// fixture -- the test only inspects PC right after dispatch -- but a
	// RET is placed there so the ROM keeps behaving if a test chooses to
	// step past it.
	b.Org(0x0040)
	b.Byte(opRET)

	return b.Build("EIDELAY")
}
