package romgen

import "nitro-core-dx/internal/rom"

// BuildAPUSweepROM returns a cartridge that powers the APU on, arms
// channel 1 with the minimum usable period (0x7FF) and a sweep that
// adds half the period to itself each clock (shift=1, period=1,
// direction=increase), triggers the channel, and idles. The first
// sweep clock computes a new period past 2047 and overflows, which
// must disable channel 1 (NR52 bit 0 clears) a few tens of thousands
// of cycles in.
func BuildAPUSweepROM() ([]byte, error) {
	b := rom.NewBuilder()

	b.Byte(opLDAn)
	b.Byte(0x80) // NR52 power on
	b.Byte(opLDHnA)
	b.Byte(portNR52)

	b.Byte(opLDAn)
	b.Byte(0x77) // NR50 max volume both terminals
	b.Byte(opLDHnA)
	b.Byte(portNR50)

	b.Byte(opLDAn)
	b.Byte(0xF3) // NR51 route every channel to both terminals
	b.Byte(opLDHnA)
	b.Byte(portNR51)

	b.Byte(opLDAn)
	b.Byte(0x11) // sweep period=1, direction=increase, shift=1
	b.Byte(opLDHnA)
	b.Byte(portNR10)

	b.Byte(opLDAn)
	b.Byte(0xFF) // period low byte: 0x7FF & 0xFF
	b.Byte(opLDHnA)
	b.Byte(portNR13)

	b.Byte(opLDAn)
	b.Byte(0x87) // trigger | period high 3 bits (0x7FF >> 8)
	b.Byte(opLDHnA)
	b.Byte(portNR14)

	b.Label("spin")
	b.Byte(opNOP)
	b.Byte(opJR)
	b.RefRel8("spin")

	return b.Build("APUSWEEP")
}
