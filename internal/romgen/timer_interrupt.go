package romgen

import "nitro-core-dx/internal/rom"

// BuildTimerInterruptROM returns a cartridge that arms TIMA two
// increments short of overflow (TMA=TIMA=0xFE), selects the 262144 Hz
// timer clock, enables the timer interrupt and IME, then idles in a
// tight loop. A test driving the resulting Machine should see PC reach
// the timer vector at 0x0050 shortly after the loop starts, with IME
// cleared by the dispatch.
func BuildTimerInterruptROM() ([]byte, error) {
	b := rom.NewBuilder()

	b.Byte(opLDAn)
	b.Byte(0xFE)
	b.Byte(opLDHnA)
	b.Byte(portTMA)

	b.Byte(opLDAn)
	b.Byte(0xFE)
	b.Byte(opLDHnA)
	b.Byte(portTIMA)

	b.Byte(opLDAn)
	b.Byte(0x05) // enable, clock select 01 (262144 Hz)
	b.Byte(opLDHnA)
	b.Byte(portTAC)

	b.Byte(opLDAn)
	b.Byte(0x04) // IE bit 2: timer
	b.Byte(opLDHnA)
	b.Byte(portIE)

	b.Byte(opEI)
	b.Byte(opNOP)

	b.Label("spin")
	b.Byte(opNOP)
	b.Byte(opJR)
	b.RefRel8("spin")

	return b.Build("TIMERIRQ")
}
