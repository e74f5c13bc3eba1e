package romgen

import "nitro-core-dx/internal/rom"

// BuildSerialPassROM returns a cartridge whose code writes the bytes of
// "PASS\n" to the serial port one at a time, waiting for each internal-
// clock transfer to finish before sending the next, then halts. A host
// watching Machine.SerialOutput should see the full string within a few
// tens of thousands of cycles.
func BuildSerialPassROM() ([]byte, error) {
	b := rom.NewBuilder()

	for i, ch := range "PASS\n" {
		wait := labelName("wait", i)
		b.Byte(opLDAn)
		b.Byte(uint8(ch))
		b.Byte(opLDHnA)
		b.Byte(portSB)
		b.Byte(opLDAn)
		b.Byte(0x81) // start bit | internal clock bit
		b.Byte(opLDHnA)
		b.Byte(portSC)
		b.Label(wait)
		b.Byte(opLDHAn)
		b.Byte(portSC)
		b.Byte(opANDAn)
		b.Byte(0x80)
		b.Byte(opJRNZ)
		b.RefRel8(wait)
	}

	b.Byte(opHALT)

	return b.Build("SERIALPASS")
}

func labelName(prefix string, i int) string {
	return prefix + string(rune('A'+i))
}
