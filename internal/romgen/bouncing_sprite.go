package romgen

import "nitro-core-dx/internal/rom"

// BuildBouncingSpriteROM returns a demo cartridge: a single solid 8x8
// sprite that bounces horizontally between the screen edges, one pixel
// per frame, using VBlank polling rather than the interrupt so the
// fixture stays simple enough to read at a glance.
func BuildBouncingSpriteROM() ([]byte, error) {
	b := rom.NewBuilder()

	// LCD off while VRAM and OAM are filled: the post-boot LCD is on, and
	// the PPU drops VRAM writes in mode 3 and OAM writes in modes 2 and 3.
	b.Byte(opLDAn)
	b.Byte(0x00)
	b.Byte(opLDHnA)
	b.Byte(portLCDC)

	// Sprite tile 0 at 0x8000: solid color 3.
	b.Byte(opLDHLnn)
	b.Word(0x8000)
	b.Byte(opLDAn)
	b.Byte(0xFF)
	b.Byte(opLDBn)
	b.Byte(16)
	b.Label("tilefill")
	b.Byte(opLDHLIA)
	b.Byte(opDECB)
	b.Byte(opJRNZ)
	b.RefRel8("tilefill")

	// OAM entry 0: y=66 (screen row 50), x=88 (screen column 80),
	// tile 0, no attributes.
	b.Byte(opLDAn)
	b.Byte(66)
	b.Byte(opLDnnA)
	b.Word(oamSprite0Y)
	b.Byte(opLDAn)
	b.Byte(88)
	b.Byte(opLDnnA)
	b.Word(oamSprite0X)
	b.Byte(opLDAn)
	b.Byte(0)
	b.Byte(opLDnnA)
	b.Word(0xFE02) // tile index
	b.Byte(opLDnnA)
	b.Word(0xFE03) // attributes

	// HRAM 0x80: current x position (starts matching the OAM write
	// above). HRAM 0x81: direction, 0 = moving right, 1 = moving left.
	b.Byte(opLDAn)
	b.Byte(88)
	b.Byte(opLDHnA)
	b.Byte(0x80)
	b.Byte(opLDAn)
	b.Byte(0)
	b.Byte(opLDHnA)
	b.Byte(0x81)

	b.Byte(opLDAn)
	b.Byte(0x82) // LCD on, OBJ on, BG off
	b.Byte(opLDHnA)
	b.Byte(portLCDC)
	b.Byte(opLDAn)
	b.Byte(0xE4)
	b.Byte(opLDHnA)
	b.Byte(portOBP0)

	b.Label("loop")
	b.Label("waitvblank")
	b.Byte(opLDHAn)
	b.Byte(portLY)
	b.Byte(opCPn)
	b.Byte(144)
	b.Byte(opJRNZ)
	b.RefRel8("waitvblank")

	b.Byte(opLDHAn)
	b.Byte(0x81)
	b.Byte(opCPn)
	b.Byte(0)
	b.Byte(opJRNZ)
	b.RefRel8("moveleft")

	// Moving right.
	b.Byte(opLDHAn)
	b.Byte(0x80)
	b.Byte(opINCA)
	b.Byte(opLDHnA)
	b.Byte(0x80)
	b.Byte(opCPn)
	b.Byte(152)
	b.Byte(opJRNZ)
	b.RefRel8("storepos")
	b.Byte(opLDAn)
	b.Byte(1)
	b.Byte(opLDHnA)
	b.Byte(0x81)
	b.Byte(opJR)
	b.RefRel8("storepos")

	b.Label("moveleft")
	b.Byte(opLDHAn)
	b.Byte(0x80)
	b.Byte(opDECA)
	b.Byte(opLDHnA)
	b.Byte(0x80)
	b.Byte(opCPn)
	b.Byte(8)
	b.Byte(opJRNZ)
	b.RefRel8("storepos")
	b.Byte(opLDAn)
	b.Byte(0)
	b.Byte(opLDHnA)
	b.Byte(0x81)

	b.Label("storepos")
	b.Byte(opLDHAn)
	b.Byte(0x80)
	b.Byte(opLDnnA)
	b.Word(oamSprite0X)

	b.Label("debounce")
	b.Byte(opLDHAn)
	b.Byte(portLY)
	b.Byte(opCPn)
	b.Byte(144)
	b.Byte(opJRZ)
	b.RefRel8("debounce")
	b.Byte(opJR)
	b.RefRel8("loop")

	return b.Build("BOUNCE")
}
