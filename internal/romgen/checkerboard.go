package romgen

import "nitro-core-dx/internal/rom"

// BuildCheckerboardROM returns a cartridge that writes two 8x8 tiles --
// one entirely color index 0, one entirely color index 3 -- into VRAM,
// fills the whole 32x32 background map with an alternating checkerboard
// of the two tile indices, and turns the LCD on with an identity
// background palette. Running the Machine for one frame should leave
// the visible 20x18 region checkerboarded.
func BuildCheckerboardROM() ([]byte, error) {
	b := rom.NewBuilder()

	// LCD off while VRAM is filled: the post-boot LCD is on, and the PPU
	// drops VRAM writes made during mode 3.
	b.Byte(opLDAn)
	b.Byte(0x00)
	b.Byte(opLDHnA)
	b.Byte(portLCDC)

	// Tile 0 at 0x8000: 16 bytes of 0x00 (both bitplanes clear, color 0).
	b.Byte(opLDHLnn)
	b.Word(0x8000)
	b.Byte(opLDAn)
	b.Byte(0x00)
	b.Byte(opLDBn)
	b.Byte(16)
	b.Label("tile0fill")
	b.Byte(opLDHLIA)
	b.Byte(opDECB)
	b.Byte(opJRNZ)
	b.RefRel8("tile0fill")

	// Tile 1 immediately follows at 0x8010: 16 bytes of 0xFF (both
	// bitplanes set, color 3).
	b.Byte(opLDAn)
	b.Byte(0xFF)
	b.Byte(opLDBn)
	b.Byte(16)
	b.Label("tile1fill")
	b.Byte(opLDHLIA)
	b.Byte(opDECB)
	b.Byte(opJRNZ)
	b.RefRel8("tile1fill")

	// Tilemap at 0x9800: 1024 bytes, alternating 0/1 in linear (row-
	// major) order. Since each row is 32 bytes (even), a single
	// continuous toggle reproduces the (column+row)%2 checkerboard
	// exactly, including across row boundaries.
	b.Byte(opLDHLnn)
	b.Word(0x9800)
	b.Byte(opLDAn)
	b.Byte(0x00)
	b.Byte(opLDCn)
	b.Byte(4)
	b.Label("maprow")
	b.Byte(opLDBn)
	b.Byte(0) // 256 iterations per outer pass
	b.Label("mapcell")
	b.Byte(opLDHLIA)
	b.Byte(opXORAn)
	b.Byte(0x01)
	b.Byte(opDECB)
	b.Byte(opJRNZ)
	b.RefRel8("mapcell")
	b.Byte(opDECC)
	b.Byte(opJRNZ)
	b.RefRel8("maprow")

	// LCDC: LCD on, BG tile data at 0x8000 (unsigned indexing), BG on.
	b.Byte(opLDAn)
	b.Byte(0x91)
	b.Byte(opLDHnA)
	b.Byte(portLCDC)

	b.Byte(opLDAn)
	b.Byte(0xE4) // identity background palette
	b.Byte(opLDHnA)
	b.Byte(portBGP)

	b.Byte(opLDAn)
	b.Byte(0x00)
	b.Byte(opLDHnA)
	b.Byte(portSCY)
	b.Byte(opLDHnA)
	b.Byte(portSCX)

	b.Label("spin")
	b.Byte(opNOP)
	b.Byte(opJR)
	b.RefRel8("spin")

	return b.Build("CHECKER")
}
