// Package cartridge parses the DMG cartridge header and implements the
// mapper chips (ROM-only, MBC1, MBC2, MBC3, MBC5) that decode the two
// cartridge-owned bus windows: 0x0000-0x7FFF ROM and 0xA000-0xBFFF
// external RAM.
package cartridge

import (
	"errors"
	"fmt"
)

// ErrInvalidHeader covers a missing Nintendo logo magic or a ROM/RAM
// size code outside the documented table.
var ErrInvalidHeader = errors.New("invalid cartridge header")

// ErrUnsupportedMapper covers a cartridge-type byte this package has no
// mapper implementation for.
var ErrUnsupportedMapper = errors.New("unsupported cartridge mapper")

var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

var ramSizeBytes = map[byte]int{
	0x00: 0,
	0x01: 2 * 1024,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Header is the decoded subset of the 0x0100-anchored cartridge header
// that the mapper selector and bank masks need.
type Header struct {
	Title            string
	CartType         byte
	ROMSizeCode      byte
	RAMSizeCode      byte
	ROMSizeBytes     int
	RAMSizeBytes     int
	HeaderChecksumOK bool
}

// ParseHeader validates the Nintendo logo magic and the size codes, and
// decodes the fields the mapper constructors need. A bad checksum is
// recorded but is not itself fatal.
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < 0x0150 {
		return nil, fmt.Errorf("cartridge too small for a header: %w", ErrInvalidHeader)
	}

	for i, want := range nintendoLogo {
		if rom[0x0104+i] != want {
			return nil, fmt.Errorf("Nintendo logo magic mismatch at offset 0x%04X: %w", 0x0104+i, ErrInvalidHeader)
		}
	}

	romSize, ok := decodeROMSize(rom[0x0148])
	if !ok {
		return nil, fmt.Errorf("ROM size code 0x%02X outside the documented table: %w", rom[0x0148], ErrInvalidHeader)
	}
	ramSize, ok := ramSizeBytes[rom[0x0149]]
	if !ok {
		return nil, fmt.Errorf("RAM size code 0x%02X outside the documented table: %w", rom[0x0149], ErrInvalidHeader)
	}

	title := trimTitle(rom[0x0134:0x0144])

	h := &Header{
		Title:            title,
		CartType:         rom[0x0147],
		ROMSizeCode:      rom[0x0148],
		RAMSizeCode:      rom[0x0149],
		ROMSizeBytes:     romSize,
		RAMSizeBytes:     ramSize,
		HeaderChecksumOK: headerChecksumOK(rom),
	}
	return h, nil
}

// decodeROMSize implements the documented 32 KiB * 2^code rule, valid
// for the codes real cartridges and the conformance fixtures use.
func decodeROMSize(code byte) (int, bool) {
	if code > 0x08 {
		return 0, false
	}
	return 32 * 1024 << code, true
}

func headerChecksumOK(rom []byte) bool {
	var sum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	return sum == rom[0x014D]
}

func trimTitle(raw []byte) string {
	end := len(raw)
	for end > 0 && raw[end-1] == 0x00 {
		end--
	}
	return string(raw[:end])
}
