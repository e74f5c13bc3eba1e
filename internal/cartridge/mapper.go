package cartridge

import "fmt"

// Mapper decodes the two cartridge-owned bus windows. addr is the full
// CPU address (0x0000-0x7FFF or 0xA000-0xBFFF). Bank indices are not
// wrapped to the ROM/RAM size: a read whose banked offset lies past the
// end of the ROM or RAM returns 0xFF, and such a write is dropped.
type Mapper interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, v uint8)
}

// RAMPersister is implemented by mappers that carry battery-backed
// external RAM worth saving across sessions.
type RAMPersister interface {
	SaveRAM() []byte
	LoadRAM(data []byte)
}

// Cartridge wraps a parsed Header and its Mapper, and is itself an
// IOHandler the bus can wire directly into its ROM and external-RAM
// windows.
type Cartridge struct {
	Header *Header
	Mapper Mapper
}

// New parses rom's header and constructs the mapper its cartridge-type
// byte names.
func New(rom []byte) (*Cartridge, error) {
	return NewWithMapperOverride(rom, "")
}

// NewWithMapperOverride is New but, when override is non-empty, builds
// the named mapper ("rom_only", "mbc1", "mbc2", "mbc3", or "mbc5")
// regardless of what the header's cartridge-type byte says. Dumps with a
// corrupted or home-brewed header byte are otherwise unloadable even
// though the ROM image itself plays fine under the right mapper.
func NewWithMapperOverride(rom []byte, override string) (*Cartridge, error) {
	header, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}

	var mapper Mapper
	if override == "" {
		mapper, err = newMapper(header, rom)
	} else {
		mapper, err = newNamedMapper(override, header, rom)
	}
	if err != nil {
		return nil, err
	}

	return &Cartridge{Header: header, Mapper: mapper}, nil
}

func newMapper(h *Header, rom []byte) (Mapper, error) {
	switch h.CartType {
	case 0x00, 0x08, 0x09:
		return newROMOnly(rom), nil
	case 0x01, 0x02, 0x03:
		return newMBC1(rom, h.RAMSizeBytes), nil
	case 0x05, 0x06:
		return newMBC2(rom), nil
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return newMBC3(rom, h.RAMSizeBytes), nil
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return newMBC5(rom, h.RAMSizeBytes), nil
	default:
		return nil, fmt.Errorf("cartridge type 0x%02X: %w", h.CartType, ErrUnsupportedMapper)
	}
}

func newNamedMapper(name string, h *Header, rom []byte) (Mapper, error) {
	switch name {
	case "rom_only":
		return newROMOnly(rom), nil
	case "mbc1":
		return newMBC1(rom, h.RAMSizeBytes), nil
	case "mbc2":
		return newMBC2(rom), nil
	case "mbc3":
		return newMBC3(rom, h.RAMSizeBytes), nil
	case "mbc5":
		return newMBC5(rom, h.RAMSizeBytes), nil
	default:
		return nil, fmt.Errorf("mapper override %q: %w", name, ErrUnsupportedMapper)
	}
}

func (c *Cartridge) Read8(addr uint16) uint8     { return c.Mapper.Read8(addr) }
func (c *Cartridge) Write8(addr uint16, v uint8) { c.Mapper.Write8(addr, v) }
