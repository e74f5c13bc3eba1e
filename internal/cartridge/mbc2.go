package cartridge

// mbc2 has a single 4-bit ROM bank register and 512x4-bit built-in RAM;
// unlike MBC1 its control writes land in the same 0x0000-0x3FFF window,
// disambiguated by address bit 8: clear selects RAM-enable, set selects
// the ROM bank.
type mbc2 struct {
	rom []byte
	ram [512]byte

	ramEnabled bool
	romBankNum byte
}

func newMBC2(rom []byte) *mbc2 {
	return &mbc2{rom: rom, romBankNum: 1}
}

func (m *mbc2) Read8(addr uint16) uint8 {
	switch {
	case addr < 0x4000:
		if int(addr) < len(m.rom) {
			return m.rom[addr]
		}
		return 0xFF
	case addr < 0x8000:
		off := int(m.romBankNum)*0x4000 + int(addr-0x4000)
		if off < len(m.rom) {
			return m.rom[off]
		}
		return 0xFF
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled {
			return 0xFF
		}
		return m.ram[addr&0x1FF] | 0xF0
	default:
		return 0xFF
	}
}

func (m *mbc2) Write8(addr uint16, v uint8) {
	switch {
	case addr < 0x4000:
		if addr&0x0100 == 0 {
			m.ramEnabled = v&0x0F == 0x0A
		} else {
			bank := v & 0x0F
			if bank == 0 {
				bank = 1
			}
			m.romBankNum = bank
		}
	case addr >= 0xA000 && addr <= 0xBFFF:
		if m.ramEnabled {
			m.ram[addr&0x1FF] = v & 0x0F
		}
	}
}

func (m *mbc2) SaveRAM() []byte {
	out := make([]byte, len(m.ram))
	copy(out, m.ram[:])
	return out
}

func (m *mbc2) LoadRAM(data []byte) {
	copy(m.ram[:], data)
}
