package cartridge

// mbc1 implements the classic 5-bit ROM bank / 2-bit upper-bank-or-RAM-
// bank / banking-mode-select mapper.
type mbc1 struct {
	rom []byte
	ram []byte

	ramEnabled bool
	bankLow5   byte // 0x2000-0x3FFF write, 0 promoted to 1
	bankHigh2  byte // 0x4000-0x5FFF write: RAM bank, or ROM bank bits 5-6
	mode       byte // 0x6000-0x7FFF write: 0 ROM banking, 1 RAM banking
}

func newMBC1(rom []byte, ramSize int) *mbc1 {
	m := &mbc1{rom: rom, bankLow5: 1}
	if ramSize > 0 {
		m.ram = make([]byte, ramSize)
	}
	return m
}

func (m *mbc1) romBank() int {
	bank := int(m.bankLow5) | int(m.bankHigh2)<<5
	return bank
}

func (m *mbc1) Read8(addr uint16) uint8 {
	switch {
	case addr < 0x4000:
		bank := 0
		if m.mode == 1 {
			bank = int(m.bankHigh2) << 5
		}
		return m.romAt(bank, int(addr))
	case addr < 0x8000:
		return m.romAt(m.romBank(), int(addr-0x4000))
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		bank := 0
		if m.mode == 1 {
			bank = int(m.bankHigh2)
		}
		off := bank*0x2000 + int(addr-0xA000)
		if off < len(m.ram) {
			return m.ram[off]
		}
		return 0xFF
	default:
		return 0xFF
	}
}

func (m *mbc1) romAt(bank, offset int) uint8 {
	off := bank*0x4000 + offset
	if off >= 0 && off < len(m.rom) {
		return m.rom[off]
	}
	return 0xFF
}

func (m *mbc1) Write8(addr uint16, v uint8) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = v&0x0F == 0x0A
	case addr < 0x4000:
		bank := v & 0x1F
		if bank == 0 {
			bank = 1
		}
		m.bankLow5 = bank
	case addr < 0x6000:
		m.bankHigh2 = v & 0x03
	case addr < 0x8000:
		m.mode = v & 0x01
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return
		}
		bank := 0
		if m.mode == 1 {
			bank = int(m.bankHigh2)
		}
		off := bank*0x2000 + int(addr-0xA000)
		if off < len(m.ram) {
			m.ram[off] = v
		}
	}
}

func (m *mbc1) SaveRAM() []byte {
	if len(m.ram) == 0 {
		return nil
	}
	out := make([]byte, len(m.ram))
	copy(out, m.ram)
	return out
}

func (m *mbc1) LoadRAM(data []byte) {
	copy(m.ram, data)
}
