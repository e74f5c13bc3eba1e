package cartridge

// mbc3 adds a real-time-clock register file on top of MBC1-style ROM/RAM
// banking. The RTC registers are writable and latchable, but do not
// advance with wall-clock time: no host clock source is wired in, so a
// latch simply snapshots whatever was last written.
type mbc3 struct {
	rom []byte
	ram []byte

	ramEnabled bool
	romBank    byte // 7 bits, 0 promoted to 1
	select4    byte // 0x00-0x03 RAM bank, 0x08-0x0C RTC register select

	rtc        [5]byte // seconds, minutes, hours, day-low, day-high/flags
	rtcLatched [5]byte
	lastLatch  byte
}

func newMBC3(rom []byte, ramSize int) *mbc3 {
	m := &mbc3{rom: rom, romBank: 1}
	if ramSize > 0 {
		m.ram = make([]byte, ramSize)
	}
	return m
}

func (m *mbc3) Read8(addr uint16) uint8 {
	switch {
	case addr < 0x4000:
		if int(addr) < len(m.rom) {
			return m.rom[addr]
		}
		return 0xFF
	case addr < 0x8000:
		off := int(m.romBank)*0x4000 + int(addr-0x4000)
		if off < len(m.rom) {
			return m.rom[off]
		}
		return 0xFF
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled {
			return 0xFF
		}
		if m.select4 >= 0x08 && m.select4 <= 0x0C {
			return m.rtcLatched[m.select4-0x08]
		}
		off := int(m.select4)*0x2000 + int(addr-0xA000)
		if off >= 0 && off < len(m.ram) {
			return m.ram[off]
		}
		return 0xFF
	default:
		return 0xFF
	}
}

func (m *mbc3) Write8(addr uint16, v uint8) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = v&0x0F == 0x0A
	case addr < 0x4000:
		bank := v & 0x7F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case addr < 0x6000:
		m.select4 = v
	case addr < 0x8000:
		if m.lastLatch == 0x00 && v == 0x01 {
			m.rtcLatched = m.rtc
		}
		m.lastLatch = v
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled {
			return
		}
		if m.select4 >= 0x08 && m.select4 <= 0x0C {
			m.rtc[m.select4-0x08] = v
			return
		}
		off := int(m.select4)*0x2000 + int(addr-0xA000)
		if off >= 0 && off < len(m.ram) {
			m.ram[off] = v
		}
	}
}

func (m *mbc3) SaveRAM() []byte {
	if len(m.ram) == 0 {
		return nil
	}
	out := make([]byte, len(m.ram))
	copy(out, m.ram)
	return out
}

func (m *mbc3) LoadRAM(data []byte) {
	copy(m.ram, data)
}
