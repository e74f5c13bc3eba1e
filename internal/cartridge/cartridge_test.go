package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildROM returns a minimal well-formed header over a ROM of romSize
// bytes, with cartType/romSizeCode/ramSizeCode set as requested.
func buildROM(romSize int, cartType, romSizeCode, ramSizeCode byte) []byte {
	rom := make([]byte, romSize)
	copy(rom[0x0104:0x0134], nintendoLogo[:])
	copy(rom[0x0134:0x0144], []byte("TESTROM"))
	rom[0x0147] = cartType
	rom[0x0148] = romSizeCode
	rom[0x0149] = ramSizeCode

	var sum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	rom[0x014D] = sum
	return rom
}

func TestParseHeaderRejectsBadLogoMagic(t *testing.T) {
	rom := buildROM(32*1024, 0x00, 0x00, 0x00)
	rom[0x0110] ^= 0xFF
	_, err := ParseHeader(rom)
	assert.ErrorIs(t, err, ErrInvalidHeader)
}

func TestParseHeaderRejectsOutOfRangeSizeCodes(t *testing.T) {
	rom := buildROM(32*1024, 0x00, 0xFF, 0x00)
	_, err := ParseHeader(rom)
	assert.ErrorIs(t, err, ErrInvalidHeader)
}

func TestParseHeaderDecodesROMAndRAMSize(t *testing.T) {
	rom := buildROM(128*1024, 0x00, 0x02, 0x03)
	h, err := ParseHeader(rom)
	require.NoError(t, err)
	assert.Equal(t, 128*1024, h.ROMSizeBytes)
	assert.Equal(t, 32*1024, h.RAMSizeBytes)
	assert.True(t, h.HeaderChecksumOK)
}

func TestNewRejectsUnsupportedCartType(t *testing.T) {
	rom := buildROM(32*1024, 0xFC, 0x00, 0x00)
	_, err := New(rom)
	assert.ErrorIs(t, err, ErrUnsupportedMapper)
}

func TestROMOnlyIgnoresWritesAndHasNoBanking(t *testing.T) {
	rom := buildROM(32*1024, 0x00, 0x00, 0x00)
	rom[0x4000] = 0xAB
	c, err := New(rom)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xAB), c.Read8(0x4000))
	c.Write8(0x2000, 0x99) // no-op: no mapper registers
	assert.Equal(t, uint8(0xAB), c.Read8(0x4000))
}

func TestMBC1SwitchesROMBankAndZeroPromotesToOne(t *testing.T) {
	rom := buildROM(128*1024, 0x01, 0x02, 0x00)
	rom[0x4000*2] = 0x42 // bank 2, offset 0
	c, err := New(rom)
	require.NoError(t, err)

	c.Write8(0x2000, 0x00) // promoted to bank 1
	assert.NotEqual(t, uint8(0x42), c.Read8(0x4000))

	c.Write8(0x2000, 0x02)
	assert.Equal(t, uint8(0x42), c.Read8(0x4000))
}

func TestMBC1RAMRequiresEnableLatch(t *testing.T) {
	rom := buildROM(32*1024, 0x03, 0x00, 0x02)
	c, err := New(rom)
	require.NoError(t, err)

	c.Write8(0xA000, 0x55) // disabled: dropped
	assert.Equal(t, uint8(0xFF), c.Read8(0xA000))

	c.Write8(0x0000, 0x0A) // enable
	c.Write8(0xA000, 0x55)
	assert.Equal(t, uint8(0x55), c.Read8(0xA000))
}

func TestMBC5Supports9BitROMBank(t *testing.T) {
	const bank = 256 // requires the high bank bit (bit 8) to be set
	rom := buildROM(bank*0x4000+0x4000, 0x19, 0x07, 0x00)
	rom[bank*0x4000] = 0x77
	c, err := New(rom)
	require.NoError(t, err)

	c.Write8(0x2000, byte(bank&0xFF))
	c.Write8(0x3000, byte(bank>>8))
	assert.Equal(t, uint8(0x77), c.Read8(0x4000))
}

func TestMBC3RTCLatchSnapshotsWrittenRegisters(t *testing.T) {
	rom := buildROM(32*1024, 0x0F, 0x00, 0x00)
	c, err := New(rom)
	require.NoError(t, err)

	c.Write8(0x0000, 0x0A) // enable RAM/RTC
	c.Write8(0x4000, 0x08) // select seconds register
	c.Write8(0xA000, 0x2A)

	c.Write8(0x6000, 0x00)
	c.Write8(0x6000, 0x01) // latch
	assert.Equal(t, uint8(0x2A), c.Read8(0xA000))
}

func TestNewWithMapperOverrideIgnoresHeaderCartType(t *testing.T) {
	rom := buildROM(128*1024, 0x00, 0x02, 0x00) // header claims ROM-only
	rom[0x4000*2] = 0x42                        // bank 2, offset 0

	c, err := NewWithMapperOverride(rom, "mbc1")
	require.NoError(t, err)

	c.Write8(0x2000, 0x02) // only a real mapper accepts a bank-select write
	assert.Equal(t, uint8(0x42), c.Read8(0x4000))
}

func TestNewWithMapperOverrideRejectsUnknownName(t *testing.T) {
	rom := buildROM(32*1024, 0x00, 0x00, 0x00)
	_, err := NewWithMapperOverride(rom, "mbc7")
	assert.ErrorIs(t, err, ErrUnsupportedMapper)
}

func TestMBC2BuiltInRAMMasksToFourBits(t *testing.T) {
	rom := buildROM(32*1024, 0x05, 0x00, 0x00)
	c, err := New(rom)
	require.NoError(t, err)

	c.Write8(0x0000, 0x0A) // bit 8 clear: RAM enable
	c.Write8(0xA000, 0xF7)
	assert.Equal(t, uint8(0xF7), c.Read8(0xA000)) // already has high nibble set
}
