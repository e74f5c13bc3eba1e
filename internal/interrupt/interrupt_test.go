package interrupt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPendingRequiresBothIEAndIF(t *testing.T) {
	c := New()
	c.Request(Timer)
	_, _, ok := c.Pending()
	assert.False(t, ok, "IE not set yet")

	c.WriteIE(Timer)
	source, vector, ok := c.Pending()
	assert.True(t, ok)
	assert.Equal(t, Timer, source)
	assert.Equal(t, uint16(0x0050), vector)
}

func TestPendingFollowsPriorityOrder(t *testing.T) {
	c := New()
	c.WriteIE(VBlank | LCDStat | Timer | Serial | Joypad)
	c.Request(Joypad)
	c.Request(Timer)
	c.Request(VBlank)

	source, vector, ok := c.Pending()
	assert.True(t, ok)
	assert.Equal(t, VBlank, source)
	assert.Equal(t, uint16(0x0040), vector)
}

func TestAckClearsOnlyThatSource(t *testing.T) {
	c := New()
	c.WriteIE(VBlank | Timer)
	c.Request(VBlank)
	c.Request(Timer)

	c.Ack(VBlank)
	source, vector, ok := c.Pending()
	assert.True(t, ok)
	assert.Equal(t, Timer, source)
	assert.Equal(t, uint16(0x0050), vector)
}

func TestReadIFAlwaysReadsTopBitsHigh(t *testing.T) {
	c := New()
	assert.Equal(t, uint8(0xE0), c.ReadIF())
	c.WriteIF(0xFF)
	assert.Equal(t, uint8(0xFF), c.ReadIF())
}

func TestWriteIFMasksToFiveBits(t *testing.T) {
	c := New()
	c.WriteIF(0xFF)
	c.WriteIE(0x1F)
	source, _, ok := c.Pending()
	assert.True(t, ok)
	assert.Equal(t, VBlank, source)
}
