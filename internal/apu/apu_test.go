package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestAPU() *APU {
	return New(44100, 0.1, nil)
}

func TestPowerOnResetState(t *testing.T) {
	a := newTestAPU()
	assert.True(t, a.powerOn)
	assert.Equal(t, uint8(0xF0), a.statusByte())
}

func TestNR52ReflectsChannelEnabled(t *testing.T) {
	a := newTestAPU()
	a.Write8(0xFF12, 0xF0) // ch1 envelope, DAC on
	a.Write8(0xFF14, 0x80) // trigger ch1
	assert.True(t, a.ch1.enabled)
	assert.Equal(t, uint8(0xF1), a.statusByte())
}

func TestPowerOffClearsRegistersButKeepsLengthAndWaveRAM(t *testing.T) {
	a := newTestAPU()
	a.Write8(0xFF11, 0x3F)    // ch1 length load
	a.Write8(0xFF30, 0xAB)    // wave RAM byte
	a.Write8(0xFF24, 0x77)    // NR50
	a.Write8(0xFF26, 0x00)    // power off

	assert.False(t, a.powerOn)
	assert.Equal(t, uint8(0), a.nr50)
	assert.Equal(t, uint8(0xAB), a.ch3.ram[0])
	assert.Equal(t, uint8(64-0x3F), a.ch1.length)
}

func TestRegisterWritesIgnoredWhilePoweredOff(t *testing.T) {
	a := newTestAPU()
	a.Write8(0xFF26, 0x00)
	a.Write8(0xFF11, 0x3F)
	assert.Equal(t, uint8(0), a.ch1.length)

	// Wave RAM remains writable while powered off.
	a.Write8(0xFF30, 0x55)
	assert.Equal(t, uint8(0x55), a.ch3.ram[0])
}

func TestLengthCounterDisablesChannel(t *testing.T) {
	a := newTestAPU()
	a.Write8(0xFF12, 0xF0)
	a.Write8(0xFF11, 63) // length = 64 - 63 = 1
	a.Write8(0xFF14, 0xC0) // trigger + length enable
	assert.True(t, a.ch1.enabled)

	// Frame sequencer length-clocking steps land every 8192 dots; two
	// steps away from trigger guarantees at least one length clock.
	a.Tick(2 * frameSequencerPeriod)
	assert.False(t, a.ch1.enabled)
}

func TestSweepOverflowSilencesChannel(t *testing.T) {
	a := newTestAPU()
	a.Write8(0xFF12, 0xF0)                // ch1 DAC on
	a.Write8(0xFF10, 0x11)                // sweep period 1, shift 1, direction up
	a.Write8(0xFF13, 0xFF)                // frequency low
	a.Write8(0xFF14, 0x87)                // frequency high + trigger
	// Trigger alone must not disable the channel: the spec scopes the
	// overflow computation to each sweep clock, not to trigger time.
	assert.True(t, a.ch1.enabled)

	// Drive the frame sequencer through enough sweep steps (2, 6, ...) to
	// force the shadow frequency past 2047 and disable the channel.
	for i := 0; i < 16; i++ {
		a.Tick(frameSequencerPeriod)
		if !a.ch1.enabled {
			break
		}
	}
	assert.False(t, a.ch1.enabled)
}

func TestWaveChannelOutputLevelShift(t *testing.T) {
	a := newTestAPU()
	a.Write8(0xFF1A, 0x80) // DAC on
	a.Write8(0xFF30, 0xF0) // first sample nibble = 0xF
	a.Write8(0xFF1C, 0x20) // output level 1 (shift right 3)
	a.Write8(0xFF1E, 0x80) // trigger

	assert.Equal(t, uint8(0xF>>3), a.ch3.output())
}

func TestNoiseChannelMutesOnLFSRBitSet(t *testing.T) {
	n := &noise{enabled: true, dacEnabled: true, volume: 10, lfsr: 0x0001}
	assert.Equal(t, uint8(0), n.output())
	n.lfsr = 0x0000
	assert.Equal(t, uint8(10), n.output())
}

func TestPullReturnsRequestedFrameCount(t *testing.T) {
	a := newTestAPU()
	a.Write8(0xFF12, 0xF0)
	a.Write8(0xFF14, 0x80)
	a.Tick(dotClock / 100)

	buf := make([]int16, 64)
	n := a.Pull(buf)
	assert.Equal(t, 64, n)
}
