package emulator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nitro-core-dx/internal/romgen"
)

// dotsPerFrame is one full 154-scanline DMG frame at 456 dots/scanline.
const dotsPerFrame = 154 * 456

// TestAudioRingPullReturnsRequestedLength checks AudioPull/Pull always
// fills the caller's buffer (clamped to ring capacity), matching the
// spec's audio_pull(machine, buf, n) contract.
func TestAudioRingPullReturnsRequestedLength(t *testing.T) {
	rom, err := romgen.BuildAPUSweepROM()
	require.NoError(t, err)

	m, err := New(rom)
	require.NoError(t, err)

	require.NoError(t, m.StepCycles(dotsPerFrame))

	buf := make([]int16, 256)
	n := m.AudioPull(buf)
	require.Equal(t, 256, n)
}

// TestAPUSweepOverflowDisablesChannelOneEndToEnd is the spec's "sweep to
// silence" scenario driven through the whole Machine rather than the APU
// in isolation: channel 1 starts at the minimum usable period with a
// self-reinforcing sweep, and the first sweep clock must overflow past
// 2047 and disable the channel, which NR52 reflects as channel 1's
// status bit clearing.
func TestAPUSweepOverflowDisablesChannelOneEndToEnd(t *testing.T) {
	rom, err := romgen.BuildAPUSweepROM()
	require.NoError(t, err)

	m, err := New(rom)
	require.NoError(t, err)

	// The fixture triggers channel 1 within its first few instructions;
	// sweep clocks come every 32768 dots (frame-sequencer steps 2 and 6),
	// so the first one falls well inside one 70224-dot frame.
	require.NoError(t, m.StepCycles(dotsPerFrame))

	require.False(t, m.APU.ChannelEnabled(0), "channel 1 must disable once the sweep overflows 2047")
}
