package emulator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nitro-core-dx/internal/romgen"
)

// TestLYVisitsEveryScanlineExactlyOncePerFrame is the spec's quantified
// frame invariant: across a full 70224-dot frame, LY must visit 0..153
// in order exactly once, without skipping or repeating a line.
func TestLYVisitsEveryScanlineExactlyOncePerFrame(t *testing.T) {
	rom, err := romgen.BuildCheckerboardROM()
	require.NoError(t, err)

	m, err := New(rom)
	require.NoError(t, err)

	var seen []uint8
	lastLY := m.PPU.LY
	seen = append(seen, lastLY)
	for len(seen) < 154 {
		if _, err := m.StepOne(); err != nil {
			t.Fatalf("step: %v", err)
		}
		if m.PPU.LY != lastLY {
			seen = append(seen, m.PPU.LY)
			lastLY = m.PPU.LY
		}
	}

	require.Len(t, seen, 154)
	for i, ly := range seen {
		require.Equal(t, uint8(i), ly, "scanline visited out of order at index %d", i)
	}
}

// TestFrameCompletionRaisesVBlank checks that crossing into line 144
// marks FrameComplete and increments the frame counter, matching
// endScanline's documented VBlank-entry behavior.
func TestFrameCompletionRaisesVBlank(t *testing.T) {
	rom, err := romgen.BuildCheckerboardROM()
	require.NoError(t, err)

	m, err := New(rom)
	require.NoError(t, err)

	initial := m.FrameCount
	require.NoError(t, m.StepUntilVBlank())
	require.Greater(t, m.FrameCount, initial)
}
