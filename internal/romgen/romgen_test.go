package romgen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nitro-core-dx/internal/cartridge"
)

func TestAllFixturesBuildLoadableCartridges(t *testing.T) {
	builders := map[string]func() ([]byte, error){
		"serial pass":      BuildSerialPassROM,
		"timer interrupt":  BuildTimerInterruptROM,
		"ei delay":         BuildEIDelayROM,
		"halt wake":        BuildHaltWakeROM,
		"checkerboard":     BuildCheckerboardROM,
		"apu sweep":        BuildAPUSweepROM,
		"bouncing sprite":  BuildBouncingSpriteROM,
	}

	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			data, err := build()
			require.NoError(t, err)
			require.Len(t, data, 0x8000)

			cart, err := cartridge.New(data)
			require.NoError(t, err)
			require.NotNil(t, cart)
		})
	}
}
