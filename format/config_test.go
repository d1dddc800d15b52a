package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigIndexBijection(t *testing.T) {
	seen := make(map[Config]uint8, ConfigCount)
	count := 0
	for idx, cfg := range AllConfigs() {
		require.Equal(t, uint8(count), idx) //nolint:gosec
		require.Equal(t, idx, cfg.Index())
		require.Equal(t, cfg, ConfigFromIndex(cfg.Index()))

		prev, dup := seen[cfg]
		require.False(t, dup, "config %s already produced by index %d", cfg, prev)
		seen[cfg] = idx
		count++
	}

	require.Equal(t, ConfigCount, count)
	require.Len(t, seen, ConfigCount)
}

func TestConfigIndexLayout(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want uint8
	}{
		{"zero", Config{}, 0},
		{"start right", Config{StartRight: true}, 0x01},
		{"start left", Config{StartDirection: DirLeft}, 0x06},
		{"first down", Config{FirstDirection: DirDown}, 0x10},
		{"ccw", Config{CCW: true}, 0x20},
		{"relative", Config{Relative: true}, 0x40},
		{"queue", Config{UseQueue: true}, 0x80},
		{
			"all set",
			Config{UseQueue: true, Relative: true, CCW: true, FirstDirection: DirLeft, StartDirection: DirLeft, StartRight: true},
			0xFF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.cfg.Index())
			require.Equal(t, tt.cfg, ConfigFromIndex(tt.want))
		})
	}
}

func TestConfigInitialFacing(t *testing.T) {
	require.Equal(t, DirRight, Config{StartDirection: DirUp}.InitialFacing())
	require.Equal(t, DirLeft, Config{StartDirection: DirUp, StartRight: true}.InitialFacing())
	require.Equal(t, DirUp, Config{StartDirection: DirLeft}.InitialFacing())
	require.Equal(t, DirDown, Config{StartDirection: DirLeft, StartRight: true}.InitialFacing())
}

func TestAllConfigsEarlyStop(t *testing.T) {
	n := 0
	for range AllConfigs() {
		n++
		if n == 3 {
			break
		}
	}
	require.Equal(t, 3, n)
}
