//go:build linux

package transport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTarmOpener(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	regular := filepath.Join(dir, "not-a-tty")
	require.NoError(t, os.WriteFile(regular, nil, 0o600))

	tests := []struct {
		name     string
		path     string
		baud     int
		wantKind error
	}{
		{
			name:     "missing device",
			path:     filepath.Join(dir, "ttyUSB9"),
			baud:     StandardBaudRate,
			wantKind: ErrPortUnavailable,
		},
		{
			name:     "not a terminal",
			path:     regular,
			baud:     StandardBaudRate,
			wantKind: ErrConfigurationFailed,
		},
		{
			name:     "rate outside speed table",
			path:     regular,
			baud:     TargetBaudRate,
			wantKind: ErrConfigurationFailed,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := tarmOpener(tt.path, tt.baud)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, tt.wantKind)
		})
	}
}
