package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCfgPath = "/home/user/.config/t9-led/config.toml"

func writeConfig(t *testing.T, contents string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, testCfgPath, []byte(contents), 0o600))
	return fs
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	d := Defaults()
	assert.Equal(t, DefaultSerialPort(), d.SerialPort)
	assert.Equal(t, 3, d.Brightness)
	assert.Equal(t, 3, d.Speed)
	assert.Equal(t, DefaultTimeout, d.TimeoutDuration())
	assert.False(t, d.DebugLogging)
	require.NoError(t, d.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	vals, err := Load(afero.NewMemMapFs(), testCfgPath)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), vals)
}

func TestLoadNoPath(t *testing.T) {
	t.Parallel()

	vals, err := Load(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), vals)
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	fs := writeConfig(t, `
serial_port = "  /dev/ttyS4 "
brightness = 5
debug_logging = true
`)

	vals, err := Load(fs, testCfgPath)
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyS4", vals.SerialPort)
	assert.Equal(t, 5, vals.Brightness)
	assert.Equal(t, 3, vals.Speed)
	assert.True(t, vals.DebugLogging)
	assert.Equal(t, DefaultTimeout, vals.TimeoutDuration())
}

func TestLoadTimeout(t *testing.T) {
	t.Parallel()

	vals, err := Load(writeConfig(t, `timeout = "250ms"`), testCfgPath)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, vals.TimeoutDuration())
}

func TestLoadInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contents string
		wantErr  string
	}{
		{name: "malformed toml", contents: `brightness = `, wantErr: "failed to unmarshal config"},
		{name: "wrong type", contents: `speed = "fast"`, wantErr: "failed to unmarshal config"},
		{name: "brightness out of range", contents: `brightness = 9`, wantErr: "Brightness (max)"},
		{name: "speed out of range", contents: `speed = 0`, wantErr: "Speed (min)"},
		{name: "empty port", contents: `serial_port = "   "`, wantErr: "SerialPort (required)"},
		{name: "bad timeout", contents: `timeout = "soon"`, wantErr: "Timeout (duration)"},
		{name: "negative timeout", contents: `timeout = "-1s"`, wantErr: "Timeout (duration)"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(writeConfig(t, tt.contents), testCfgPath)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPath(t *testing.T) {
	t.Run("explicit wins", func(t *testing.T) {
		t.Setenv(CfgEnv, "/from/env.toml")
		assert.Equal(t, "/explicit.toml", Path("/explicit.toml"))
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(CfgEnv, "/from/env.toml")
		assert.Equal(t, "/from/env.toml", Path(""))
	})

	t.Run("user config dir", func(t *testing.T) {
		t.Setenv(CfgEnv, "")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		t.Setenv("HOME", "/tmp/home")
		t.Setenv("AppData", "/tmp/appdata")

		got := Path("")
		assert.Equal(t, filepath.Join(AppDir, CfgFile), filepath.Join(filepath.Base(filepath.Dir(got)), filepath.Base(got)))
	})
}
