package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nearby.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
directory_url = "https://directory.example"
request_timeout = "3s"

[log]
level = "debug"
format = "json"

[simulator]
supported = false
interval = "250ms"

[server]
listen = ":9090"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, "https://directory.example", cfg.DirectoryURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, def.Log.NoColor, cfg.Log.NoColor)
	assert.False(t, cfg.Simulator.Supported)
	assert.Equal(t, 250*time.Millisecond, cfg.Simulator.Interval)
	assert.Equal(t, def.Simulator.BaseDistance, cfg.Simulator.BaseDistance)
	assert.Equal(t, def.Simulator.Amplitude, cfg.Simulator.Amplitude)
	assert.Equal(t, ":9090", cfg.Listen)
}

func TestLoadConfigEmptyFileIsDefault(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	cases := map[string]string{
		"bad duration":  `request_timeout = "soon"`,
		"unknown key":   `directory = "x"`,
		"empty url":     `directory_url = ""`,
		"zero interval": "[simulator]\ninterval = \"0s\"",
		"bad level":     "[log]\nlevel = \"loud\"",
		"bad syntax":    `directory_url = `,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
