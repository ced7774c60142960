package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100.0, cfg.Sheet.DismissDistance)
	assert.Equal(t, 0.5, cfg.Sheet.DismissVelocity)
	assert.Equal(t, 300, cfg.Sheet.CloseDurationMS)
}

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().UI, cfg.UI)
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[ui]
width = 900
height = 700

[sheet]
dismiss_distance = 140.0
close_duration_ms = 250

[[profile.details]]
label = "Email"
value = "someone@example.com"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 900, cfg.UI.Width)
	assert.Equal(t, 140.0, cfg.Sheet.DismissDistance)
	assert.Equal(t, 0.5, cfg.Sheet.DismissVelocity, "untouched keys keep their defaults")
	require.Len(t, cfg.Profile.Details, 1)
	assert.Equal(t, "Email", cfg.Profile.Details[0].Label)

	sc := cfg.Sheet.Build(700)
	assert.Equal(t, 140.0, sc.DismissDistance)
	assert.Equal(t, 250*time.Millisecond, sc.CloseDuration)
	assert.InDelta(t, 700*0.8, sc.MaxHeight, 1e-9)
	assert.Equal(t, 700.0, sc.ContainerHeight)
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"ratios":   "[sheet]\nmin_ratio = 0.9\nmax_ratio = 0.5\n",
		"velocity": "[sheet]\ndismiss_velocity = 0.0\n",
		"window":   "[ui]\nwidth = -1\n",
		"syntax":   "[sheet\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
			_, err := LoadFile(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Profile.Name = "Ada"
	cfg.Sheet.Hysteresis = 6
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Ada", loaded.Profile.Name)
	assert.Equal(t, 6.0, loaded.Sheet.Hysteresis)

	store, err := loaded.StorePath()
	require.NoError(t, err)
	assert.Equal(t, "routes.cbor", filepath.Base(store))
}
