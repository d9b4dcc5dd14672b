package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Labels.Store)
	assert.Equal(t, 9, cfg.Lineage.MaxFanOut)

	g := cfg.GestureConfig()
	assert.Equal(t, 500*time.Millisecond, g.LongPress)
	assert.Equal(t, 12.0, g.JitterPx)
	assert.Equal(t, 28.0, g.SwipeThresholdPx)
	assert.Len(t, cfg.ImageBases(), 2)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SWIPETREE_SERVER_ADDR", ":9090")
	t.Setenv("SWIPETREE_GESTURE_LONGPRESSMS", "600")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 600*time.Millisecond, cfg.GestureConfig().LongPress)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "swipetree.yaml")
	doc := `
gesture:
  jitterPx: 18
  swipeThresholdPx: 40
lineage:
  maxFanOut: 5
images:
  fallback: ""
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 18.0, cfg.Gesture.JitterPx)
	assert.Equal(t, 40.0, cfg.Gesture.SwipeThresholdPx)
	assert.Equal(t, 5, cfg.Lineage.MaxFanOut)
	assert.Len(t, cfg.ImageBases(), 1)
}

func TestValidate(t *testing.T) {
	chdir(t, t.TempDir())
	base, err := Load("")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero long press", func(c *Config) { c.Gesture.LongPressMs = 0 }},
		{"fan-out too large", func(c *Config) { c.Lineage.MaxFanOut = 10 }},
		{"redis without url", func(c *Config) { c.Labels.Store = "redis" }},
		{"postgres without url", func(c *Config) { c.Labels.Store = "postgres" }},
		{"unknown store", func(c *Config) { c.Labels.Store = "s3" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
