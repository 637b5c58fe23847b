package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
reactive = true
log_level = "debug"
`))
	require.NoError(t, err)

	want := DefaultConfig()
	want.Reactive = true
	want.LogLevel = "debug"
	assert.Equal(t, want, cfg)
}

func TestParseConfigRejectsUnknownKeys(t *testing.T) {
	_, err := ParseConfig([]byte(`reactiv = true`))
	assert.Error(t, err)
}

func TestParseConfigRejectsZeroCapacity(t *testing.T) {
	_, err := ParseConfig([]byte(`vertex_capacity = 0`))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.toml")
	require.NoError(t, os.WriteFile(path, []byte("tolerant = true\nbuffer_slack = 10\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Tolerant)
	assert.Equal(t, uint32(10), cfg.BufferSlack)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestConfigWatcherPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.toml")
	require.NoError(t, os.WriteFile(path, []byte("reactive = false\n"), 0o644))

	w, err := WatchConfig(path)
	require.NoError(t, err)
	defer w.Close()

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("reactive = true\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("reactive = true\nmetrics_interval = 5\n"), 0o644))

	var got *Config
	require.Eventually(t, func() bool {
		if cfg := w.Take(); cfg != nil && cfg.Reactive {
			got = cfg
		}
		return got != nil
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, uint64(5), got.MetricsInterval)
}

func TestConfigWatcherDoubleClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.toml")
	w, err := WatchConfig(path)
	require.NoError(t, err)

	assert.NoError(t, w.Close())
	assert.Error(t, w.Close())
}
