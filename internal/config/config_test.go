package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLoadDefaults verifies that an empty path yields the defaults without
// touching the filesystem.
func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

// TestLoadFromFile verifies YAML parsing and merging over the defaults.
func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte("level: debug\nrequests: 7\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Level)
	require.Equal(t, DefaultColor, cfg.Color)
	require.Equal(t, 7, cfg.Requests)
}

// TestLoadMissingFile verifies that an explicit but absent path is an error.
func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

// TestValidate covers the rejection paths for level, color and workload.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Validate(nil), errConfigIsNotSet)

	cfg := Default()
	cfg.Level = "loud"
	require.ErrorIs(t, Validate(cfg), errUnknownLevel)

	cfg = Default()
	cfg.Color = "rainbow"
	require.ErrorIs(t, Validate(cfg), errUnknownColor)

	cfg = Default()
	cfg.Requests = 0
	require.ErrorIs(t, Validate(cfg), errBadRequests)

	require.NoError(t, Validate(Default()))
}
