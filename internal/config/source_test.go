package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/errors"
)

func TestLoadReadsRawTree(t *testing.T) {
	tree, err := Load(filepath.Join("testdata", "config.toml"))
	require.NoError(t, err)

	general, ok := tree["general"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "LIVE", general["mode"])
	assert.Equal(t, int64(1001), general["session_id"])

	// no semantic validation at this stage: text ports pass through
	broker, ok := tree["broker"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "7497", broker["port"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "does-not-exist.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[general\nmode = \"LIVE\"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Greater(t, pe.Line, 0)
}
