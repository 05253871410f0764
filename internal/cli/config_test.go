package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/infra/config"
	"github.com/runoshun/tally/internal/testutil"
)

func TestConfigShowCommand(t *testing.T) {
	c, _ := newTestContainer(testutil.NewMockTaskRepository())
	dir := t.TempDir()
	c.ConfigManager = config.NewManagerWithGlobalDir(dir)
	c.Config.DataDir = "/data/tally"

	out, err := execute(t, newConfigShowCommand(c))

	require.NoError(t, err)
	assert.Contains(t, out, "[Loaded from]")
	assert.Contains(t, out, filepath.Join(dir, "config.toml")+" (not found)")
	assert.Contains(t, out, "/data/tally")
	assert.Contains(t, out, "[Effective Config]")
	assert.Contains(t, out, "flush = 'tick'")
}

func TestConfigInitCommand(t *testing.T) {
	c, _ := newTestContainer(testutil.NewMockTaskRepository())
	dir := filepath.Join(t.TempDir(), "tally")
	c.ConfigManager = config.NewManagerWithGlobalDir(dir)
	path := filepath.Join(dir, "config.toml")

	out, err := execute(t, newConfigInitCommand(c))
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfigTemplate(), string(data))

	_, err = execute(t, newConfigInitCommand(c))
	assert.ErrorIs(t, err, domain.ErrConfigExists)

	_, err = execute(t, newConfigInitCommand(c), "--force")
	assert.NoError(t, err)
}
