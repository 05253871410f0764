package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("TALLY_CONFIG", "")
	return dir
}

func TestRun_Version(t *testing.T) {
	setupEnv(t)
	var out bytes.Buffer

	err := run([]string{"--version"}, &out, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "dev")
}

func TestRun_AddListSummary(t *testing.T) {
	dir := setupEnv(t)
	var out, errOut bytes.Buffer

	require.NoError(t, run([]string{"add", "Write report", "-c", "work"}, &out, &errOut))
	require.NoError(t, run([]string{"done", "1"}, &out, &errOut))

	out.Reset()
	require.NoError(t, run([]string{"list"}, &out, &errOut))
	assert.Contains(t, out.String(), "Write report")
	assert.Contains(t, out.String(), "Completed")

	out.Reset()
	require.NoError(t, run([]string{"summary"}, &out, &errOut))
	assert.Contains(t, out.String(), "Completed: 1")

	assert.FileExists(t, filepath.Join(dir, "data", "tally", "tasks.json"))
	assert.Empty(t, errOut.String())
}

func TestRun_Error(t *testing.T) {
	setupEnv(t)
	var out bytes.Buffer

	err := run([]string{"rm", "1"}, &out, &out)

	assert.Error(t, err)
}

func TestRun_ConfigInit(t *testing.T) {
	dir := setupEnv(t)
	var out bytes.Buffer

	require.NoError(t, run([]string{"config", "init"}, &out, &out))

	assert.FileExists(t, filepath.Join(dir, "config", "tally", "config.toml"))
}
