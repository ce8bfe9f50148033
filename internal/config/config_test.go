package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/attrorder/internal/env"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, vars, err := Load(filepath.Join(dir, "attrorder.yaml"), LoadOptions{Vars: env.Vars{"X": "1"}})
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.True(t, cfg.QuietEnabled())
	assert.Equal(t, "1", vars["X"])

	_, _, err = Load(filepath.Join(dir, "attrorder.yaml"), LoadOptions{Required: true})
	assert.Error(t, err)
}

func TestLoadExpandsEnvFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rig.env", "RIG=hero\nMODE=all\n")
	path := writeFile(t, dir, "attrorder.yaml", `
envFiles: [rig.env]
scene: scenes/${RIG}.yaml
validation: ${MODE}
strategy: shuffle
logLevel: ${LEVEL:-debug}
quiet: false
`)

	cfg, vars, err := Load(path, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "scenes", "hero.yaml"), cfg.Scene)
	assert.Equal(t, "all", cfg.Validation)
	assert.Equal(t, "shuffle", cfg.Strategy)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.QuietEnabled())
	assert.Equal(t, "hero", vars["RIG"])
}

func TestLoadVarsOverrideEnvFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rig.env", "RIG=hero\n")
	path := writeFile(t, dir, "attrorder.yaml", "envFiles: [rig.env]\nscene: /abs/${RIG}.yaml\n")

	cfg, _, err := Load(path, LoadOptions{Vars: env.Vars{"RIG": "villain"}})
	require.NoError(t, err)
	assert.Equal(t, "/abs/villain.yaml", cfg.Scene)
	assert.Equal(t, DefaultStrategy, cfg.Strategy)
	assert.True(t, cfg.QuietEnabled())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	path := writeFile(t, dir, "bad.yaml", "scene: [\n")
	_, _, err := Load(path, LoadOptions{})
	assert.Error(t, err)

	path = writeFile(t, dir, "missing-env.yaml", "envFiles: [nope.env]\n")
	_, _, err = Load(path, LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.env")

	_, _, err = Load("", LoadOptions{})
	assert.Error(t, err)
}
