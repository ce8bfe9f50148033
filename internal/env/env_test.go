package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeLaterWins(t *testing.T) {
	got := Merge(Vars{"A": "1", "B": "1"}, nil, Vars{"B": "2"})
	assert.Equal(t, Vars{"A": "1", "B": "2"}, got)
}

func TestFromOS(t *testing.T) {
	t.Setenv("ATTRORDER_TEST_VAR", "x=y")
	assert.Equal(t, "x=y", FromOS()["ATTRORDER_TEST_VAR"])
}

func TestLookup(t *testing.T) {
	v := Vars{"SCENE": "rig.yaml"}
	assert.Equal(t, "rig.yaml", v.Lookup("SCENE"))
	assert.Equal(t, "", v.Lookup("MISSING"))
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.env"), []byte("A=1\nB=from-a\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.env"), []byte("# comment\nB=from-b\n"), 0o600))

	got, err := LoadEnvFiles(dir, []string{"a.env", "", "b.env"}, false)
	require.NoError(t, err)
	assert.Equal(t, Vars{"A": "1", "B": "from-b"}, got)
}

func TestLoadEnvFilesMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadEnvFiles(dir, []string{"nope.env"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.env")

	got, err := LoadEnvFiles(dir, []string{"nope.env"}, true)
	require.NoError(t, err)
	assert.Empty(t, got)
}
