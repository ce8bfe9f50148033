package state

import (
	"testing"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/attrorder/internal/logging"
	"github.com/codex-k8s/attrorder/internal/scene"
)

func newMemStore(t *testing.T, path string) (*Store, vfs.FileSystem) {
	t.Helper()
	fs := memoryfs.New()
	st, err := NewStore(path, logging.Discard(), fs)
	require.NoError(t, err)
	return st, fs
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st, fs := newMemStore(t, "/rigs/hero/scene.yaml")

	sc := scene.New(scene.Options{Logger: logging.Discard()})
	require.NoError(t, sc.AddObject("ctrl", "translateX"))
	require.NoError(t, sc.AddAttribute("ctrl", scene.Attribute{Name: "speed", Value: 1.5, Locked: true}))
	require.NoError(t, sc.AddAttribute("ctrl", scene.Attribute{Name: "label", Value: "fast"}))
	sc.Select([]string{"ctrl"}, []string{"label"})

	require.NoError(t, st.Save(sc))
	ok, err := st.Exists()
	require.NoError(t, err)
	assert.True(t, ok)
	data, err := vfs.ReadFile(fs, "/rigs/hero/scene.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: speed")

	loaded, err := st.Load(scene.Options{Logger: logging.Discard()})
	require.NoError(t, err)
	assert.Equal(t, sc.Document(), loaded.Document())
}

func TestLoadMissing(t *testing.T) {
	st, _ := newMemStore(t, "/scene.yaml")

	exists, err := st.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = st.Load(scene.Options{})
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
	assert.Contains(t, err.Error(), "/scene.yaml")
}

func TestLoadInvalid(t *testing.T) {
	st, fs := newMemStore(t, "/scene.yaml")

	require.NoError(t, vfs.WriteFile(fs, "/scene.yaml", []byte("objects: [\n"), 0o644))
	_, err := st.Load(scene.Options{})
	require.Error(t, err)
	assert.False(t, IsNotFoundError(err))

	doc := "objects:\n  - name: a\n    attributes:\n      - name: x\n      - name: x\n"
	require.NoError(t, vfs.WriteFile(fs, "/scene.yaml", []byte(doc), 0o644))
	_, err = st.Load(scene.Options{})
	assert.ErrorIs(t, err, scene.ErrExists)
}

func TestNewStoreRejectsEmptyPath(t *testing.T) {
	_, err := NewStore(" ", nil)
	assert.Error(t, err)
}
