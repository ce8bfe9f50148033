package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/attrorder/internal/host"
	"github.com/codex-k8s/attrorder/internal/logging"
	"github.com/codex-k8s/attrorder/internal/scene"
	"github.com/codex-k8s/attrorder/internal/state"
)

type cliResult struct {
	out    string
	errOut string
}

func runCLI(t *testing.T, dir string, args ...string) (cliResult, error) {
	t.Helper()
	opts := &Options{ConfigPath: defaultConfigPath, LogLevel: logging.LevelInfo}
	cmd := newRootCommand(opts, logging.Discard())

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "attrorder.yaml")}, args...))

	err := cmd.Execute()
	return cliResult{out: out.String(), errOut: errOut.String()}, err
}

func mustRun(t *testing.T, dir string, args ...string) cliResult {
	t.Helper()
	res, err := runCLI(t, dir, args...)
	require.NoError(t, err, "args=%v stderr=%s", args, res.errOut)
	return res
}

// setupRig creates a config and a scene with object ctrl holding A, B (locked), C, D.
func setupRig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "attrorder.yaml"), []byte("scene: rig/scene.yaml\nstrategy: shuffle\n"), 0o600))

	mustRun(t, dir, "scene", "init")
	mustRun(t, dir, "scene", "add-object", "ctrl", "--builtin", "translateX,visibility")
	mustRun(t, dir, "scene", "add-attr", "ctrl", "A", "--value", "1.5")
	mustRun(t, dir, "scene", "add-attr", "ctrl", "B", "--value", "label", "--locked")
	mustRun(t, dir, "scene", "add-attr", "ctrl", "C")
	mustRun(t, dir, "scene", "add-attr", "ctrl", "D", "--value", "3")
	return dir
}

func loadScene(t *testing.T, dir string) *scene.Scene {
	t.Helper()
	st, err := state.NewStore(filepath.Join(dir, "rig", "scene.yaml"), logging.Discard())
	require.NoError(t, err)
	sc, err := st.Load(scene.Options{Logger: logging.Discard()})
	require.NoError(t, err)
	return sc
}

func ctrlOrder(t *testing.T, sc *scene.Scene) []string {
	t.Helper()
	elems, err := sc.ListUserDefined("ctrl")
	require.NoError(t, err)
	return host.Names(elems)
}

func TestMoveDownAndUp(t *testing.T) {
	dir := setupRig(t)
	mustRun(t, dir, "select", "--objects", "ctrl", "--attrs", "B")

	res := mustRun(t, dir, "down")
	assert.Equal(t, "ctrl: A C B D\n", res.out)

	sc := loadScene(t, dir)
	assert.Equal(t, []string{"A", "C", "B", "D"}, ctrlOrder(t, sc))
	b, ok := sc.Attribute("ctrl", "B")
	require.True(t, ok)
	assert.True(t, b.Locked)
	assert.Equal(t, "label", b.Value)

	res = mustRun(t, dir, "up")
	assert.Equal(t, "ctrl: A B C D\n", res.out)
	a, ok := loadScene(t, dir).Attribute("ctrl", "A")
	require.True(t, ok)
	assert.Equal(t, 1.5, a.Value)
}

func TestMoveNativeStrategyFlag(t *testing.T) {
	dir := setupRig(t)
	mustRun(t, dir, "select", "--objects", "ctrl", "--attrs", "B,D")

	res := mustRun(t, dir, "--strategy", "native", "down")
	assert.Equal(t, "ctrl: A C B D\n", res.out)
}

func TestMoveWarnsOnBuiltin(t *testing.T) {
	dir := setupRig(t)
	mustRun(t, dir, "select", "--objects", "ctrl", "--attrs", "translateX")

	res := mustRun(t, dir, "down")
	assert.Empty(t, res.out)
	assert.Contains(t, res.errOut, "Selected attribute cannot be moved.")
	assert.Equal(t, []string{"A", "B", "C", "D"}, ctrlOrder(t, loadScene(t, dir)))
}

func TestMoveWarnsWithoutSelection(t *testing.T) {
	dir := setupRig(t)

	res := mustRun(t, dir, "up")
	assert.Contains(t, res.errOut, "Please select one or more transform nodes.")
}

func TestListPrintsAttributes(t *testing.T) {
	dir := setupRig(t)

	res := mustRun(t, dir, "list", "ctrl")
	assert.Contains(t, res.out, "OBJECT")
	assert.Regexp(t, `ctrl\s+1\s+B\s+true\s+label`, res.out)
	assert.Regexp(t, `ctrl\s+2\s+C\s+false\s+-`, res.out)

	_, err := runCLI(t, dir, "list", "ghost")
	assert.ErrorIs(t, err, scene.ErrNotFound)
}

func TestLockUnlock(t *testing.T) {
	dir := setupRig(t)

	mustRun(t, dir, "scene", "unlock", "ctrl", "B")
	mustRun(t, dir, "scene", "lock", "ctrl", "C")
	locked, err := loadScene(t, dir).ListLocked("ctrl")
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, locked)

	_, err = runCLI(t, dir, "scene", "lock", "ctrl", "nope")
	assert.ErrorIs(t, err, scene.ErrNotFound)
}

func TestSceneInitRefusesOverwrite(t *testing.T) {
	dir := setupRig(t)

	_, err := runCLI(t, dir, "scene", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	mustRun(t, dir, "scene", "init", "--force")
	assert.Empty(t, loadScene(t, dir).Objects())
}

func TestMissingSceneFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "attrorder.yaml"), []byte("scene: none.yaml\n"), 0o600))

	_, err := runCLI(t, dir, "down")
	require.Error(t, err)
	assert.True(t, state.IsNotFoundError(err))
}

func TestInvalidSettings(t *testing.T) {
	dir := setupRig(t)

	_, err := runCLI(t, dir, "--strategy", "teleport", "down")
	assert.Error(t, err)

	t.Setenv("ATTRORDER_VALIDATION", "some")
	_, err = runCLI(t, dir, "down")
	assert.Error(t, err)
}

func TestEnvOverridesConfig(t *testing.T) {
	dir := setupRig(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "attrorder.env"), []byte("ATTRORDER_VALIDATION=all\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "attrorder.yaml"),
		[]byte("envFiles: [attrorder.env]\nscene: rig/scene.yaml\n"), 0o600))
	mustRun(t, dir, "select", "--objects", "ctrl", "--attrs", "B,translateX")

	res := mustRun(t, dir, "up")
	assert.Empty(t, res.out)
	assert.Contains(t, res.errOut, "Selected attribute cannot be moved.")

	res = mustRun(t, dir, "--validation", "first", "up")
	assert.Equal(t, "ctrl: B A C D\n", res.out)
}

func TestMoveWritesReport(t *testing.T) {
	dir := setupRig(t)
	mustRun(t, dir, "select", "--objects", "ctrl", "--attrs", "C")
	reportPath := filepath.Join(dir, "report.env")

	mustRun(t, dir, "up", "--report", reportPath)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Equal(t, "ctrl=A,C,B,D\n", string(data))
}
