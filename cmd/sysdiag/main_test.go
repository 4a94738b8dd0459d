package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcodex/sysdiag/diag"
)

// execute runs the CLI with the given arguments and captures stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestListDirJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.log"), []byte("hello\n"), 0o644))

	out, err := execute(t, "storage", "list-dir", dir, "--sort", "name")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, dir, decoded["path"])
	assert.Equal(t, "name", decoded["sorted_by"])
	assert.Equal(t, float64(1), decoded["entry_count"])
}

func TestListDirText(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.log"), []byte("hello\n"), 0o644))

	out, err := execute(t, "storage", "list-dir", dir, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "a.log")
	assert.Contains(t, out, "Entry Count: 1")
}

func TestListDirInvalidSort(t *testing.T) {
	_, err := execute(t, "storage", "list-dir", t.TempDir(), "--sort", "owner")
	require.Error(t, err)
	assert.True(t, diag.IsKind(err, diag.KindInvalidArgument))
}

func TestLogsReadMissingFile(t *testing.T) {
	_, err := execute(t, "logs", "read", filepath.Join(t.TempDir(), "absent.log"))
	require.Error(t, err)
	assert.True(t, diag.IsKind(err, diag.KindNotFound))
}

func TestProcessInfoBadPid(t *testing.T) {
	_, err := execute(t, "process", "info", "abc")
	require.Error(t, err)
	assert.True(t, diag.IsKind(err, diag.KindInvalidArgument))
}

func TestInvalidFormatFlag(t *testing.T) {
	_, err := execute(t, "storage", "list-dir", t.TempDir(), "--format", "yaml")
	require.Error(t, err)
	assert.True(t, diag.IsKind(err, diag.KindInvalidArgument))
}

func TestManualWriteAndCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sysdiag.json")

	out, err := execute(t, "manual", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote manual")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "sysdiag", doc["name"])

	out, err = execute(t, "manual", "--check", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "matches")
}

func TestManualCheckMissingFile(t *testing.T) {
	_, err := execute(t, "manual", "--check", "--out", filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
