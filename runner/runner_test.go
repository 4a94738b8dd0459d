package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcodex/sysdiag/diag"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestRunCapturesOutput(t *testing.T) {
	script := writeScript(t, "echo out; echo err >&2\n")
	res, err := Run(context.Background(), Spec{Program: script, Timeout: 5 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
	assert.Greater(t, res.Elapsed, time.Duration(0))
}

func TestRunMissingProgram(t *testing.T) {
	_, err := Run(context.Background(), Spec{Program: "definitely-not-a-real-command-xyz"})
	assert.True(t, diag.IsKind(err, diag.KindNotFound))
}

func TestRunNonZeroExit(t *testing.T) {
	script := writeScript(t, "echo broken >&2; exit 3\n")
	_, err := Run(context.Background(), Spec{Program: script, Timeout: 5 * time.Second})
	assert.True(t, diag.IsKind(err, diag.KindCommandFailed))
	assert.Contains(t, err.Error(), "exit code 3")
	assert.Contains(t, err.Error(), "broken")
}

func TestRunTimeout(t *testing.T) {
	script := writeScript(t, "sleep 5\n")
	start := time.Now()
	_, err := Run(context.Background(), Spec{Program: script, Timeout: 100 * time.Millisecond})
	assert.True(t, diag.IsKind(err, diag.KindTimeout))
	// the bound plus scheduling slack, far below the sleep duration
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestRunEmptyProgram(t *testing.T) {
	_, err := Run(context.Background(), Spec{})
	assert.True(t, diag.IsKind(err, diag.KindInvalidArgument))
}

func TestReadFileMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	content, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", content)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, diag.IsKind(err, diag.KindNotFound))
}

func TestReadDirMissing(t *testing.T) {
	_, err := ReadDir("/no/such/dir/sysdiag-test")
	assert.True(t, diag.IsKind(err, diag.KindNotFound))
}
