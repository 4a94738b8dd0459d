package runner

import (
	"os"

	"github.com/lexcodex/sysdiag/diag"
)

// ReadFile reads a pseudo-file (or plain file) and maps filesystem errors
// onto the taxonomy so every reader shares the same failure semantics.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", mapFSError(path, err)
	}
	return string(data), nil
}

// ReadDir lists a directory with the same error mapping as ReadFile.
func ReadDir(path string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, mapFSError(path, err)
	}
	return entries, nil
}

// Readlink resolves a symlink with the same error mapping as ReadFile.
func Readlink(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", mapFSError(path, err)
	}
	return target, nil
}

func mapFSError(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return diag.Wrap(diag.KindNotFound, path, err, "no such file or directory")
	case os.IsPermission(err):
		return diag.Wrap(diag.KindPermission, path, err, "permission denied")
	default:
		return diag.Wrap(diag.KindCommandFailed, path, err, "read failed")
	}
}
