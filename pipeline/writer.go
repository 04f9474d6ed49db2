package pipeline

import (
	"os"
	"path/filepath"

	"github.com/kbukum/audiodigest/errors"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// writeOutput writes data to root/dir/name, creating directories as needed.
func writeOutput(root, dir, name string, data []byte) (string, error) {
	target := filepath.Join(root, dir)
	path := filepath.Join(target, name)
	if err := os.MkdirAll(target, dirMode); err != nil {
		return path, errors.FileWriteFailed(path, err)
	}
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return path, errors.FileWriteFailed(path, err)
	}
	return path, nil
}
