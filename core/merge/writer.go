package merge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"mods-merger/core/utils"
)

// FileWriter writes merged documents under Root, mirroring their relative path.
type FileWriter struct {
	Root string
}

// NewFileWriter creates a writer rooted at root.
func NewFileWriter(root string) *FileWriter {
	return &FileWriter{Root: root}
}

// Write creates parent directories and replaces the target atomically.
func (w *FileWriter) Write(ctx context.Context, relativePath string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rel, err := utils.CleanRelPath(relativePath)
	if err != nil {
		return "", err
	}
	target := filepath.Join(w.Root, filepath.FromSlash(rel))

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".merge-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("close %s: %w", target, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("replace %s: %w", target, err)
	}
	return target, nil
}
