package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"mods-merger/core/storage"
	"mods-merger/core/utils"

	"github.com/minio/minio-go/v7"
)

// Source reads unmodified game assets by their path relative to the game root.
type Source interface {
	Read(ctx context.Context, relativePath string) ([]byte, error)
}

// ErrUnavailable is returned by None.
var ErrUnavailable = errors.New("no vanilla source configured")

// None never has a vanilla copy, forcing the no-reference merge policy.
type None struct{}

func (None) Read(context.Context, string) ([]byte, error) {
	return nil, ErrUnavailable
}

// DirSource reads an extracted game tree on disk.
type DirSource struct {
	Root string
}

// NewDirSource creates a source rooted at root.
func NewDirSource(root string) *DirSource {
	return &DirSource{Root: root}
}

func (s *DirSource) Read(ctx context.Context, relativePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel, err := utils.CleanRelPath(relativePath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.Root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, fmt.Errorf("read vanilla %s: %w", rel, err)
	}
	return data, nil
}

// StorageSource reads vanilla assets from an object storage bucket.
type StorageSource struct {
	client storage.Client
	bucket string
	prefix string
}

// NewStorageSource creates a source reading objects under prefix in bucket.
func NewStorageSource(client storage.Client, bucket, prefix string) *StorageSource {
	return &StorageSource{client: client, bucket: bucket, prefix: prefix}
}

// ObjectName maps a relative asset path to its object key.
func (s *StorageSource) ObjectName(relativePath string) (string, error) {
	rel, err := utils.CleanRelPath(relativePath)
	if err != nil {
		return "", err
	}
	if s.prefix == "" {
		return rel, nil
	}
	return path.Join(s.prefix, rel), nil
}

func (s *StorageSource) Read(ctx context.Context, relativePath string) ([]byte, error) {
	name, err := s.ObjectName(relativePath)
	if err != nil {
		return nil, err
	}
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get vanilla object %s: %w", name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read vanilla object %s: %w", name, err)
	}
	return data, nil
}
