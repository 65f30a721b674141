package merging

import (
	"context"
	"path"

	"mods-merger/core/merge"
	"mods-merger/core/storage"
	"mods-merger/core/utils"

	"go.uber.org/zap"
)

// PublishingWriter writes merged files locally and uploads a copy to object storage.
// Upload failures are logged; the local file is the merge result.
type PublishingWriter struct {
	next   merge.Writer
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewPublishingWriter wraps next so every written file is also uploaded under prefix.
func NewPublishingWriter(next merge.Writer, client storage.Client, bucket, prefix string, logger *zap.Logger) *PublishingWriter {
	return &PublishingWriter{next: next, client: client, bucket: bucket, prefix: prefix, logger: logger}
}

// ObjectName returns the key a relative path is published under.
func (w *PublishingWriter) ObjectName(relativePath string) (string, error) {
	rel, err := utils.CleanRelPath(relativePath)
	if err != nil {
		return "", err
	}
	return path.Join(w.prefix, rel), nil
}

func (w *PublishingWriter) Write(ctx context.Context, relativePath string, data []byte) (string, error) {
	out, err := w.next.Write(ctx, relativePath, data)
	if err != nil {
		return "", err
	}

	key, err := w.ObjectName(relativePath)
	if err == nil {
		err = storage.Upload(ctx, w.client, w.bucket, key, data)
	}
	if err != nil {
		w.logger.Warn("Failed to publish merged file", zap.String("output", out), zap.Error(err))
		return out, nil
	}
	w.logger.Info("Published merged file", zap.String("bucket", w.bucket), zap.String("object", key))
	return out, nil
}
