package merging

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"mods-merger/core/audit"
	"mods-merger/core/merge"
	"mods-merger/core/storage"
	"mods-merger/feature/materialdef"
	"mods-merger/feature/model"
	"mods-merger/feature/text"

	"go.uber.org/zap"
)

var (
	// ErrNoDatabase is returned by run queries when audit persistence is off.
	ErrNoDatabase = errors.New("audit database is not configured")
	// ErrNoStorage is returned by output listing when object storage is off.
	ErrNoStorage = errors.New("object storage is not configured")
)

// Result is the outcome of one manifest.
type Result struct {
	Reports []*merge.Report `json:"reports"`

	// Failed counts groups that stopped on a fatal failure.
	Failed int `json:"failed"`
}

// Service runs merge manifests.
type Service struct {
	cfg     merge.Config
	vanilla merge.VanillaSource
	client  storage.Client
	bucket  string
	region  string
	store   *audit.Store
	logger  *zap.Logger

	// merges write into one shared output root
	mu sync.Mutex
}

// NewService creates a merge service. client and store may be nil.
func NewService(cfg merge.Config, vanilla merge.VanillaSource, client storage.Client, storageCfg storage.Config, store *audit.Store, logger *zap.Logger) *Service {
	return &Service{
		cfg:     cfg,
		vanilla: vanilla,
		client:  client,
		bucket:  storageCfg.Bucket,
		region:  storageCfg.Region,
		store:   store,
		logger:  logger,
	}
}

func (s *Service) writer() merge.Writer {
	var w merge.Writer = merge.NewFileWriter(s.cfg.OutputDir)
	if s.cfg.Publish && s.client != nil {
		w = NewPublishingWriter(w, s.client, s.bucket, s.cfg.PublishPrefix, s.logger)
	}
	return w
}

func (s *Service) options() merge.Options {
	opts := merge.Options{
		Vanilla: s.vanilla,
		Writer:  s.writer(),
		Logger:  s.logger,
	}
	if s.cfg.LogDecisions {
		opts.Sink = merge.NewZapSink(s.logger)
	}
	return opts
}

// MergeGroup merges one group with the pipeline of its kind.
// The error is non-nil when the group could not produce output.
func (s *Service) MergeGroup(ctx context.Context, g Group) (*merge.Report, error) {
	opts := s.options()
	switch g.Kind {
	case merge.KindModel:
		return merge.NewPipeline[*model.Document](model.NewKind(), opts).MergeFiles(ctx, g.Files)
	case merge.KindText:
		return merge.NewPipeline[*text.Document](text.NewKind(), opts).MergeFiles(ctx, g.Files)
	case merge.KindMaterialDef:
		return merge.NewPipeline[*materialdef.Document](materialdef.NewKind(), opts).MergeFiles(ctx, g.Files)
	}
	return nil, fmt.Errorf("unknown asset kind %q", g.Kind)
}

// Run merges every group of m in order. A group failing fatally does not stop the others.
func (s *Service) Run(ctx context.Context, m *Manifest) (*Result, error) {
	if err := m.Resolve(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.Publish && s.client != nil {
		if err := storage.EnsureBucket(ctx, s.client, s.bucket, s.region); err != nil {
			s.logger.Warn("Publishing bucket unavailable", zap.Error(err))
		}
	}

	result := &Result{}
	for i, g := range m.Groups {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		s.logger.Info("Merging group", zap.Int("group", i+1), zap.Int("total", len(m.Groups)), zap.Stringer("asset", g))

		report, err := s.MergeGroup(ctx, g)
		if err != nil {
			result.Failed++
			s.logger.Error("Group failed", zap.Stringer("asset", g), zap.Error(err))
		}
		if report == nil {
			continue
		}
		result.Reports = append(result.Reports, report)
		s.record(ctx, report)
	}

	s.logger.Info("Merge run finished", zap.Int("groups", len(m.Groups)), zap.Int("failed", result.Failed))
	return result, nil
}

func (s *Service) record(ctx context.Context, report *merge.Report) {
	if s.store == nil || !s.cfg.RecordAudit {
		return
	}
	if err := s.store.SaveReport(ctx, report); err != nil {
		s.logger.Warn("Failed to record merge run", zap.String("run_id", report.RunID), zap.Error(err))
	}
}

// ListRuns returns recorded runs, most recent first.
func (s *Service) ListRuns(ctx context.Context, limit int) ([]audit.Run, error) {
	if s.store == nil {
		return nil, ErrNoDatabase
	}
	return s.store.ListRuns(ctx, limit)
}

// GetRun returns one recorded run with its audit records.
func (s *Service) GetRun(ctx context.Context, id string) (*audit.Run, error) {
	if s.store == nil {
		return nil, ErrNoDatabase
	}
	return s.store.GetRun(ctx, id)
}

// ListOutputs returns the object keys of published merge output.
func (s *Service) ListOutputs(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	prefix := s.cfg.PublishPrefix
	if prefix != "" {
		prefix += "/"
	}
	return storage.ListKeys(ctx, s.client, s.bucket, prefix)
}
