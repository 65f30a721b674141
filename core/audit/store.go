package audit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mods-merger/core/database"
	"mods-merger/core/merge"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a run id is unknown.
var ErrNotFound = errors.New("merge run not found")

const recordBatchSize = 500

// Store persists merge reports.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the audit tables and checks the resulting schema.
func (s *Store) Migrate(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if err := db.AutoMigrate(&Run{}, &Record{}); err != nil {
		return fmt.Errorf("failed to migrate audit tables: %w", err)
	}

	for table, expected := range map[string][]string{
		Run{}.TableName():    runColumns,
		Record{}.TableName(): recordColumns,
	} {
		missing, err := database.MissingColumns(db, table, expected)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return fmt.Errorf("table %s is missing columns: %s", table, strings.Join(missing, ", "))
		}
	}
	return nil
}

// FromReport converts a report into its persisted form.
func FromReport(r *merge.Report) Run {
	run := Run{
		ID:                     r.RunID,
		Kind:                   string(r.Kind),
		RelativePath:           r.RelativePath,
		OutputPath:             r.OutputPath,
		HasVanilla:             r.HasVanillaReference,
		Persisted:              r.Persisted,
		Fatal:                  r.Fatal(),
		Files:                  r.Summary.Files,
		Folded:                 r.Summary.Folded,
		SkippedFiles:           r.Summary.SkippedFiles,
		Replaced:               r.Summary.Replaced,
		Added:                  r.Summary.Added,
		Skipped:                r.Summary.Skipped,
		StructuralReplacements: r.Summary.StructuralReplacements,
		Unchanged:              r.Summary.Unchanged,
		StartedAt:              r.StartedAt,
		FinishedAt:             r.FinishedAt,
	}

	lines := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		lines = append(lines, fmt.Sprintf("%s: %s", f.Kind, f.Message))
	}
	run.Failures = strings.Join(lines, "\n")

	run.Records = make([]Record, 0, len(r.Records))
	for _, rec := range r.Records {
		run.Records = append(run.Records, Record{
			RunID:      r.RunID,
			Kind:       string(rec.Kind),
			File:       rec.File,
			Collection: rec.Collection,
			Key:        rec.Key,
			Action:     string(rec.Action),
			Reason:     string(rec.Reason),
			Detail:     rec.Detail,
		})
	}
	return run
}

// SaveReport stores a report and its records in one transaction.
func (s *Store) SaveReport(ctx context.Context, r *merge.Report) error {
	if r == nil {
		return nil
	}
	run := FromReport(r)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&run).Error; err != nil {
			return fmt.Errorf("failed to save merge run: %w", err)
		}
		if len(run.Records) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(run.Records, recordBatchSize).Error; err != nil {
			return fmt.Errorf("failed to save merge records: %w", err)
		}
		return nil
	})
}

// ListRuns returns the most recent runs without their records.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	var runs []Run
	if err := s.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list merge runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run with its records in emission order.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.db.WithContext(ctx).
		Preload("Records", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ?", id).
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get merge run %s: %w", id, err)
	}
	return &run, nil
}
