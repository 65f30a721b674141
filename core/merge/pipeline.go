package merge

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind is the asset-specific half of a pipeline: how documents of one kind
// are decoded, encoded and folded.
type Kind[D any] interface {
	// Name returns the asset kind handled.
	Name() AssetKind

	// Decode parses a document, container compression included.
	Decode(data []byte) (D, error)

	// Encode serializes a document using the compression it was decoded with.
	Encode(doc D) ([]byte, error)

	// Fold merges candidate into acc consulting vanilla and returns the new accumulator.
	// Collections should be folded inside step.Unit so one failing collection
	// does not stop the others.
	Fold(acc, candidate D, vanilla Reference[D], step *Step) (D, error)
}

// Finalizer is implemented by kinds that reconcile auxiliary files once the
// merged document has been written.
type Finalizer[D any] interface {
	AfterPersist(ctx context.Context, doc D, files []FileToMerge, outputPath string, step *Step) error
}

// VanillaSource reads unmodified assets by their relative path.
type VanillaSource interface {
	Read(ctx context.Context, relativePath string) ([]byte, error)
}

// Writer persists a merged document under the output root.
type Writer interface {
	// Write stores data at relativePath and returns the resulting location.
	Write(ctx context.Context, relativePath string, data []byte) (string, error)
}

// Step is the context handed to one fold.
type Step struct {
	// File is the candidate being folded.
	File FileToMerge

	// Index is the candidate's position in the group, Total the group size.
	Index int
	Total int

	Logger *zap.Logger
	Audit  *Recorder

	report *Report
}

// NewStep creates a standalone step, for folding outside a Pipeline.
// A nil logger discards output and a nil recorder only counts.
func NewStep(file FileToMerge, l *zap.Logger, rec *Recorder) *Step {
	if l == nil {
		l = zap.NewNop()
	}
	if rec == nil {
		rec = NewRecorder("", nil, nil)
	}
	return &Step{File: file, Index: 1, Total: 2, Logger: l, Audit: rec.ForFile(file.Path)}
}

// Failures returns the merge-step failures caught by Unit outside a Pipeline.
func (s *Step) Failures() []*Failure {
	if s.report == nil {
		return nil
	}
	return s.report.Failures
}

// Unit runs one collection merge. Errors and panics are recorded as
// merge-step failures and swallowed so the caller moves on to the next unit.
func (s *Step) Unit(name string, fn func() error) {
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		err = fn()
	}()
	if err == nil {
		return
	}

	f := newFailure(FailureMergeStep, s.File.Path, err)
	f.Unit = name
	if s.report == nil {
		s.report = &Report{}
	}
	s.report.Failures = append(s.report.Failures, f)
	s.Logger.Error("Merge step failed",
		zap.String("failure", string(f.Kind)),
		zap.String("unit", name),
		zap.String("file", s.File.Path),
		zap.Error(err),
	)
}

// Options configures a Pipeline.
type Options struct {
	// Vanilla is the source of unmodified assets. Nil merges without a reference.
	Vanilla VanillaSource

	// Writer persists the merged document. Required.
	Writer Writer

	// Sink receives audit records in addition to the report.
	Sink Sink

	Logger *zap.Logger

	// ReadFile loads mod files. Defaults to os.ReadFile.
	ReadFile func(path string) ([]byte, error)
}

// Pipeline merges groups of one asset kind.
type Pipeline[D any] struct {
	kind     Kind[D]
	vanilla  VanillaSource
	writer   Writer
	sink     Sink
	logger   *zap.Logger
	readFile func(string) ([]byte, error)
}

// NewPipeline creates a pipeline for kind.
func NewPipeline[D any](kind Kind[D], opts Options) *Pipeline[D] {
	l := opts.Logger
	if l == nil {
		l = zap.NewNop()
	}
	read := opts.ReadFile
	if read == nil {
		read = os.ReadFile
	}
	return &Pipeline[D]{
		kind:     kind,
		vanilla:  opts.Vanilla,
		writer:   opts.Writer,
		sink:     opts.Sink,
		logger:   l.With(zap.String("kind", string(kind.Name()))),
		readFile: read,
	}
}

// MergeFiles merges one group: files[0] is the base, later files override earlier.
// The returned error is non-nil only when the group could not start (no files)
// or the base failed to load. Every other failure is reported in the Report.
func (p *Pipeline[D]) MergeFiles(ctx context.Context, files []FileToMerge) (*Report, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	memory := NewMemorySink()
	report := &Report{
		RunID:        uuid.NewString(),
		Kind:         p.kind.Name(),
		RelativePath: files[0].RelativePath,
		StartedAt:    time.Now(),
		Summary:      Summary{Files: len(files)},
	}
	finish := func() {
		report.Records = memory.Records()
		report.FinishedAt = time.Now()
	}
	rec := NewRecorder(p.kind.Name(), Tee(memory, p.sink), &report.Summary)
	l := p.logger.With(zap.String("relative_path", files[0].RelativePath))

	vanilla := p.loadVanilla(ctx, files[0].RelativePath, report, l)
	report.HasVanillaReference = vanilla.Present()
	if vanilla.Present() {
		l.Info("Merge strategy: vanilla comparison", zap.Int("files", len(files)))
	} else {
		l.Info("Merge strategy: fallback (no vanilla reference)", zap.Int("files", len(files)))
	}

	acc, err := p.load(files[0].Path)
	if err != nil {
		f := newFailure(FailureBaseLoad, files[0].Path, err)
		report.Failures = append(report.Failures, f)
		l.Error("Base file failed to load", zap.String("failure", string(f.Kind)), zap.String("file", files[0].Path), zap.Error(err))
		finish()
		return report, f
	}

	for i := 1; i < len(files); i++ {
		file := files[i]
		candidate, err := p.load(file.Path)
		if err != nil {
			f := newFailure(FailureCandidateLoad, file.Path, err)
			report.Failures = append(report.Failures, f)
			report.Summary.SkippedFiles++
			l.Warn("Skipping mod file", zap.String("failure", string(f.Kind)), zap.String("file", file.Path), zap.Error(err))
			continue
		}

		l.Debug("Merging file", zap.String("file", file.Path), zap.Int("index", i), zap.Int("total", len(files)-1))
		step := &Step{
			File:   file,
			Index:  i,
			Total:  len(files),
			Logger: l.With(zap.String("file", file.Path)),
			Audit:  rec.ForFile(file.Path),
			report: report,
		}
		next, err := p.kind.Fold(acc, candidate, vanilla, step)
		if err != nil {
			f := newFailure(FailureMergeStep, file.Path, err)
			report.Failures = append(report.Failures, f)
			l.Error("Fold failed", zap.String("failure", string(f.Kind)), zap.String("file", file.Path), zap.Error(err))
			continue
		}
		acc = next
		report.Summary.Folded++
	}

	p.persist(ctx, acc, files, report, rec, l)

	finish()
	l.Info("Merge finished",
		zap.Bool("persisted", report.Persisted),
		zap.Int("replaced", report.Summary.Replaced),
		zap.Int("added", report.Summary.Added),
		zap.Int("skipped", report.Summary.Skipped),
		zap.Int("structural_replacements", report.Summary.StructuralReplacements),
		zap.Int("failures", len(report.Failures)),
	)
	return report, nil
}

func (p *Pipeline[D]) load(path string) (D, error) {
	var zero D
	data, err := p.readFile(path)
	if err != nil {
		return zero, err
	}
	doc, err := p.kind.Decode(data)
	if err != nil {
		return zero, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

func (p *Pipeline[D]) loadVanilla(ctx context.Context, rel string, report *Report, l *zap.Logger) Reference[D] {
	if p.vanilla == nil {
		return None[D]()
	}
	data, err := p.vanilla.Read(ctx, rel)
	if err == nil {
		var doc D
		doc, err = p.kind.Decode(data)
		if err == nil {
			return Some(doc)
		}
		err = fmt.Errorf("decode vanilla %s: %w", rel, err)
	}
	f := newFailure(FailureVanillaLoad, rel, err)
	report.Failures = append(report.Failures, f)
	l.Warn("Vanilla reference unavailable", zap.String("failure", string(f.Kind)), zap.Error(err))
	return None[D]()
}

func (p *Pipeline[D]) persist(ctx context.Context, acc D, files []FileToMerge, report *Report, rec *Recorder, l *zap.Logger) {
	fail := func(err error) {
		f := newFailure(FailurePersist, files[0].RelativePath, err)
		report.Failures = append(report.Failures, f)
		l.Error("Failed to persist merged file", zap.String("failure", string(f.Kind)), zap.Error(err))
	}

	if p.writer == nil {
		fail(fmt.Errorf("no output writer configured"))
		return
	}
	data, err := p.kind.Encode(acc)
	if err != nil {
		fail(fmt.Errorf("encode: %w", err))
		return
	}
	out, err := p.writer.Write(ctx, files[0].RelativePath, data)
	if err != nil {
		fail(err)
		return
	}
	report.OutputPath = out
	report.Persisted = true
	l.Info("Merged file written", zap.String("output", out), zap.Int("bytes", len(data)))

	fin, ok := p.kind.(Finalizer[D])
	if !ok {
		return
	}
	step := &Step{
		File:   files[0],
		Index:  0,
		Total:  len(files),
		Logger: l,
		Audit:  rec,
		report: report,
	}
	if err := fin.AfterPersist(ctx, acc, files, out, step); err != nil {
		f := newFailure(FailureAuxiliary, out, err)
		report.Failures = append(report.Failures, f)
		l.Warn("Auxiliary reconciliation failed", zap.String("failure", string(f.Kind)), zap.Error(err))
	}
}
