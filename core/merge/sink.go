package merge

import (
	"sync"

	"go.uber.org/zap"
)

// Sink receives audit records. Records are advisory and never alter a merge.
type Sink interface {
	Append(rec AuditRecord)
}

// MemorySink keeps records in memory. Safe for concurrent use.
type MemorySink struct {
	mu      sync.Mutex
	records []AuditRecord
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Append(rec AuditRecord) {
	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()
}

// Records returns a copy of the collected records.
func (s *MemorySink) Records() []AuditRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]AuditRecord, len(s.records))
	copy(out, s.records)
	return out
}

// ZapSink writes each record as a structured log entry.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink creates a sink logging through l.
func NewZapSink(l *zap.Logger) *ZapSink {
	return &ZapSink{logger: l}
}

func (s *ZapSink) Append(rec AuditRecord) {
	fields := []zap.Field{
		zap.String("kind", string(rec.Kind)),
		zap.String("file", rec.File),
		zap.String("collection", rec.Collection),
		zap.String("key", rec.Key),
		zap.String("action", string(rec.Action)),
		zap.String("reason", string(rec.Reason)),
	}
	if rec.Detail != "" {
		fields = append(fields, zap.String("detail", rec.Detail))
	}
	s.logger.Info("Merge decision", fields...)
}

type teeSink []Sink

func (t teeSink) Append(rec AuditRecord) {
	for _, s := range t {
		s.Append(rec)
	}
}

// Tee fans records out to every non-nil sink.
func Tee(sinks ...Sink) Sink {
	out := make(teeSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Recorder stamps records with the pipeline kind and the candidate file
// before handing them to a Sink, and keeps the group's running counts.
type Recorder struct {
	sink    Sink
	kind    AssetKind
	file    string
	summary *Summary
}

// NewRecorder creates a recorder for one group. summary may be nil.
func NewRecorder(kind AssetKind, sink Sink, summary *Summary) *Recorder {
	if summary == nil {
		summary = &Summary{}
	}
	return &Recorder{sink: sink, kind: kind, summary: summary}
}

// ForFile returns a recorder sharing the same sink and counts, stamping records with file.
func (r *Recorder) ForFile(file string) *Recorder {
	c := *r
	c.file = file
	return &c
}

// Record emits one audit record.
func (r *Recorder) Record(collection, key string, action Action, reason Reason, detail string) {
	r.summary.count(action)
	if r.sink == nil {
		return
	}
	r.sink.Append(AuditRecord{
		Kind:       r.kind,
		File:       r.file,
		Collection: collection,
		Key:        key,
		Action:     action,
		Reason:     reason,
		Detail:     detail,
	})
}

// Unchanged counts n matched units kept as they were.
func (r *Recorder) Unchanged(n int) {
	r.summary.Unchanged += n
}

// Summary returns the running counts.
func (r *Recorder) Summary() Summary {
	return *r.summary
}
