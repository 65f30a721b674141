package text

import (
	"context"
	"os"
	"testing"

	"mods-merger/core/dcx"
	"mods-merger/core/merge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memFiles map[string][]byte

func (m memFiles) read(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (m memFiles) Read(_ context.Context, rel string) ([]byte, error) {
	return m.read("vanilla/" + rel)
}

func (m memFiles) Write(_ context.Context, rel string, data []byte) (string, error) {
	m["out/"+rel] = data
	return "out/" + rel, nil
}

func encode(t *testing.T, doc *Document) []byte {
	t.Helper()
	data, err := Encode(doc)
	require.NoError(t, err)
	return data
}

func bundle(entries ...Entry) *Document {
	return &Document{Tables: []Table{{Name: "WeaponName", Entries: entries}}}
}

func newStep() (*merge.Step, *merge.MemorySink) {
	sink := merge.NewMemorySink()
	rec := merge.NewRecorder(merge.KindText, sink, nil)
	return merge.NewStep(merge.FileToMerge{Path: "/mods/b/item.msgbnd.dcx"}, zap.NewNop(), rec), sink
}

func TestEntriesEqual(t *testing.T) {
	assert.True(t, EntriesEqual(Entry{ID: 1, Text: "a\r\nb"}, Entry{ID: 1, Text: "a\nb"}))
	// precomposed vs combining acute
	assert.True(t, EntriesEqual(Entry{Text: "caf\u00e9"}, Entry{Text: "cafe\u0301"}))
	assert.False(t, EntriesEqual(Entry{Text: "Sword"}, Entry{Text: "Greatsword"}))
}

func TestTableLookup(t *testing.T) {
	table := Table{Entries: []Entry{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}}
	e, ok := table.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, "b", e.Text)
	_, ok = table.Lookup(3)
	assert.False(t, ok)
}

// Vanilla {100: Sword}, base unchanged, mod renames the entry.
func TestMergeFiles_OverridesDivergentEntry(t *testing.T) {
	files := memFiles{
		"vanilla/msg/item.msgbnd.dcx": encode(t, bundle(Entry{ID: 100, Text: "Sword"})),
		"a/item.msgbnd.dcx":           encode(t, bundle(Entry{ID: 100, Text: "Sword"})),
		"b/item.msgbnd.dcx":           encode(t, bundle(Entry{ID: 100, Text: "Greatsword"})),
	}
	p := merge.NewPipeline[*Document](NewKind(), merge.Options{Vanilla: files, Writer: files, ReadFile: files.read})

	report, err := p.MergeFiles(context.Background(), []merge.FileToMerge{
		{Path: "a/item.msgbnd.dcx", RelativePath: "msg/item.msgbnd.dcx"},
		{Path: "b/item.msgbnd.dcx", RelativePath: "msg/item.msgbnd.dcx"},
	})
	require.NoError(t, err)
	require.True(t, report.Persisted)
	assert.True(t, report.HasVanillaReference)

	require.Len(t, report.Records, 1)
	rec := report.Records[0]
	assert.Equal(t, "100", rec.Key)
	assert.Equal(t, merge.ActionReplaced, rec.Action)
	assert.Equal(t, merge.ReasonDivergesFromVanilla, rec.Reason)
	assert.Equal(t, "b/item.msgbnd.dcx", rec.File)

	merged, err := Decode(files["out/msg/item.msgbnd.dcx"])
	require.NoError(t, err)
	assert.Equal(t, "Greatsword", merged.Tables[0].Entries[0].Text)
}

// A candidate that fails to decode is skipped and the base is written as is.
func TestMergeFiles_SkipsUnreadableCandidate(t *testing.T) {
	base := bundle(Entry{ID: 1, Text: "one"}, Entry{ID: 2, Text: "two"})
	base.Compression = dcx.ModeZstd
	files := memFiles{
		"a/item.msgbnd.dcx": encode(t, base),
		"b/item.msgbnd.dcx": []byte("DCX\x00ZSTD garbage"),
	}
	core, logs := observer.New(zapcore.WarnLevel)
	p := merge.NewPipeline[*Document](NewKind(), merge.Options{Writer: files, ReadFile: files.read, Logger: zap.New(core)})

	report, err := p.MergeFiles(context.Background(), []merge.FileToMerge{
		{Path: "a/item.msgbnd.dcx", RelativePath: "msg/item.msgbnd.dcx"},
		{Path: "b/item.msgbnd.dcx", RelativePath: "msg/item.msgbnd.dcx"},
	})
	require.NoError(t, err)
	require.True(t, report.Persisted)

	failures := report.FailuresOf(merge.FailureCandidateLoad)
	require.Len(t, failures, 1)
	assert.Equal(t, "b/item.msgbnd.dcx", failures[0].File)
	assert.Equal(t, 1, report.Summary.SkippedFiles)
	assert.Equal(t, 1, logs.FilterMessage("Skipping mod file").Len())

	merged, err := Decode(files["out/msg/item.msgbnd.dcx"])
	require.NoError(t, err)
	assert.Equal(t, base.Tables, merged.Tables)
	assert.Equal(t, dcx.ModeZstd, merged.Mode())
}

func TestFold_InsertsAtCandidatePosition(t *testing.T) {
	step, sink := newStep()
	acc := bundle(Entry{ID: 1, Text: "one"}, Entry{ID: 3, Text: "three"})
	cand := bundle(Entry{ID: 1, Text: "one"}, Entry{ID: 2, Text: "two"}, Entry{ID: 3, Text: "three"})

	out, err := NewKind().Fold(acc, cand, merge.None[*Document](), step)
	require.NoError(t, err)

	assert.Equal(t, []Entry{{ID: 1, Text: "one"}, {ID: 2, Text: "two"}, {ID: 3, Text: "three"}}, out.Tables[0].Entries)
	records := sink.Records()
	require.Len(t, records, 1)
	assert.Equal(t, merge.ActionAdded, records[0].Action)
	assert.Equal(t, merge.ReasonNoVanillaReference, records[0].Reason)
	assert.Equal(t, "table[0] WeaponName", records[0].Collection)
}

func TestFold_VanillaEntryKept(t *testing.T) {
	step, sink := newStep()
	vanilla := bundle(Entry{ID: 1, Text: "one"}, Entry{ID: 2, Text: "two"})
	acc := bundle(Entry{ID: 1, Text: "uno"}, Entry{ID: 2, Text: "two"})
	cand := bundle(Entry{ID: 1, Text: "one"}, Entry{ID: 2, Text: "zwei"}, Entry{ID: 9, Text: "nine"})

	out, err := NewKind().Fold(acc, cand, merge.Some(vanilla), step)
	require.NoError(t, err)

	entries := out.Tables[0].Entries
	assert.Equal(t, "uno", entries[0].Text)
	assert.Equal(t, "zwei", entries[1].Text)
	assert.Equal(t, Entry{ID: 9, Text: "nine"}, entries[2])

	records := sink.Records()
	require.Len(t, records, 2)
	assert.Equal(t, merge.ReasonDivergesFromVanilla, records[0].Reason)
	assert.Equal(t, merge.ReasonNewRelativeToVanilla, records[1].Reason)
	assert.Equal(t, 1, step.Audit.Summary().Unchanged)
}

func TestFold_RemovedVanillaEntryNotReinserted(t *testing.T) {
	step, sink := newStep()
	vanilla := bundle(Entry{ID: 1, Text: "a"}, Entry{ID: 2, Text: "b"})
	acc := bundle(Entry{ID: 1, Text: "a"})
	cand := bundle(Entry{ID: 1, Text: "a"}, Entry{ID: 2, Text: "b"})

	out, err := NewKind().Fold(acc, cand, merge.Some(vanilla), step)
	require.NoError(t, err)

	assert.Equal(t, []Entry{{ID: 1, Text: "a"}}, out.Tables[0].Entries)
	assert.Empty(t, sink.Records())
	assert.Equal(t, 2, step.Audit.Summary().Unchanged)
}

// Without vanilla the candidate's exact text is kept even when it only differs
// in line endings.
func TestFold_NoVanillaKeepsCandidateText(t *testing.T) {
	step, sink := newStep()
	acc := bundle(Entry{ID: 1, Text: "line one\r\nline two"})
	cand := bundle(Entry{ID: 1, Text: "line one\nline two"})

	out, err := NewKind().Fold(acc, cand, merge.None[*Document](), step)
	require.NoError(t, err)

	assert.Equal(t, cand.Tables[0].Entries, out.Tables[0].Entries)
	require.Len(t, sink.Records(), 1)
	assert.Equal(t, merge.ReasonNoVanillaReference, sink.Records()[0].Reason)
}

func TestFold_TableCountMismatch(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sink := merge.NewMemorySink()
	step := merge.NewStep(merge.FileToMerge{Path: "b"}, zap.New(core), merge.NewRecorder(merge.KindText, sink, nil))

	acc := &Document{Tables: []Table{{Name: "A", Entries: []Entry{{ID: 1, Text: "a"}}}}}
	cand := &Document{Tables: []Table{
		{Name: "A", Entries: []Entry{{ID: 1, Text: "b"}}},
		{Name: "B", Entries: []Entry{{ID: 5, Text: "x"}}},
	}}
	vanilla := &Document{}

	out, err := NewKind().Fold(acc, cand, merge.Some(vanilla), step)
	require.NoError(t, err)

	require.Len(t, out.Tables, 1)
	assert.Equal(t, "b", out.Tables[0].Entries[0].Text)
	assert.Equal(t, 1, logs.FilterMessage("Text table count mismatch").Len())

	records := sink.Records()
	require.Len(t, records, 2)
	// table 0 has no vanilla counterpart
	assert.Equal(t, merge.ReasonNoVanillaReference, records[0].Reason)
	assert.Equal(t, merge.ActionSkipped, records[1].Action)
	assert.Equal(t, "table[1] B", records[1].Collection)
}
