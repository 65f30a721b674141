package merge

import "time"

// AssetKind identifies which merge pipeline handles a group of files.
type AssetKind string

const (
	// KindModel merges materials, meshes and skeleton nodes of a model document.
	KindModel AssetKind = "model"
	// KindText merges localized string entries of a text-table bundle.
	KindText AssetKind = "text"
	// KindMaterialDef merges shader path, description, params and texture slots.
	KindMaterialDef AssetKind = "materialdef"
)

// Action is what a fold did to a single unit.
type Action string

const (
	// ActionReplaced overrides an accumulator unit with the candidate's.
	ActionReplaced Action = "replaced"
	// ActionAdded inserts a unit the accumulator did not have.
	ActionAdded Action = "added"
	// ActionSkipped ignores a candidate unit.
	ActionSkipped Action = "skipped"
	// ActionStructuralReplace discards a whole collection in favour of the candidate's.
	ActionStructuralReplace Action = "structural-replace"
)

// Reason explains why an Action was taken.
type Reason string

const (
	ReasonDivergesFromVanilla  Reason = "diverges-from-vanilla"
	ReasonNoVanillaReference   Reason = "no-vanilla-reference"
	ReasonNewRelativeToVanilla Reason = "new-relative-to-vanilla"
	ReasonStructuralMismatch   Reason = "structural-mismatch"
)

// FileToMerge is one mod's copy of an asset.
// Groups are handed in priority order: index 0 is the base, later entries override earlier.
type FileToMerge struct {
	// Path is the absolute path of the mod's file.
	Path string `json:"path" yaml:"path"`

	// RelativePath locates the same asset under the vanilla root and the output root.
	RelativePath string `json:"relative" yaml:"relative"`
}

// AuditRecord describes one decision taken by a fold.
type AuditRecord struct {
	// Kind is the pipeline that produced the record.
	Kind AssetKind `json:"kind"`

	// File is the candidate file being folded when the decision was taken.
	File string `json:"file"`

	// Collection names the unit's collection (e.g. "materials", "table[0]").
	Collection string `json:"collection"`

	// Key is the unit key within the collection (index, id, name or type).
	Key string `json:"key"`

	Action Action `json:"action"`
	Reason Reason `json:"reason"`

	// Detail carries optional human-readable context.
	Detail string `json:"detail,omitempty"`
}

// Summary provides aggregate counts for one merged group.
type Summary struct {
	// Files is the number of files in the group, base included.
	Files int `json:"files"`

	// Folded counts candidates successfully folded into the accumulator.
	Folded int `json:"folded"`

	// SkippedFiles counts candidates that failed to load.
	SkippedFiles int `json:"skipped_files"`

	Replaced               int `json:"replaced"`
	Added                  int `json:"added"`
	Skipped                int `json:"skipped"`
	StructuralReplacements int `json:"structural_replacements"`

	// Unchanged counts matched units where the accumulator kept its value.
	Unchanged int `json:"unchanged"`
}

func (s *Summary) count(a Action) {
	switch a {
	case ActionReplaced:
		s.Replaced++
	case ActionAdded:
		s.Added++
	case ActionSkipped:
		s.Skipped++
	case ActionStructuralReplace:
		s.StructuralReplacements++
	}
}

// Report is the outcome of merging one asset group.
type Report struct {
	// RunID uniquely identifies this merge.
	RunID string `json:"run_id"`

	Kind         AssetKind `json:"kind"`
	RelativePath string    `json:"relative_path"`

	// OutputPath is where the merged document was written, empty when not persisted.
	OutputPath string `json:"output_path"`

	// HasVanillaReference reports whether the vanilla document could be loaded.
	HasVanillaReference bool `json:"has_vanilla_reference"`

	// Persisted reports whether the merged document reached the output root.
	Persisted bool `json:"persisted"`

	Records  []AuditRecord `json:"records"`
	Failures []*Failure    `json:"failures"`
	Summary  Summary       `json:"summary"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Fatal reports whether the group stopped before producing output.
func (r *Report) Fatal() bool {
	for _, f := range r.Failures {
		if f.Kind.Fatal() {
			return true
		}
	}
	return false
}

// FailuresOf returns the failures of the given kind.
func (r *Report) FailuresOf(kind FailureKind) []*Failure {
	var out []*Failure
	for _, f := range r.Failures {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}
