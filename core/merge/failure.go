package merge

import (
	"errors"
	"fmt"
)

// FailureKind classifies what went wrong while merging a group.
type FailureKind string

const (
	// FailureVanillaLoad is a warning: the merge continues without a vanilla reference.
	FailureVanillaLoad FailureKind = "vanilla-load"
	// FailureBaseLoad is fatal for the group.
	FailureBaseLoad FailureKind = "base-load"
	// FailureCandidateLoad skips the candidate.
	FailureCandidateLoad FailureKind = "candidate-load"
	// FailureMergeStep is logged and the fold continues with the next unit.
	FailureMergeStep FailureKind = "merge-step"
	// FailurePersist is reported; the in-memory result is not rolled back.
	FailurePersist FailureKind = "persist"
	// FailureAuxiliary is a warning raised by texture copy or validation.
	FailureAuxiliary FailureKind = "auxiliary"
)

// Fatal reports whether this kind of failure stops the group.
func (k FailureKind) Fatal() bool {
	return k == FailureBaseLoad
}

// ErrNoFiles is returned when a group has nothing to merge.
var ErrNoFiles = errors.New("no files to merge")

// Failure is a caught error tagged with where in the pipeline it happened.
type Failure struct {
	Kind FailureKind `json:"kind"`

	// File is the file being processed, empty when not file-specific.
	File string `json:"file,omitempty"`

	// Unit names the collection or step, for merge-step failures.
	Unit string `json:"unit,omitempty"`

	Message string `json:"message"`

	Err error `json:"-"`
}

func newFailure(kind FailureKind, file string, err error) *Failure {
	return &Failure{Kind: kind, File: file, Message: err.Error(), Err: err}
}

func (f *Failure) Error() string {
	switch {
	case f.Unit != "" && f.File != "":
		return fmt.Sprintf("%s failure in %s (%s): %v", f.Kind, f.Unit, f.File, f.Err)
	case f.File != "":
		return fmt.Sprintf("%s failure (%s): %v", f.Kind, f.File, f.Err)
	default:
		return fmt.Sprintf("%s failure: %v", f.Kind, f.Err)
	}
}

func (f *Failure) Unwrap() error {
	return f.Err
}
