package text

import (
	"fmt"

	"mods-merger/core/merge"

	"go.uber.org/zap"
)

// Kind merges text bundles.
type Kind struct{}

// NewKind creates the text merge kind.
func NewKind() *Kind {
	return &Kind{}
}

func (k *Kind) Name() merge.AssetKind {
	return merge.KindText
}

func (k *Kind) Decode(data []byte) (*Document, error) {
	return Decode(data)
}

func (k *Kind) Encode(doc *Document) ([]byte, error) {
	return Encode(doc)
}

var entries = merge.Keyed[Entry, int32]{
	Key:       func(_ int, e Entry) int32 { return e.ID },
	Equal:     EntriesEqual,
	Placement: merge.AtCandidatePosition,
}

// Fold merges tables pairwise by position up to the shorter table count.
// Extra candidate tables are skipped. A table with no vanilla counterpart is
// merged without a reference.
func (k *Kind) Fold(acc, candidate *Document, vanilla merge.Reference[*Document], step *merge.Step) (*Document, error) {
	if len(acc.Tables) != len(candidate.Tables) {
		step.Logger.Warn("Text table count mismatch",
			zap.Int("base", len(acc.Tables)),
			zap.Int("mod", len(candidate.Tables)),
		)
	}

	n := min(len(acc.Tables), len(candidate.Tables))
	for i := 0; i < n; i++ {
		name := tableName(i, acc.Tables[i])
		step.Unit(name, func() error {
			ref := merge.None[[]Entry]()
			if v, ok := vanilla.Get(); ok && i < len(v.Tables) {
				ref = merge.Some(v.Tables[i].Entries)
			}
			table := entries
			table.Collection = name
			acc.Tables[i].Entries = table.Fold(acc.Tables[i].Entries, candidate.Tables[i].Entries, ref, step.Audit)
			step.Logger.Debug("Merged text table", zap.String("table", name), zap.Int("entries", len(acc.Tables[i].Entries)))
			return nil
		})
	}

	for i := n; i < len(candidate.Tables); i++ {
		name := tableName(i, candidate.Tables[i])
		step.Audit.Record(name, "*", merge.ActionSkipped, merge.ReasonStructuralMismatch,
			fmt.Sprintf("no table %d in base", i))
		step.Logger.Warn("Skipping extra text table", zap.String("table", name))
	}

	return acc, nil
}

func tableName(i int, t Table) string {
	if t.Name != "" {
		return fmt.Sprintf("table[%d] %s", i, t.Name)
	}
	return fmt.Sprintf("table[%d]", i)
}
