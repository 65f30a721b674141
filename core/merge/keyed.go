package merge

import "fmt"

// Placement decides where a unit missing from the accumulator is inserted.
type Placement int

const (
	// Append adds new units at the end of the accumulator.
	Append Placement = iota
	// AtCandidatePosition inserts new units at the index they had in the candidate.
	AtCandidatePosition
)

// Keyed is the three-way merge of a keyed collection. Each instantiation only
// supplies how units are keyed and compared.
type Keyed[T any, K comparable] struct {
	// Collection names the collection in audit records.
	Collection string

	// Key extracts the merge key of the unit at index i.
	Key func(i int, item T) K

	// Equal compares the parts of two units that take part in the merge.
	Equal func(a, b T) bool

	Placement Placement

	// AlwaysInsert adds missing units even when they equal their vanilla
	// counterpart. Index keyed collections set it so trailing units are kept.
	AlwaysInsert bool

	// OnReplace, when set, builds the value stored when the candidate overrides base.
	// The candidate is stored as is otherwise.
	OnReplace func(key K, base, candidate T, baseline Baseline[T]) T
}

// ByIndex keys units by their position.
func ByIndex[T any](i int, _ T) int {
	return i
}

// Fold merges candidate into acc and returns the new accumulator.
// Units are matched by key. Matched units follow Decide; units missing
// from the accumulator are inserted according to Insert and Placement. Duplicate keys
// are dropped so keys are unique in the result.
func (k Keyed[T, K]) Fold(acc, candidate []T, vanilla Reference[[]T], rec *Recorder) []T {
	acc = k.dedupe(acc, rec)
	index := make(map[K]int, len(acc))
	for i, item := range acc {
		index[k.Key(i, item)] = i
	}

	var vanillaIndex map[K]T
	if items, ok := vanilla.Get(); ok {
		vanillaIndex = make(map[K]T, len(items))
		for i, item := range items {
			key := k.Key(i, item)
			if _, dup := vanillaIndex[key]; !dup {
				vanillaIndex[key] = item
			}
		}
	}
	baselineFor := func(key K) Baseline[T] {
		if vanillaIndex == nil {
			return NoReference[T]()
		}
		if v, ok := vanillaIndex[key]; ok {
			return Vanilla(v)
		}
		return Absent[T]()
	}

	seen := make(map[K]struct{}, len(candidate))
	for ci, item := range candidate {
		key := k.Key(ci, item)
		if _, dup := seen[key]; dup {
			rec.Record(k.Collection, fmt.Sprint(key), ActionSkipped, ReasonStructuralMismatch, "duplicate key in candidate")
			continue
		}
		seen[key] = struct{}{}

		baseline := baselineFor(key)
		if pos, ok := index[key]; ok {
			d := Decide(acc[pos], item, baseline, k.Equal)
			if !d.Override {
				rec.Unchanged(1)
				continue
			}
			if k.OnReplace != nil {
				acc[pos] = k.OnReplace(key, acc[pos], item, baseline)
			} else {
				acc[pos] = item
			}
			rec.Record(k.Collection, fmt.Sprint(key), ActionReplaced, d.Reason, "")
			continue
		}

		d := Insert(item, baseline, k.Equal)
		if !d.Override {
			if !k.AlwaysInsert {
				rec.Unchanged(1)
				continue
			}
			d.Reason = ReasonStructuralMismatch
		}
		if k.Placement == AtCandidatePosition && ci < len(acc) {
			acc = append(acc, item)
			copy(acc[ci+1:], acc[ci:])
			acc[ci] = item
			for ik, pos := range index {
				if pos >= ci {
					index[ik] = pos + 1
				}
			}
			index[key] = ci
		} else {
			acc = append(acc, item)
			index[key] = len(acc) - 1
		}
		rec.Record(k.Collection, fmt.Sprint(key), ActionAdded, d.Reason, "")
	}

	return acc
}

func (k Keyed[T, K]) dedupe(acc []T, rec *Recorder) []T {
	seen := make(map[K]struct{}, len(acc))
	out := acc[:0:0]
	for i, item := range acc {
		key := k.Key(i, item)
		if _, dup := seen[key]; dup {
			rec.Record(k.Collection, fmt.Sprint(key), ActionSkipped, ReasonStructuralMismatch, "duplicate key in accumulator")
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
