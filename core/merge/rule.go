package merge

import "reflect"

// Decision is the outcome of the three-way rule for one unit.
type Decision struct {
	// Override is true when the candidate value wins over the accumulator.
	Override bool

	// Reason is set whenever Override is true.
	Reason Reason
}

// Decide applies the three-way rule to one matched unit.
//
// Without a vanilla reference the candidate always wins. With one, a unit the
// vanilla document lacks is new content and wins, and a unit vanilla has wins
// only when the candidate changed it. equal may ignore parts of a unit, so the
// no-op check against the accumulator compares whole values.
func Decide[T any](base, candidate T, baseline Baseline[T], equal func(a, b T) bool) Decision {
	if reflect.DeepEqual(base, candidate) {
		return Decision{}
	}

	switch baseline.state {
	case noReference:
		return Decision{Override: true, Reason: ReasonNoVanillaReference}
	case absentFromVanilla:
		return Decision{Override: true, Reason: ReasonNewRelativeToVanilla}
	}

	if equal(candidate, baseline.value) {
		return Decision{}
	}
	return Decision{Override: true, Reason: ReasonDivergesFromVanilla}
}

// Insert decides whether a candidate unit missing from the accumulator is
// added. A unit vanilla has and the candidate left untouched is carried-over
// content and is not added back.
func Insert[T any](candidate T, baseline Baseline[T], equal func(a, b T) bool) Decision {
	switch baseline.state {
	case noReference:
		return Decision{Override: true, Reason: ReasonNoVanillaReference}
	case absentFromVanilla:
		return Decision{Override: true, Reason: ReasonNewRelativeToVanilla}
	}
	if equal(candidate, baseline.value) {
		return Decision{}
	}
	return Decision{Override: true, Reason: ReasonDivergesFromVanilla}
}
