package merge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func eqString(a, b string) bool { return a == b }

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		base      string
		candidate string
		baseline  Baseline[string]
		want      Decision
	}{
		{"NoReferenceOverrides", "A", "B", NoReference[string](), Decision{true, ReasonNoVanillaReference}},
		{"AbsentFromVanillaOverrides", "A", "B", Absent[string](), Decision{true, ReasonNewRelativeToVanilla}},
		{"DivergesOverrides", "A", "B", Vanilla("V"), Decision{true, ReasonDivergesFromVanilla}},
		{"CarriedOverKeepsBase", "A", "V", Vanilla("V"), Decision{}},
		{"EqualToBaseIsNoop", "A", "A", NoReference[string](), Decision{}},
		{"RevertToVanillaKeepsBase", "B", "V", Vanilla("V"), Decision{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.base, tt.candidate, tt.baseline, eqString))
		})
	}
}

// equal only looks at part of a unit; the candidate still wins when the
// whole values differ.
func TestDecide_PartialEqual(t *testing.T) {
	eqFold := func(a, b string) bool { return strings.EqualFold(a, b) }

	assert.Equal(t, Decision{true, ReasonNoVanillaReference}, Decide("sword", "SWORD", NoReference[string](), eqFold))
	assert.Equal(t, Decision{true, ReasonDivergesFromVanilla}, Decide("axe", "AXE", Vanilla("bow"), eqFold))
	assert.Equal(t, Decision{}, Decide("axe", "BOW", Vanilla("bow"), eqFold))
	assert.Equal(t, Decision{}, Decide("axe", "axe", Vanilla("bow"), eqFold))
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		baseline  Baseline[string]
		want      Decision
	}{
		{"NoReference", "x", NoReference[string](), Decision{true, ReasonNoVanillaReference}},
		{"AbsentFromVanilla", "x", Absent[string](), Decision{true, ReasonNewRelativeToVanilla}},
		{"DivergesFromVanilla", "x", Vanilla("v"), Decision{true, ReasonDivergesFromVanilla}},
		{"EqualToVanillaNotAdded", "v", Vanilla("v"), Decision{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Insert(tt.candidate, tt.baseline, eqString))
		})
	}
}

func TestReference(t *testing.T) {
	t.Run("Some", func(t *testing.T) {
		r := Some(3)
		v, ok := r.Get()
		assert.True(t, ok)
		assert.Equal(t, 3, v)

		hit := false
		r.Match(func(int) { hit = true }, func() { t.Fatal("absent branch") })
		assert.True(t, hit)
	})

	t.Run("None", func(t *testing.T) {
		var r Reference[int]
		assert.False(t, r.Present())

		hit := false
		r.Match(func(int) { t.Fatal("present branch") }, func() { hit = true })
		assert.True(t, hit)
	})

	t.Run("Project", func(t *testing.T) {
		type doc struct{ names []string }
		p := Project(Some(doc{names: []string{"a"}}), func(d doc) []string { return d.names })
		names, ok := p.Get()
		assert.True(t, ok)
		assert.Equal(t, []string{"a"}, names)

		assert.False(t, Project(None[doc](), func(d doc) []string { return d.names }).Present())
	})

	t.Run("BaselineOf", func(t *testing.T) {
		lookup := func(m map[string]int) (int, bool) { v, ok := m["k"]; return v, ok }

		b := BaselineOf(None[map[string]int](), lookup)
		assert.False(t, b.HasReference())

		b = BaselineOf(Some(map[string]int{}), lookup)
		assert.True(t, b.HasReference())
		_, in := b.Value()
		assert.False(t, in)

		b = BaselineOf(Some(map[string]int{"k": 9}), lookup)
		v, in := b.Value()
		assert.True(t, in)
		assert.Equal(t, 9, v)
	})
}
