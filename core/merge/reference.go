package merge

// Reference is an optional vanilla document.
// The zero value holds nothing.
type Reference[D any] struct {
	doc   D
	valid bool
}

// Some wraps a loaded vanilla document.
func Some[D any](doc D) Reference[D] {
	return Reference[D]{doc: doc, valid: true}
}

// None is the absent reference.
func None[D any]() Reference[D] {
	return Reference[D]{}
}

// Get returns the document and whether it is present.
func (r Reference[D]) Get() (D, bool) {
	return r.doc, r.valid
}

// Present reports whether a vanilla document was loaded.
func (r Reference[D]) Present() bool {
	return r.valid
}

// Match runs present with the document, or absent when there is none.
func (r Reference[D]) Match(present func(D), absent func()) {
	if r.valid {
		present(r.doc)
		return
	}
	absent()
}

// Project narrows a document reference to one of its parts.
// The result is absent when r is.
func Project[D, T any](r Reference[D], part func(D) T) Reference[T] {
	if !r.valid {
		return None[T]()
	}
	return Some(part(r.doc))
}

type baselineState uint8

const (
	noReference baselineState = iota
	absentFromVanilla
	inVanilla
)

// Baseline is the vanilla state of a single unit: no vanilla document at all,
// a vanilla document that lacks the unit, or the unit's vanilla value.
type Baseline[T any] struct {
	state baselineState
	value T
}

// NoReference is the baseline when no vanilla document is loaded.
func NoReference[T any]() Baseline[T] {
	return Baseline[T]{state: noReference}
}

// Absent is the baseline of a unit the vanilla document does not have.
func Absent[T any]() Baseline[T] {
	return Baseline[T]{state: absentFromVanilla}
}

// Vanilla is the baseline of a unit present in the vanilla document.
func Vanilla[T any](v T) Baseline[T] {
	return Baseline[T]{state: inVanilla, value: v}
}

// BaselineOf looks a unit up in an optional vanilla document.
func BaselineOf[D, T any](r Reference[D], lookup func(D) (T, bool)) Baseline[T] {
	doc, ok := r.Get()
	if !ok {
		return NoReference[T]()
	}
	if v, found := lookup(doc); found {
		return Vanilla(v)
	}
	return Absent[T]()
}

// Value returns the vanilla value and whether the unit is in vanilla.
func (b Baseline[T]) Value() (T, bool) {
	return b.value, b.state == inVanilla
}

// HasReference reports whether a vanilla document was loaded at all.
func (b Baseline[T]) HasReference() bool {
	return b.state != noReference
}
