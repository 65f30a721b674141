// Package text merges localized text bundles.
//
// A bundle holds several tables of entries keyed by a numeric id. Tables are
// paired by position; within a table entries are matched by id, and an id the
// accumulator lacks is inserted where the mod had it. Text is compared after
// line ending and Unicode normalization.
package text
