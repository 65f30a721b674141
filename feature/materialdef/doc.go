// Package materialdef merges material definition files.
//
// The shader path and description follow the three-way rule as single values.
// Parameters are matched by name and texture slots by type; new entries are
// appended.
package materialdef
