// Package merge is the three-way merge engine shared by every asset kind.
//
// A group of files is merged in priority order. The first file becomes the
// accumulator, and each following file (a candidate) is folded into it while
// consulting an optional vanilla copy of the same asset:
//
//   - no vanilla reference: the candidate overrides the accumulator
//   - unit present in vanilla: the candidate overrides only if it differs from vanilla
//   - unit absent from vanilla: the candidate overrides (new content)
//
// # Components
//
//   - Reference / Baseline: explicit optional vanilla document and per-unit vanilla state.
//   - Decide: the rule above for one unit.
//   - Keyed: the keyed-collection fold, parameterized by key and equality functions.
//   - Recorder / Sink: audit records for every override, insertion, skip and structural replacement.
//   - Pipeline: loads vanilla and base, folds candidates, persists the result and
//     converts every error into a classified Failure.
//
// Only a base that fails to load stops a group. Vanilla, candidate, step,
// persist and auxiliary failures are recorded in the Report and logged.
package merge
