// Package merging runs merge manifests.
//
// A manifest lists asset groups, each an ordered set of mod files for the same
// relative path. The Service sends every group through the pipeline of its
// kind, writes output under the configured root, optionally publishes it to
// object storage and records reports in the audit database.
//
// # Routes
//
//   - POST /merge: run a manifest.
//   - GET /runs, GET /runs/:id: recorded runs, 503 without a database.
//   - GET /outputs: published object keys, 503 without storage.
package merging
