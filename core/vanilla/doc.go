// Package vanilla provides access to the unmodified game assets used as the
// merge baseline.
//
// # Sources
//
//   - DirSource: an extracted game tree on disk.
//   - StorageSource: objects in an S3/MinIO bucket under a prefix.
//   - CachedSource: wraps another source with a TTL cache; concurrent misses
//     for the same path are collapsed with singleflight.
//   - None: no vanilla copy at all.
//
// A failed read is never fatal to a merge: the pipeline falls back to the
// no-reference policy.
package vanilla
