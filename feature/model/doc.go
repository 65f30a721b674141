// Package model merges model documents.
//
// Materials are matched by position and merged as whole records. Meshes and
// skeleton nodes are never merged field by field; the whole collection is
// either kept or replaced by a candidate's:
//
//   - meshes: replaced when the candidate's count, or any mesh's material index or
//     vertex count, differs from vanilla. Without vanilla the candidate always wins.
//   - nodes: replaced when the candidate's count differs from the accumulator's,
//     or from vanilla's.
//
// After the merged model is written, texture files are copied from every mod's
// directory into the output directory and the document's texture references are
// checked against it.
package model
