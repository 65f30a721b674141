// Package textures reconciles the texture files that accompany merged models.
//
// Copy gathers .dds, .tga, .tpf and .tpf.dcx files from each mod directory
// (priority order, last wins) into the merged output directory. Validate
// checks that texture paths referenced by a document exist relative to it.
// Both are best-effort: problems are logged and never undo the merge.
package textures
