package model

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"

	"mods-merger/core/merge"
	"mods-merger/feature/textures"

	"go.uber.org/zap"
)

// Kind merges model documents.
type Kind struct {
	// SkipTextures disables texture copy and validation after the merged model is written.
	SkipTextures bool
}

// NewKind creates the model merge kind.
func NewKind() *Kind {
	return &Kind{}
}

func (k *Kind) Name() merge.AssetKind {
	return merge.KindModel
}

func (k *Kind) Decode(data []byte) (*Document, error) {
	return Decode(data)
}

func (k *Kind) Encode(doc *Document) ([]byte, error) {
	return Encode(doc)
}

// Fold merges materials by index, then meshes and nodes by whole-collection replacement.
func (k *Kind) Fold(acc, candidate *Document, vanilla merge.Reference[*Document], step *merge.Step) (*Document, error) {
	step.Unit("materials", func() error {
		if len(acc.Materials) != len(candidate.Materials) {
			step.Logger.Warn("Material count mismatch",
				zap.Int("base", len(acc.Materials)),
				zap.Int("mod", len(candidate.Materials)),
			)
		}
		acc.Materials = FoldMaterials(acc.Materials, candidate.Materials,
			merge.Project(vanilla, func(d *Document) []Material { return d.Materials }), step)
		return nil
	})

	step.Unit("meshes", func() error {
		acc.Meshes = FoldMeshes(acc.Meshes, candidate.Meshes,
			merge.Project(vanilla, func(d *Document) []Mesh { return d.Meshes }), step.Audit)
		return nil
	})

	step.Unit("nodes", func() error {
		acc.Nodes = FoldNodes(acc.Nodes, candidate.Nodes,
			merge.Project(vanilla, func(d *Document) []Node { return d.Nodes }), step.Audit)
		return nil
	})

	return acc, nil
}

// FoldMaterials applies the three-way rule to each material as a whole record,
// matching by index. Extra candidate materials are appended.
func FoldMaterials(acc, candidate []Material, vanilla merge.Reference[[]Material], step *merge.Step) []Material {
	materials := merge.Keyed[Material, int]{
		Collection:   "materials",
		Key:          merge.ByIndex[Material],
		Equal:        MaterialsEqual,
		Placement:    merge.Append,
		AlwaysInsert: true,
		OnReplace: func(i int, base, cand Material, baseline merge.Baseline[Material]) Material {
			return reconcileTextures(step.Logger, i, base, cand, baseline)
		},
	}
	return materials.Fold(acc, candidate, vanilla, step.Audit)
}

// reconcileTextures logs the texture bindings the overriding material changed
// relative to vanilla. The candidate's bindings are kept as they are.
func reconcileTextures(l *zap.Logger, index int, base, cand Material, baseline merge.Baseline[Material]) Material {
	out := cand
	out.Textures = append([]TextureBinding(nil), cand.Textures...)

	v, inVanilla := baseline.Value()
	n := min(len(base.Textures), len(cand.Textures))
	for i := 0; i < n; i++ {
		if inVanilla && i < len(v.Textures) && cand.Textures[i].Path == v.Textures[i].Path {
			continue
		}
		if cand.Textures[i].Path != base.Textures[i].Path {
			l.Debug("Updated texture path",
				zap.Int("material", index),
				zap.String("type", cand.Textures[i].Type),
				zap.String("path", cand.Textures[i].Path),
			)
		}
	}
	return out
}

// FoldMeshes replaces the whole mesh collection when the candidate's layout
// diverges from vanilla (count, or any mesh's material index or vertex count).
// Without vanilla the candidate replaces it whenever the two differ.
func FoldMeshes(acc, candidate []Mesh, vanilla merge.Reference[[]Mesh], rec *merge.Recorder) []Mesh {
	detail := fmt.Sprintf("%d meshes, %d vertices", len(candidate), VertexCount(candidate))

	v, ok := vanilla.Get()
	if !ok {
		if reflect.DeepEqual(acc, candidate) {
			rec.Unchanged(1)
			return acc
		}
		rec.Record("meshes", "*", merge.ActionStructuralReplace, merge.ReasonNoVanillaReference, detail)
		return candidate
	}
	if len(candidate) != len(v) {
		rec.Record("meshes", "*", merge.ActionStructuralReplace, merge.ReasonStructuralMismatch,
			fmt.Sprintf("vanilla has %d meshes, mod has %s", len(v), detail))
		return candidate
	}
	for i := range candidate {
		if candidate[i].MaterialIndex != v[i].MaterialIndex || len(candidate[i].Vertices) != len(v[i].Vertices) {
			rec.Record("meshes", "*", merge.ActionStructuralReplace, merge.ReasonDivergesFromVanilla,
				fmt.Sprintf("mesh %d differs from vanilla; %s", i, detail))
			return candidate
		}
	}
	rec.Unchanged(1)
	return acc
}

// FoldNodes replaces the skeleton when the candidate's node count differs from
// the accumulator's, or from vanilla's when one is loaded.
func FoldNodes(acc, candidate []Node, vanilla merge.Reference[[]Node], rec *merge.Recorder) []Node {
	if len(candidate) != len(acc) {
		rec.Record("nodes", "*", merge.ActionStructuralReplace, merge.ReasonStructuralMismatch,
			fmt.Sprintf("accumulator has %d nodes, mod has %d", len(acc), len(candidate)))
		return candidate
	}
	if v, ok := vanilla.Get(); ok && len(candidate) != len(v) {
		rec.Record("nodes", "*", merge.ActionStructuralReplace, merge.ReasonDivergesFromVanilla,
			fmt.Sprintf("vanilla has %d nodes, mod has %d", len(v), len(candidate)))
		return candidate
	}
	rec.Unchanged(1)
	return acc
}

// AfterPersist copies texture files from every mod directory next to the merged
// model and checks that every referenced texture exists there.
func (k *Kind) AfterPersist(ctx context.Context, doc *Document, files []merge.FileToMerge, outputPath string, step *merge.Step) error {
	if k.SkipTextures {
		return nil
	}
	outputDir := filepath.Dir(outputPath)

	dirs := make([]string, 0, len(files))
	for _, f := range files {
		dirs = append(dirs, filepath.Dir(f.Path))
	}

	result, err := textures.Copy(ctx, dirs, outputDir, step.Logger)
	step.Logger.Info("Texture copy finished",
		zap.Int("copied", result.Copied),
		zap.Int("conflicts", len(result.Conflicts)),
	)

	missing := textures.Validate(outputDir, doc.TexturePaths())
	textures.LogMissing(step.Logger, filepath.Base(outputPath), missing)

	return err
}
