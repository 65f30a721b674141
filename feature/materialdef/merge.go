package materialdef

import (
	"mods-merger/core/merge"

	"go.uber.org/zap"
)

// Kind merges material definitions.
type Kind struct{}

// NewKind creates the material definition merge kind.
func NewKind() *Kind {
	return &Kind{}
}

func (k *Kind) Name() merge.AssetKind {
	return merge.KindMaterialDef
}

func (k *Kind) Decode(data []byte) (*Document, error) {
	return Decode(data)
}

func (k *Kind) Encode(doc *Document) ([]byte, error) {
	return Encode(doc)
}

var (
	params = merge.Keyed[Param, string]{
		Collection: "params",
		Key:        func(_ int, p Param) string { return p.Name },
		Equal:      ParamsEqual,
		Placement:  merge.Append,
	}
	slots = merge.Keyed[Slot, string]{
		Collection: "textures",
		Key:        func(_ int, s Slot) string { return s.Type },
		Equal:      SlotsEqual,
		Placement:  merge.Append,
	}
)

func (k *Kind) Fold(acc, candidate *Document, vanilla merge.Reference[*Document], step *merge.Step) (*Document, error) {
	step.Unit("shader_path", func() error {
		baseline := merge.BaselineOf(vanilla, func(d *Document) (string, bool) { return d.ShaderPath, true })
		if foldScalar(&acc.ShaderPath, candidate.ShaderPath, baseline, "shader_path", step.Audit) {
			step.Logger.Debug("Updated shader path", zap.String("shader_path", acc.ShaderPath))
		}
		return nil
	})

	step.Unit("description", func() error {
		baseline := merge.BaselineOf(vanilla, func(d *Document) (string, bool) { return d.Description, true })
		if foldScalar(&acc.Description, candidate.Description, baseline, "description", step.Audit) {
			step.Logger.Debug("Updated description")
		}
		return nil
	})

	step.Unit("params", func() error {
		acc.Params = params.Fold(acc.Params, candidate.Params,
			merge.Project(vanilla, func(d *Document) []Param { return d.Params }), step.Audit)
		return nil
	})

	step.Unit("textures", func() error {
		acc.Textures = slots.Fold(acc.Textures, candidate.Textures,
			merge.Project(vanilla, func(d *Document) []Slot { return d.Textures }), step.Audit)
		return nil
	})

	return acc, nil
}

func foldScalar(field *string, candidate string, baseline merge.Baseline[string], name string, rec *merge.Recorder) bool {
	d := merge.Decide(*field, candidate, baseline, func(a, b string) bool { return a == b })
	if !d.Override {
		rec.Unchanged(1)
		return false
	}
	*field = candidate
	rec.Record("header", name, merge.ActionReplaced, d.Reason, "")
	return true
}
