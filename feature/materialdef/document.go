package materialdef

import (
	"fmt"
	"slices"

	"mods-merger/core/codec"
	"mods-merger/core/utils"
)

// ParamType is the scalar kind of a shader parameter.
type ParamType string

const (
	ParamBool   ParamType = "bool"
	ParamInt    ParamType = "int"
	ParamInt2   ParamType = "int2"
	ParamFloat  ParamType = "float"
	ParamFloat2 ParamType = "float2"
	ParamFloat3 ParamType = "float3"
	ParamFloat4 ParamType = "float4"
)

// Width returns the number of components of a vector type, 1 for scalars and 0 when unknown.
func (t ParamType) Width() int {
	switch t {
	case ParamBool, ParamInt, ParamFloat:
		return 1
	case ParamInt2, ParamFloat2:
		return 2
	case ParamFloat3:
		return 3
	case ParamFloat4:
		return 4
	}
	return 0
}

// Document is a material definition.
type Document struct {
	codec.Envelope `yaml:"-"`

	ShaderPath  string  `yaml:"shader_path"`
	Description string  `yaml:"description"`
	Params      []Param `yaml:"params"`
	Textures    []Slot  `yaml:"textures"`
}

// Param is a named shader parameter.
type Param struct {
	Name  string    `yaml:"name"`
	Type  ParamType `yaml:"type"`
	Value any       `yaml:"value"`
}

// Slot declares a texture input of the shader.
type Slot struct {
	Type      string `yaml:"type"`
	Extended  bool   `yaml:"extended"`
	UVChannel int    `yaml:"uv_channel"`
	Path      string `yaml:"path"`
}

// canonical maps a decoded value to a comparable form for its type.
// YAML yields int for 1 and float64 for 1.0, both mean the same float.
func (p Param) canonical() any {
	switch p.Type {
	case ParamBool:
		return utils.ToBool(p.Value)
	case ParamInt:
		return utils.ToInt(p.Value)
	case ParamFloat:
		return utils.ToFloat(p.Value)
	case ParamInt2:
		fs := utils.ToFloats(p.Value)
		out := make([]int, len(fs))
		for i, f := range fs {
			out[i] = int(f)
		}
		return fmt.Sprint(out)
	case ParamFloat2, ParamFloat3, ParamFloat4:
		return fmt.Sprint(utils.ToFloats(p.Value))
	}
	return utils.ToString(p.Value)
}

// ParamsEqual compares type and value.
func ParamsEqual(a, b Param) bool {
	return a.Type == b.Type && a.canonical() == b.canonical()
}

// SlotsEqual compares the extended flag and uv channel. Paths are not part of the merge.
func SlotsEqual(a, b Slot) bool {
	return a.Extended == b.Extended && a.UVChannel == b.UVChannel
}

// Param returns the parameter called name.
func (d *Document) Param(name string) (Param, bool) {
	i := slices.IndexFunc(d.Params, func(p Param) bool { return p.Name == name })
	if i < 0 {
		return Param{}, false
	}
	return d.Params[i], true
}

// Texture returns the slot of the given type.
func (d *Document) Texture(typ string) (Slot, bool) {
	i := slices.IndexFunc(d.Textures, func(s Slot) bool { return s.Type == typ })
	if i < 0 {
		return Slot{}, false
	}
	return d.Textures[i], true
}

// Validate checks parameter values against their declared types.
func (d *Document) Validate() error {
	for _, p := range d.Params {
		w := p.Type.Width()
		if w == 0 {
			return fmt.Errorf("param %q: unknown type %q", p.Name, p.Type)
		}
		if w > 1 {
			if n := len(utils.ToFloats(p.Value)); n != w {
				return fmt.Errorf("param %q: %s needs %d components, got %d", p.Name, p.Type, w, n)
			}
		}
	}
	return nil
}

// Decode parses a material definition.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := codec.Decode(data, &doc); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode serializes a material definition with its original compression.
func Encode(doc *Document) ([]byte, error) {
	return codec.Encode(doc)
}
