package model

import (
	"mods-merger/core/codec"
)

// Document is a model: materials, mesh blocks and the skeleton.
type Document struct {
	codec.Envelope `yaml:"-"`

	Materials []Material `yaml:"materials"`
	Meshes    []Mesh     `yaml:"meshes"`
	Nodes     []Node     `yaml:"nodes"`
}

// Material is identified by its position in the document.
type Material struct {
	Name     string           `yaml:"name"`
	Shader   string           `yaml:"shader"`
	Textures []TextureBinding `yaml:"textures"`
}

// TextureBinding binds a texture file to a shader sampler type.
type TextureBinding struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

// Mesh is replaced as a whole, never merged field by field.
type Mesh struct {
	MaterialIndex    int      `yaml:"material_index"`
	DefaultBoneIndex int      `yaml:"default_bone_index"`
	Vertices         []Vertex `yaml:"vertices"`
}

type Vertex struct {
	Position [3]float32 `yaml:"position,flow"`
	Normal   [3]float32 `yaml:"normal,flow"`
	UV       [2]float32 `yaml:"uv,flow"`
}

// Node is one bone of the skeleton.
type Node struct {
	Name        string     `yaml:"name"`
	ParentIndex int        `yaml:"parent_index"`
	Translation [3]float32 `yaml:"translation,flow"`
	Rotation    [3]float32 `yaml:"rotation,flow"`
	Scale       [3]float32 `yaml:"scale,flow"`
}

// MaterialsEqual compares name, shader and every texture binding in order.
func MaterialsEqual(a, b Material) bool {
	if a.Name != b.Name || a.Shader != b.Shader || len(a.Textures) != len(b.Textures) {
		return false
	}
	for i := range a.Textures {
		if a.Textures[i] != b.Textures[i] {
			return false
		}
	}
	return true
}

// TexturePaths returns every non-empty texture path referenced by the document.
func (d *Document) TexturePaths() []string {
	var paths []string
	for _, m := range d.Materials {
		for _, t := range m.Textures {
			if t.Path != "" {
				paths = append(paths, t.Path)
			}
		}
	}
	return paths
}

// VertexCount sums the vertices of every mesh.
func VertexCount(meshes []Mesh) int {
	n := 0
	for _, m := range meshes {
		n += len(m.Vertices)
	}
	return n
}

// Decode parses a model document.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := codec.Decode(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode serializes a model document with its original compression.
func Encode(doc *Document) ([]byte, error) {
	return codec.Encode(doc)
}
