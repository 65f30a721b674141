package merging

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"mods-merger/core/merge"
	"mods-merger/core/utils"

	"gopkg.in/yaml.v3"
)

// Group is one asset merged from several mods.
type Group struct {
	// Kind is inferred from the relative path when empty.
	Kind merge.AssetKind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// Files in priority order, index 0 is the base.
	Files []merge.FileToMerge `json:"files" yaml:"files"`
}

// Manifest lists the groups of one merge invocation.
type Manifest struct {
	Groups []Group `json:"groups" yaml:"groups"`
}

var suffixes = []struct {
	suffix string
	kind   merge.AssetKind
}{
	{".flver", merge.KindModel},
	{".flver.dcx", merge.KindModel},
	{".msgbnd", merge.KindText},
	{".msgbnd.dcx", merge.KindText},
	{".mtd", merge.KindMaterialDef},
	{".mtd.dcx", merge.KindMaterialDef},
}

// InferKind maps a relative path to the kind handling it.
func InferKind(relativePath string) (merge.AssetKind, error) {
	for _, s := range suffixes {
		if utils.HasSuffixFold(relativePath, s.suffix) {
			return s.kind, nil
		}
	}
	return "", fmt.Errorf("cannot infer asset kind of %q", relativePath)
}

// ParseManifest reads a YAML or JSON manifest and fills in missing kinds.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.Resolve(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadManifest reads a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}

// Resolve infers missing kinds and validates every group.
func (m *Manifest) Resolve() error {
	if len(m.Groups) == 0 {
		return errors.New("manifest has no groups")
	}

	var errs []error
	for i := range m.Groups {
		g := &m.Groups[i]
		if len(g.Files) == 0 {
			errs = append(errs, fmt.Errorf("group %d: %w", i, merge.ErrNoFiles))
			continue
		}
		for j, f := range g.Files {
			if f.Path == "" {
				errs = append(errs, fmt.Errorf("group %d file %d: missing path", i, j))
			}
			if _, err := utils.CleanRelPath(f.RelativePath); err != nil {
				errs = append(errs, fmt.Errorf("group %d file %d: %w", i, j, err))
			}
		}

		if g.Kind == "" {
			kind, err := InferKind(g.Files[0].RelativePath)
			if err != nil {
				errs = append(errs, fmt.Errorf("group %d: %w", i, err))
				continue
			}
			g.Kind = kind
		}
		switch g.Kind {
		case merge.KindModel, merge.KindText, merge.KindMaterialDef:
		default:
			errs = append(errs, fmt.Errorf("group %d: unknown kind %q", i, g.Kind))
		}
	}
	return errors.Join(errs...)
}

// String renders the group for logs.
func (g Group) String() string {
	if len(g.Files) == 0 {
		return string(g.Kind)
	}
	return fmt.Sprintf("%s %s (%d files)", g.Kind, strings.ReplaceAll(g.Files[0].RelativePath, `\`, "/"), len(g.Files))
}
