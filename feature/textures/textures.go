package textures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mods-merger/core/utils"

	"go.uber.org/zap"
)

// Extensions lists the texture file suffixes copied alongside merged models.
var Extensions = []string{".dds", ".tga", ".tpf", ".tpf.dcx"}

// maxMissingLogged caps how many missing paths are logged individually.
const maxMissingLogged = 5

// IsTexture reports whether name carries a texture extension, ignoring case.
func IsTexture(name string) bool {
	for _, ext := range Extensions {
		if utils.HasSuffixFold(name, ext) {
			return true
		}
	}
	return false
}

// EnsureDir creates dir and its parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}

// Conflict is a texture provided by more than one mod.
type Conflict struct {
	RelativePath string `json:"relative_path"`
	Replaced     string `json:"replaced"`
	Winner       string `json:"winner"`
}

// CopyResult summarizes a Copy.
type CopyResult struct {
	Copied    int        `json:"copied"`
	Conflicts []Conflict `json:"conflicts"`
}

// Find returns the texture files under dir keyed by their slash-separated path relative to dir.
// Anything under skip is ignored.
func Find(dir, skip string) (map[string]string, error) {
	found := make(map[string]string)
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skip != "" && p != dir && samePath(p, skip) {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsTexture(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		found[filepath.ToSlash(rel)] = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return found, nil
}

// Copy copies texture files from each source directory into outputDir, keeping
// their relative layout. Directories are given in priority order and a later
// directory wins when two provide the same file. Copy keeps going after a
// failure and returns every error joined.
func Copy(ctx context.Context, sourceDirs []string, outputDir string, l *zap.Logger) (CopyResult, error) {
	var result CopyResult
	if err := EnsureDir(outputDir); err != nil {
		return result, err
	}

	chosen := make(map[string]string)
	var errs []error
	for _, dir := range sourceDirs {
		if samePath(dir, outputDir) {
			continue
		}
		if _, err := os.Stat(dir); err != nil {
			l.Warn("Mod directory not found", zap.String("dir", dir))
			continue
		}
		found, err := Find(dir, outputDir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for rel, src := range found {
			if prev, ok := chosen[rel]; ok && prev != src {
				result.Conflicts = append(result.Conflicts, Conflict{RelativePath: rel, Replaced: prev, Winner: src})
				l.Warn("Texture conflict, later mod wins",
					zap.String("texture", rel),
					zap.String("replaced", prev),
					zap.String("winner", src),
				)
			}
			chosen[rel] = src
		}
	}

	rels := make([]string, 0, len(chosen))
	for rel := range chosen {
		rels = append(rels, rel)
	}
	sort.Strings(rels)
	sort.Slice(result.Conflicts, func(i, j int) bool {
		return result.Conflicts[i].RelativePath < result.Conflicts[j].RelativePath
	})

	for _, rel := range rels {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		dst := filepath.Join(outputDir, filepath.FromSlash(rel))
		if err := copyFile(chosen[rel], dst); err != nil {
			l.Warn("Failed to copy texture", zap.String("texture", rel), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		result.Copied++
	}

	return result, errors.Join(errs...)
}

// Validate returns the texture paths that do not exist relative to dir.
// Backslash separated paths are accepted.
func Validate(dir string, paths []string) []string {
	var missing []string
	for _, p := range paths {
		if p == "" {
			continue
		}
		rel := strings.ReplaceAll(p, "\\", "/")
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
			missing = append(missing, p)
		}
	}
	return missing
}

// LogMissing warns about missing texture references, listing at most five.
func LogMissing(l *zap.Logger, name string, missing []string) {
	if len(missing) == 0 {
		return
	}
	l.Warn("Texture references not found",
		zap.String("file", name),
		zap.Int("count", len(missing)),
	)
	for i, p := range missing {
		if i == maxMissingLogged {
			l.Info(fmt.Sprintf("... and %d more", len(missing)-maxMissingLogged))
			break
		}
		l.Info("Missing texture", zap.String("path", p))
	}
}

func copyFile(src, dst string) error {
	if err := EnsureDir(filepath.Dir(dst)); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
