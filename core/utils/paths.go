package utils

import (
	"fmt"
	"path"
	"strings"
)

// CleanRelPath normalizes a relative asset path to forward slashes.
// Game asset lists often use backslashes. Absolute paths and paths
// escaping their root are rejected.
func CleanRelPath(rel string) (string, error) {
	p := strings.ReplaceAll(strings.TrimSpace(rel), "\\", "/")
	if p == "" {
		return "", fmt.Errorf("empty relative path")
	}
	if strings.HasPrefix(p, "/") || (len(p) > 1 && p[1] == ':') {
		return "", fmt.Errorf("path %q is not relative", rel)
	}
	p = path.Clean(p)
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("path %q escapes its root", rel)
	}
	return p, nil
}

// HasSuffixFold reports whether s ends with suffix, ignoring case.
func HasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
