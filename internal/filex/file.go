// Package filex has small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// EnsureDir creates dir (relative paths are resolved against the working
// directory) and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns s into a lowercase name usable in file and object names.
func Slug(s string) string {
	slug := strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if slug == "" {
		return "item"
	}
	if len(slug) > 48 {
		slug = strings.TrimRight(slug[:48], "-")
	}
	return slug
}
