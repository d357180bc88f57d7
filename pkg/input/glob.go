// Package input locates XML log files to convert.
package input

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultDir is scanned when no inputs are given.
const DefaultDir = "input"

// XMLPattern matches XML files at any depth below a directory.
const XMLPattern = "**/*.xml"

// ExpandGlobs expands a list of file paths, directories and glob patterns
// into a sorted, deduplicated list of files. Directories are searched
// recursively for *.xml. Patterns support ** via doublestar.
//
// A literal path that does not exist is returned as-is so the caller can
// report it; a glob that matches nothing contributes nothing.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}

	for _, pattern := range patterns {
		if info, err := os.Stat(pattern); err == nil && info.IsDir() {
			pattern = filepath.Join(pattern, XMLPattern)
		}

		if !hasMeta(pattern) {
			add(filepath.Clean(pattern))
			continue
		}

		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			add(match)
		}
	}

	// Sort for deterministic ordering
	sort.Strings(result)

	return result, nil
}

// MatchXML reports whether path names an XML file. Used to filter watch
// events.
func MatchXML(path string) bool {
	ok, err := doublestar.Match("*.xml", strings.ToLower(filepath.Base(path)))
	return err == nil && ok
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
