package lesson

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are directory names skipped during discovery.
var DefaultExcludes = []string{
	".git",
	"node_modules",
	"vendor",
	".termlink",
	"dist",
	".idea",
	".vscode",
}

// Source is a lesson file found on disk.
type Source struct {
	Path    string // Absolute path on disk.
	RelPath string // Slash-separated path relative to the content root.
	Slug    string // URL-safe identifier, unique per content root.
}

// IsMarkdown reports whether the source needs markdown conversion.
func (s Source) IsMarkdown() bool {
	ext := strings.ToLower(filepath.Ext(s.RelPath))
	return ext == ".md" || ext == ".markdown"
}

// DiscoverConfig controls Discover.
type DiscoverConfig struct {
	Root    string
	Include []string // Glob patterns; only matching files are kept.
	Exclude []string // Glob patterns; matching files are dropped.
}

// Discover walks the content root and returns every markdown or HTML lesson
// that passes the include and exclude patterns, sorted by relative path.
func Discover(cfg DiscoverConfig) ([]Source, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("lesson: resolve root: %w", err)
	}

	var out []Source
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			return nil
		}
		if d.IsDir() {
			if path != root && excludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !lessonExt(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !MatchesInclude(rel, cfg.Include) || MatchesExclude(rel, cfg.Exclude) {
			return nil
		}
		out = append(out, Source{Path: path, RelPath: rel, Slug: Slug(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("lesson: walk %s: %w", cfg.Root, err)
	}

	slices.SortFunc(out, func(a, b Source) int { return strings.Compare(a.RelPath, b.RelPath) })
	return out, nil
}

// Slug derives a single-segment URL name from a relative path.
func Slug(rel string) string {
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", "--")
}

func lessonExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".html", ".htm":
		return true
	}
	return false
}

func excludedDir(name string) bool {
	for _, excl := range DefaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

// MatchesInclude returns true if relPath matches any include pattern. An
// empty pattern list includes everything.
func MatchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// MatchesExclude returns true if relPath matches any exclude pattern. An
// empty pattern list excludes nothing.
func MatchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// matchesAny tries each pattern against the full path and the base name.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	base := filepath.Base(normalized)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
