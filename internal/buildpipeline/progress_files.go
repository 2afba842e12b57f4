package buildpipeline

import (
	"path/filepath"
	"strings"
)

// displayPath renders file relative to baseDir when it sits inside it,
// with forward slashes.
func displayPath(file, baseDir string) string {
	path := filepath.Clean(file)
	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

// displayNames maps every file to its display path. Duplicate inputs keep
// their first position only.
func displayNames(files []string, baseDir string) (paths, names []string) {
	seen := make(map[string]struct{}, len(files))
	for _, file := range files {
		if strings.TrimSpace(file) == "" {
			continue
		}
		name := displayPath(file, baseDir)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		paths = append(paths, file)
		names = append(names, name)
	}
	return paths, names
}

// outputPath places the .html next to src, or under outDir mirroring the
// display path when outDir is set.
func outputPath(src, display, outDir string) string {
	rel := display
	if outDir == "" {
		rel = src
	} else if filepath.IsAbs(filepath.FromSlash(rel)) {
		rel = filepath.Base(rel)
	}
	rel = filepath.FromSlash(rel)
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"
	if outDir == "" {
		return rel
	}
	return filepath.Join(outDir, rel)
}

// DisplayNames returns the names Build reports files under, in the order
// the progress events use.
func DisplayNames(files []string, baseDir string) []string {
	_, names := displayNames(files, baseDir)
	return names
}
