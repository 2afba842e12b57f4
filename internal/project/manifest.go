package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultOutDir is used when [build].out is absent.
const DefaultOutDir = "out"

var (
	// ErrPackageSectionMissing indicates that [package] is missing in the manifest.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrBuildMainMissing indicates that [build].main is missing and no sources are listed.
	ErrBuildMainMissing = errors.New("missing [build].main")
	// ErrNoManifest is returned by Discover when no effectful.toml is found.
	ErrNoManifest = errors.New("no " + ManifestName + " found")
)

// Config mirrors the TOML layout of effectful.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

type PackageConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type BuildConfig struct {
	Main    string   `toml:"main"`
	Sources []string `toml:"sources"`
	Out     string   `toml:"out"`
}

// Manifest is a loaded and validated effectful.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Load decodes the manifest at path and validates it.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Package.Name = strings.TrimSpace(cfg.Package.Name)
	cfg.Build.Main = strings.TrimSpace(cfg.Build.Main)
	cfg.Build.Out = strings.TrimSpace(cfg.Build.Out)
	if cfg.Build.Main == "" && len(cfg.Build.Sources) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrBuildMainMissing)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// Discover finds the nearest manifest above startDir and loads it.
func Discover(startDir string) (*Manifest, error) {
	path, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Name returns the package name, falling back to the root directory name.
func (m *Manifest) Name() string {
	if m.Config.Package.Name != "" {
		return m.Config.Package.Name
	}
	return filepath.Base(m.Root)
}

// Sources returns the absolute paths of every file the project builds:
// [build].main first, then [build].sources in order, duplicates removed.
// Entries may be glob patterns; every path must stay inside the project root.
func (m *Manifest) Sources() ([]string, error) {
	entries := make([]string, 0, 1+len(m.Config.Build.Sources))
	if m.Config.Build.Main != "" {
		entries = append(entries, m.Config.Build.Main)
	}
	entries = append(entries, m.Config.Build.Sources...)

	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths, err := m.expand(entry)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Manifest) expand(entry string) ([]string, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return nil, fmt.Errorf("%s: empty source entry", m.Path)
	}
	if filepath.IsAbs(entry) {
		return nil, fmt.Errorf("%s: source %q must be relative", m.Path, entry)
	}
	pattern := filepath.Join(m.Root, filepath.Clean(filepath.FromSlash(entry)))
	if !pathWithin(m.Root, pattern) {
		return nil, fmt.Errorf("%s: source %q escapes project root", m.Path, entry)
	}
	if !strings.ContainsAny(entry, "*?[") {
		if _, err := os.Stat(pattern); err != nil {
			return nil, fmt.Errorf("%s: source %q: %w", m.Path, entry, err)
		}
		return []string{pattern}, nil
	}
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: source %q: %w", m.Path, entry, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// OutDir returns the absolute output directory.
func (m *Manifest) OutDir() string {
	out := m.Config.Build.Out
	if out == "" {
		out = DefaultOutDir
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(m.Root, filepath.FromSlash(out))
}

func pathWithin(root, path string) bool {
	if root == "" || path == "" {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
