package diagfmt

import (
	"path/filepath"

	"effectful/internal/source"
)

// PathMode selects how a diagnostic names its file.
type PathMode uint8

const (
	PathAsGiven PathMode = iota // as registered in the FileSet
	PathAbsolute
	PathRelative // relative to Paths.Base
	PathBasename
)

// Paths renders file names for every output format.
type Paths struct {
	Mode PathMode
	Base string
}

// Name returns the display name of f. Virtual files keep their given name
// and a failed conversion falls back to it too.
func (p Paths) Name(f *source.File) string {
	if f == nil {
		return "<unknown>"
	}
	switch p.Mode {
	case PathAbsolute:
		if f.Flags&source.FileVirtual == 0 {
			if abs, err := filepath.Abs(f.Path); err == nil {
				return filepath.ToSlash(abs)
			}
		}
	case PathRelative:
		if rel, err := filepath.Rel(p.Base, f.Path); err == nil && p.Base != "" {
			return filepath.ToSlash(rel)
		}
	case PathBasename:
		return filepath.Base(f.Path)
	}
	return f.Path
}

// PrettyOpts configures the human-readable renderer.
type PrettyOpts struct {
	Paths
	Color bool
	Notes bool
}

// JSONOpts configures the machine-readable renderer.
type JSONOpts struct {
	Paths
	Positions bool // resolve line/col next to byte offsets
	Notes     bool
	Max       int // cap on emitted items; 0 means all
}
