package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMain is the entry file written by Init.
const DefaultMain = "main.eff"

// ErrAlreadyInitialized is returned when the target already has a manifest.
var ErrAlreadyInitialized = errors.New("project already initialized")

// InitResult reports what Init created.
type InitResult struct {
	Root         string
	ManifestPath string
	MainPath     string
	CreatedMain  bool
}

// Init creates target if needed and writes effectful.toml plus a hello-world
// main.eff. An existing main.eff is left untouched.
func Init(target string) (*InitResult, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", target, err)
	}
	if st, err := os.Stat(abs); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err = os.MkdirAll(abs, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", abs, err)
		}
	} else if !st.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", abs)
	}

	name := strings.TrimSpace(filepath.Base(abs))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "effectful-project"
	}

	res := &InitResult{
		Root:         abs,
		ManifestPath: filepath.Join(abs, ManifestName),
		MainPath:     filepath.Join(abs, DefaultMain),
	}
	if _, err := os.Stat(res.ManifestPath); err == nil {
		return nil, fmt.Errorf("%w: %s exists", ErrAlreadyInitialized, res.ManifestPath)
	}
	if err := os.WriteFile(res.ManifestPath, []byte(DefaultManifest(name)), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}
	if _, err := os.Stat(res.MainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(res.MainPath, []byte(defaultMainSource), 0o600); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", DefaultMain, err)
		}
		res.CreatedMain = true
	}
	return res, nil
}

// DefaultManifest returns the manifest Init writes for a project called name.
func DefaultManifest(name string) string {
	return fmt.Sprintf(`# effectful project manifest
[package]
name = %q
version = "0.1.0"

[build]
main = %q
out = %q
`, name, DefaultMain, DefaultOutDir)
}

const defaultMainSource = `fn main() -> Html eff Console {
    log("Hello from effectful");
    Html { Body { Paragraph("Hello, world!") } }
}
`
