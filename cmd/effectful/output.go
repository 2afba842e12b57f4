package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"effectful/internal/diag"
	"effectful/internal/diagfmt"
	"effectful/internal/source"
)

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on":
		return colorOn, nil
	case "off":
		return colorOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// useColor resolves --color for output written to w.
func useColor(cmd *cobra.Command, w io.Writer) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := readColorMode(value)
	if err != nil {
		return false, err
	}
	switch mode {
	case colorOn:
		return true, nil
	case colorOff:
		return false, nil
	default:
		return isTerminal(w), nil
	}
}

func maxDiagnostics(cmd *cobra.Command) (int, error) {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return n, nil
}

// printDiagnostics writes bag to the command's stderr in the --diag-format
// layout. Pretty output leaves out timing payloads; --timings prints those
// as a table instead.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	format, err := cmd.Root().PersistentFlags().GetString("diag-format")
	if err != nil {
		return fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	w := cmd.ErrOrStderr()
	base, _ := os.Getwd()
	paths := diagfmt.Paths{Mode: diagfmt.PathRelative, Base: base}
	switch format {
	case "pretty":
		visible := withoutCode(bag, diag.ObsTimings)
		if visible.Len() == 0 {
			return nil
		}
		color, err := useColor(cmd, w)
		if err != nil {
			return err
		}
		return diagfmt.Pretty(w, visible, fs, diagfmt.PrettyOpts{
			Paths: paths,
			Color: color,
			Notes: true,
		})
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			Paths:     paths,
			Positions: true,
			Notes:     true,
		})
	default:
		return fmt.Errorf("unknown diagnostics format: %s", format)
	}
}

func withoutCode(bag *diag.Bag, code diag.Code) *diag.Bag {
	out := diag.NewBag(0)
	for _, d := range bag.Items() {
		if d.Code != code {
			out.Add(d)
		}
	}
	return out
}

// readInput returns the program named by args: a file path, or stdin when
// args is empty or "-".
func readInput(cmd *cobra.Command, args []string) (name string, src []byte, fromFile bool, err error) {
	if len(args) == 0 || args[0] == "-" {
		src, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, false, fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", src, false, nil
	}
	return args[0], nil, true, nil
}

// openOutput returns the -o target, or stdout when path is empty or "-".
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	// #nosec G304 -- path is provided by the user
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %q: %w", path, err)
	}
	return f, f.Close, nil
}
