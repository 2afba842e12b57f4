package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"effectful/internal/buildpipeline"
	"effectful/internal/project"
	"effectful/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode, out io.Writer) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(out)
	}
}

const noManifestMessage = "no " + project.ManifestName + " found\nplease list the files explicitly, e.g.:\n  effectful build page.eff"

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [flags] [files...]",
		Short: "Compile several programs to .html files",
		Long: `Compile every listed file in parallel. Without arguments the files come from
the nearest effectful.toml ([build].main and [build].sources).`,
		RunE: runBuild,
	}
	cmd.Flags().Int("jobs", 0, "max parallel compiles (0=auto)")
	cmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	cmd.Flags().Bool("timings", false, "print stage timings")
	cmd.Flags().String("out", "", "output directory (default: manifest [build].out, or next to each source)")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	maxDiags, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	title := "build"
	files := args
	baseDir, _ := os.Getwd()
	if len(files) == 0 {
		manifest, err := project.Discover(".")
		if errors.Is(err, project.ErrNoManifest) {
			return errors.New(noManifestMessage)
		}
		if err != nil {
			return err
		}
		if files, err = manifest.Sources(); err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("%s: no sources matched", manifest.Path)
		}
		baseDir = manifest.Root
		title = manifest.Name()
		if outDir == "" {
			outDir = manifest.OutDir()
		}
	}

	req := &buildpipeline.BuildRequest{
		Files:            files,
		OutDir:           outDir,
		BaseDir:          baseDir,
		Jobs:             jobs,
		MaxDiagnostics:   maxDiags,
		EnableTimings:    timings,
		WarningsAsErrors: warningsAsErrors,
	}

	var res *buildpipeline.BuildResult
	if shouldUseTUI(mode, cmd.OutOrStdout()) {
		res, err = ui.RunBuild(cmd.Context(), title, buildpipeline.DisplayNames(files, baseDir), req, cmd.OutOrStdout())
	} else {
		res, err = buildpipeline.Build(cmd.Context(), req)
	}
	if res != nil {
		if perr := reportBuild(cmd, res); perr != nil {
			return perr
		}
		if timings {
			printStageTimings(cmd.ErrOrStderr(), res)
		}
	}
	if err != nil {
		return err
	}
	if res.Failed() {
		return errReported
	}
	return nil
}

// reportBuild prints diagnostics of every file, then one line per output.
func reportBuild(cmd *cobra.Command, res *buildpipeline.BuildResult) error {
	out := cmd.OutOrStdout()
	failed := 0
	for i := range res.Files {
		fr := &res.Files[i]
		if fr.Bag != nil {
			if err := printDiagnostics(cmd, fr.Bag, res.FileSet); err != nil {
				return err
			}
		}
		if fr.Failed() {
			failed++
			continue
		}
		fmt.Fprintf(out, "%s -> %s\n", fr.Display, fr.OutputPath)
	}
	if failed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d file(s) failed\n", failed, len(res.Files))
	}
	return nil
}

func printStageTimings(out io.Writer, res *buildpipeline.BuildResult) {
	for _, stage := range buildpipeline.Stages {
		if res.Timings.Has(stage) {
			fmt.Fprintf(out, "%-8s %.1f ms\n", stage, toMillis(res.Timings.Duration(stage)))
		}
	}
	fmt.Fprintf(out, "%-8s %.1f ms\n", "total", toMillis(res.Elapsed))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
