package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"effectful/internal/diagfmt"
	"effectful/internal/driver"
	"effectful/internal/source"
)

type emitKind string

const (
	emitHTML      emitKind = "html"
	emitAST       emitKind = "ast"
	emitHIR       emitKind = "hir"
	emitCallGraph emitKind = "callgraph"
)

var emitStages = map[emitKind]driver.Stage{
	emitHTML:      driver.StageAll,
	emitAST:       driver.StageParse,
	emitHIR:       driver.StageLower,
	emitCallGraph: driver.StageCallGraph,
}

func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [flags] [file.eff|-]",
		Short: "Compile a program to HTML",
		Long: `Compile a single program and print the HTML document. Reads stdin when the
file is "-" or omitted. --emit selects an intermediate form instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompile,
	}
	cmd.Flags().String("emit", string(emitHTML), "what to print (html|ast|hir|callgraph)")
	cmd.Flags().String("format", "pretty", "dump format for ast|hir|callgraph (pretty|json|msgpack|yaml)")
	cmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
	cmd.Flags().Bool("timings", false, "print phase timings to stderr")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	return cmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	emitValue, err := cmd.Flags().GetString("emit")
	if err != nil {
		return fmt.Errorf("failed to get emit flag: %w", err)
	}
	formatValue, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	maxDiags, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}

	emit := emitKind(emitValue)
	stage, ok := emitStages[emit]
	if !ok {
		return fmt.Errorf("unknown --emit value %q (expected html|ast|hir|callgraph)", emitValue)
	}
	format, err := diagfmt.ParseFormat(formatValue)
	if err != nil {
		return err
	}

	opts := driver.Options{
		Stage:            stage,
		MaxDiagnostics:   maxDiags,
		EnableTimings:    timings,
		WarningsAsErrors: warningsAsErrors,
	}
	fs := source.NewFileSet()
	res, err := compileInput(cmd, fs, args, opts)
	if err != nil {
		return err
	}

	if err := printDiagnostics(cmd, res.Bag, fs); err != nil {
		return err
	}
	if timings && res.Timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
	}
	if res.Failed() {
		return errReported
	}

	w, closeOut, err := openOutput(cmd, outputPath)
	if err != nil {
		return err
	}
	toStdout := outputPath == "" || outputPath == "-"
	werr := writeEmit(w, emit, format, res, fs, toStdout)
	return errors.Join(werr, closeOut())
}

func compileInput(cmd *cobra.Command, fs *source.FileSet, args []string, opts driver.Options) (*driver.Result, error) {
	name, src, fromFile, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	if fromFile {
		return driver.CompileFile(cmd.Context(), fs, name, opts)
	}
	return driver.CompileSource(cmd.Context(), fs, name, src, opts)
}

// writeEmit prints the requested form. HTML files get the exact document
// bytes; stdout gets a trailing newline.
func writeEmit(w io.Writer, emit emitKind, format diagfmt.Format, res *driver.Result, fs *source.FileSet, newline bool) error {
	switch emit {
	case emitAST:
		return diagfmt.FormatAST(w, res.AST, fs, format)
	case emitHIR:
		return diagfmt.FormatHIR(w, res.HIR, format)
	case emitCallGraph:
		return diagfmt.FormatCallGraph(w, res.Graph, res.HIR, format)
	default:
		if _, err := io.WriteString(w, res.Output); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if !newline {
			return nil
		}
		_, err := io.WriteString(w, "\n")
		return err
	}
}
