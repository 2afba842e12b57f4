package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"effectful/internal/diagfmt"
	"effectful/internal/driver"
	"effectful/internal/source"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] [file.eff|-]",
		Short: "Parse a program and dump its syntax tree",
		Long: `Parse a program and print the syntax tree. --format source re-renders the
program in canonical form; --tokens prints the token stream instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack|yaml|source)")
	cmd.Flags().Bool("tokens", false, "print tokens instead of the tree (any --format but source)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	formatValue, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	tokens, err := cmd.Flags().GetBool("tokens")
	if err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
	}
	maxDiags, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	if tokens {
		return runTokens(cmd, fs, args, formatValue, maxDiags)
	}

	res, err := compileInput(cmd, fs, args, driver.Options{Stage: driver.StageParse, MaxDiagnostics: maxDiags})
	if err != nil {
		return err
	}
	if err := printDiagnostics(cmd, res.Bag, fs); err != nil {
		return err
	}
	if res.Failed() {
		return errReported
	}
	if formatValue == "source" {
		return diagfmt.FormatASTSource(cmd.OutOrStdout(), res.AST)
	}
	format, err := diagfmt.ParseFormat(formatValue)
	if err != nil {
		return err
	}
	return diagfmt.FormatAST(cmd.OutOrStdout(), res.AST, fs, format)
}

func runTokens(cmd *cobra.Command, fs *source.FileSet, args []string, format string, maxDiags int) error {
	name, src, fromFile, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	var id source.FileID
	if fromFile {
		if id, err = fs.Load(name); err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
	} else {
		id = fs.AddVirtual(name, src)
	}

	result := driver.Tokenize(fs.Get(id), maxDiags)
	if err := printDiagnostics(cmd, result.Bag, fs); err != nil {
		return err
	}
	f, err := diagfmt.ParseFormat(format)
	if err != nil {
		return err
	}
	if err := diagfmt.FormatTokens(cmd.OutOrStdout(), result.Tokens, fs, f); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errReported
	}
	return nil
}
