// Command effectful compiles effectful markup programs into HTML documents.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"effectful/internal/prof"
	"effectful/internal/version"
)

// errReported means the command already printed why it failed.
var errReported = errors.New("errors reported")

// newRootCmd builds a fresh command tree. finish releases the tracer and
// must run after Execute, whether or not the command failed.
func newRootCmd() (root *cobra.Command, finish func()) {
	root = &cobra.Command{
		Use:           "effectful",
		Short:         "Effectful markup compiler",
		Long:          `effectful compiles markup programs with declared effects into HTML with an embedded generator runtime`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCompileCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newBuildCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to collect")
	pf.String("diag-format", "pretty", "diagnostics format (pretty|json)")
	pf.String("trace", "", "trace output file (\"-\" for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "ring buffer size for --trace-mode=ring")
	pf.Duration("trace-heartbeat", 0, "emit a trace heartbeat at this interval (0 disables)")
	pf.String("cpuprofile", "", "write a CPU profile to file")
	pf.String("memprofile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")

	var (
		cleanup  func()
		profiles *prof.Session
	)
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		colorValue, err := cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return fmt.Errorf("failed to get color flag: %w", err)
		}
		if _, err := readColorMode(colorValue); err != nil {
			return err
		}
		done, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		cleanup = done
		profiles, err = startProfiles(cmd)
		return err
	}
	finish = func() {
		if err := profiles.Stop(); err != nil {
			fmt.Fprintf(root.ErrOrStderr(), "profile: %v\n", err)
		}
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}
	return root, finish
}

func main() {
	root, finish := newRootCmd()
	os.Exit(execute(root, finish, os.Args[1:], os.Stderr))
}

// execute runs root with args and maps the outcome to an exit status.
func execute(root *cobra.Command, finish func(), args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	finish()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func startProfiles(cmd *cobra.Command) (*prof.Session, error) {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return nil, fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("memprofile"); err != nil {
		return nil, fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil, nil
	}
	return prof.Start(opts)
}
