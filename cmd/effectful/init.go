package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"effectful/internal/project"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path|name]",
		Short: "Initialize a new effectful project",
		Long: `Initialize a new project by creating effectful.toml and a hello-world
main.eff. If [path|name] is omitted, initializes the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	res, err := project.Init(target)
	if err != nil {
		return err
	}

	rel := res.Root
	if wd, err := os.Getwd(); err == nil {
		if r, err := filepath.Rel(wd, res.Root); err == nil {
			rel = r
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized effectful project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if res.CreatedMain {
		fmt.Fprintf(out, "  - %s\n", project.DefaultMain)
	} else {
		fmt.Fprintf(out, "  - %s (existing)\n", project.DefaultMain)
	}
	return nil
}
