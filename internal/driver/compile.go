// Package driver runs the compilation pipeline phase by phase, collecting
// diagnostics, phase timings and trace spans.
package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"effectful/internal/ast"
	"effectful/internal/callgraph"
	"effectful/internal/codegen"
	"effectful/internal/diag"
	"effectful/internal/effects"
	"effectful/internal/hir"
	"effectful/internal/markup"
	"effectful/internal/observ"
	"effectful/internal/source"
	"effectful/internal/symbols"
	"effectful/internal/trace"
)

// Stage is the last phase Compile runs.
type Stage string

const (
	StageParse     Stage = "parse"
	StageLower     Stage = "lower"
	StageCallGraph Stage = "callgraph"
	StageAll       Stage = "all"
)

var stageOrder = map[Stage]int{StageParse: 1, StageLower: 2, StageCallGraph: 3, StageAll: 4}

// ParseStage accepts the Stage names; the empty string means StageAll.
func ParseStage(s string) (Stage, error) {
	if s == "" {
		return StageAll, nil
	}
	if _, ok := stageOrder[Stage(s)]; !ok {
		return "", fmt.Errorf("unknown stage %q", s)
	}
	return Stage(s), nil
}

type Options struct {
	Stage          Stage
	MaxDiagnostics int
	Registry       *effects.Registry
	// Allocator defaults to a random allocator per compile.
	Allocator        symbols.Allocator
	EnableTimings    bool
	WarningsAsErrors bool
	Observer         PhaseObserver
}

// Result holds whatever the pipeline produced up to the requested stage.
// Output is empty whenever Bag has errors; no partial document is returned.
type Result struct {
	File     *source.File
	Bag      *diag.Bag
	AST      *ast.Module
	HIR      *hir.Module
	Graph    *callgraph.Graph
	Document *markup.Element
	Output   string
	Timer    *observ.Timer
}

// Failed reports whether the result carries errors, counting warnings
// when WarningsAsErrors was set.
func (r *Result) Failed() bool { return r.Bag.HasErrors() }

// CompileFile loads path into fs and compiles it.
func CompileFile(ctx context.Context, fs *source.FileSet, path string, opts Options) (*Result, error) {
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return Compile(ctx, fs.Get(id), opts)
}

// CompileSource registers src as a virtual file named name and compiles it.
func CompileSource(ctx context.Context, fs *source.FileSet, name string, src []byte, opts Options) (*Result, error) {
	id := fs.AddVirtual(name, src)
	return Compile(ctx, fs.Get(id), opts)
}

// Compile runs the pipeline over file. Problems in the program end up in
// Result.Bag; the error return is reserved for cancellation and internal
// failures.
func Compile(ctx context.Context, file *source.File, opts Options) (*Result, error) {
	if file == nil {
		return nil, errors.New("compile: nil file")
	}
	if opts.Stage == "" {
		opts.Stage = StageAll
	}
	if opts.Registry == nil {
		opts.Registry = effects.Default()
	}

	c := &compilation{
		opts: opts,
		res: &Result{
			File: file,
			Bag:  diag.NewBag(opts.MaxDiagnostics),
		},
	}
	if opts.EnableTimings {
		c.res.Timer = observ.NewTimer()
	}

	// inside a build the compile span is one file among many
	scope := trace.ScopeRun
	if trace.Active(ctx) {
		scope = trace.ScopeFile
	}
	ctx, span := trace.Start(ctx, scope, "compile", trace.Attr{Key: "file", Value: file.Path})
	err := c.run(ctx)
	c.traceDiagnostics(ctx)
	if err != nil {
		span.Fail(err)
	} else {
		span.End(c.outcome(nil))
	}

	if opts.WarningsAsErrors {
		c.res.Bag.PromoteWarnings()
	}
	if c.res.Bag.HasErrors() {
		c.res.Output = ""
		c.res.Document = nil
	}
	recordTimings(c.res.Bag, file.Path, c.res.Timer)
	settle(c.res.Bag)
	if err != nil {
		return nil, err
	}
	return c.res, nil
}

// settle puts bag in its final reporting order and drops exact repeats.
func settle(bag *diag.Bag) {
	bag.Sort()
	bag.Dedup()
}

type compilation struct {
	opts Options
	res  *Result
}

func (c *compilation) outcome(err error) string {
	switch {
	case err != nil:
		return err.Error()
	case c.res.Bag.HasErrors():
		return fmt.Sprintf("failed: %d diagnostic(s)", c.res.Bag.Len())
	default:
		return "ok"
	}
}

// traceDiagnostics records every diagnostic as a node-level point.
func (c *compilation) traceDiagnostics(ctx context.Context) {
	for _, d := range c.res.Bag.Items() {
		trace.Point(ctx, trace.ScopeNode, "diag", d.Code.ID(),
			trace.Attr{Key: "severity", Value: d.Severity.String()},
			trace.Attr{Key: "span", Value: fmt.Sprintf("%d..%d", d.Primary.Start, d.Primary.End)},
		)
	}
}

func (c *compilation) reaches(s Stage) bool {
	return stageOrder[c.opts.Stage] >= stageOrder[s]
}

// phase runs fn as a named phase with a timer entry, a trace span and
// observer events. fn returns the timer note.
func (c *compilation) phase(ctx context.Context, name string, fn func() (string, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stop := c.res.Timer.Start(name)
	c.notify(PhaseEvent{Name: name, Status: PhaseStart})
	_, span := trace.Start(ctx, trace.ScopePhase, name)
	started := time.Now()

	note, err := fn()

	if err != nil {
		span.Fail(err)
	} else {
		span.End(note)
	}
	elapsed := time.Since(started)
	stop(note)
	c.notify(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: elapsed, Note: note})
	return err
}

func (c *compilation) run(ctx context.Context) error {
	bag := c.res.Bag
	reporter := diag.BagReporter{Bag: bag}

	err := c.phase(ctx, "parse", func() (string, error) {
		mod, err := parseFile(c.res.File, bag, c.opts.MaxDiagnostics)
		c.res.AST = mod
		return fmt.Sprintf("diags=%d", bag.Len()), err
	})
	if err != nil || c.res.AST == nil || !c.reaches(StageLower) {
		return err
	}

	err = c.phase(ctx, "lower", func() (string, error) {
		m, lerr := hir.LowerWithReporter(c.res.AST, hir.Options{
			Allocator: c.opts.Allocator,
			Registry:  c.opts.Registry,
		}, reporter)
		if lerr != nil {
			// already reported
			return "unresolved", nil
		}
		c.res.HIR = m
		return fmt.Sprintf("ids=%d", len(m.IDMap)), nil
	})
	if err != nil || c.res.HIR == nil || !c.reaches(StageCallGraph) {
		return err
	}

	err = c.phase(ctx, "callgraph", func() (string, error) {
		c.res.Graph = callgraph.Build(c.res.HIR)
		return fmt.Sprintf("edges=%d", len(c.res.Graph.Edges())), nil
	})
	if err != nil || !c.reaches(StageAll) {
		return err
	}

	err = c.phase(ctx, "codegen", func() (string, error) {
		doc, gerr := codegen.Generate(c.res.HIR, codegen.Options{
			Registry: c.opts.Registry,
			Reporter: reporter,
		})
		var cgErr *codegen.Error
		switch {
		case errors.As(gerr, &cgErr):
			bag.Add(cgErr.Diagnostic())
			return cgErr.Code.ID(), nil
		case gerr != nil:
			return "", fmt.Errorf("codegen: %w", gerr)
		}
		c.res.Document = doc
		return fmt.Sprintf("scripts=%d", doc.Scripts()), nil
	})
	if err != nil || c.res.Document == nil {
		return err
	}

	return c.phase(ctx, "emit", func() (string, error) {
		var b strings.Builder
		n, werr := markup.NewWriter(&b).WriteElement(c.res.Document)
		if werr != nil {
			return "", fmt.Errorf("emit: %w", werr)
		}
		c.res.Output = b.String()
		return fmt.Sprintf("bytes=%d", n), nil
	})
}
