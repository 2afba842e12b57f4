// Package buildpipeline compiles a set of independent files in parallel and
// writes one .html document per file.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"effectful/internal/diag"
	"effectful/internal/driver"
	"effectful/internal/effects"
	"effectful/internal/source"
	"effectful/internal/trace"
)

// BuildRequest configures a multi-file build.
type BuildRequest struct {
	Files []string
	// OutDir receives the outputs; empty writes each .html next to its source.
	OutDir  string
	BaseDir string
	// Jobs bounds parallel compiles; zero means GOMAXPROCS.
	Jobs             int
	MaxDiagnostics   int
	Registry         *effects.Registry
	EnableTimings    bool
	WarningsAsErrors bool
	Progress         ProgressSink
}

// FileResult is the outcome for a single input.
type FileResult struct {
	Path       string
	Display    string
	OutputPath string
	Result     *driver.Result
	// Bag is never nil, even when loading the file failed.
	Bag     *diag.Bag
	Err     error
	Elapsed time.Duration
	Timings Timings
}

// Failed reports whether this file produced no output.
func (f *FileResult) Failed() bool {
	return f.Err != nil || f.Bag.HasErrors()
}

// BuildResult aggregates every file of a build.
type BuildResult struct {
	FileSet *source.FileSet
	Files   []FileResult
	Timings Timings
	Elapsed time.Duration
}

// Failed reports whether any file failed.
func (r *BuildResult) Failed() bool {
	for i := range r.Files {
		if r.Files[i].Failed() {
			return true
		}
	}
	return false
}

// Build loads every file, compiles the loaded ones concurrently and writes
// their outputs. Diagnostics stay per file; the error return is reserved
// for cancellation.
func Build(ctx context.Context, req *BuildRequest) (*BuildResult, error) {
	if req == nil {
		return nil, errors.New("missing build request")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now()
	paths, names := displayNames(req.Files, req.BaseDir)
	res := &BuildResult{
		FileSet: source.NewFileSet(),
		Files:   make([]FileResult, len(paths)),
	}

	ctx, span := trace.Start(ctx, trace.ScopeRun, "build", trace.Attr{Key: "files", Value: fmt.Sprint(len(paths))})
	defer func() { span.End(fmt.Sprintf("failed=%v", res.Failed())) }()

	emitQueued(req.Progress, names)

	// FileSet is not safe for concurrent mutation, so loading stays sequential.
	ids := make([]source.FileID, len(paths))
	loaded := make([]bool, len(paths))
	for i, path := range paths {
		fr := &res.Files[i]
		fr.Path = path
		fr.Display = names[i]
		fr.OutputPath = outputPath(path, names[i], req.OutDir)
		id, err := res.FileSet.Load(path)
		if err != nil {
			// an empty placeholder gives the diagnostic a file to point at
			placeholder := res.FileSet.AddVirtual(path, nil)
			fr.Bag = diag.NewBag(req.MaxDiagnostics)
			fr.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: placeholder}, err.Error()))
			fr.Err = err
			emit(req.Progress, Event{File: names[i], Stage: StageParse, Status: StatusError, Err: err})
			continue
		}
		ids[i] = id
		loaded[i] = true
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range res.Files {
		if !loaded[i] {
			continue
		}
		file := res.FileSet.Get(ids[i])
		fr := &res.Files[i]
		g.Go(func() error {
			return compileOne(gctx, req, file, fr)
		})
	}
	err := g.Wait()

	for i := range res.Files {
		res.Timings.Merge(res.Files[i].Timings)
	}
	res.Elapsed = time.Since(started)
	return res, err
}

// compileOne owns fr exclusively.
func compileOne(ctx context.Context, req *BuildRequest, file *source.File, fr *FileResult) error {
	started := time.Now()
	obs := newPhaseObserver(req.Progress, fr.Display, &fr.Timings)

	out, err := driver.Compile(ctx, file, driver.Options{
		MaxDiagnostics:   req.MaxDiagnostics,
		Registry:         req.Registry,
		EnableTimings:    req.EnableTimings,
		WarningsAsErrors: req.WarningsAsErrors,
		Observer:         obs.OnPhase,
	})
	if err != nil {
		fr.Bag = diag.NewBag(req.MaxDiagnostics)
		fr.Err = err
		fr.Elapsed = time.Since(started)
		emit(req.Progress, Event{File: fr.Display, Stage: obs.current, Status: StatusError, Err: err})
		return err
	}
	fr.Result = out
	fr.Bag = out.Bag
	if out.Failed() {
		fr.Elapsed = time.Since(started)
		emit(req.Progress, Event{
			File:   fr.Display,
			Stage:  obs.current,
			Status: StatusError,
			Err:    fmt.Errorf("%d error(s)", len(out.Bag.Errors())),
		})
		return nil
	}

	emit(req.Progress, Event{File: fr.Display, Stage: StageWrite, Status: StatusWorking})
	writeStart := time.Now()
	if werr := writeOutput(fr.OutputPath, out.Output); werr != nil {
		fr.Err = werr
		fr.Bag.Add(diag.NewError(diag.IOWriteFileError, source.Span{File: file.ID}, werr.Error()))
		fr.Elapsed = time.Since(started)
		emit(req.Progress, Event{File: fr.Display, Stage: StageWrite, Status: StatusError, Err: werr})
		return nil
	}
	fr.Timings.Add(StageWrite, time.Since(writeStart))
	fr.Elapsed = time.Since(started)
	emit(req.Progress, Event{File: fr.Display, Stage: StageWrite, Status: StatusDone, Elapsed: fr.Elapsed})
	return nil
}

func writeOutput(path, content string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write build output %q: %w", path, err)
	}
	return nil
}

// phaseObserver turns driver phases of one file into stage events and
// per-stage durations.
type phaseObserver struct {
	sink    ProgressSink
	file    string
	timings *Timings
	current Stage // numStages until the first phase starts
}

func newPhaseObserver(sink ProgressSink, file string, timings *Timings) *phaseObserver {
	return &phaseObserver{sink: sink, file: file, timings: timings, current: numStages}
}

var phaseStages = map[string]Stage{
	"parse":     StageParse,
	"lower":     StageLower,
	"callgraph": StageLower,
	"codegen":   StageCodegen,
	"emit":      StageCodegen,
}

// OnPhase updates the progress UI based on compiler phase events.
func (p *phaseObserver) OnPhase(ev driver.PhaseEvent) {
	stage, ok := phaseStages[ev.Name]
	if !ok {
		return
	}
	switch ev.Status {
	case driver.PhaseStart:
		if stage == p.current {
			return
		}
		p.current = stage
		emit(p.sink, Event{File: p.file, Stage: stage, Status: StatusWorking})
	case driver.PhaseEnd:
		p.timings.Add(stage, ev.Elapsed)
	}
}

func emit(sink ProgressSink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageParse, Status: StatusQueued})
	}
}
