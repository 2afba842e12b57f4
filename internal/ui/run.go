// Package ui renders build progress in the terminal.
package ui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"effectful/internal/buildpipeline"
)

// ErrInterrupted is returned when the user quits the progress view.
var ErrInterrupted = errors.New("build interrupted")

type buildOutcome struct {
	result *buildpipeline.BuildResult
	err    error
}

// RunBuild runs buildpipeline.Build in the background while a progress
// view renders its events to out.
func RunBuild(ctx context.Context, title string, files []string, req *buildpipeline.BuildRequest, out io.Writer) (*buildpipeline.BuildResult, error) {
	if req == nil {
		return nil, errors.New("missing build request")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)
	go func() {
		reqCopy := *req
		reqCopy.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := buildpipeline.Build(ctx, &reqCopy)
		outcomeCh <- buildOutcome{result: res, err: err}
		close(events)
	}()

	model := NewProgressModel(title, files, events)
	final, uiErr := tea.NewProgram(model, tea.WithOutput(out)).Run()
	interrupted := false
	if pm, ok := final.(*progressModel); ok && pm.interrupted {
		interrupted = true
		cancel()
	}
	// the build may still be sending after the view has quit
	for range events {
	}
	outcome := <-outcomeCh
	switch {
	case interrupted:
		return outcome.result, ErrInterrupted
	case uiErr != nil:
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
