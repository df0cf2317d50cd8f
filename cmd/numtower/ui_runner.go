package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"numtower/internal/batch"
	"numtower/internal/ui"
)

type batchOutcome struct {
	results []batch.FileResult
	err     error
}

// runBatchWithUI runs the batch in the background and renders its progress
// until the event stream closes.
func runBatchWithUI(ctx context.Context, title string, files []string, opts batch.Options) ([]batch.FileResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan batch.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		opts.Sink = batch.ChannelSink{Ch: events}
		res, err := batch.Run(ctx, files, opts)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// the program quits early on ctrl+c; stop the batch and keep the producer unblocked
	cancel()
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
