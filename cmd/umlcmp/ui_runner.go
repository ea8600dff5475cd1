package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"umlcmp/internal/driver"
	"umlcmp/internal/ui"
)

type batchOutcome struct {
	result *driver.BatchResult
	err    error
}

// runBatchWithUI runs the batch comparison behind a progress UI. The batch
// works in a goroutine and feeds the UI through the event channel; the UI
// quits when the channel closes.
func runBatchWithUI(ctx context.Context, title, refPath string, runs []driver.Run, opts driver.Options) (*driver.BatchResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		res, err := driver.CompareBatch(ctx, refPath, runs, opts, driver.ChannelSink{Ch: events})
		close(events)
		outcomeCh <- batchOutcome{result: res, err: err}
	}()

	model := ui.NewProgressModel(title, runs, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()

	// The UI can quit before the batch is done (ctrl+c). Stop the batch and
	// keep draining the channel so no worker stays blocked on a full event
	// buffer; the drain ends when the batch goroutine closes it.
	cancel()
	for range events {
	}

	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
