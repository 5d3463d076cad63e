package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"docsniff/internal/driver"
	"docsniff/internal/ui"
)

type runOutcome[T any] struct {
	result T
	err    error
}

// runWithUI executes run in the background and renders its progress events
// until run returns. The UI error wins over the run error.
func runWithUI[T any](title string, files []string, run func(driver.ProgressSink) (T, error)) (T, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome[T], 1)

	go func() {
		res, err := run(driver.ChannelSink{Ch: events})
		outcomeCh <- runOutcome[T]{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// после Ctrl-C модель больше не читает канал, воркеры не должны блокироваться
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
