package output

import (
	"context"

	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner executes action while a spinner with the given title is
// shown. Without a terminal the action runs directly. The action receives
// ctx and must return once it is cancelled; RunWithSpinner never returns
// before the action has.
func RunWithSpinner(ctx context.Context, title string, action func(ctx context.Context) error) error {
	if !IsTTY() {
		return action(ctx)
	}
	return runSpinning(ctx, action, func(wait func()) error {
		return spinner.New().
			Title(title).
			Context(ctx).
			Action(wait).
			Run()
	})
}

// runSpinning runs action in the background while spin shows progress. spin
// receives a function that blocks until the action finishes or ctx is done
// and may itself return early.
func runSpinning(ctx context.Context, action func(ctx context.Context) error, spin func(wait func()) error) error {
	var actionErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		actionErr = action(ctx)
	}()

	spinErr := spin(func() {
		select {
		case <-done:
		case <-ctx.Done():
		}
	})

	<-done
	if spinErr != nil {
		Debug("spinner stopped early", "err", spinErr)
	}
	return actionErr
}
