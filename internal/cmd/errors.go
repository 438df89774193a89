package cmd

import (
	"errors"

	oerrors "github.com/compforge/cli/internal/errors"
	"github.com/compforge/cli/internal/output"
	"github.com/compforge/cli/internal/prompt"
)

// cancelledMessage is shown when the user dismisses a prompt.
const cancelledMessage = "Cancelled; nothing was changed"

// finish ends a command with exactly one notification: n on success, or
// the notification fail produces for err.
func (g *GlobalConfig) finish(n output.Notification, err error) error {
	if err != nil {
		return g.fail(err)
	}
	g.Notifier.Notify(n)
	return nil
}

// fail notifies err and returns an already printed ExitError carrying its
// exit code. A dismissed prompt is reported as info and is not an error.
func (g *GlobalConfig) fail(err error) error {
	if errors.Is(err, oerrors.ErrCancelled) {
		g.Notifier.Notify(output.Notification{Level: output.LevelInfo, Message: cancelledMessage})
		return nil
	}

	g.Notifier.Notify(errorNotification(err))
	return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
}

// errorNotification renders an error as a notification. DetailError fields
// become detail lines.
func errorNotification(err error) output.Notification {
	var de *oerrors.DetailError
	if !errors.As(err, &de) {
		return output.Notification{Level: output.LevelError, Message: err.Error()}
	}

	n := output.Notification{Level: output.LevelError, Message: de.Message}
	n.Details = append(n.Details, de.Details...)
	if de.Location != "" {
		n.Details = append(n.Details, "location: "+de.Location)
	}
	if de.Field != "" {
		n.Details = append(n.Details, "field: "+de.Field)
	}
	if de.Hint != "" {
		n.Details = append(n.Details, "hint: "+de.Hint)
	}
	return n
}

// promptError converts a prompt failure into a command error. A prompt
// without a terminal asks for the flag that replaces it.
func promptError(err error, flag string) error {
	if errors.Is(err, prompt.ErrNotInteractive) {
		return oerrors.NewValidationError(
			"input required but no terminal is attached",
			"",
			"",
			"pass "+flag+" when running non-interactively",
		)
	}
	return err
}

// inputError shows only the message of a DetailError inside a prompt while
// keeping the original error for errors.Is.
type inputError struct {
	err error
}

func (e *inputError) Error() string {
	var de *oerrors.DetailError
	if errors.As(e.err, &de) {
		if de.Hint != "" {
			return de.Message + " (" + de.Hint + ")"
		}
		return de.Message
	}
	return e.err.Error()
}

func (e *inputError) Unwrap() error {
	return e.err
}

// promptValidator adapts a name check for use as a prompt validator.
func promptValidator(check func(string) error) func(string) error {
	return func(s string) error {
		if err := check(s); err != nil {
			return &inputError{err: err}
		}
		return nil
	}
}
