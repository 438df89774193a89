// Package prompt asks the user for component names and template choices.
package prompt

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	oerrors "github.com/compforge/cli/internal/errors"
	"github.com/compforge/cli/internal/output"
)

// ErrNotInteractive is returned when a prompt is needed but no terminal is
// attached.
var ErrNotInteractive = errors.New("no terminal available for prompts")

// Item is one labeled choice.
type Item struct {
	Label string
	Value string
}

// Prompter collects input from the user. Dismissing a prompt returns an
// error matching errors.ErrCancelled.
type Prompter interface {
	// Text asks for a line of text. validate runs on every submission.
	Text(title, initial string, validate func(string) error) (string, error)

	// PickOne asks for exactly one item and returns its index.
	PickOne(title string, items []Item) (int, error)

	// PickMany asks for any number of items and returns their indexes in
	// list order.
	PickMany(title string, items []Item) ([]int, error)
}

// Terminal prompts on the attached terminal using huh forms.
type Terminal struct {
	// Accessible switches huh to its screen-reader friendly mode.
	Accessible bool
}

var _ Prompter = (*Terminal)(nil)

// NewTerminal creates a terminal prompter.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Text asks for a line of text.
func (t *Terminal) Text(title, initial string, validate func(string) error) (string, error) {
	if err := t.ready(); err != nil {
		return "", err
	}

	value := initial
	input := huh.NewInput().
		Title(title).
		Value(&value)
	if validate != nil {
		input = input.Validate(validate)
	}

	if err := t.run(input); err != nil {
		return "", err
	}
	return value, nil
}

// PickOne asks for exactly one item.
func (t *Terminal) PickOne(title string, items []Item) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("%s: nothing to choose from", title)
	}
	if err := t.ready(); err != nil {
		return -1, err
	}

	var picked int
	options := make([]huh.Option[int], len(items))
	for i, item := range items {
		options[i] = huh.NewOption(item.Label, i)
	}

	sel := huh.NewSelect[int]().
		Title(title).
		Options(options...).
		Value(&picked)

	if err := t.run(sel); err != nil {
		return -1, err
	}
	return picked, nil
}

// PickMany asks for any number of items. At least one must be chosen.
func (t *Terminal) PickMany(title string, items []Item) ([]int, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%s: nothing to choose from", title)
	}
	if err := t.ready(); err != nil {
		return nil, err
	}

	var picked []int
	options := make([]huh.Option[int], len(items))
	for i, item := range items {
		options[i] = huh.NewOption(item.Label, i)
	}

	sel := huh.NewMultiSelect[int]().
		Title(title).
		Options(options...).
		Value(&picked).
		Validate(func(v []int) error {
			if len(v) == 0 {
				return errors.New("select at least one template")
			}
			return nil
		})

	if err := t.run(sel); err != nil {
		return nil, err
	}
	return sortedIndexes(picked), nil
}

func (t *Terminal) ready() error {
	if !output.IsInteractive() {
		return ErrNotInteractive
	}
	return nil
}

func (t *Terminal) run(field huh.Field) error {
	err := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(t.Accessible).
		WithShowHelp(true).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return oerrors.ErrCancelled
	}
	return err
}

// sortedIndexes returns idx in ascending order without duplicates.
func sortedIndexes(idx []int) []int {
	seen := make(map[int]bool, len(idx))
	hi := -1
	for _, i := range idx {
		seen[i] = true
		if i > hi {
			hi = i
		}
	}
	out := make([]int, 0, len(seen))
	for i := 0; i <= hi; i++ {
		if seen[i] {
			out = append(out, i)
		}
	}
	return out
}
