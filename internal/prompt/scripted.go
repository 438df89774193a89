package prompt

import (
	oerrors "github.com/compforge/cli/internal/errors"
)

// Scripted answers prompts from fixed values. Tests and non-interactive
// callers use it in place of Terminal. An unset answer behaves like the
// user dismissing the prompt.
type Scripted struct {
	Texts []string
	Picks []int
	Multi [][]int

	// Asked records the titles of every prompt shown.
	Asked []string
}

var _ Prompter = (*Scripted)(nil)

// Text returns the next scripted text after running validate on it.
func (s *Scripted) Text(title, initial string, validate func(string) error) (string, error) {
	s.Asked = append(s.Asked, title)
	if len(s.Texts) == 0 {
		return "", oerrors.ErrCancelled
	}
	v := s.Texts[0]
	s.Texts = s.Texts[1:]
	if validate != nil {
		if err := validate(v); err != nil {
			return "", err
		}
	}
	return v, nil
}

// PickOne returns the next scripted index.
func (s *Scripted) PickOne(title string, items []Item) (int, error) {
	s.Asked = append(s.Asked, title)
	if len(s.Picks) == 0 {
		return -1, oerrors.ErrCancelled
	}
	v := s.Picks[0]
	s.Picks = s.Picks[1:]
	return v, nil
}

// PickMany returns the next scripted index set.
func (s *Scripted) PickMany(title string, items []Item) ([]int, error) {
	s.Asked = append(s.Asked, title)
	if len(s.Multi) == 0 {
		return nil, oerrors.ErrCancelled
	}
	v := s.Multi[0]
	s.Multi = s.Multi[1:]
	return sortedIndexes(v), nil
}
