package prompt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/compforge/cli/internal/errors"
)

func TestSortedIndexes(t *testing.T) {
	assert.Equal(t, []int{0, 2, 5}, sortedIndexes([]int{5, 0, 2, 2}))
	assert.Empty(t, sortedIndexes(nil))
}

func TestScripted(t *testing.T) {
	s := &Scripted{
		Texts: []string{"Button"},
		Picks: []int{1},
		Multi: [][]int{{2, 0}},
	}

	name, err := s.Text("Component name", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Button", name)

	pick, err := s.PickOne("Group", []Item{{Label: "a"}, {Label: "b"}})
	require.NoError(t, err)
	assert.Equal(t, 1, pick)

	many, err := s.PickMany("Templates", []Item{{Label: "a"}, {Label: "b"}, {Label: "c"}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, many)

	assert.Equal(t, []string{"Component name", "Group", "Templates"}, s.Asked)
}

func TestScripted_Exhausted(t *testing.T) {
	s := &Scripted{}

	_, err := s.Text("name", "", nil)
	assert.True(t, errors.Is(err, oerrors.ErrCancelled))

	_, err = s.PickOne("group", nil)
	assert.True(t, errors.Is(err, oerrors.ErrCancelled))

	_, err = s.PickMany("templates", nil)
	assert.True(t, errors.Is(err, oerrors.ErrCancelled))
}

func TestScripted_RunsValidator(t *testing.T) {
	s := &Scripted{Texts: []string{"bad name"}}

	_, err := s.Text("name", "", func(v string) error {
		return errors.New("invalid")
	})
	assert.EqualError(t, err, "invalid")
}

func TestTerminal_NoItems(t *testing.T) {
	term := NewTerminal()

	_, err := term.PickOne("Group", nil)
	assert.Error(t, err)

	_, err = term.PickMany("Templates", nil)
	assert.Error(t, err)
}
