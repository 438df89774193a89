package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRewriter_Pairs(t *testing.T) {
	tests := []struct {
		name    string
		oldName string
		newName string
		want    map[string]string
	}{
		{
			name:    "multi-word names",
			oldName: "MyButton",
			newName: "FancyWidget",
			want: map[string]string{
				"MyButton":  "FancyWidget",
				"myButton":  "fancyWidget",
				"my-button": "fancy-widget",
				"my_button": "fancy_widget",
			},
		},
		{
			name:    "one-word names collapse lowercase variants",
			oldName: "Alpha",
			newName: "Beta",
			want: map[string]string{
				"Alpha": "Beta",
				"alpha": "beta",
			},
		},
		{
			name:    "undetectable new name keeps only the literal pair",
			oldName: "Alpha",
			newName: "Not-Valid",
			want: map[string]string{
				"Alpha": "Not-Valid",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw := NewRewriter(tt.oldName, tt.newName)
			assert.Equal(t, tt.want, rw.Pairs())
		})
	}
}

func TestRewriter_Replace(t *testing.T) {
	tests := []struct {
		name    string
		oldName string
		newName string
		input   string
		want    string
	}{
		{
			name:    "fork scenario",
			oldName: "Alpha",
			newName: "Beta",
			input:   "const alpha = 1; // Alpha",
			want:    "const beta = 1; // Beta",
		},
		{
			name:    "every variant",
			oldName: "userCard",
			newName: "teamBadge",
			input:   "UserCard userCard user-card user_card",
			want:    "TeamBadge teamBadge team-badge team_badge",
		},
		{
			name:    "longest key wins inside compound identifiers",
			oldName: "Card",
			newName: "Tile",
			input:   "CardProps useCard card.module.css",
			want:    "TileProps useTile tile.module.css",
		},
		{
			name:    "single pass does not chain",
			oldName: "Foo",
			newName: "FooBar",
			input:   "Foo foo",
			want:    "FooBar fooBar",
		},
		{
			name:    "unrelated text untouched",
			oldName: "Alpha",
			newName: "Beta",
			input:   "const gamma = 2;",
			want:    "const gamma = 2;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw := NewRewriter(tt.oldName, tt.newName)
			assert.Equal(t, tt.want, rw.Replace(tt.input))
		})
	}
}

func TestRewriter_LookupAndContains(t *testing.T) {
	rw := NewRewriter("MyButton", "FancyWidget")

	v, ok := rw.Lookup("my-button")
	assert.True(t, ok)
	assert.Equal(t, "fancy-widget", v)

	_, ok = rw.Lookup("MyButtonProps")
	assert.False(t, ok, "Lookup matches whole variants only")

	assert.True(t, rw.Contains("import { MyButtonProps }"))
	assert.False(t, rw.Contains("nothing here"))
}
