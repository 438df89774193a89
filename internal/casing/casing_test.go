package casing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Case
		wantOK bool
	}{
		{"pascal", "MyButton", Pascal, true},
		{"pascal single word", "Button", Pascal, true},
		{"pascal with digit", "Button2", Pascal, true},
		{"camel", "myButton", Camel, true},
		{"one lowercase word prefers camel", "button", Camel, true},
		{"single letter prefers camel", "x", Camel, true},
		{"kebab", "my-button", Kebab, true},
		{"snake", "my_button", Snake, true},
		{"kebab with digits", "my-button-2", Kebab, true},
		{"mixed separators", "my-button_primary", "", false},
		{"capitalised kebab", "My-Component", "", false},
		{"leading digit", "1button", "", false},
		{"empty", "", "", false},
		{"leading hyphen", "-button", "", false},
		{"trailing underscore", "button_", "", false},
		{"double hyphen", "my--button", "", false},
		{"space", "my button", "", false},
		{"upper kebab", "MY-BUTTON", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Detect(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatches_OneWordAmbiguity(t *testing.T) {
	// A one-word lowercase name is valid in three cases at once; Detect
	// resolves it by priority.
	assert.False(t, Matches("button", Pascal))
	assert.True(t, Matches("button", Camel))
	assert.True(t, Matches("button", Kebab))
	assert.True(t, Matches("button", Snake))

	got, ok := Detect("button")
	require.True(t, ok)
	assert.Equal(t, Camel, got)
}

func TestMatches_Exclusive(t *testing.T) {
	// Multi-word names match exactly one pattern.
	for _, name := range []string{"MyButton", "myButton", "my-button", "my_button"} {
		count := 0
		for _, c := range All {
			if Matches(name, c) {
				count++
			}
		}
		assert.Equal(t, 1, count, name)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		c     Case
		want  Words
	}{
		{"pascal", "MyButton", Pascal, Words{"my", "button"}},
		{"camel", "myButton", Camel, Words{"my", "button"}},
		{"acronym then word", "HTMLParser", Pascal, Words{"html", "parser"}},
		{"acronym at end", "MyHTML", Pascal, Words{"my", "html"}},
		{"acronym in camel", "getHTTPResponse", Camel, Words{"get", "http", "response"}},
		{"digit stays with word", "Button2", Pascal, Words{"button2"}},
		{"digit then word", "Button2Primary", Pascal, Words{"button2", "primary"}},
		{"kebab", "my-big-button", Kebab, Words{"my", "big", "button"}},
		{"snake", "my_big_button", Snake, Words{"my", "big", "button"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.input, tt.c))
		})
	}
}

func TestJoin(t *testing.T) {
	words := Words{"my", "big", "button"}

	assert.Equal(t, "MyBigButton", Join(words, Pascal))
	assert.Equal(t, "myBigButton", Join(words, Camel))
	assert.Equal(t, "my-big-button", Join(words, Kebab))
	assert.Equal(t, "my_big_button", Join(words, Snake))
	assert.Empty(t, Join(words, Case("title")))
}

func TestTransform(t *testing.T) {
	tests := []struct {
		input string
		to    Case
		want  string
	}{
		{"myThing", Pascal, "MyThing"},
		{"MyThing", Camel, "myThing"},
		{"MyThing", Kebab, "my-thing"},
		{"my-thing", Snake, "my_thing"},
		{"my_thing", Pascal, "MyThing"},
		{"HTMLParser", Kebab, "html-parser"},
		{"Button2", Camel, "button2"},
	}

	for _, tt := range tests {
		t.Run(tt.input+"->"+string(tt.to), func(t *testing.T) {
			got, ok := Transform(tt.input, tt.to)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("undetectable name", func(t *testing.T) {
		got, ok := Transform("My-Component", Pascal)
		assert.False(t, ok)
		assert.Empty(t, got)
	})

	t.Run("unknown target case", func(t *testing.T) {
		_, ok := Transform("MyThing", Case("upper"))
		assert.False(t, ok)
	})
}

func TestTransform_RoundTrip(t *testing.T) {
	names := []string{"MyBigButton", "userProfileCard", "order-line-item", "shipping_address_form", "HTMLParser"}

	for _, name := range names {
		for _, a := range All {
			for _, b := range All {
				viaA, ok := Transform(name, a)
				require.True(t, ok, "%s -> %s", name, a)

				viaB, ok := Transform(viaA, b)
				require.True(t, ok, "%s -> %s", viaA, b)

				detected, ok := Detect(viaB)
				require.True(t, ok)
				assert.Equal(t, b, detected, "%s -> %s -> %s", name, a, b)

				back, ok := Transform(viaB, a)
				require.True(t, ok)
				assert.Equal(t, viaA, back, "%s -> %s -> %s -> %s", name, a, b, a)
			}
		}
	}
}

func TestTransform_OneWordOutputs(t *testing.T) {
	// One-word names detect as camel after lowercasing, but every output
	// is still valid in the requested case.
	for _, c := range All {
		got, ok := Transform("Button", c)
		require.True(t, ok)
		assert.True(t, Matches(got, c), "%q should be valid %s", got, c)
	}
}

func TestVariants(t *testing.T) {
	v := Variants("orderLine")
	assert.Equal(t, map[Case]string{
		Pascal: "OrderLine",
		Camel:  "orderLine",
		Kebab:  "order-line",
		Snake:  "order_line",
	}, v)

	assert.Empty(t, Variants("order-Line"))
}
