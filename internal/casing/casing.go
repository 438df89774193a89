// Package casing detects the lexical case of component names and converts
// between PascalCase, camelCase, kebab-case and snake_case.
package casing

import (
	"regexp"
	"strings"
)

// Case is a lexical convention for composing multi-word identifiers.
type Case string

const (
	// Pascal is PascalCase, e.g. "MyButton".
	Pascal Case = "pascal"

	// Camel is camelCase, e.g. "myButton".
	Camel Case = "camel"

	// Kebab is kebab-case, e.g. "my-button".
	Kebab Case = "kebab"

	// Snake is snake_case, e.g. "my_button".
	Snake Case = "snake"
)

// All lists every case in detection priority order.
var All = []Case{Pascal, Camel, Kebab, Snake}

var patterns = map[Case]*regexp.Regexp{
	Pascal: regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`),
	Camel:  regexp.MustCompile(`^[a-z][A-Za-z0-9]*$`),
	Kebab:  regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`),
	Snake:  regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`),
}

// Word boundaries inside pascal/camel names: lower or digit followed by
// upper ("myThing", "Button2Primary") and an acronym followed by a
// Titlecase word ("HTMLParser").
var (
	lowerUpper   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	acronymTitle = regexp.MustCompile(`([A-Z])([A-Z][a-z])`)
)

// Words is the canonical intermediate form between any two cases: an
// ordered list of lowercase word tokens.
type Words []string

// String returns the case identifier.
func (c Case) String() string {
	return string(c)
}

// IsValid reports whether c is one of the four supported cases.
func (c Case) IsValid() bool {
	_, ok := patterns[c]
	return ok
}

// Matches reports whether name is valid in case c, ignoring detection
// priority. A one-word lowercase name matches camel, kebab and snake.
func Matches(name string, c Case) bool {
	re, ok := patterns[c]
	return ok && re.MatchString(name)
}

// Detect returns the case of name. Patterns are tried in priority order
// pascal, camel, kebab, snake; the first full match wins. It reports false
// for names that match none, such as "My-Component", "1st" or "".
func Detect(name string) (Case, bool) {
	for _, c := range All {
		if patterns[c].MatchString(name) {
			return c, true
		}
	}
	return "", false
}

// Split breaks name, written in case c, into lowercase words.
func Split(name string, c Case) Words {
	var parts []string
	switch c {
	case Pascal, Camel:
		spaced := acronymTitle.ReplaceAllString(name, "$1 $2")
		spaced = lowerUpper.ReplaceAllString(spaced, "$1 $2")
		parts = strings.Fields(spaced)
	case Kebab:
		parts = strings.Split(name, "-")
	case Snake:
		parts = strings.Split(name, "_")
	default:
		return nil
	}

	words := make(Words, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		words = append(words, strings.ToLower(p))
	}
	return words
}

// Join composes words into a name in case c.
func Join(words Words, c Case) string {
	switch c {
	case Pascal:
		var b strings.Builder
		for _, w := range words {
			b.WriteString(capitalize(w))
		}
		return b.String()
	case Camel:
		var b strings.Builder
		for i, w := range words {
			if i == 0 {
				b.WriteString(strings.ToLower(w))
				continue
			}
			b.WriteString(capitalize(w))
		}
		return b.String()
	case Kebab:
		return strings.Join(lowerAll(words), "-")
	case Snake:
		return strings.Join(lowerAll(words), "_")
	default:
		return ""
	}
}

// Transform converts name into case c. It reports false when the case of
// name cannot be detected.
func Transform(name string, c Case) (string, bool) {
	src, ok := Detect(name)
	if !ok || !c.IsValid() {
		return "", false
	}
	return Join(Split(name, src), c), true
}

// Variants converts name into all four cases. The map is empty when the
// case of name cannot be detected.
func Variants(name string) map[Case]string {
	out := make(map[Case]string, len(All))
	src, ok := Detect(name)
	if !ok {
		return out
	}
	words := Split(name, src)
	for _, c := range All {
		out[c] = Join(words, c)
	}
	return out
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	w = strings.ToLower(w)
	return strings.ToUpper(w[:1]) + w[1:]
}

func lowerAll(words Words) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}
