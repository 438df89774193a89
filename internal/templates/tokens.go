package templates

import (
	"fmt"
	"sort"
	"strings"

	"github.com/compforge/cli/internal/casing"
	oerrors "github.com/compforge/cli/internal/errors"
)

// Name tokens recognised in target patterns and template content.
const (
	TokenRaw    = "{{COMPONENT_NAME}}"
	TokenPascal = "{{PascalCaseComponentName}}"
	TokenCamel  = "{{camelCaseComponentName}}"
	TokenKebab  = "{{kebab-case-component-name}}"
	TokenSnake  = "{{snake_case_component_name}}"
)

// caseTokens maps each case to its token.
var caseTokens = map[casing.Case]string{
	casing.Pascal: TokenPascal,
	casing.Camel:  TokenCamel,
	casing.Kebab:  TokenKebab,
	casing.Snake:  TokenSnake,
}

// Substituter replaces name tokens and configured replacement keys in one
// pass. Text that looks like a token but is not registered is left as is.
type Substituter struct {
	name     string
	replacer *strings.Replacer
	pairs    map[string]string
}

// NewSubstituter builds the token table for a component name. It fails when
// the name's case cannot be detected, since every case token depends on it.
func NewSubstituter(name string, replacements map[string]string) (*Substituter, error) {
	variants := casing.Variants(name)
	if len(variants) == 0 {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("cannot detect the case of component name %q", name),
			"",
			"",
			"use PascalCase, camelCase, kebab-case or snake_case",
		)
	}

	pairs := make(map[string]string, len(replacements)+len(caseTokens)+1)
	for k, v := range replacements {
		if k != "" {
			pairs[k] = v
		}
	}
	// Name tokens take precedence over user keys spelled the same way.
	pairs[TokenRaw] = name
	for c, token := range caseTokens {
		pairs[token] = variants[c]
	}

	return &Substituter{
		name:     name,
		replacer: newReplacer(pairs),
		pairs:    pairs,
	}, nil
}

// Name returns the component name the substituter was built for.
func (s *Substituter) Name() string {
	return s.name
}

// Replace substitutes every registered token in text.
func (s *Substituter) Replace(text string) string {
	return s.replacer.Replace(text)
}

// Value returns the replacement for a token.
func (s *Substituter) Value(token string) (string, bool) {
	v, ok := s.pairs[token]
	return v, ok
}

// newReplacer orders keys longest first so a key never loses to one of its
// own prefixes at the same position.
func newReplacer(pairs map[string]string) *strings.Replacer {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	oldnew := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		oldnew = append(oldnew, k, pairs[k])
	}
	return strings.NewReplacer(oldnew...)
}
