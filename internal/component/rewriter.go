// Package component forks and renames component directories, rewriting
// every case variant of the old name to the new name's matching variant.
package component

import (
	"sort"
	"strings"

	"github.com/compforge/cli/internal/casing"
)

// Rewriter maps a component name's case variants to another name's.
type Rewriter struct {
	oldName  string
	newName  string
	pairs    map[string]string
	replacer *strings.Replacer
}

// NewRewriter builds the substitution table from oldName to newName. Each
// case pair is included only when both names have a detectable case. The
// literal pair oldName -> newName is always included. When two cases yield
// the same key, the first in pascal, camel, kebab, snake order wins.
func NewRewriter(oldName, newName string) *Rewriter {
	pairs := make(map[string]string)

	oldVariants := casing.Variants(oldName)
	newVariants := casing.Variants(newName)
	if len(oldVariants) > 0 && len(newVariants) > 0 {
		for _, c := range casing.All {
			key := oldVariants[c]
			if _, taken := pairs[key]; taken || key == "" {
				continue
			}
			pairs[key] = newVariants[c]
		}
	}
	if _, taken := pairs[oldName]; !taken && oldName != "" {
		pairs[oldName] = newName
	}

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

	return &Rewriter{
		oldName:  oldName,
		newName:  newName,
		pairs:    pairs,
		replacer: strings.NewReplacer(oldnew...),
	}
}

// Replace rewrites every occurrence of an old variant in s in one pass.
func (r *Rewriter) Replace(s string) string {
	return r.replacer.Replace(s)
}

// Lookup returns the replacement for s when s is exactly an old variant.
func (r *Rewriter) Lookup(s string) (string, bool) {
	v, ok := r.pairs[s]
	return v, ok
}

// Pairs returns a copy of the substitution table.
func (r *Rewriter) Pairs() map[string]string {
	out := make(map[string]string, len(r.pairs))
	for k, v := range r.pairs {
		out[k] = v
	}
	return out
}

// Contains reports whether s contains any old variant.
func (r *Rewriter) Contains(s string) bool {
	return r.Replace(s) != s
}
