package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Suggest returns up to limit component names completing prefix, in catalog order.
//
// A name matches when its lower-cased form starts with the engine's name prefix
// followed by prefix, or contains prefix anywhere. Matching is case-insensitive.
func (e *Engine) Suggest(prefix string, limit int) []string {
	if prefix == "" || limit <= 0 {
		return []string{}
	}

	lower := cases.Lower(language.Und)
	needle := lower.String(prefix)
	dotted := lower.String(e.namePrefix) + needle

	suggestions := make([]string, 0, limit)
	for _, c := range e.index.components {
		name := lower.String(c.Name)
		if strings.HasPrefix(name, dotted) || strings.Contains(name, needle) {
			suggestions = append(suggestions, c.Name)
			if len(suggestions) == limit {
				break
			}
		}
	}
	return suggestions
}
