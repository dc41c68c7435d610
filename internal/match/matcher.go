// Package match finds, for every column of a document, the registered types
// whose pattern matches each of its values.
package match

import (
	"github.com/ppiankov/csvtypes/internal/registry"
)

// Matches reports whether value satisfies def
func Matches(value string, def registry.TypeDef) bool {
	return def.Match(value)
}

// MatchColumn keeps the defs that match every value of the column, in the
// order given. An empty column matches every def.
func MatchColumn(values []string, defs []registry.TypeDef) []registry.TypeDef {
	matched := make([]registry.TypeDef, 0, len(defs))
	for _, def := range defs {
		if matchesAll(values, def) {
			matched = append(matched, def)
		}
	}
	return matched
}

func matchesAll(values []string, def registry.TypeDef) bool {
	for _, v := range values {
		if !Matches(v, def) {
			return false
		}
	}
	return true
}
