package schema

import "strings"

// CanonicalCollection lowercases a collection name, replaces spaces with underscores
// and resolves legacy aliases.
func CanonicalCollection(name string, aliases map[string]string) string {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	if canonical, ok := aliases[n]; ok {
		return canonical
	}
	return n
}
