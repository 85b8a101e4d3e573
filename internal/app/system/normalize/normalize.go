// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address so lookups and the
// unique index on users.email agree on one canonical form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name and collapses internal runs of whitespace
// to single spaces.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Username trims a username. Usernames are stored as entered apart
// from surrounding whitespace.
func Username(s string) string {
	return strings.TrimSpace(s)
}
