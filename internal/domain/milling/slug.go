package milling

import "strings"

// Slugify sanitizes a free-text name into a stable document id fragment:
// lowercase, spaces to underscores, anything outside [a-z0-9_] stripped,
// repeated underscores collapsed, leading/trailing underscores trimmed.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '_':
			b.WriteByte('_')
		}
	}
	out := b.String()
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	return strings.Trim(out, "_")
}
