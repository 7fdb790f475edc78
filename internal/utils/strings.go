package utils

import "strings"

// ParseCommaSeparated splits a comma-separated string, trims spaces, and de-duplicates entries.
func ParseCommaSeparated(s string) []string {
	parts := strings.Split(s, ",")
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		v := strings.TrimSpace(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// SplitAssignment splits "KEY=VALUE" on the first "=". ok is false when there is no "=".
func SplitAssignment(s string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(s, "=")
	return strings.TrimSpace(key), value, ok
}
