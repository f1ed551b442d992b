// Package lists cleans comma separated configuration values.
package lists

import "strings"

// Clean trims each element, drops empty ones and removes repeats while
// keeping first-seen order. A nil input stays nil.
func Clean(values []string) []string {
	if values == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
