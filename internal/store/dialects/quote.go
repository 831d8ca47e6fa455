// Package dialects registers the SQL dialects the dictionary store supports.
// Import it for its side effects.
package dialects

import "strings"

// quoteParts quotes each identifier with open/close, doubling any closing
// quote inside it, and joins them with dots.
func quoteParts(open, close string, parts ...string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = open + strings.ReplaceAll(p, close, close+close) + close
	}
	return strings.Join(quoted, ".")
}
