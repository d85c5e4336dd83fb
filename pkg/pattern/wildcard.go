package pattern

import (
	"regexp"
	"strings"
)

// EscapeRegexChars escapes regex metacharacters so input matches literally
// inside a pattern.
func EscapeRegexChars(input string) string {
	return regexp.QuoteMeta(input)
}

// ConvertWildcardToRegex translates a filename wildcard pattern into an
// anchored regular expression: '*' becomes ".*", '?' becomes ".", and all
// regex metacharacters are escaped. An empty pattern matches any string.
func ConvertWildcardToRegex(pattern string) string {
	if pattern == "" {
		return "^.*$"
	}
	var b strings.Builder
	b.Grow(len(pattern)*2 + 2)
	b.WriteByte('^')
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteByte('.')
		case '.', '^', '$', '|', '(', ')', '[', ']', '{', '}', '+', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('$')
	return b.String()
}
