package pattern

import (
	"regexp"
	"strings"
)

// PerformFindReplace replaces every non-overlapping occurrence of find in
// subject. Literal matching folds ASCII case when caseSensitive is false and
// advances past each replacement so inserted text is never rescanned. With
// useRegex the find text is compiled as a regular expression and replaced
// globally, supporting $1-style backreferences in replace; a pattern that
// fails to compile leaves subject unchanged.
func PerformFindReplace(subject, find, replace string, caseSensitive, useRegex bool) string {
	if find == "" || subject == "" {
		return subject
	}

	if useRegex {
		expr := find
		if !caseSensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return subject
		}
		return re.ReplaceAllString(subject, replace)
	}

	pos := 0
	for pos < len(subject) {
		var idx int
		if caseSensitive {
			idx = strings.Index(subject[pos:], find)
		} else {
			idx = indexFold(subject[pos:], find)
		}
		if idx < 0 {
			break
		}
		found := pos + idx
		subject = subject[:found] + replace + subject[found+len(find):]
		pos = found + len(replace)
	}
	return subject
}

// indexFold is strings.Index with byte-wise ASCII case folding.
func indexFold(s, substr string) int {
	if len(substr) > len(s) {
		return -1
	}
	for i := 0; i+len(substr) <= len(s); i++ {
		if equalFoldBytes(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}

func equalFoldBytes(a, b string) bool {
	for i := 0; i < len(a); i++ {
		if lowerByte(a[i]) != lowerByte(b[i]) {
			return false
		}
	}
	return true
}

func lowerByte(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
