package pattern

import "strings"

// invalidStemChars are replaced with '_' in generated stems, alongside
// control characters (code <= 31).
const invalidStemChars = `\/:*?"<>|`

func sanitizeChar(c byte) byte {
	if c <= 31 || strings.IndexByte(invalidStemChars, c) >= 0 {
		return '_'
	}
	return c
}

// sanitizeStem replaces filesystem-hostile characters in a stem with
// underscores and guards against empty or reserved ("."/"..") results.
func sanitizeStem(stem string) string {
	if stem == "" {
		return "_"
	}
	b := []byte(stem)
	for i := range b {
		b[i] = sanitizeChar(b[i])
	}
	out := string(b)
	if out == "" || out == "." || out == ".." {
		out = "_"
	}
	return out
}

// sanitizeFilename splits a generated name into stem and extension at the
// last dot and sanitizes only the stem. A leading-dot name with no further
// dot (a dotfile) and a name ending in its only dot are treated as all stem.
func sanitizeFilename(name string) string {
	stem := name
	ext := ""
	if idx := strings.LastIndexByte(name, '.'); idx > 0 && idx+1 < len(name) {
		stem = name[:idx]
		ext = name[idx:]
	}
	sanitized := sanitizeStem(stem)
	if ext == "" && (sanitized == "_" || sanitized == "") {
		return "_"
	}
	return sanitized + ext
}
