package pattern

import "strings"

// ApplyCaseConversion upper- or lower-cases the stem of filename while
// leaving the extension untouched. Pure dotfiles such as ".profile" are
// returned unchanged so their name is never mangled.
func ApplyCaseConversion(filename string, mode CaseMode) string {
	if mode == CaseNoChange || filename == "" {
		return filename
	}
	stem, ext := splitStemExt(filename)
	if filename[0] == '.' && stem == filename {
		return filename
	}
	switch mode {
	case CaseToUpper:
		stem = strings.ToUpper(stem)
	case CaseToLower:
		stem = strings.ToLower(stem)
	}
	return stem + ext
}

// splitStemExt splits at the last dot. A name whose only dot is the leading
// one (a dotfile) has no extension.
func splitStemExt(name string) (stem, ext string) {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return name, ""
	}
	return name[:idx], name[idx:]
}
