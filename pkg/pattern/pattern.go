package pattern

import (
	"fmt"
	"math/rand"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Mode selects how candidate files are supplied to the planner and which
// placeholders are active during expansion.
type Mode string

const (
	// ModeDirectoryScan discovers files by scanning a target directory.
	// Enables <num> and <orig_num>; <index> expands to nothing.
	ModeDirectoryScan Mode = "scan"
	// ModeManualSelection renames an explicit, ordered file list.
	// Enables <index>; <num> and <orig_num> expand to nothing.
	ModeManualSelection Mode = "manual"
)

// CaseMode controls the optional case conversion applied to a generated
// filename stem. The extension always keeps its original case.
type CaseMode string

const (
	CaseNoChange CaseMode = "none"
	CaseToUpper  CaseMode = "upper"
	CaseToLower  CaseMode = "lower"
)

// Context carries the per-file values available to placeholder expansion.
// Optional fields left at their zero value render the corresponding
// placeholders empty (numbers) or as their documented fallback (file stats).
type Context struct {
	OriginalName string // full filename including extension
	Stem         string // filename without extension
	Extension    string // extension including the leading dot, may be empty

	// Manual-selection ordering. Index is 1-based; TotalFiles sizes the
	// zero padding of <index>.
	Index      int
	TotalFiles int

	// Directory-scan numbering. Nil means the filename carried no number.
	OriginalNumber *int
	NewNumber      *int
	NumberWidth    int

	ParentDir string // name of the containing directory, for <parent_dir>
	FullPath  string // absolute path backing <file_size> and <modified_date>
}

const randomAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// randomPlaceholder matches <random:N> markers; N is capped at 64.
var randomPlaceholder = regexp.MustCompile(`<random:(\d+)>`)

// ReplacePlaceholders expands every recognized <token> in pattern using the
// values in ctx, then sanitizes the resulting stem so it is a legal filename.
// Substitution is literal and scans left to right repeatedly: a token embedded
// inside a replacement value is not re-expanded, but a later occurrence of the
// same token still is. The result is never empty; a fully sanitized-away name
// collapses to "_".
func ReplacePlaceholders(p string, mode Mode, ctx Context) string {
	result := p

	result = replaceToken(result, "<parent_dir>", ctx.ParentDir)

	result = expandFileStats(result, ctx.FullPath)
	result = expandRandom(result)
	result = expandTimestamp(result)

	switch mode {
	case ModeDirectoryScan:
		result = replaceToken(result, "<ext>", ctx.Extension)
		result = replaceToken(result, "<orig_ext>", ctx.Extension)
		result = replaceToken(result, "<num>", formatOptional(ctx.NewNumber, ctx.NumberWidth))
		result = replaceToken(result, "<orig_num>", formatOptional(ctx.OriginalNumber, ctx.NumberWidth))
		result = replaceToken(result, "<orig_name>", ctx.Stem)
		result = replaceToken(result, "<index>", "")
	default: // ModeManualSelection
		result = replaceToken(result, "<index>", FormatNumber(ctx.Index, indexWidth(ctx.TotalFiles)))
		result = replaceToken(result, "<orig_name>", ctx.Stem)
		result = replaceToken(result, "<orig_ext>", ctx.Extension)
		result = replaceToken(result, "<ext>", ctx.Extension)
		result = replaceToken(result, "<num>", "")
		result = replaceToken(result, "<orig_num>", "")
	}

	return sanitizeFilename(result)
}

// replaceToken substitutes every occurrence of token in s, resuming the scan
// just past each inserted value so replacement text is never rescanned.
func replaceToken(s, token, value string) string {
	pos := 0
	for pos < len(s) {
		idx := strings.Index(s[pos:], token)
		if idx < 0 {
			break
		}
		found := pos + idx
		s = s[:found] + value + s[found+len(token):]
		pos = found + len(value)
	}
	return s
}

func formatOptional(n *int, width int) string {
	if n == nil {
		return ""
	}
	return FormatNumber(*n, width)
}

// indexWidth returns the zero-padding width for <index>: the digit count of
// the total file count, with a floor of 1.
func indexWidth(totalFiles int) int {
	if totalFiles <= 0 {
		return 1
	}
	return len(strconv.Itoa(totalFiles))
}

// expandFileStats substitutes <file_size>, <file_size_kb> and <modified_date>.
// When the backing file cannot be read the sizes render as "0" and the date
// as "00000000".
func expandFileStats(s, fullPath string) string {
	sizeStr, kbStr, dateStr := "0", "0", "00000000"
	if fullPath != "" {
		if info, err := os.Stat(fullPath); err == nil {
			sizeStr = strconv.FormatInt(info.Size(), 10)
			kbStr = strconv.FormatInt(info.Size()/1024, 10)
			dateStr = info.ModTime().Format("20060102")
		}
	}
	s = replaceToken(s, "<file_size>", sizeStr)
	s = replaceToken(s, "<file_size_kb>", kbStr)
	s = replaceToken(s, "<modified_date>", dateStr)
	return s
}

// expandRandom substitutes each <random:N> with N fresh alphanumeric
// characters, capped at 64. Every expansion draws new characters; results are
// intentionally not reproducible across calls.
func expandRandom(s string) string {
	for {
		m := randomPlaceholder.FindStringSubmatchIndex(s)
		if m == nil {
			return s
		}
		n, err := strconv.Atoi(s[m[2]:m[3]])
		if err != nil || n < 0 {
			n = 0
		}
		if n > 64 {
			n = 64
		}
		var b strings.Builder
		b.Grow(n)
		for i := 0; i < n; i++ {
			b.WriteByte(randomAlphabet[rand.Intn(len(randomAlphabet))])
		}
		s = s[:m[0]] + b.String() + s[m[1]:]
	}
}

// expandTimestamp substitutes the current local time into the
// <YYYY><MM><DD><hh><mm><ss> component placeholders.
func expandTimestamp(s string) string {
	if !strings.Contains(s, "<YYYY>") && !strings.Contains(s, "<MM>") &&
		!strings.Contains(s, "<DD>") && !strings.Contains(s, "<hh>") &&
		!strings.Contains(s, "<mm>") && !strings.Contains(s, "<ss>") {
		return s
	}
	now := time.Now()
	s = replaceToken(s, "<YYYY>", now.Format("2006"))
	s = replaceToken(s, "<MM>", now.Format("01"))
	s = replaceToken(s, "<DD>", now.Format("02"))
	s = replaceToken(s, "<hh>", now.Format("15"))
	s = replaceToken(s, "<mm>", now.Format("04"))
	s = replaceToken(s, "<ss>", now.Format("05"))
	return s
}

// FormatNumber zero-pads a non-negative number to width digits. Negative
// numbers are returned unpadded, and widths below 1 are treated as 1.
func FormatNumber(number, width int) string {
	if number < 0 {
		return strconv.Itoa(number)
	}
	if width < 1 {
		width = 1
	}
	return fmt.Sprintf("%0*d", width, number)
}
