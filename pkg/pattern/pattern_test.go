package pattern

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestReplacePlaceholdersDirectoryScan(t *testing.T) {
	ctx := Context{
		Stem:           "My Image 01",
		Extension:      ".jpg",
		OriginalNumber: intPtr(1),
		NewNumber:      intPtr(10),
		NumberWidth:    3,
	}

	got := ReplacePlaceholders("Photo_<num>_Original_<orig_num>_Name_<orig_name><ext>", ModeDirectoryScan, ctx)
	assert.Equal(t, "Photo_010_Original_001_Name_My Image 01.jpg", got)
}

func TestReplacePlaceholdersSanitizesStem(t *testing.T) {
	ctx := Context{
		Stem:        "My Image 01",
		Extension:   ".jpg",
		NewNumber:   intPtr(10),
		NumberWidth: 3,
	}

	got := ReplacePlaceholders(`<orig_name>?*|_<num><ext>`, ModeDirectoryScan, ctx)
	assert.Equal(t, "My Image 01___010.jpg", got)
}

func TestReplacePlaceholdersManualSelection(t *testing.T) {
	ctx := Context{
		Stem:       "Chapter Notes",
		Extension:  ".docx",
		Index:      5,
		TotalFiles: 12,
	}

	got := ReplacePlaceholders("Doc_<index>_<orig_name><ext>", ModeManualSelection, ctx)
	assert.Equal(t, "Doc_05_Chapter Notes.docx", got)
}

func TestReplacePlaceholdersIndexInactiveInScanMode(t *testing.T) {
	ctx := Context{Stem: "file", Extension: ".txt", Index: 3, TotalFiles: 9}

	got := ReplacePlaceholders("a<index>b<orig_name><ext>", ModeDirectoryScan, ctx)
	assert.Equal(t, "abfile.txt", got)
}

func TestReplacePlaceholdersNumbersInactiveInManualMode(t *testing.T) {
	ctx := Context{
		Stem:           "file",
		Extension:      ".txt",
		Index:          1,
		TotalFiles:     1,
		OriginalNumber: intPtr(7),
		NewNumber:      intPtr(8),
		NumberWidth:    2,
	}

	got := ReplacePlaceholders("a<num>b<orig_num>c<orig_name><ext>", ModeManualSelection, ctx)
	assert.Equal(t, "abcfile.txt", got)
}

func TestReplacePlaceholdersMissingNumberExpandsEmpty(t *testing.T) {
	ctx := Context{Stem: "readme", Extension: ".md", NumberWidth: 2}

	got := ReplacePlaceholders("<num>x<orig_name><ext>", ModeDirectoryScan, ctx)
	assert.Equal(t, "xreadme.md", got)
}

func TestReplacePlaceholdersParentDir(t *testing.T) {
	ctx := Context{Stem: "a", Extension: ".png", ParentDir: "photos"}

	got := ReplacePlaceholders("<parent_dir>_<orig_name><ext>", ModeDirectoryScan, ctx)
	assert.Equal(t, "photos_a.png", got)
}

func TestReplacePlaceholdersInsertedValueNotRescanned(t *testing.T) {
	// A stem that contains a placeholder token must be inserted literally,
	// not expanded again. The angle brackets are then sanitized away.
	ctx := Context{Stem: "<orig_name>"}

	got := ReplacePlaceholders("<orig_name>", ModeDirectoryScan, ctx)
	assert.Equal(t, "_orig_name_", got)
}

func TestReplacePlaceholdersRandom(t *testing.T) {
	got := ReplacePlaceholders("<random:8>", ModeDirectoryScan, Context{})
	require.Len(t, got, 8)
	for i := 0; i < len(got); i++ {
		assert.Contains(t, randomAlphabet, string(got[i]))
	}

	// Two expansions in one pattern draw independent characters.
	long := ReplacePlaceholders("<random:16><random:16>", ModeDirectoryScan, Context{})
	assert.Len(t, long, 32)
}

func TestReplacePlaceholdersRandomCapped(t *testing.T) {
	got := ReplacePlaceholders("<random:100>", ModeDirectoryScan, Context{})
	assert.Len(t, got, 64)
}

func TestReplacePlaceholdersRandomZeroCollapses(t *testing.T) {
	got := ReplacePlaceholders("<random:0>", ModeDirectoryScan, Context{})
	assert.Equal(t, "_", got)
}

func TestReplacePlaceholdersFileStats(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0644))

	ctx := Context{Stem: "data", Extension: ".bin", FullPath: path}
	got := ReplacePlaceholders("<file_size>_<file_size_kb>_<orig_name><ext>", ModeDirectoryScan, ctx)
	assert.Equal(t, "2048_2_data.bin", got)
}

func TestReplacePlaceholdersFileStatsFallback(t *testing.T) {
	ctx := Context{Stem: "gone", Extension: ".txt", FullPath: "/nonexistent/path/gone.txt"}
	got := ReplacePlaceholders("<file_size>_<modified_date>_<orig_name><ext>", ModeDirectoryScan, ctx)
	assert.Equal(t, "0_00000000_gone.txt", got)
}

func TestReplacePlaceholdersTimestamp(t *testing.T) {
	got := ReplacePlaceholders("<YYYY><MM>", ModeDirectoryScan, Context{})
	assert.Equal(t, time.Now().Format("200601"), got)
}

func TestReplacePlaceholdersEmptyCollapsesToUnderscore(t *testing.T) {
	got := ReplacePlaceholders("<num>", ModeDirectoryScan, Context{})
	assert.Equal(t, "_", got)
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		number, width int
		want          string
	}{
		{5, 3, "005"},
		{5, 1, "5"},
		{123, 2, "123"},
		{0, 4, "0000"},
		{-5, 3, "-5"},
		{7, 0, "7"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.number, tt.width), "FormatNumber(%d, %d)", tt.number, tt.width)
	}
}

func TestParseLastNumber(t *testing.T) {
	tests := []struct {
		name   string
		want   int
		wantOK bool
	}{
		{"file001.txt", 1, true},
		{"version1.2.3.zip", 3, true},
		{"123abc", 123, true},
		{"photo_0042.jpg", 42, true},
		{"no digits here.txt", 0, false},
		{"", 0, false},
		{"big_99999999999999999999.dat", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLastNumber(tt.name)
		assert.Equal(t, tt.wantOK, ok, "ParseLastNumber(%q) ok", tt.name)
		assert.Equal(t, tt.want, got, "ParseLastNumber(%q) value", tt.name)
	}
}

func TestApplyCaseConversion(t *testing.T) {
	tests := []struct {
		in   string
		mode CaseMode
		want string
	}{
		{"My File.TXT", CaseToUpper, "MY FILE.TXT"},
		{"photo.jpg", CaseToUpper, "PHOTO.jpg"},
		{"PHOTO.JPG", CaseToLower, "photo.JPG"},
		{"noext", CaseToUpper, "NOEXT"},
		{".hiddenFile", CaseToLower, ".hiddenFile"},
		{".config.Local", CaseToUpper, ".CONFIG.Local"},
		{"as is.txt", CaseNoChange, "as is.txt"},
		{"", CaseToUpper, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ApplyCaseConversion(tt.in, tt.mode), "ApplyCaseConversion(%q, %q)", tt.in, tt.mode)
	}
}

func TestPerformFindReplaceLiteral(t *testing.T) {
	tests := []struct {
		subject, find, replace string
		caseSensitive          bool
		want                   string
	}{
		{"hello world", "world", "go", true, "hello go"},
		{"Hello HELLO hello", "hello", "x", false, "x x x"},
		{"Hello HELLO hello", "hello", "x", true, "Hello HELLO x"},
		{"abc", "b", "bb", true, "abbc"},
		{"aaa", "a", "aa", true, "aaaaaa"},
		{"unchanged", "zzz", "x", true, "unchanged"},
		{"", "a", "b", true, ""},
		{"keep", "", "b", true, "keep"},
	}
	for _, tt := range tests {
		got := PerformFindReplace(tt.subject, tt.find, tt.replace, tt.caseSensitive, false)
		assert.Equal(t, tt.want, got, "find %q in %q", tt.find, tt.subject)
	}
}

func TestPerformFindReplaceRegex(t *testing.T) {
	got := PerformFindReplace("2024-01-15", `(\d+)-(\d+)-(\d+)`, "$3/$2/$1", true, true)
	assert.Equal(t, "15/01/2024", got)

	got = PerformFindReplace("Report.TXT", `\.txt$`, ".md", false, true)
	assert.Equal(t, "Report.md", got)

	// An invalid pattern leaves the subject untouched.
	got = PerformFindReplace("name", "[", "x", true, true)
	assert.Equal(t, "name", got)
}

func TestConvertWildcardToRegex(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "^.*$"},
		{"*.txt", `^.*\.txt$`},
		{"img_?", "^img_.$"},
		{"a+b", `^a\+b$`},
		{"file(1)", `^file\(1\)$`},
		{"*", "^.*$"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ConvertWildcardToRegex(tt.in), "ConvertWildcardToRegex(%q)", tt.in)
	}
}

func TestConvertWildcardToRegexMatches(t *testing.T) {
	re := regexp.MustCompile(ConvertWildcardToRegex("img_*.jp?g"))
	assert.True(t, re.MatchString("img_001.jpeg"))
	assert.False(t, re.MatchString("photo_001.jpeg"))
	assert.False(t, re.MatchString("ximg_001.jpeg"))
}

func TestEscapeRegexChars(t *testing.T) {
	got := EscapeRegexChars("a.b*c")
	assert.NotContains(t, got, "a.b")
	assert.True(t, strings.Contains(got, `\.`))
	assert.True(t, strings.Contains(got, `\*`))
}
