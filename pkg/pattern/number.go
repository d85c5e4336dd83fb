package pattern

import (
	"math"
	"regexp"
	"strconv"
)

// lastNumber captures the final maximal digit run that is followed only by
// non-digits to the end of the name.
var lastNumber = regexp.MustCompile(`(\d+)[^\d]*$`)

// ParseLastNumber extracts the trailing integer run from a filename, e.g.
// "file001.txt" yields 1 and "version1.2.3.zip" yields 3. It reports false
// when no digit run exists or the value falls outside the signed 32-bit
// range.
func ParseLastNumber(filename string) (int, bool) {
	m := lastNumber.FindStringSubmatch(filename)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}
