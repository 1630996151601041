// Package report implements the aggregation and reporting pass over
// per-mailbox usage statistics.
package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// Size constants for byte formatting.
	kb = 1024
	mb = 1024 * kb
	gb = 1024 * mb
	tb = 1024 * gb
)

// bytesPattern matches the exact byte count embedded in a dual-format size
// string, e.g. the "(5,911,495,680 bytes)" part of "5.5 GB (5,911,495,680 bytes)".
var bytesPattern = regexp.MustCompile(`\(([\d,]+) bytes\)`)

// ParseError reports a size string that does not carry a parseable byte count.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no byte count found in size string %q", e.Input)
}

// ParseByteSize extracts the exact byte count from a dual-format size string.
// The display value before the parentheses is ignored; only the parenthesized
// integer counts. Returns a *ParseError when the pattern is absent.
func ParseByteSize(s string) (int64, error) {
	m := bytesPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, &ParseError{Input: s}
	}

	digits := strings.ReplaceAll(m[1], ",", "")
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, &ParseError{Input: s}
	}

	return n, nil
}

// FormatByteSize converts a non-negative byte count to a human-readable string.
// Thresholds are binary; values below 1 GiB always render in MB.
func FormatByteSize(n int64) string {
	switch {
	case n >= tb:
		return fmt.Sprintf("%.2f TB", float64(n)/float64(tb))
	case n >= gb:
		return fmt.Sprintf("%.2f GB", float64(n)/float64(gb))
	default:
		return fmt.Sprintf("%.2f MB", float64(n)/float64(mb))
	}
}

// FormatSizeWithBytes renders the dual-format display string used by the
// statistics source: a human-readable value followed by the exact byte count,
// e.g. "1.50 GB (1,610,612,736 bytes)". ParseByteSize inverts the byte part.
func FormatSizeWithBytes(n int64) string {
	return fmt.Sprintf("%s (%s bytes)", FormatByteSize(n), groupDigits(n))
}

// groupDigits formats an integer with comma thousands separators.
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
