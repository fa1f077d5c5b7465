package format

import (
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	// TruncateLimit is the longest string shown in full by TruncateDigits.
	TruncateLimit = 100
	// truncateEdge is the number of characters kept at each end.
	truncateEdge = 50
)

// TruncateDigits shortens long products for display: strings longer than
// TruncateLimit characters become the first 50, "...", and the last 50.
func TruncateDigits(s string) string {
	if len(s) <= TruncateLimit {
		return s
	}
	return s[:truncateEdge] + "..." + s[len(s)-truncateEdge:]
}

// FormatNumberString inserts thousands separators into a decimal string of
// any length, keeping an optional leading minus sign.
func FormatNumberString(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var sb strings.Builder
	sb.Grow(len(s) + len(s)/3 + 1)
	sb.WriteString(sign)
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	sb.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

// FormatDigitCount renders a digit count with separators, e.g. "1,048,576 digits".
func FormatDigitCount(n int) string {
	if n == 1 {
		return "1 digit"
	}
	return humanize.Comma(int64(n)) + " digits"
}

// FormatBytes renders a byte count in IEC units, e.g. "3.2 MiB".
func FormatBytes(n uint64) string {
	return humanize.IBytes(n)
}
