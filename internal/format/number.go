package format

import (
	"fmt"
	"strings"
)

// FormatNumberString inserts thousands separators into a decimal string.
func FormatNumberString(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	b.WriteString(sign)
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatBinary renders the low width bits of x in binary, zero padded.
func FormatBinary(x uint32, width int) string {
	return fmt.Sprintf("%0*b", width, uint64(x)&(1<<uint(width)-1))
}

// FormatThroughput renders a multiplication rate in M mul/s.
func FormatThroughput(count int, seconds float64) string {
	if seconds <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f M mul/s", float64(count)/seconds/1e6)
}

// FormatBytes renders a byte count with a binary unit ("1.5 MiB").
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
