package common

const truncatedSuffix = "...(truncated)"

// TruncString cuts s to at most limit bytes and marks the cut with a suffix.
// The cut never splits a UTF-8 sequence.
func TruncString(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + truncatedSuffix
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
