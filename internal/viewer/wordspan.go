package viewer

import "unicode"

// WordSpanAt returns the run of letters, or the run of digits, that
// contains column col of the visible text. Any other rune under col yields
// ok == false.
func WordSpanAt(visible string, col int) (start, end int, ok bool) {
	runes := []rune(visible)
	if col < 0 || col >= len(runes) {
		return 0, 0, false
	}

	var in func(rune) bool
	switch r := runes[col]; {
	case unicode.IsLetter(r):
		in = unicode.IsLetter
	case unicode.IsNumber(r):
		in = unicode.IsNumber
	default:
		return 0, 0, false
	}

	start, end = col, col+1
	for start > 0 && in(runes[start-1]) {
		start--
	}
	for end < len(runes) && in(runes[end]) {
		end++
	}
	return start, end, true
}
