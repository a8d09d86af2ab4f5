package markup

// Insert wraps the rune range [start, end) of line in an on/off style pair.
//
// Indices are rune positions of line as it is now, sentinels included. A
// range that starts past the end of the line or is empty leaves the line
// unchanged; an end past the line is clamped to its length.
func Insert(line string, start, end int, on, off Style) string {
	runes := []rune(line)
	if end > len(runes) {
		end = len(runes)
	}
	if start < 0 || start >= end {
		return line
	}

	out := make([]rune, 0, len(runes)+2)
	out = append(out, runes[:start]...)
	out = append(out, rune(on))
	out = append(out, runes[start:end]...)
	out = append(out, rune(off))
	out = append(out, runes[end:]...)
	return string(out)
}

// EncodedIndex converts a visible column of line into a rune index of the
// encoded line. Columns at or past the visible length map to the length of
// the encoded line.
func EncodedIndex(line string, col int) int {
	visible := 0
	i := 0
	for _, r := range line {
		if !IsSentinel(r) {
			if visible == col {
				return i
			}
			visible++
		}
		i++
	}
	return i
}

// EncodedRange converts the visible range [start, end) into the encoded
// range covering exactly the same visible runes.
func EncodedRange(line string, start, end int) (int, int) {
	if end <= start {
		s := EncodedIndex(line, start)
		return s, s
	}
	return EncodedIndex(line, start), EncodedIndex(line, end-1) + 1
}

// Slice returns the visible text of the encoded rune range [start, end),
// clamped to the line.
func Slice(line string, start, end int) string {
	runes := []rune(line)
	if end > len(runes) {
		end = len(runes)
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return ""
	}
	return Strip(string(runes[start:end]))
}
