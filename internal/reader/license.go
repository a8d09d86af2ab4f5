package reader

import "strings"

const (
	licenseStart = "START OF THE PROJECT GUTENBERG"
	licenseEnd   = "END OF THE PROJECT GUTENBERG"
)

// StripLicense keeps only the lines strictly between the Project Gutenberg
// start and end markers. Content without a start marker, or without an end
// marker after it, is returned unchanged.
func StripLicense(content string) string {
	lines := strings.Split(content, "\n")

	start := -1
	for i, line := range lines {
		if strings.Contains(line, licenseStart) {
			start = i
			break
		}
	}
	if start < 0 {
		return content
	}

	for i := start + 1; i < len(lines); i++ {
		if strings.Contains(lines[i], licenseEnd) {
			return strings.Join(lines[start+1:i], "\n")
		}
	}
	return content
}
