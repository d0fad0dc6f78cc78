package shared

import (
	"fmt"
	"regexp"
	"strings"
)

// markdown-significant characters, escaped in the order listed
var markdownSpecials = []string{"*", "_", "`", "[", "]", "(", ")", "#", "+", "-", ".", "!"}

var (
	slugStripPattern    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapsePattern = regexp.MustCompile(`[-\s]+`)
)

// EscapeMarkdown prefixes markdown-significant characters with a backslash so
// arbitrary track and playlist names can be embedded in a markdown document.
// Each character class is substituted in a single pass; inserted backslashes
// are never re-escaped. Empty input yields an empty string.
func EscapeMarkdown(text string) string {
	for _, char := range markdownSpecials {
		text = strings.ReplaceAll(text, char, `\`+char)
	}
	return text
}

// Slugify derives a filesystem-safe name from a display name: characters
// outside word characters, whitespace, and hyphen are dropped (including
// non-ASCII and emoji), then runs of spaces and hyphens collapse into a
// single hyphen.
func Slugify(text string) string {
	s := slugStripPattern.ReplaceAllString(text, "")
	s = strings.TrimSpace(s)
	return slugCollapsePattern.ReplaceAllString(s, "-")
}

// FormatDuration converts a millisecond duration into a "M:SS" display string.
// There is no hour component, so a track over an hour renders minutes > 59.
func FormatDuration(ms int) (string, error) {
	if ms < 0 {
		return "", fmt.Errorf("%w: negative duration %dms", ErrInvalidInput, ms)
	}
	seconds := ms / 1000
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60), nil
}
