package handoff

import (
	"fmt"
	"regexp"
	"strings"
)

// The correlation tag is embedded in every forwarded message and doubles as
// the fallback correlation channel when the operator's client drops the
// reply-to reference (channel posts, copy-pasted replies).
var tagPattern = regexp.MustCompile(`\[USER:(.+?)\]`)

// FormatTag renders the machine-parseable user tag.
func FormatTag(userID string) string {
	return fmt.Sprintf("[USER:%s]", userID)
}

// ExtractTag returns the user id embedded in text, or "" if none.
func ExtractTag(text string) string {
	if text == "" {
		return ""
	}
	m := tagPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// StripTag removes every user tag from text.
func StripTag(text string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(text, ""))
}
