package correction

import (
	"regexp"
	"strings"
)

// fencePattern matches the first ```sql fenced block. The fence tag is
// case-sensitive and the content may span lines.
var fencePattern = regexp.MustCompile("(?s)```sql(.*?)```")

// ExtractSQL returns the content of the first ```sql fenced block in the
// response, trimmed. A missing fence is the recognized "no SQL produced"
// outcome, not an error.
func ExtractSQL(response string) (string, bool) {
	m := fencePattern.FindStringSubmatch(response)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
