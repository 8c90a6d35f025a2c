package convert

import (
	"regexp"
	"strings"
)

// errorLineRE matches the "SomeError: message" line that conversion tools
// (and Python tracebacks in particular) print as the final summary of a
// failure: an identifier ending in Error, Exception or Failure, a colon,
// then the message.
var errorLineRE = regexp.MustCompile(`^\s*[A-Za-z_][A-Za-z0-9_.]*(?:Error|Exception|Failure):\s*\S`)

// ExtractErrorMessage reduces a tool's raw diagnostic output to the single
// human-readable message shown to the client. It finds the last line
// matching errorLineRE and returns it together with any immediately
// following non-empty continuation lines; if no line matches, it falls back
// to the last non-empty line. Returns "" for empty output.
func ExtractErrorMessage(stderr string) string {
	lines := strings.Split(strings.ReplaceAll(stderr, "\r\n", "\n"), "\n")

	last := -1
	for i, line := range lines {
		if errorLineRE.MatchString(line) {
			last = i
		}
	}

	if last >= 0 {
		collected := []string{strings.TrimSpace(lines[last])}
		for _, line := range lines[last+1:] {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				break
			}
			collected = append(collected, trimmed)
		}
		return strings.Join(collected, "\n")
	}

	for i := len(lines) - 1; i >= 0; i-- {
		if trimmed := strings.TrimSpace(lines[i]); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
