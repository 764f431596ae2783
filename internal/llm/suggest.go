package llm

import (
	"regexp"
	"strings"
)

var numberedTitleRe = regexp.MustCompile(`(?m)^\s*\d+\.\s*(.+)$`)

// ParseNumberedTitles extracts case titles from a numbered-list completion
// response ("1. Title"). Surrounding emphasis markup and whitespace are
// stripped; empty entries are dropped.
func ParseNumberedTitles(raw string) []string {
	matches := numberedTitleRe.FindAllStringSubmatch(raw, -1)

	titles := make([]string, 0, len(matches))
	for _, m := range matches {
		t := strings.TrimSpace(m[1])
		t = strings.Trim(t, "*_`")
		t = strings.TrimSpace(t)
		if t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}
