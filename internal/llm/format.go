package llm

import (
	"regexp"
	"strings"
)

// preambleTriggers are header strings that mark where the actual brief starts.
// Everything before the earliest occurrence is model narration and is dropped.
var preambleTriggers = []string{
	"**Case Name",
	"Case Name:",
	"CASE NAME",
}

var (
	blankRunRe = regexp.MustCompile(`\n{3,}`)

	// one compiled matcher per section label, anchored at line start
	sectionLabelRes = compileSectionLabelRes()
)

func compileSectionLabelRes() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(SectionLabels))
	for _, label := range SectionLabels {
		// Matches the label at line start with optional surrounding emphasis
		// and an optional colon, e.g. "Facts:", "**Facts:**", "** Facts **:".
		res[label] = regexp.MustCompile(`(?mi)^[ \t]*(?:\*\*[ \t]*)?` + regexp.QuoteMeta(label) + `[ \t]*:?[ \t]*(?:\*\*)?[ \t]*:?[ \t]*`)
	}
	return res
}

// CleanResponse strips any preamble the completion service produced before
// the first recognizable brief header. Output with no recognizable header
// passes through unchanged - the raw response is untrusted free text and a
// best-effort brief is still better than nothing.
func CleanResponse(raw string) string {
	start := -1
	for _, trigger := range preambleTriggers {
		if i := strings.Index(raw, trigger); i >= 0 && (start == -1 || i < start) {
			start = i
		}
	}
	if start > 0 {
		raw = raw[start:]
	}
	return strings.TrimSpace(raw)
}

// FormatBrief normalizes a cleaned response into renderable markdown: each
// known section label at line start becomes an emphasized header followed by
// a line break, runs of blank lines collapse to one, and the U+FFFD encoding
// artifact is removed.
func FormatBrief(s string) string {
	s = strings.ReplaceAll(s, "�", "")

	for _, label := range SectionLabels {
		s = sectionLabelRes[label].ReplaceAllString(s, "**"+label+":**\n")
	}

	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s) + "\n"
}
