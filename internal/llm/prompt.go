package llm

import "fmt"

// SectionLabels are the nine brief sections, in the order they must appear.
var SectionLabels = []string{
	"Case Name",
	"Court",
	"Area of Law",
	"Citations",
	"Facts",
	"Issues",
	"Observations",
	"Judgment",
	"Developments in Law",
}

// systemInstruction frames every completion request
const systemInstruction = "You are a meticulous legal research assistant specializing in Indian Supreme Court judgments."

// exampleTitles illustrate the expected title format inside the prompt; the
// model is explicitly forbidden from citing them as content.
var exampleTitles = []string{
	"Maneka Gandhi vs Union Of India",
	"Kesavananda Bharati vs State Of Kerala",
}

// BuildBriefPrompt constructs the synthesis prompt from a case title and a
// bounded prefix of the judgment text. It is a pure function of its inputs so
// the template can be tested independently of the service call.
func BuildBriefPrompt(caseTitle, judgmentText string) string {
	return fmt.Sprintf(`You are preparing a structured case brief for the judgment below.

Case Title: %s

Respond with EXACTLY the following nine sections, each starting on its own line with the label shown, in this order:
Case Name:
Court:
Area of Law:
Citations:
Facts:
Issues:
Observations:
Judgment:
Developments in Law:

IMPORTANT: Do NOT include any preamble, reasoning narration, apology, or commentary before or after the sections. Start directly with "Case Name:".
IMPORTANT: Case titles are written like "%s" or "%s". These are format examples ONLY - do NOT cite or reference them in your answer.
IMPORTANT: Base every section strictly on the judgment text provided. If a section cannot be determined from the text, write "Not stated in the judgment."

Judgment text (excerpt):
%s`, caseTitle, exampleTitles[0], exampleTitles[1], judgmentText)
}

// BuildSuggestPrompt constructs the prompt that asks the completion service
// for relevant Supreme Court case titles given a plain-language legal issue.
func BuildSuggestPrompt(issue string) string {
	return fmt.Sprintf(`You are a legal research assistant helping a user find Indian Supreme Court cases.

Given the following legal issue, return a list of the most relevant Indian Supreme Court case titles.
IMPORTANT: Make sure each case title is a valid case title from the Indian Supreme Court.
IMPORTANT: NO explanation or date or commentary or anything else, just the case titles.

Respond in the following format ONLY:
Case Titles:
1. <Case Title One>
2. <Case Title Two>
3. <Case Title Three>

Legal Issue:
%s`, issue)
}
