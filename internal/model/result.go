package model

// CaseStatus is the terminal outcome of processing one case title
type CaseStatus string

const (
	// StatusBriefed means the judgment was obtained (or already cached) and a brief was rendered
	StatusBriefed CaseStatus = "acquired+briefed"

	// StatusInsufficientText means the judgment yielded too little extractable text for synthesis
	StatusInsufficientText CaseStatus = "skipped-insufficient-text"

	// StatusAcquisitionTimeout means the browser protocol or the download wait exceeded its bound
	StatusAcquisitionTimeout CaseStatus = "acquisition-timeout"

	// StatusNoResults means the archive search returned no judgment for the title
	StatusNoResults CaseStatus = "no-results-found"

	// StatusRenderFailed means the brief was synthesized but the PDF renderer failed
	StatusRenderFailed CaseStatus = "render-failed"

	// StatusLLMFailed means the completion service failed after all retries
	StatusLLMFailed CaseStatus = "llm-failed-after-retries"

	// StatusSkippedExisting means a rendered brief already existed and --skip-existing was set
	StatusSkippedExisting CaseStatus = "skipped-existing-brief"
)

// CaseResult is the outcome of processing a single case title
type CaseResult struct {
	// Input is the raw title as given by the operator
	Input string `json:"input"`

	// Title is the canonical (normalized) form used for search and storage
	Title string `json:"title"`

	// Slug is the filesystem-safe storage key
	Slug string `json:"slug"`

	// Status classifies the outcome
	Status CaseStatus `json:"status"`

	// Message is the human-readable outcome line, including failure detail
	Message string `json:"message"`
}

// OK reports whether the case completed with a rendered brief
func (r CaseResult) OK() bool {
	return r.Status == StatusBriefed
}

// BatchResult maps each raw input title to its outcome
type BatchResult map[string]CaseResult

// Succeeded counts cases that produced a rendered brief
func (b BatchResult) Succeeded() int {
	n := 0
	for _, r := range b {
		if r.OK() {
			n++
		}
	}
	return n
}
