package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/casebrief/internal/acquire"
	"github.com/ppiankov/casebrief/internal/cache"
	"github.com/ppiankov/casebrief/internal/llm"
	"github.com/ppiankov/casebrief/internal/model"
)

type mockAcquirer struct {
	calls int
	err   error
	// errFor fails only specific titles
	errFor map[string]error
}

func (m *mockAcquirer) Acquire(_ context.Context, caseTitle, destPath string) error {
	m.calls++
	if m.errFor != nil {
		if err, ok := m.errFor[caseTitle]; ok {
			return err
		}
	}
	if m.err != nil {
		return m.err
	}
	return os.WriteFile(destPath, []byte("%PDF-1.4 judgment"), 0644)
}

type mockExtractor struct {
	calls int
	text  string
	err   error
}

func (m *mockExtractor) ExtractText(string) (string, error) {
	m.calls++
	return m.text, m.err
}

type mockSynthesizer struct {
	calls int
	brief string
	err   error
}

func (m *mockSynthesizer) Synthesize(_ context.Context, caseTitle, _ string) (string, error) {
	m.calls++
	if m.err != nil {
		return fmt.Sprintf("**Case Name:** %s\n\n_Brief generation failed_\n", caseTitle), m.err
	}
	return m.brief, nil
}

type mockRenderer struct {
	calls int
	err   error
	// errFor fails only specific titles
	errFor map[string]error
}

func (m *mockRenderer) Render(_ context.Context, title, _ string, outputPath string) error {
	m.calls++
	if m.errFor != nil {
		if err, ok := m.errFor[title]; ok {
			return err
		}
	}
	if m.err != nil {
		return m.err
	}
	return os.WriteFile(outputPath, []byte("%PDF-1.4 brief"), 0644)
}

func longText() string {
	buf := make([]byte, 2000)
	for i := range buf {
		buf[i] = 'j'
	}
	return string(buf)
}

func testConfig(t *testing.T) *model.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := model.DefaultConfig()
	cfg.Storage.DownloadDir = filepath.Join(dir, "downloads")
	cfg.Storage.BriefDir = filepath.Join(dir, "briefs")
	cfg.Cache.Dir = filepath.Join(dir, "cache")
	return cfg
}

func newTestPipeline(cfg *model.Config, a Acquirer, e Extractor, s Synthesizer, r Renderer, textCache cache.Cache) *Pipeline {
	return NewPipeline(cfg, Options{
		Acquirer:    a,
		Extractor:   e,
		Synthesizer: s,
		Renderer:    r,
		TextCache:   textCache,
	}, nil)
}

func TestProcessTitle_Success(t *testing.T) {
	cfg := testConfig(t)
	acq := &mockAcquirer{}
	ext := &mockExtractor{text: longText()}
	syn := &mockSynthesizer{brief: "**Case Name:** Kesavananda Bharati vs State Of Kerala"}
	ren := &mockRenderer{}

	p := newTestPipeline(cfg, acq, ext, syn, ren, nil)
	result := p.ProcessTitle(context.Background(), "Kesavananda Bharati v. State of Kerala (1973)")

	if result.Status != model.StatusBriefed {
		t.Fatalf("Expected %s, got %s (%s)", model.StatusBriefed, result.Status, result.Message)
	}
	if result.Title != "Kesavananda Bharati vs State Of Kerala" {
		t.Errorf("Unexpected canonical title: %q", result.Title)
	}
	if acq.calls != 1 || ext.calls != 1 || syn.calls != 1 || ren.calls != 1 {
		t.Errorf("Stage calls: acquire=%d extract=%d synth=%d render=%d", acq.calls, ext.calls, syn.calls, ren.calls)
	}

	briefPath := filepath.Join(cfg.Storage.BriefDir, result.Slug+".pdf")
	if _, err := os.Stat(briefPath); err != nil {
		t.Errorf("Brief not written at %s: %v", briefPath, err)
	}
}

func TestProcessTitle_CachedDocumentSkipsAcquisition(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.Storage.DownloadDir, 0755); err != nil {
		t.Fatal(err)
	}
	// Pre-place the judgment where acquisition would put it
	docPath := filepath.Join(cfg.Storage.DownloadDir, "Some Case vs Union Of India.pdf")
	if err := os.WriteFile(docPath, []byte("%PDF-1.4 cached"), 0644); err != nil {
		t.Fatal(err)
	}

	acq := &mockAcquirer{}
	ext := &mockExtractor{text: longText()}
	syn := &mockSynthesizer{brief: "**Case Name:** Some Case vs Union Of India"}
	ren := &mockRenderer{}

	p := newTestPipeline(cfg, acq, ext, syn, ren, nil)
	result := p.ProcessTitle(context.Background(), "Some Case versus Union of India")

	if result.Status != model.StatusBriefed {
		t.Fatalf("Expected %s, got %s (%s)", model.StatusBriefed, result.Status, result.Message)
	}
	if acq.calls != 0 {
		t.Errorf("Expected zero acquisition calls for a cached document, got %d", acq.calls)
	}
	if ext.calls != 1 {
		t.Errorf("Expected one extraction call, got %d", ext.calls)
	}
}

func TestProcessTitle_TextCacheHitSkipsExtraction(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.Storage.DownloadDir, 0755); err != nil {
		t.Fatal(err)
	}

	slug := "Some Case vs Union Of India"
	docPath := filepath.Join(cfg.Storage.DownloadDir, slug+".pdf")
	if err := os.WriteFile(docPath, []byte("%PDF-1.4 cached"), 0644); err != nil {
		t.Fatal(err)
	}

	textCache := cache.NewMemoryCache(0, 0)
	if err := textCache.Set(cache.TextKey(slug), []byte(longText()), 0); err != nil {
		t.Fatal(err)
	}

	acq := &mockAcquirer{}
	ext := &mockExtractor{text: "should not be used"}
	syn := &mockSynthesizer{brief: "**Case Name:** Some Case vs Union Of India"}
	ren := &mockRenderer{}

	p := newTestPipeline(cfg, acq, ext, syn, ren, textCache)
	result := p.ProcessTitle(context.Background(), "Some Case vs Union Of India")

	if result.Status != model.StatusBriefed {
		t.Fatalf("Expected %s, got %s (%s)", model.StatusBriefed, result.Status, result.Message)
	}
	if ext.calls != 0 {
		t.Errorf("Expected extraction to be skipped on text cache hit, got %d calls", ext.calls)
	}
}

func TestProcessTitle_NoResults(t *testing.T) {
	cfg := testConfig(t)
	acq := &mockAcquirer{err: acquire.ErrNoResults}
	p := newTestPipeline(cfg, acq, &mockExtractor{}, &mockSynthesizer{}, &mockRenderer{}, nil)

	result := p.ProcessTitle(context.Background(), "Nonexistent Case vs Nobody")
	if result.Status != model.StatusNoResults {
		t.Errorf("Expected %s, got %s", model.StatusNoResults, result.Status)
	}
}

func TestProcessTitle_AcquisitionTimeout(t *testing.T) {
	cfg := testConfig(t)
	acq := &mockAcquirer{err: fmt.Errorf("await download: %w", acquire.ErrDownloadTimeout)}
	p := newTestPipeline(cfg, acq, &mockExtractor{}, &mockSynthesizer{}, &mockRenderer{}, nil)

	result := p.ProcessTitle(context.Background(), "Slow Case vs Registry")
	if result.Status != model.StatusAcquisitionTimeout {
		t.Errorf("Expected %s, got %s", model.StatusAcquisitionTimeout, result.Status)
	}
}

func TestProcessTitle_InsufficientText(t *testing.T) {
	cfg := testConfig(t)
	ext := &mockExtractor{text: "scanned image, no text layer"}
	syn := &mockSynthesizer{}
	p := newTestPipeline(cfg, &mockAcquirer{}, ext, syn, &mockRenderer{}, nil)

	result := p.ProcessTitle(context.Background(), "Scanned Case vs State")
	if result.Status != model.StatusInsufficientText {
		t.Errorf("Expected %s, got %s", model.StatusInsufficientText, result.Status)
	}
	if syn.calls != 0 {
		t.Errorf("Synthesizer must not run on insufficient text, got %d calls", syn.calls)
	}
}

func TestProcessTitle_ExtractionFailure(t *testing.T) {
	cfg := testConfig(t)
	ext := &mockExtractor{err: errors.New("malformed xref table")}
	p := newTestPipeline(cfg, &mockAcquirer{}, ext, &mockSynthesizer{}, &mockRenderer{}, nil)

	result := p.ProcessTitle(context.Background(), "Broken Case vs State")
	if result.Status != model.StatusInsufficientText {
		t.Errorf("Expected %s, got %s", model.StatusInsufficientText, result.Status)
	}
}

func TestProcessTitle_LLMExhausted(t *testing.T) {
	cfg := testConfig(t)
	syn := &mockSynthesizer{err: fmt.Errorf("%w: boom", llm.ErrCompletionExhausted)}
	ren := &mockRenderer{}
	p := newTestPipeline(cfg, &mockAcquirer{}, &mockExtractor{text: longText()}, syn, ren, nil)

	result := p.ProcessTitle(context.Background(), "Unlucky Case vs Service")
	if result.Status != model.StatusLLMFailed {
		t.Fatalf("Expected %s, got %s", model.StatusLLMFailed, result.Status)
	}
	// The error-content brief is still rendered for the operator
	if ren.calls != 1 {
		t.Errorf("Expected error brief to be rendered once, got %d calls", ren.calls)
	}
}

func TestProcessTitle_RenderFailed(t *testing.T) {
	cfg := testConfig(t)
	ren := &mockRenderer{err: errors.New("chrome not found")}
	p := newTestPipeline(cfg, &mockAcquirer{}, &mockExtractor{text: longText()}, &mockSynthesizer{brief: "**Case Name:** X"}, ren, nil)

	result := p.ProcessTitle(context.Background(), "Render Case vs Printer")
	if result.Status != model.StatusRenderFailed {
		t.Errorf("Expected %s, got %s", model.StatusRenderFailed, result.Status)
	}
}

func TestProcessTitle_SkipExistingBrief(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.SkipExistingBrief = true
	if err := os.MkdirAll(cfg.Storage.BriefDir, 0755); err != nil {
		t.Fatal(err)
	}
	briefPath := filepath.Join(cfg.Storage.BriefDir, "Done Case vs State.pdf")
	if err := os.WriteFile(briefPath, []byte("%PDF-1.4 old brief"), 0644); err != nil {
		t.Fatal(err)
	}

	acq := &mockAcquirer{}
	p := newTestPipeline(cfg, acq, &mockExtractor{}, &mockSynthesizer{}, &mockRenderer{}, nil)

	result := p.ProcessTitle(context.Background(), "Done Case vs State")
	if result.Status != model.StatusSkippedExisting {
		t.Errorf("Expected %s, got %s", model.StatusSkippedExisting, result.Status)
	}
	if acq.calls != 0 {
		t.Errorf("Expected no acquisition for a skipped case, got %d calls", acq.calls)
	}
}

func TestProcessBatch_FailureIsolation(t *testing.T) {
	cfg := testConfig(t)
	acq := &mockAcquirer{errFor: map[string]error{
		"Missing Case vs Nobody": acquire.ErrNoResults,
	}}
	ext := &mockExtractor{text: longText()}
	syn := &mockSynthesizer{brief: "**Case Name:** X"}
	ren := &mockRenderer{}

	p := newTestPipeline(cfg, acq, ext, syn, ren, nil)
	titles := []string{
		"Good Case vs State",
		"Missing Case v. Nobody",
		"Another Good Case vs State",
	}
	results := p.ProcessBatch(context.Background(), titles)

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	if got := results["Missing Case v. Nobody"].Status; got != model.StatusNoResults {
		t.Errorf("Expected %s for missing case, got %s", model.StatusNoResults, got)
	}
	if got := results["Good Case vs State"].Status; got != model.StatusBriefed {
		t.Errorf("Expected %s for good case, got %s", model.StatusBriefed, got)
	}
	if results.Succeeded() != 2 {
		t.Errorf("Expected 2 successes, got %d", results.Succeeded())
	}
}

func TestProcessBatch_DistinctOutcomes(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.Storage.DownloadDir, 0755); err != nil {
		t.Fatal(err)
	}
	// First case's judgment is already on disk
	docPath := filepath.Join(cfg.Storage.DownloadDir, "Cached Case vs State.pdf")
	if err := os.WriteFile(docPath, []byte("%PDF-1.4 cached"), 0644); err != nil {
		t.Fatal(err)
	}

	acq := &mockAcquirer{errFor: map[string]error{
		"Missing Case vs Nobody": acquire.ErrNoResults,
	}}
	ren := &mockRenderer{errFor: map[string]error{
		"Broken Printer Case vs State": errors.New("chrome crashed"),
	}}
	p := newTestPipeline(cfg, acq, &mockExtractor{text: longText()}, &mockSynthesizer{brief: "**Case Name:** X"}, ren, nil)

	results := p.ProcessBatch(context.Background(), []string{
		"Cached Case vs State",
		"Missing Case vs Nobody",
		"Broken Printer Case vs State",
	})

	want := map[string]model.CaseStatus{
		"Cached Case vs State":         model.StatusBriefed,
		"Missing Case vs Nobody":       model.StatusNoResults,
		"Broken Printer Case vs State": model.StatusRenderFailed,
	}
	for raw, status := range want {
		if results[raw].Status != status {
			t.Errorf("Case %q: expected %s, got %s (%s)", raw, status, results[raw].Status, results[raw].Message)
		}
	}
	// The cached case never touches the browser; the other two do
	if acq.calls != 2 {
		t.Errorf("Expected two acquisition calls, got %d", acq.calls)
	}
}

func TestProcessBatch_CancelledContext(t *testing.T) {
	cfg := testConfig(t)
	p := newTestPipeline(cfg, &mockAcquirer{}, &mockExtractor{text: longText()}, &mockSynthesizer{brief: "b"}, &mockRenderer{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := p.ProcessBatch(ctx, []string{"Case One vs State", "Case Two vs State"})
	for raw, r := range results {
		if r.Status == model.StatusBriefed {
			t.Errorf("Case %q should not complete under a cancelled context", raw)
		}
	}
}
