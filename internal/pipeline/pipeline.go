package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/casebrief/internal/acquire"
	"github.com/ppiankov/casebrief/internal/cache"
	"github.com/ppiankov/casebrief/internal/llm"
	"github.com/ppiankov/casebrief/internal/model"
	"github.com/ppiankov/casebrief/internal/title"
)

// Acquirer obtains the judgment PDF for a case title at destPath
type Acquirer interface {
	Acquire(ctx context.Context, caseTitle, destPath string) error
}

// Extractor pulls plain text out of a judgment PDF
type Extractor interface {
	ExtractText(path string) (string, error)
}

// Synthesizer turns judgment text into a formatted brief
type Synthesizer interface {
	Synthesize(ctx context.Context, caseTitle, judgmentText string) (string, error)
}

// Renderer writes a brief as a styled PDF
type Renderer interface {
	Render(ctx context.Context, title, brief, outputPath string) error
}

// Pipeline orchestrates the complete per-case flow: normalize, acquire,
// extract, synthesize, render. All stage dependencies are injected.
type Pipeline struct {
	acquirer    Acquirer
	extractor   Extractor
	synthesizer Synthesizer
	renderer    Renderer
	textCache   cache.Cache
	config      *model.Config
	log         *logrus.Entry
}

// Options carries the injected stage implementations
type Options struct {
	Acquirer    Acquirer
	Extractor   Extractor
	Synthesizer Synthesizer
	Renderer    Renderer

	// TextCache is optional; nil disables extracted-text caching
	TextCache cache.Cache
}

// NewPipeline creates an orchestrator over the given stages
func NewPipeline(cfg *model.Config, opts Options, log *logrus.Entry) *Pipeline {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Pipeline{
		acquirer:    opts.Acquirer,
		extractor:   opts.Extractor,
		synthesizer: opts.Synthesizer,
		renderer:    opts.Renderer,
		textCache:   opts.TextCache,
		config:      cfg,
		log:         log,
	}
}

// ProcessTitle runs one case title through the full flow and returns its
// terminal outcome. Every failure mode maps to a status; ProcessTitle
// never panics a batch.
func (p *Pipeline) ProcessTitle(ctx context.Context, rawTitle string) model.CaseResult {
	canonical := title.Normalize(rawTitle)
	slug := title.Slug(canonical)

	result := model.CaseResult{
		Input: rawTitle,
		Title: canonical,
		Slug:  slug,
	}

	if err := p.ensureDirs(); err != nil {
		result.Status = model.StatusRenderFailed
		result.Message = fmt.Sprintf("create output directories: %v", err)
		return result
	}

	briefPath := filepath.Join(p.config.Storage.BriefDir, slug+".pdf")
	if p.config.Storage.SkipExistingBrief {
		if _, err := os.Stat(briefPath); err == nil {
			result.Status = model.StatusSkippedExisting
			result.Message = fmt.Sprintf("brief already exists: %s", briefPath)
			return result
		}
	}

	docPath := filepath.Join(p.config.Storage.DownloadDir, slug+".pdf")

	text, status, msg := p.obtainText(ctx, canonical, slug, docPath)
	if status != "" {
		result.Status = status
		result.Message = msg
		return result
	}

	if len(text) < p.config.LLM.MinTextBytes {
		result.Status = model.StatusInsufficientText
		result.Message = fmt.Sprintf("extracted %d bytes, need at least %d", len(text), p.config.LLM.MinTextBytes)
		return result
	}

	brief, err := p.synthesizer.Synthesize(ctx, canonical, text)
	if err != nil {
		if errors.Is(err, llm.ErrCompletionExhausted) && brief != "" {
			// The error-content brief is still rendered so the operator
			// has a per-case artifact explaining what went wrong
			if renderErr := p.renderer.Render(ctx, canonical, brief, briefPath); renderErr != nil {
				p.log.WithError(renderErr).Warn("failed to render error brief")
			}
		}
		result.Status = model.StatusLLMFailed
		result.Message = err.Error()
		return result
	}

	if err := p.renderer.Render(ctx, canonical, brief, briefPath); err != nil {
		result.Status = model.StatusRenderFailed
		result.Message = err.Error()
		return result
	}

	result.Status = model.StatusBriefed
	result.Message = fmt.Sprintf("brief rendered: %s", briefPath)
	return result
}

// obtainText returns the judgment text for the case, acquiring the PDF
// first unless a cached document or cached extraction already covers it.
// A non-empty status short-circuits the case.
func (p *Pipeline) obtainText(ctx context.Context, canonical, slug, docPath string) (string, model.CaseStatus, string) {
	if _, err := os.Stat(docPath); err != nil {
		if err := p.acquirer.Acquire(ctx, canonical, docPath); err != nil {
			switch {
			case errors.Is(err, acquire.ErrNoResults):
				return "", model.StatusNoResults, fmt.Sprintf("no search results for %q", canonical)
			default:
				return "", model.StatusAcquisitionTimeout, err.Error()
			}
		}
	} else {
		p.log.WithField("path", docPath).Debug("Reusing previously downloaded judgment")
		if p.textCache != nil {
			if cached, found := p.textCache.Get(cache.TextKey(slug)); found {
				return string(cached), "", ""
			}
		}
	}

	text, err := p.extractor.ExtractText(docPath)
	if err != nil {
		return "", model.StatusInsufficientText, fmt.Sprintf("text extraction failed: %v", err)
	}

	if p.textCache != nil && text != "" {
		ttl := p.config.Cache.TTL
		if ttl == 0 {
			ttl = 24 * time.Hour
		}
		if err := p.textCache.Set(cache.TextKey(slug), []byte(text), ttl); err != nil {
			p.log.WithError(err).Debug("text cache write failed")
		}
	}

	return text, "", ""
}

// ProcessBatch runs each title sequentially and collects per-case outcomes.
// One case's failure never stops the rest of the batch.
func (p *Pipeline) ProcessBatch(ctx context.Context, titles []string) model.BatchResult {
	results := make(model.BatchResult, len(titles))

	for i, raw := range titles {
		select {
		case <-ctx.Done():
			results[raw] = model.CaseResult{
				Input:   raw,
				Status:  model.StatusAcquisitionTimeout,
				Message: ctx.Err().Error(),
			}
			continue
		default:
		}

		p.log.WithFields(logrus.Fields{
			"case":  raw,
			"index": i + 1,
			"total": len(titles),
		}).Info("Processing case")

		results[raw] = p.ProcessTitle(ctx, raw)
	}

	return results
}

func (p *Pipeline) ensureDirs() error {
	if err := os.MkdirAll(p.config.Storage.DownloadDir, 0755); err != nil {
		return err
	}
	return os.MkdirAll(p.config.Storage.BriefDir, 0755)
}
