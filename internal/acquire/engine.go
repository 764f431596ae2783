// Package acquire obtains judgment PDFs from the archive's web interface by
// driving a headless browser through a fixed search-and-download protocol.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"

	"github.com/ppiankov/casebrief/internal/model"
	"github.com/ppiankov/casebrief/internal/util"
)

// Page controls of the judgment archive's search interface
const (
	advancedSearchLink = `//a[normalize-space(text())="Advanced Search"]`
	doctypeCheckboxes  = `input.catselectall[name="doctypes"]`
	titleInput         = `input[name="title"]`
	submitButton       = `#advsearchbutton`
	firstResultLink    = `div.result_title a`
	pdfExportButton    = `#pdfdoc`
)

// restrictDoctypesJS deselects every checked document-type filter except the
// Supreme Court value. Clicking only boxes that are both checked and not "sc"
// keeps the step idempotent on pages where the filter is already correct.
const restrictDoctypesJS = `(() => {
	const boxes = document.querySelectorAll('input.catselectall[name="doctypes"]');
	let toggled = 0;
	for (const box of boxes) {
		if (box.value !== "sc" && box.checked) {
			box.click();
			toggled++;
		}
	}
	return toggled;
})()`

// Engine runs the acquisition protocol for one case title at a time. The
// browser session and the download directory are stateful, non-reentrant
// resources, so an Engine must never be used concurrently.
type Engine struct {
	driver      Driver
	cfg         model.BrowserConfig
	downloadDir string
	poller      Poller
	limiter     *util.Limiter
	robots      *util.RobotsChecker
	log         *logrus.Entry
}

// NewEngine creates an acquisition engine on top of an existing browser
// session. The session is shared across a batch; Acquire re-enters the search
// entry point every time rather than assuming a fresh session.
func NewEngine(driver Driver, cfg model.BrowserConfig, rate model.RateLimitingConfig, downloadDir string, log *logrus.Entry) *Engine {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	e := &Engine{
		driver:      driver,
		cfg:         cfg,
		downloadDir: downloadDir,
		poller: Poller{
			Interval: cfg.DownloadPollInterval,
			Timeout:  cfg.DownloadTimeout,
		},
		limiter: util.NewLimiter(rate.RequestsPerSecond, rate.BurstSize),
		log:     log,
	}

	if cfg.RespectRobots {
		e.robots = util.NewRobotsChecker("casebrief", cfg.StepTimeout)
	}

	return e
}

// Acquire searches the archive for caseTitle, downloads the first matching
// judgment PDF, and renames it to destPath. Any step failure aborts this
// case only; the session remains usable for the next title.
func (e *Engine) Acquire(ctx context.Context, caseTitle, destPath string) error {
	log := e.log.WithField("title", caseTitle)
	log.Info("acquiring judgment")

	// Politeness toward the archive: honor its crawl delay and keep our own
	// request rate bounded across cases.
	var crawlDelay time.Duration
	if e.robots != nil {
		allowed, delay, err := e.robots.CanFetch(ctx, e.cfg.SearchURL)
		if err == nil && !allowed {
			log.Warn("robots.txt disallows the search path; proceeding as an interactive tool")
		}
		crawlDelay = delay
	}
	if err := e.limiter.WaitWithDelay(ctx, e.cfg.SearchURL, crawlDelay); err != nil {
		return err
	}

	// 1. Navigate. Always re-enter the search entry point: the previous case
	// may have left the shared session anywhere.
	if err := e.step(ctx, ErrNavigationTimeout,
		chromedp.Navigate(e.cfg.SearchURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("navigate to search: %w", err)
	}

	// 2. Open the advanced-search panel
	if err := e.step(ctx, ErrElementNotFound,
		chromedp.Click(advancedSearchLink, chromedp.BySearch),
	); err != nil {
		return fmt.Errorf("open advanced search: %w", err)
	}

	// 3. Restrict the document-type filter to Supreme Court judgments
	var toggled int
	if err := e.step(ctx, ErrElementNotFound,
		chromedp.WaitVisible(doctypeCheckboxes, chromedp.ByQuery),
		chromedp.Evaluate(restrictDoctypesJS, &toggled),
	); err != nil {
		return fmt.Errorf("restrict document types: %w", err)
	}
	log.WithField("deselected", toggled).Debug("document-type filter restricted")

	// 4. Enter the canonical title
	if err := e.step(ctx, ErrElementNotFound,
		chromedp.WaitVisible(titleInput, chromedp.ByQuery),
		chromedp.Clear(titleInput, chromedp.ByQuery),
		chromedp.SendKeys(titleInput, caseTitle, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("enter title: %w", err)
	}

	// 5. Submit the search
	if err := e.step(ctx, ErrElementNotFound,
		chromedp.Click(submitButton, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("submit search: %w", err)
	}

	// 6. Open the first result. A timeout here means the archive has no
	// judgment indexed under this title - an expected outcome, not a crash.
	if err := e.step(ctx, ErrNoResults,
		chromedp.Click(firstResultLink, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("select first result: %w", err)
	}

	// 7. Snapshot the download directory, then trigger the PDF export. The
	// snapshot must precede the click or the diff can miss the artifact.
	before, err := Snapshot(e.downloadDir)
	if err != nil {
		return fmt.Errorf("snapshot download dir: %w", err)
	}
	if err := e.step(ctx, ErrElementNotFound,
		chromedp.Click(pdfExportButton, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("trigger download: %w", err)
	}

	// 8. Wait for the artifact and move it to its canonical path
	name, err := e.poller.AwaitDownload(ctx, e.downloadDir, before)
	if err != nil {
		return fmt.Errorf("await download: %w", err)
	}
	if err := os.Rename(filepath.Join(e.downloadDir, name), destPath); err != nil {
		return fmt.Errorf("rename artifact: %w", err)
	}

	log.WithField("path", destPath).Info("judgment downloaded")
	return nil
}

// step runs one protocol step with a bounded wait. A deadline hit maps to
// the step's failure class; other errors pass through.
func (e *Engine) step(ctx context.Context, timeoutErr error, actions ...chromedp.Action) error {
	stepCtx, cancel := context.WithTimeout(ctx, e.cfg.StepTimeout)
	defer cancel()

	if err := e.driver.Run(stepCtx, actions...); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return timeoutErr
		}
		return err
	}
	return nil
}
