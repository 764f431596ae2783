package acquire

import (
	"context"
	"fmt"
	"os"

	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/chromedp"
)

// Driver abstracts the browser session the Engine drives, so tests can
// substitute a recorder and assert on the protocol without a real Chrome.
type Driver interface {
	// Run executes browser actions in the shared session, honoring ctx's deadline
	Run(ctx context.Context, actions ...chromedp.Action) error

	// Close tears down the session
	Close() error
}

// ChromeDriver is the production Driver: one headless Chrome session shared
// across an entire batch. Navigation state carries over between cases, which
// is why the Engine re-enters the search entry point at the start of every
// case regardless of where the previous case left off.
type ChromeDriver struct {
	allocCancel context.CancelFunc
	browserCtx  context.Context
	cancel      context.CancelFunc
}

// NewChromeDriver starts a headless Chrome session configured to download
// files into downloadDir without prompting.
func NewChromeDriver(downloadDir, chromePath string, headless bool) (*ChromeDriver, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
	)

	if chromePath == "" {
		chromePath = os.Getenv("CHROME_BIN")
	}
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	// Route completed downloads into the cache directory; the engine detects
	// them by directory diff since Chrome emits no usable completion signal here.
	if err := chromedp.Run(browserCtx,
		browser.SetDownloadBehavior(browser.SetDownloadBehaviorBehaviorAllow).
			WithDownloadPath(downloadDir),
	); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("start browser session: %w", err)
	}

	return &ChromeDriver{
		allocCancel: allocCancel,
		browserCtx:  browserCtx,
		cancel:      cancel,
	}, nil
}

// Run executes actions in the session. The caller's deadline bounds the run;
// the session itself stays alive for subsequent calls.
func (d *ChromeDriver) Run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx := d.browserCtx
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(d.browserCtx, deadline)
		defer cancel()
	}
	return chromedp.Run(runCtx, actions...)
}

// Close tears down the Chrome session
func (d *ChromeDriver) Close() error {
	d.cancel()
	d.allocCancel()
	return nil
}
