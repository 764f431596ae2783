package render

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// a4WidthInches and a4HeightInches are the print paper dimensions
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// ChromePrinter renders HTML to PDF with a headless Chrome instance
// started per call
type ChromePrinter struct {
	chromePath string
	timeout    time.Duration
}

// NewChromePrinter creates a printer. chromePath overrides the browser
// binary; empty falls back to CHROME_BIN or chromedp's lookup.
func NewChromePrinter(chromePath string, timeout time.Duration) *ChromePrinter {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &ChromePrinter{
		chromePath: chromePath,
		timeout:    timeout,
	}
}

// PrintHTML renders the HTML document and returns the PDF bytes
func (p *ChromePrinter) PrintHTML(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	execPath := p.chromePath
	if execPath == "" {
		execPath = os.Getenv("CHROME_BIN")
	}
	if execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdfData []byte
	err := chromedp.Run(taskCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfData, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(false).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithScale(1.0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome print: %w", err)
	}
	return pdfData, nil
}
