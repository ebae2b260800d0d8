package pdf

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/acadeval/report-server/internal/report"
)

// pageMarginInches is applied top and bottom so charts do not collide
// with the page edge.
const pageMarginInches = 0.5

// Rasterizer prints composed HTML to PDF through headless Chrome. It
// implements report.Rasterizer.
type Rasterizer struct {
	execPath string
	logger   *zap.Logger
}

// NewRasterizer creates a chrome-backed rasterizer. execPath may be empty
// to use the browser found on PATH.
func NewRasterizer(execPath string, logger *zap.Logger) *Rasterizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rasterizer{
		execPath: execPath,
		logger:   logger.Named("pdf-rasterizer"),
	}
}

// Render prints the document to an A4 PDF byte stream. Failures to start
// or drive the browser surface as report.ErrEngineUnavailable so the
// caller can tell an environment problem from a bad document.
func (r *Rasterizer) Render(ctx context.Context, html string) ([]byte, error) {
	opts := chromedp.DefaultExecAllocatorOptions[:]
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4
				WithPaperHeight(11.69).
				WithMarginTop(pageMarginInches).
				WithMarginBottom(pageMarginInches).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrEngineUnavailable, err)
	}

	r.logger.Info("document rasterized", zap.Int("pdf_bytes", len(pdf)))
	return pdf, nil
}
