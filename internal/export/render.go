package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// renderTimeout bounds one headless-Chrome render.
const renderTimeout = 30 * time.Second

// A4 viewport at 96 dpi.
const (
	viewportWidth  = 794
	viewportHeight = 1123
)

// Renderer turns a standalone HTML page into export bytes.
type Renderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
	RenderImage(ctx context.Context, html string, format Format) ([]byte, error)
}

// ChromeRenderer implements Renderer with headless Chrome over chromedp.
type ChromeRenderer struct{}

// NewChromeRenderer creates a headless-Chrome renderer.
func NewChromeRenderer() *ChromeRenderer {
	return &ChromeRenderer{}
}

// RenderPDF prints the page to an A4 portrait PDF.
func (r *ChromeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	var pdfData []byte
	err := r.run(ctx, html, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdfData, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(8.27). // A4
			WithPaperHeight(11.69).
			WithMarginTop(0).
			WithMarginBottom(0).
			WithMarginLeft(0).
			WithMarginRight(0).
			WithPreferCSSPageSize(true).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("chrome pdf generation failed: %w", err)
	}
	return pdfData, nil
}

// RenderImage captures the page as a PNG or JPEG bitmap at double device
// scale for crisp output.
func (r *ChromeRenderer) RenderImage(ctx context.Context, html string, format Format) ([]byte, error) {
	// chromedp captures PNG at quality 100, JPEG otherwise.
	quality := 100
	if format == FormatJPG {
		quality = 90
	}

	var imageData []byte
	err := r.run(ctx, html, chromedp.FullScreenshot(&imageData, quality))
	if err != nil {
		return nil, fmt.Errorf("chrome screenshot failed: %w", err)
	}
	return imageData, nil
}

// run navigates headless Chrome to the page via a data URL and executes the
// capture action.
func (r *ChromeRenderer) run(ctx context.Context, html string, capture chromedp.Action) error {
	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	dataURL := "data:text/html;charset=utf-8," + percentEncodeForDataURL(html)

	return chromedp.Run(taskCtx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight, chromedp.EmulateScale(2)),
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body"),
		capture,
	)
}

// percentEncodeForDataURL encodes a string for use in a data URL. Unlike
// url.QueryEscape, spaces must become %20, not +.
func percentEncodeForDataURL(s string) string {
	var result strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '-', r == '_', r == '.', r == '~':
			result.WriteRune(r)
		case r == ' ':
			result.WriteString("%20")
		default:
			for _, b := range []byte(string(r)) {
				result.WriteString(fmt.Sprintf("%%%02X", b))
			}
		}
	}
	return result.String()
}
