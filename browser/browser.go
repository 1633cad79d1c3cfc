// Package browser provides a headless-browser fetch for pages that only
// build their content through scripts.
package browser

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// Renderer fetches fully rendered markup through a shared headless Chrome
// allocator. Tabs are created per render and torn down immediately.
type Renderer struct {
	timeout time.Duration

	once     sync.Once
	allocCtx context.Context
}

// NewRenderer creates a Renderer with a per-render timeout.
func NewRenderer(timeout time.Duration) *Renderer {
	return &Renderer{timeout: timeout}
}

func (r *Renderer) init() {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.WindowSize(1920, 1080),
	)
	r.allocCtx, _ = chromedp.NewExecAllocator(context.Background(), opts...)
}

// Render navigates to url and returns the document's outer HTML once the
// page has loaded.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.once.Do(r.init)

	tabCtx, cancel := chromedp.NewContext(r.allocCtx)
	defer cancel()

	runCtx, cancelRun := context.WithTimeout(tabCtx, r.timeout)
	defer cancelRun()

	var html string
	if err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.OuterHTML("html", &html),
	); err != nil {
		return "", err
	}
	return html, nil
}
