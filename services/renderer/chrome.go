package renderer

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"

	"tamimideals/monitor/config"
	"tamimideals/monitor/logger"
	"tamimideals/monitor/pkg/errors"
)

const chromeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ChromeRenderer loads the page in headless Chrome and scrolls until the
// product count stops growing, so lazily-loaded items make it into the
// snapshot.
type ChromeRenderer struct {
	url         string
	timeout     time.Duration
	maxScrolls  int
	scrollDelay time.Duration
	log         *logger.Logger
}

// NewChromeRenderer creates a new Chrome renderer
func NewChromeRenderer(cfg *config.Config) *ChromeRenderer {
	return &ChromeRenderer{
		url:         cfg.HotDealsURL,
		timeout:     cfg.RenderTimeout,
		maxScrolls:  cfg.MaxScrolls,
		scrollDelay: cfg.ScrollDelay,
		log:         logger.ForRenderer(),
	}
}

// Name returns the renderer name
func (r *ChromeRenderer) Name() string {
	return "ChromeRenderer"
}

// Render navigates to the hot-deals page, scrolls to load every product and
// returns the final HTML.
func (r *ChromeRenderer) Render(ctx context.Context) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(chromeUserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, r.timeout)
	defer cancelTimeout()

	r.log.Info().Str("url", r.url).Msg("Rendering hot deals page")

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(r.url),
		chromedp.Sleep(2*time.Second),
		r.scrollToLoadAll(),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", errors.NewRender(r.Name(), "failed to render page", err)
	}

	return html, nil
}

// scrollToLoadAll scrolls to the bottom until the product count stabilizes
// or the attempt cap is reached.
func (r *ChromeRenderer) scrollToLoadAll() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		previous := -1
		for attempt := 0; attempt < r.maxScrolls; attempt++ {
			if err := chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil).Do(ctx); err != nil {
				return err
			}
			if err := chromedp.Sleep(r.scrollDelay).Do(ctx); err != nil {
				return err
			}

			var count int
			if err := chromedp.Evaluate(`document.querySelectorAll('[data-testid="product"]').length`, &count).Do(ctx); err != nil {
				return err
			}

			r.log.Debug().
				Int("attempt", attempt+1).
				Int("products", count).
				Msg("Scrolled to load products")

			if count == previous {
				break
			}
			previous = count
		}
		return nil
	})
}
