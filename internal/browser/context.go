package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// NewContext creates an authenticated browser tab: a fresh allocator
// with the stealth options, the stored session cookies injected, and a
// cancel func tearing the whole browser down.
func NewContext(ctx context.Context, headless bool, cookies []*network.Cookie) (context.Context, context.CancelFunc, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, Options(headless)...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	cancel := func() {
		cancelBrowser()
		cancelAlloc()
	}

	if len(cookies) > 0 {
		err := chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
			params := make([]*network.CookieParam, 0, len(cookies))
			for _, c := range cookies {
				params = append(params, &network.CookieParam{
					Name:     c.Name,
					Value:    c.Value,
					Domain:   c.Domain,
					Path:     c.Path,
					Secure:   c.Secure,
					HTTPOnly: c.HTTPOnly,
				})
			}
			return network.SetCookies(params).Do(ctx)
		}))
		if err != nil {
			cancel()
			return nil, nil, fmt.Errorf("injecting session cookies: %w", err)
		}
	}

	return browserCtx, cancel, nil
}
