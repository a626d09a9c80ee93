package surface

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

// DefaultInteractionTimeout bounds how long a single click or keystroke
// waits for its target control to exist. A control missing past this is a
// transient action failure, not a hang.
const DefaultInteractionTimeout = 8 * time.Second

// Chrome drives a chromedp browser context. All methods expect ctx to be
// (or derive from) a chromedp.Context.
type Chrome struct {
	interactionTimeout time.Duration
}

// NewChrome creates a Chrome surface with the default interaction timeout.
func NewChrome() *Chrome {
	return &Chrome{interactionTimeout: DefaultInteractionTimeout}
}

// WithInteractionTimeout overrides the per-interaction wait budget.
func (c *Chrome) WithInteractionTimeout(d time.Duration) *Chrome {
	c.interactionTimeout = d
	return c
}

// bounded runs actions under the interaction timeout so a vanished
// control surfaces as an error instead of blocking the run.
func (c *Chrome) bounded(ctx context.Context, actions ...chromedp.Action) error {
	tctx, cancel := context.WithTimeout(ctx, c.interactionTimeout)
	defer cancel()
	return chromedp.Run(tctx, actions...)
}

func (c *Chrome) Navigate(ctx context.Context, url string) error {
	if err := chromedp.Run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

func (c *Chrome) CandidateCount(ctx context.Context, selector string) (int, error) {
	var count int
	js := fmt.Sprintf(`document.querySelectorAll(%q).length`, selector)
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &count)); err != nil {
		return 0, fmt.Errorf("count %s: %w", selector, err)
	}
	return count, nil
}

func (c *Chrome) Extract(ctx context.Context, js string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &raw)); err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return raw, nil
}

func (c *Chrome) ScrollBottom(ctx context.Context) error {
	return chromedp.Run(ctx,
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
	)
}

func (c *Chrome) ScrollTop(ctx context.Context) error {
	return chromedp.Run(ctx,
		chromedp.Evaluate(`window.scrollTo(0, 0)`, nil),
	)
}

func (c *Chrome) Click(ctx context.Context, selector string) error {
	if err := c.bounded(ctx, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

func (c *Chrome) Type(ctx context.Context, selector, text string) error {
	err := c.bounded(ctx,
		chromedp.Click(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, text, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("type into %s: %w", selector, err)
	}
	return nil
}

func (c *Chrome) Visible(ctx context.Context, selector string) (bool, error) {
	var visible bool
	js := fmt.Sprintf(`(function() {
		const el = document.querySelector(%q);
		return !!el && el.offsetParent !== null;
	})()`, selector)
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &visible)); err != nil {
		return false, fmt.Errorf("visible %s: %w", selector, err)
	}
	return visible, nil
}

func (c *Chrome) Text(ctx context.Context, selector string) (string, error) {
	var text string
	js := fmt.Sprintf(`document.querySelector(%q)?.textContent || ''`, selector)
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &text)); err != nil {
		return "", fmt.Errorf("text %s: %w", selector, err)
	}
	return text, nil
}

func (c *Chrome) PressEscape(ctx context.Context) error {
	return c.bounded(ctx, chromedp.KeyEvent(kb.Escape))
}
