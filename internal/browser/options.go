// Package browser provides shared chromedp configuration with
// anti-bot-detection measures.
package browser

import "github.com/chromedp/chromedp"

// DefaultUserAgent is a realistic Chrome user agent.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// stealthFlags hide the automation signals X.com probes for.
// navigator.webdriver is the first thing it checks; the blink flag is
// what keeps that false.
var stealthFlags = []chromedp.ExecAllocatorOption{
	chromedp.Flag("disable-blink-features", "AutomationControlled"),
	chromedp.UserAgent(DefaultUserAgent),
	chromedp.WindowSize(1920, 1080),
}

// hygieneFlags strip first-run prompts and extension noise so a fresh
// profile behaves like a settled one.
var hygieneFlags = []chromedp.ExecAllocatorOption{
	chromedp.Flag("disable-extensions", true),
	chromedp.Flag("disable-default-apps", true),
	chromedp.Flag("disable-infobars", true),
	chromedp.Flag("no-first-run", true),
	chromedp.Flag("no-default-browser-check", true),
}

// Options returns the allocator options every browser instance uses, so
// stealth configuration stays consistent between login, the automations
// and the fingerprint audit.
func Options(headless bool) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless))
	opts = append(opts, stealthFlags...)
	opts = append(opts, hygieneFlags...)
	if headless {
		opts = append(opts, chromedp.Flag("disable-gpu", true))
	}
	return opts
}
