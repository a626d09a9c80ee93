// Package surface is the port through which the engine observes and
// manipulates the rendered page. The page is external, asynchronous and
// shared; nothing here caches node references across a suspension point,
// every interaction re-queries its selector at use time.
package surface

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Surface abstracts the live document. The chromedp implementation is
// Chrome; tests use Fake.
type Surface interface {
	// Navigate loads a URL and returns once the document exists.
	Navigate(ctx context.Context, url string) error
	// CandidateCount reports how many nodes currently match selector.
	CandidateCount(ctx context.Context, selector string) (int, error)
	// Extract evaluates js in the page and returns its JSON result.
	Extract(ctx context.Context, js string) (json.RawMessage, error)
	// ScrollBottom scrolls the document to its bottom edge.
	ScrollBottom(ctx context.Context) error
	// ScrollTop scrolls the document to its top edge.
	ScrollTop(ctx context.Context) error
	// Click dispatches a synthetic click on the first match of selector.
	// Returns an error when no such control appears within the
	// interaction timeout.
	Click(ctx context.Context, selector string) error
	// Type inserts text into the first match of selector.
	Type(ctx context.Context, selector, text string) error
	// Visible reports whether selector currently matches a rendered node.
	Visible(ctx context.Context, selector string) (bool, error)
	// Text returns the text content of the first match, "" when absent.
	Text(ctx context.Context, selector string) (string, error)
	// PressEscape sends an Escape keystroke, dismissing any open overlay.
	PressEscape(ctx context.Context) error
}

// ErrWaitTimeout is returned by WaitFor when the predicate never became
// true within its budget.
var ErrWaitTimeout = errors.New("surface: wait condition not met before timeout")

// Predicate is a condition polled against the surface.
type Predicate func(ctx context.Context) (bool, error)

// WaitFor polls pred at interval until it reports true, the timeout
// elapses, or ctx is cancelled. The page re-renders with no completion
// event, so this bounded poll is the only wait primitive the engine uses.
// Predicate errors are treated as "not yet": controls routinely vanish
// between query and use.
func WaitFor(ctx context.Context, pred Predicate, interval, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for {
		if ok, err := pred(ctx); err == nil && ok {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrWaitTimeout
		}
		timer := time.NewTimer(interval)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// VisibleWithin returns a predicate that is true once selector is visible.
func VisibleWithin(s Surface, selector string) Predicate {
	return func(ctx context.Context) (bool, error) {
		return s.Visible(ctx, selector)
	}
}

// GoneWithin returns a predicate that is true once selector is no longer
// visible.
func GoneWithin(s Surface, selector string) Predicate {
	return func(ctx context.Context) (bool, error) {
		visible, err := s.Visible(ctx, selector)
		return !visible, err
	}
}
