package surface

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Fake is a scripted Surface for tests. Each scroll advances a "round";
// candidate counts and extraction payloads are configured per round, with
// the last entry repeating once the script runs out. Interactions are
// recorded so tests can assert exactly what was touched.
type Fake struct {
	mu sync.Mutex

	// Counts is the candidate-node count visible in each round.
	Counts []int
	// Payloads is the JSON Extract returns in each round.
	Payloads []string

	round   int
	visible map[string]bool
	texts   map[string]string
	failing map[string]bool

	// Recorded interactions.
	Clicks      []string
	Typed       map[string]string
	Navigations []string
	Escapes     int
	Scrolls     int
	// TopScrolls counts the subset of Scrolls that went upward.
	TopScrolls int

	// OnClick, when set, runs after every successful click so tests can
	// script secondary surfaces appearing (composer opening, etc.).
	OnClick func(selector string)
}

// NewFake creates an empty scripted surface.
func NewFake() *Fake {
	return &Fake{
		visible: make(map[string]bool),
		texts:   make(map[string]string),
		failing: make(map[string]bool),
		Typed:   make(map[string]string),
	}
}

// SetVisible scripts whether selector is currently visible.
func (f *Fake) SetVisible(selector string, v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visible[selector] = v
}

// SetText scripts the text content behind selector.
func (f *Fake) SetText(selector, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts[selector] = text
}

// FailSelector makes Click and Type on selector return an error.
func (f *Fake) FailSelector(selector string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[selector] = true
}

// Round reports the current scroll round.
func (f *Fake) Round() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.round
}

func (f *Fake) current(n int) int {
	if n == 0 {
		return 0
	}
	if f.round < n {
		return f.round
	}
	return n - 1
}

func (f *Fake) Navigate(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Navigations = append(f.Navigations, url)
	return nil
}

func (f *Fake) CandidateCount(ctx context.Context, selector string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Counts) == 0 {
		return 0, nil
	}
	return f.Counts[f.current(len(f.Counts))], nil
}

func (f *Fake) Extract(ctx context.Context, js string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Payloads) == 0 {
		return json.RawMessage(`[]`), nil
	}
	return json.RawMessage(f.Payloads[f.current(len(f.Payloads))]), nil
}

func (f *Fake) scroll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Scrolls++
	f.round++
}

func (f *Fake) ScrollBottom(ctx context.Context) error {
	f.scroll()
	return nil
}

func (f *Fake) ScrollTop(ctx context.Context) error {
	f.scroll()
	f.mu.Lock()
	f.TopScrolls++
	f.mu.Unlock()
	return nil
}

func (f *Fake) Click(ctx context.Context, selector string) error {
	f.mu.Lock()
	if f.failing[selector] {
		f.mu.Unlock()
		return fmt.Errorf("click %s: no matching control", selector)
	}
	f.Clicks = append(f.Clicks, selector)
	hook := f.OnClick
	f.mu.Unlock()
	if hook != nil {
		hook(selector)
	}
	return nil
}

func (f *Fake) Type(ctx context.Context, selector, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing[selector] {
		return fmt.Errorf("type into %s: no matching control", selector)
	}
	f.Typed[selector] = text
	return nil
}

func (f *Fake) Visible(ctx context.Context, selector string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible[selector], nil
}

func (f *Fake) Text(ctx context.Context, selector string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.texts[selector], nil
}

func (f *Fake) PressEscape(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Escapes++
	return nil
}
