package engine

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/nirholas/XActions-sub002/internal/extract"
	"github.com/nirholas/XActions-sub002/internal/ledger"
	"github.com/nirholas/XActions-sub002/internal/surface"
	"github.com/nirholas/XActions-sub002/internal/throttle"
)

// fakePost mirrors the raw shape the post extraction script emits.
type fakePost struct {
	ID       string
	Author   string
	Text     string
	Likes    string
	IsReply  bool
	Verified bool
}

func postsPayload(t *testing.T, posts ...fakePost) string {
	t.Helper()
	raw := make([]map[string]any, 0, len(posts))
	for _, p := range posts {
		raw = append(raw, map[string]any{
			"id":           p.ID,
			"authorHandle": p.Author,
			"text":         p.Text,
			"likes":        p.Likes,
			"isReply":      p.IsReply,
			"isVerified":   p.Verified,
		})
	}
	data, err := json.Marshal(raw)
	require.NoError(t, err)
	return string(data)
}

// sleepRecorder captures every suspension the run requested without
// actually sleeping.
type sleepRecorder struct {
	mu    sync.Mutex
	slept []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slept = append(s.slept, d)
	return ctx.Err()
}

func (s *sleepRecorder) count(d time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.slept {
		if v == d {
			n++
		}
	}
	return n
}

// buildExecutor wires an executor over a fake surface with instant sleeps.
func buildExecutor(t *testing.T, f *surface.Fake, led ledger.Ledger, cfg Config) (*Executor, *sleepRecorder) {
	t.Helper()
	recorder := &sleepRecorder{}
	th := throttle.New(throttle.Window{Min: time.Millisecond, Max: 2 * time.Millisecond}).
		WithSleeper(recorder.sleep)

	if cfg.Extractor == nil {
		cfg.Extractor = extract.PostExtractor{}
	}
	cursor := NewCursor(f, cfg.Extractor.CandidateSelector(), CursorOptions{
		MaxEmptyRounds: 2,
		MaxRounds:      10,
		Sleep:          throttle.Nop,
	})
	collector := NewCollector(f, cursor, zerolog.Nop())
	sentinel := NewSentinel(f, th, zerolog.Nop(), SentinelOptions{Cooldown: 5 * time.Minute})

	ex, err := NewExecutor(cfg, Deps{
		Surface:   f,
		Collector: collector,
		Sentinel:  sentinel,
		Ledger:    led,
		Throttle:  th,
		Log:       zerolog.Nop(),
	})
	require.NoError(t, err)
	return ex, recorder
}
