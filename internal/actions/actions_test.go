package actions

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nirholas/XActions-sub002/internal/engine"
	"github.com/nirholas/XActions-sub002/internal/extract"
	"github.com/nirholas/XActions-sub002/internal/ledger"
	"github.com/nirholas/XActions-sub002/internal/surface"
	"github.com/nirholas/XActions-sub002/internal/throttle"
)

var testWaits = Waits{Interval: time.Millisecond, Timeout: 100 * time.Millisecond}

func testRunner(t *testing.T, fake *surface.Fake, led ledger.Ledger) *Runner {
	t.Helper()
	if led == nil {
		led = ledger.NewMemory()
	}
	return NewRunner(Deps{
		Surface:  fake,
		Ledger:   led,
		Throttle: throttle.New(throttle.Window{Min: time.Millisecond, Max: time.Millisecond}).WithSleeper(throttle.Nop),
		Log:      zerolog.Nop(),
	}, Options{
		MaxEmptyRounds: 2,
		MaxRounds:      10,
		Sleep:          throttle.Nop,
		Waits:          testWaits,
	})
}

func postsJSON(t *testing.T, posts []map[string]any) string {
	t.Helper()
	data, err := json.Marshal(posts)
	require.NoError(t, err)
	return string(data)
}

func post(id, author, text string) map[string]any {
	return map[string]any{
		"id":           id,
		"authorHandle": author,
		"text":         text,
		"likes":        "10",
	}
}

func accountsJSON(t *testing.T, handles ...string) string {
	t.Helper()
	accounts := make([]map[string]any, 0, len(handles))
	for _, h := range handles {
		accounts = append(accounts, map[string]any{
			"handle":      h,
			"name":        strings.ToUpper(h),
			"isFollowing": true,
		})
	}
	data, err := json.Marshal(accounts)
	require.NoError(t, err)
	return string(data)
}

func TestAutoReplyRepliesToMatches(t *testing.T) {
	fake := surface.NewFake()
	fake.Counts = []int{2}
	fake.Payloads = []string{postsJSON(t, []map[string]any{
		post("100", "alice", "learning golang today"),
		post("101", "bob", "lunch thread"),
	})}
	fake.SetVisible(selPrimaryColumn, true)
	fake.OnClick = func(selector string) {
		switch {
		case strings.Contains(selector, selReplyButton):
			fake.SetVisible(selComposer, true)
		case selector == selSendReply:
			fake.SetVisible(selComposer, false)
		}
	}

	led := ledger.NewMemory()
	r := testRunner(t, fake, led)
	task := AutoReply(fake, ReplyOptions{
		MaxReplies: 5,
		Triggers:   []engine.Trigger{{Keywords: []string{"golang"}, Payload: "nice!"}},
		Waits:      testWaits,
	})

	res, err := r.Run(context.Background(), task)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Acted)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, "nice!", fake.Typed[selComposer])
	assert.True(t, led.Contains("100"))
	assert.False(t, led.Contains("101"))
	assert.Equal(t, []string{"https://x.com/home"}, fake.Navigations)
}

func TestAutoReplyComposerNeverClosesIsFailure(t *testing.T) {
	fake := surface.NewFake()
	fake.Counts = []int{1}
	fake.Payloads = []string{postsJSON(t, []map[string]any{
		post("100", "alice", "golang tips"),
	})}
	fake.SetVisible(selPrimaryColumn, true)
	fake.OnClick = func(selector string) {
		if strings.Contains(selector, selReplyButton) {
			fake.SetVisible(selComposer, true)
		}
		// Send clicked but the composer stays open: no confirmation.
	}

	led := ledger.NewMemory()
	r := testRunner(t, fake, led)
	task := AutoReply(fake, ReplyOptions{
		MaxReplies: 5,
		Triggers:   []engine.Trigger{{Keywords: []string{"golang"}, Payload: "nice!"}},
		Waits:      testWaits,
	})

	res, err := r.Run(context.Background(), task)
	require.NoError(t, err)

	// Unconfirmed send is a failure and the id stays retryable.
	assert.Equal(t, 0, res.Acted)
	assert.Equal(t, 1, res.Failed)
	assert.False(t, led.Contains("100"))
}

func TestUnfollowSparesKeepList(t *testing.T) {
	fake := surface.NewFake()
	fake.Counts = []int{3}
	fake.Payloads = []string{accountsJSON(t, "alice", "bestfriend", "bob")}
	fake.SetVisible(selPrimaryColumn, true)
	fake.OnClick = func(selector string) {
		if strings.Contains(selector, "-unfollow") {
			fake.SetVisible(selConfirmSheet, true)
		}
		if selector == selConfirmSheet {
			fake.SetVisible(selConfirmSheet, false)
		}
	}

	led := ledger.NewMemory()
	r := testRunner(t, fake, led)
	task := Unfollow(fake, UnfollowOptions{
		Username:     "me",
		Keep:         []string{"@bestfriend"},
		MaxUnfollows: 10,
		Waits:        testWaits,
	})

	res, err := r.Run(context.Background(), task)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Acted)
	assert.Equal(t, 1, res.Skipped)
	assert.True(t, led.Contains("alice"))
	assert.True(t, led.Contains("bob"))
	assert.False(t, led.Contains("bestfriend"))
	assert.Equal(t, []string{"https://x.com/me/following"}, fake.Navigations)
}

func TestUnfollowMarksBeforeConfirm(t *testing.T) {
	fake := surface.NewFake()
	fake.Counts = []int{1}
	fake.Payloads = []string{accountsJSON(t, "alice")}
	fake.SetVisible(selPrimaryColumn, true)
	// The confirmation sheet never appears: the action fails.

	led := ledger.NewMemory()
	r := testRunner(t, fake, led)
	task := Unfollow(fake, UnfollowOptions{
		Username:     "me",
		MaxUnfollows: 10,
		Waits:        testWaits,
	})

	res, err := r.Run(context.Background(), task)
	require.NoError(t, err)

	// Even the failed attempt is marked: retrying a half-finished
	// unfollow can re-follow.
	assert.Equal(t, 1, res.Failed)
	assert.True(t, led.Contains("alice"))
}

func TestUnbookmarkRemovesAll(t *testing.T) {
	fake := surface.NewFake()
	fake.Counts = []int{2}
	fake.Payloads = []string{postsJSON(t, []map[string]any{
		post("200", "alice", "saved one"),
		post("201", "bob", "saved two"),
	})}
	fake.SetVisible(selPrimaryColumn, true)

	led := ledger.NewMemory()
	r := testRunner(t, fake, led)
	task := Unbookmark(fake, UnbookmarkOptions{MaxRemovals: 10, Waits: testWaits})

	res, err := r.Run(context.Background(), task)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Acted)
	assert.True(t, led.Contains("200"))
	assert.True(t, led.Contains("201"))
	assert.Equal(t, []string{"https://x.com/i/bookmarks"}, fake.Navigations)
}

func TestScrapeCollectsWithoutActing(t *testing.T) {
	fake := surface.NewFake()
	fake.Counts = []int{2}
	fake.Payloads = []string{postsJSON(t, []map[string]any{
		post("300", "alice", "first"),
		post("301", "bob", "second"),
	})}
	fake.SetVisible(selPrimaryColumn, true)

	r := testRunner(t, fake, nil)
	ex, err := ExtractorFor("post")
	require.NoError(t, err)

	records, err := r.Scrape(context.Background(), ScrapeOptions{
		URL:       "https://x.com/search?q=golang",
		Extractor: ex,
		Max:       10,
	})
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "300", records[0].ID)
	assert.Empty(t, fake.Clicks)
}

func TestExtractorForUnknownKind(t *testing.T) {
	_, err := ExtractorFor("widget")
	assert.Error(t, err)
}

func TestDirectionForKinds(t *testing.T) {
	assert.Equal(t, engine.ScrollUp, DirectionFor(extract.KindConversation))
	assert.Equal(t, engine.ScrollDown, DirectionFor(extract.KindPost))
	assert.Equal(t, engine.ScrollDown, DirectionFor(extract.KindAccount))
}

func TestScrapeConversationsScrollsUp(t *testing.T) {
	convos, err := json.Marshal([]map[string]any{
		{"id": "dm1", "name": "alice", "preview": "see you then"},
		{"id": "dm2", "name": "bob", "preview": "draft attached"},
	})
	require.NoError(t, err)

	fake := surface.NewFake()
	fake.Counts = []int{2}
	fake.Payloads = []string{string(convos)}
	fake.SetVisible(selPrimaryColumn, true)

	r := testRunner(t, fake, nil)
	ex, err := ExtractorFor("conversation")
	require.NoError(t, err)

	records, err := r.Scrape(context.Background(), ScrapeOptions{
		URL:       "https://x.com/messages",
		Extractor: ex,
		Max:       10,
		Direction: DirectionFor(ex.Kind()),
	})
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "dm1", records[0].ID)
	// Conversation history loads above the viewport, so exhausting the
	// inbox means scrolling toward the top.
	assert.Greater(t, fake.TopScrolls, 0)
	assert.Equal(t, fake.Scrolls, fake.TopScrolls)
}

func TestComposeTypesAndSends(t *testing.T) {
	fake := surface.NewFake()
	fake.SetVisible(selComposer, true)
	fake.OnClick = func(selector string) {
		if selector == selSendReply {
			fake.SetVisible(selComposer, false)
		}
	}

	err := Compose(context.Background(), fake, PostOptions{
		Text:  "hello world",
		Waits: testWaits,
	})
	require.NoError(t, err)

	assert.Equal(t, "hello world", fake.Typed[selComposer])
	assert.Equal(t, []string{"https://x.com/compose/post"}, fake.Navigations)
}

func TestComposeWithPoll(t *testing.T) {
	fake := surface.NewFake()
	fake.SetVisible(selComposer, true)
	fake.OnClick = func(selector string) {
		if selector == selAddPoll {
			fake.SetVisible(pollChoiceInput(1), true)
		}
		if selector == selSendReply {
			fake.SetVisible(selComposer, false)
		}
	}

	err := Compose(context.Background(), fake, PostOptions{
		Text:        "which one?",
		PollOptions: []string{"tabs", "spaces"},
		Waits:       testWaits,
	})
	require.NoError(t, err)

	assert.Equal(t, "tabs", fake.Typed[pollChoiceInput(1)])
	assert.Equal(t, "spaces", fake.Typed[pollChoiceInput(2)])
}

func TestComposePollOptionBounds(t *testing.T) {
	fake := surface.NewFake()

	err := Compose(context.Background(), fake, PostOptions{
		Text:        "bad poll",
		PollOptions: []string{"only one"},
		Waits:       testWaits,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrConfig)
	assert.Empty(t, fake.Navigations)

	err = Compose(context.Background(), fake, PostOptions{
		Text:        "bad poll",
		PollOptions: []string{"a", "b", "c", "d", "e"},
		Waits:       testWaits,
	})
	assert.ErrorIs(t, err, engine.ErrConfig)
}
