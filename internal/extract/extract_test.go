package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostExtractorDecode(t *testing.T) {
	raw := json.RawMessage(`[
		{"id":"123","authorHandle":"alice","authorName":"Alice","text":"hello world","likes":"1.2K","reposts":"34","replies":"5","isReply":true,"isVerified":false,"url":"https://x.com/alice/status/123"},
		{"id":"","authorHandle":"ghost","text":"no id"},
		{"id":"456","authorHandle":"bob","text":"","likes":"garbage"}
	]`)

	records, err := PostExtractor{}.Decode(raw)
	require.NoError(t, err)
	require.Len(t, records, 2, "record with no id must be dropped")

	first := records[0]
	assert.Equal(t, "123", first.ID)
	assert.Equal(t, KindPost, first.Kind)
	assert.Equal(t, "alice", first.Author())
	assert.Equal(t, "hello world", first.Text())
	assert.Equal(t, 1200, first.Int("likes"))
	assert.Equal(t, 34, first.Int("reposts"))
	assert.True(t, first.Bool("is_reply"))
	assert.False(t, first.Bool("is_verified"))

	// Unparseable counts degrade to zero, they never drop the record.
	assert.Equal(t, "456", records[1].ID)
	assert.Equal(t, 0, records[1].Int("likes"))
}

func TestPostExtractorDecodeMalformed(t *testing.T) {
	_, err := PostExtractor{}.Decode(json.RawMessage(`{"not":"an array"}`))
	assert.Error(t, err)
}

func TestAccountExtractorDecode(t *testing.T) {
	raw := json.RawMessage(`[
		{"handle":"@carol","name":"Carol","bio":"builder","isVerified":true,"followsYou":true,"isFollowing":true},
		{"handle":"","name":"nobody"}
	]`)

	records, err := AccountExtractor{}.Decode(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)

	acct := records[0]
	assert.Equal(t, "carol", acct.ID, "handle is normalized without the @")
	assert.Equal(t, KindAccount, acct.Kind)
	assert.Equal(t, "builder", acct.Text())
	assert.True(t, acct.Bool("is_verified"))
	assert.True(t, acct.Bool("follows_you"))
}

func TestCommunityExtractorDecode(t *testing.T) {
	raw := json.RawMessage(`[
		{"id":"987","name":"Gophers","members":"45.2K","topic":"Technology","joined":false}
	]`)

	records, err := CommunityExtractor{}.Decode(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "987", records[0].ID)
	assert.Equal(t, 45200, records[0].Int("members"))
	assert.False(t, records[0].Bool("joined"))
}

func TestSpaceExtractorDecode(t *testing.T) {
	raw := json.RawMessage(`[
		{"id":"1abc","title":"Go talk","host":"dave","listeners":"1.1K","isLive":true}
	]`)

	records, err := SpaceExtractor{}.Decode(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1abc", records[0].ID)
	assert.Equal(t, "dave", records[0].Author())
	assert.Equal(t, 1100, records[0].Int("listeners"))
	assert.True(t, records[0].Bool("is_live"))
}

func TestNotificationExtractorDecode(t *testing.T) {
	raw := json.RawMessage(`[
		{"id":"555","text":"Alice liked your post","actor":"alice","kind":"like","link":"/alice/status/555"},
		{"id":"","text":"unresolvable"}
	]`)

	records, err := NotificationExtractor{}.Decode(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "555", records[0].ID)
	assert.Equal(t, "like", records[0].Str("type"))
}

func TestRecordFieldAccessors(t *testing.T) {
	r := Record{ID: "1", Kind: KindPost, Fields: Fields{
		"likes": float64(7), // counts arrive as float64 after a JSON round trip
		"text":  "hi",
		"flag":  true,
	}}

	assert.Equal(t, 7, r.Int("likes"))
	assert.Equal(t, "hi", r.Str("text"))
	assert.True(t, r.Bool("flag"))
	assert.Equal(t, 0, r.Int("missing"))
	assert.Equal(t, "", r.Str("missing"))
	assert.False(t, r.Bool("missing"))
}
