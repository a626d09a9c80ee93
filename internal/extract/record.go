// Package extract converts loosely-structured page markup into typed
// records. Each content kind (post, user cell, conversation, community
// card, space card, notification) has its own Extractor; all knowledge of
// X.com's DOM shape for reading content lives here.
package extract

import "encoding/json"

// Kind identifies the content type a record was extracted from.
type Kind string

const (
	KindPost         Kind = "post"
	KindAccount      Kind = "account"
	KindConversation Kind = "conversation"
	KindCommunity    Kind = "community"
	KindSpace        Kind = "space"
	KindNotification Kind = "notification"
)

// Fields holds the kind-specific attributes of a record.
type Fields map[string]any

// Record is the unit of work surfaced from the page. ID is stable across
// repeated extractions of the same logical item so dedup and the ledger
// work; a record with no resolvable ID is never emitted.
type Record struct {
	ID     string `json:"id"`
	Kind   Kind   `json:"kind"`
	Fields Fields `json:"fields"`
}

// Str returns a string field, empty if absent or mistyped.
func (r Record) Str(key string) string {
	v, _ := r.Fields[key].(string)
	return v
}

// Int returns a numeric field, 0 if absent or mistyped.
func (r Record) Int(key string) int {
	switch v := r.Fields[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// Bool returns a boolean field, false if absent or mistyped.
func (r Record) Bool(key string) bool {
	v, _ := r.Fields[key].(bool)
	return v
}

// Text returns the record's main text content.
func (r Record) Text() string { return r.Str("text") }

// Author returns the record's author handle, without the leading @.
func (r Record) Author() string { return r.Str("author") }

// Extractor surfaces candidate nodes of one content kind and converts them
// into records. Implementations are side-effect free: Script only reads the
// page, and Decode tolerates any malformed node by dropping it.
type Extractor interface {
	// Kind reports the content kind this extractor produces.
	Kind() Kind
	// CandidateSelector matches the candidate nodes on the surface. The
	// feed cursor counts these to detect pagination growth.
	CandidateSelector() string
	// Script returns JavaScript that reads raw records from every
	// currently visible candidate node and returns them as a JSON array.
	Script() string
	// Decode converts the raw payload produced by Script into records.
	// Nodes whose identifier cannot be resolved are dropped; any other
	// unreadable field defaults to its zero value.
	Decode(raw json.RawMessage) ([]Record, error)
}
