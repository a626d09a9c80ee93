// Package ledger persists the set of identifiers an automation has
// already acted on, making repeated runs idempotent. Entries are never
// removed automatically; only an explicit Clear empties a ledger.
package ledger

// Ledger is the idempotency port consulted before acting and updated
// after. Implementations are not safe for concurrent use; the engine is
// single threaded.
type Ledger interface {
	Contains(id string) bool
	Add(id string) error
	Len() int
	Clear() error
	Close() error
}

// Memory is an in-process ledger, used in tests and preview runs.
type Memory struct {
	ids map[string]struct{}
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{ids: make(map[string]struct{})}
}

func (m *Memory) Contains(id string) bool {
	_, ok := m.ids[id]
	return ok
}

func (m *Memory) Add(id string) error {
	m.ids[id] = struct{}{}
	return nil
}

func (m *Memory) Len() int { return len(m.ids) }

func (m *Memory) Clear() error {
	m.ids = make(map[string]struct{})
	return nil
}

func (m *Memory) Close() error { return nil }
