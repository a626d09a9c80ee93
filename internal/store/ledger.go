package store

import "fmt"

// SQLiteLedger is a ledger.Ledger backed by the acted table, scoped to
// one automation name. Two automations sharing a database never see each
// other's entries.
type SQLiteLedger struct {
	store      *Store
	automation string
}

// Ledger returns the idempotency ledger for automation.
func (s *Store) Ledger(automation string) *SQLiteLedger {
	return &SQLiteLedger{store: s, automation: automation}
}

// Contains reports whether id has already been acted on. A query failure
// reads as "not present": acting twice is preferable to wedging the run,
// and the insert is idempotent anyway.
func (l *SQLiteLedger) Contains(id string) bool {
	var exists bool
	err := l.store.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM acted WHERE automation = ? AND record_id = ?)`,
		l.automation, id,
	).Scan(&exists)
	return err == nil && exists
}

// Add records id as acted on.
func (l *SQLiteLedger) Add(id string) error {
	_, err := l.store.db.Exec(
		`INSERT OR IGNORE INTO acted (automation, record_id) VALUES (?, ?)`,
		l.automation, id,
	)
	if err != nil {
		return fmt.Errorf("ledger add: %w", err)
	}
	return nil
}

// Len reports how many ids this automation has acted on.
func (l *SQLiteLedger) Len() int {
	var n int
	if err := l.store.db.QueryRow(
		`SELECT COUNT(*) FROM acted WHERE automation = ?`, l.automation,
	).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Clear removes every entry for this automation.
func (l *SQLiteLedger) Clear() error {
	_, err := l.store.db.Exec(`DELETE FROM acted WHERE automation = ?`, l.automation)
	if err != nil {
		return fmt.Errorf("ledger clear: %w", err)
	}
	return nil
}

// Close is a no-op; the owning Store manages the connection.
func (l *SQLiteLedger) Close() error { return nil }
