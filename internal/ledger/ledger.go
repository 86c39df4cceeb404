// Package ledger persists interaction history so sessions do not act on
// the same account twice within the dedup window.
package ledger

import (
	"errors"
	"time"
)

// DefaultWindow is how far back HasRecentInteraction looks when the
// caller passes zero.
const DefaultWindow = 168 * time.Hour

// Kind labels what was done to a target.
type Kind string

const (
	KindLike     Kind = "like"
	KindFollow   Kind = "follow"
	KindFavorite Kind = "favorite"
	KindUnfollow Kind = "unfollow"
	KindScrape   Kind = "scrape"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("ledger: not found")

// Record is one interaction with a target account.
type Record struct {
	AccountID string
	Target    string
	Kind      Kind
	Success   bool
	SessionID string
	// Scope groups records by where the target came from, e.g. the
	// username whose followers list produced it, or "feed".
	Scope string
	At    time.Time
}

// Ledger is the dedup store consulted before and updated after each
// engagement action.
type Ledger interface {
	// HasRecentInteraction reports whether account interacted with
	// target with the given kind inside the window.
	HasRecentInteraction(account, target string, kind Kind, window time.Duration) (bool, error)

	// RecordInteraction upserts a record. Re-recording the same
	// (account, target, kind) refreshes the timestamp instead of
	// inserting a duplicate row.
	RecordInteraction(rec Record) error

	// CountForScope returns how many successful interactions of the
	// given kind the account has within a scope.
	CountForScope(account, scope string, kind Kind) (int, error)

	Close() error
}
