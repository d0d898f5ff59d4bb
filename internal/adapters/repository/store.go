// Package repository defines the durable stores for entries and nudges.
package repository

import (
	"context"
	"time"

	"github.com/cadencehq/cadence/internal/domain/entry"
)

// EntryStore provides read/write access to persisted week submissions.
// Identities passed in must already be normalized; implementations store
// and compare them exact-match.
type EntryStore interface {
	// ReplaceWeek atomically replaces the (owner, kind, week) bucket with
	// rows: delete-all-then-insert-all in one transaction. A failure
	// mid-replace rolls back to the pre-submission state. Rows must
	// already be filtered for the positivity invariant.
	ReplaceWeek(ctx context.Context, owner string, kind entry.Kind, week time.Time, rows []entry.Row) error

	// Week returns the rows of one (owner, kind, week) bucket. No data is
	// an empty slice, never an error.
	Week(ctx context.Context, owner string, kind entry.Kind, week time.Time) ([]entry.Entry, error)

	// OwnerEntries returns all of an owner's entries of one kind.
	OwnerEntries(ctx context.Context, owner string, kind entry.Kind) ([]entry.Entry, error)

	// LatestWeek returns the rows of the owner's most recently dated
	// submitted week across both kinds, or an empty slice.
	LatestWeek(ctx context.Context, owner string) ([]entry.Entry, error)

	// Close releases the underlying resources.
	Close() error
}

// Nudge is a manager-to-report reminder. Mutated only by the dismissed
// flag; never deleted.
type Nudge struct {
	ID        string
	From      string
	To        string
	Message   string
	CreatedAt time.Time
	Dismissed bool
}

// NudgeStore provides access to persisted nudges.
type NudgeStore interface {
	// Create stores a new nudge.
	Create(ctx context.Context, n Nudge) error

	// Undismissed returns the recipient's undismissed nudges, newest first.
	Undismissed(ctx context.Context, to string) ([]Nudge, error)

	// Dismiss marks a nudge dismissed. The recipient must match; the
	// transition is terminal. Unknown ids return ErrNotFound.
	Dismiss(ctx context.Context, id, to string) error

	// CountSince counts nudges addressed to the recipient created at or
	// after since, dismissed or not.
	CountSince(ctx context.Context, to string, since time.Time) (int, error)
}
