package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cadencehq/cadence/internal/domain/entry"
)

// MemoryStore implements EntryStore and NudgeStore in process memory.
// Used by tests and the memory store driver for local development.
type MemoryStore struct {
	mu      sync.RWMutex
	buckets map[bucketKey][]entry.Entry
	nudges  []Nudge
	cfg     storeConfig
	closed  bool

	// replaceErr, when set, fails the next ReplaceWeek mid-transaction.
	replaceErr error
}

type bucketKey struct {
	owner string
	kind  entry.Kind
	week  time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		buckets: make(map[bucketKey][]entry.Entry),
		cfg:     newStoreConfig(opts),
	}
}

// FailNextReplace injects a failure into the next ReplaceWeek call. Tests
// use it to verify that a failed replace leaves the bucket untouched.
func (s *MemoryStore) FailNextReplace(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceErr = err
}

func (s *MemoryStore) key(owner string, kind entry.Kind, week time.Time) bucketKey {
	week = week.UTC()
	return bucketKey{
		owner: owner,
		kind:  kind,
		week:  time.Date(week.Year(), week.Month(), week.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// ReplaceWeek swaps the bucket's rows in one step; a failure leaves the
// previous rows in place.
func (s *MemoryStore) ReplaceWeek(_ context.Context, owner string, kind entry.Kind, week time.Time, rows []entry.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.replaceErr != nil {
		err := s.replaceErr
		s.replaceErr = nil
		return err
	}

	key := s.key(owner, kind, week)
	writtenAt := s.cfg.now()
	fresh := make([]entry.Entry, 0, len(rows))
	for _, r := range rows {
		fresh = append(fresh, entry.Entry{
			Owner:     owner,
			WeekKey:   key.week,
			Kind:      kind,
			Project:   r.Project,
			Days:      r.Days,
			Notes:     r.Notes,
			WrittenAt: writtenAt,
		})
	}
	if len(fresh) == 0 {
		delete(s.buckets, key)
		return nil
	}
	s.buckets[key] = fresh
	return nil
}

// Week returns a copy of one bucket's rows.
func (s *MemoryStore) Week(_ context.Context, owner string, kind entry.Kind, week time.Time) ([]entry.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	rows := s.buckets[s.key(owner, kind, week)]
	return append([]entry.Entry(nil), rows...), nil
}

// OwnerEntries returns all of an owner's entries of one kind, ordered by
// week key.
func (s *MemoryStore) OwnerEntries(_ context.Context, owner string, kind entry.Kind) ([]entry.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	var entries []entry.Entry
	for key, rows := range s.buckets {
		if key.owner == owner && key.kind == kind {
			entries = append(entries, rows...)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].WeekKey.Before(entries[j].WeekKey)
	})
	return entries, nil
}

// LatestWeek returns the most recently dated submitted bucket, any kind.
func (s *MemoryStore) LatestWeek(_ context.Context, owner string) ([]entry.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	var best bucketKey
	found := false
	for key := range s.buckets {
		if key.owner != owner {
			continue
		}
		if !found || key.week.After(best.week) {
			best = key
			found = true
		}
	}
	if !found {
		return []entry.Entry{}, nil
	}
	return append([]entry.Entry(nil), s.buckets[best]...), nil
}

// Create stores a new nudge.
func (s *MemoryStore) Create(_ context.Context, n Nudge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.nudges = append(s.nudges, n)
	return nil
}

// Undismissed returns the recipient's undismissed nudges, newest first.
func (s *MemoryStore) Undismissed(_ context.Context, to string) ([]Nudge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	var out []Nudge
	for _, n := range s.nudges {
		if n.To == to && !n.Dismissed {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Dismiss marks a nudge dismissed.
func (s *MemoryStore) Dismiss(_ context.Context, id, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for i := range s.nudges {
		if s.nudges[i].ID == id && s.nudges[i].To == to {
			s.nudges[i].Dismissed = true
			return nil
		}
	}
	return ErrNotFound
}

// CountSince counts the recipient's nudges created at or after since.
func (s *MemoryStore) CountSince(_ context.Context, to string, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}
	count := 0
	for _, n := range s.nudges {
		if n.To == to && !n.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
