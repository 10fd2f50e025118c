// Package history is the client-side facade over the remote threat log.
//
// The remote log is the single source of truth shared by all consumers.
// The store holds the snapshot from the most recent successful fetch plus
// a pending-delete overlay for optimistic removals; the next successful
// fetch is always authoritative and clears the overlay.
package history

import (
	"context"
	"sort"
	"sync"

	"github.com/user/phishguard/internal/model"
	"github.com/user/phishguard/internal/util"
)

// RemoteLog is the remote operations the store depends on.
type RemoteLog interface {
	Logs(ctx context.Context) ([]model.ScanRecord, error)
	DeleteLog(ctx context.Context, id string) error
}

// Store is a local view of the remote threat log.
type Store struct {
	remote RemoteLog

	mu            sync.RWMutex
	snapshot      []model.ScanRecord
	pendingDelete map[string]struct{}
}

// NewStore creates an empty store backed by the given remote log.
func NewStore(remote RemoteLog) *Store {
	return &Store{
		remote:        remote,
		pendingDelete: make(map[string]struct{}),
	}
}

// Refresh re-fetches the full log and replaces the snapshot wholesale.
// Server insertion order is not trusted: records are re-sorted by
// timestamp descending, with a stable sort so equal timestamps keep
// their relative order.
func (s *Store) Refresh(ctx context.Context) error {
	records, err := s.remote.Logs(ctx)
	if err != nil {
		return err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})

	s.mu.Lock()
	s.snapshot = records
	s.pendingDelete = make(map[string]struct{})
	s.mu.Unlock()
	return nil
}

// List returns the filtered snapshot, excluding optimistically deleted
// records. The returned slice is a copy.
func (s *Store) List(filter model.LogFilter) []model.ScanRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ScanRecord, 0, len(s.snapshot))
	for _, r := range s.snapshot {
		if _, deleted := s.pendingDelete[r.ID]; deleted {
			continue
		}
		if filter.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Delete removes a record optimistically: it disappears from List
// immediately, before the remote acknowledges. If the remote call fails
// the overlay entry stays in place and the next successful Refresh
// reconciles either way. Deleting an id the remote does not know is a
// no-op, not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	s.pendingDelete[id] = struct{}{}
	s.mu.Unlock()

	if err := s.remote.DeleteLog(ctx, id); err != nil {
		util.Warn("Remote delete of %s failed, reconciling on next poll: %v", id, err)
		return err
	}
	return nil
}

// Count returns how many records of the given type are in the current
// snapshot. It is only as fresh as the last successful Refresh.
func (s *Store) Count(t model.ScanType) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, r := range s.snapshot {
		if _, deleted := s.pendingDelete[r.ID]; deleted {
			continue
		}
		if r.Type == t {
			n++
		}
	}
	return n
}

// Len returns the number of visible records in the snapshot.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, r := range s.snapshot {
		if _, deleted := s.pendingDelete[r.ID]; !deleted {
			n++
		}
	}
	return n
}
