package directory

import (
	"sync"
	"time"

	"ayushdesk/internal/domain"
	"ayushdesk/internal/seed"
	"ayushdesk/pkg/platform/sentinel"
)

// Store is the single owner of the in-memory practitioner collection. All
// access goes through its methods; every user handed out is a deep copy, so
// callers can never mutate canonical state or observe later mutations
// through a previously returned record.
//
// A single mutex serializes writers. Logical operations issued back-to-back
// still race at the application level (last write wins, no version stamps),
// which matches the observed behavior of the system this replaces.
type Store struct {
	mu    sync.RWMutex
	base  time.Time
	users []domain.User
}

// NewStore seeds the collection from the deterministic generator anchored at
// base. Reset restores exactly this dataset.
func NewStore(base time.Time) *Store {
	return &Store{base: base, users: seed.Users(base)}
}

// Reset discards every mutation and restores the initial generated dataset.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = seed.Users(s.base)
}

// Len returns the current number of users.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Snapshot returns deep copies of every user in original insertion order.
func (s *Store) Snapshot() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Clone())
	}
	return out
}

// Summaries returns the flat list projection of every user.
func (s *Store) Summaries() []domain.UserSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.UserSummary, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Summary())
	}
	return out
}

// Get returns a deep copy of the user with the given id.
func (s *Store) Get(id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u.Clone(), nil
		}
	}
	return domain.User{}, sentinel.ErrNotFound
}

// Update applies fn to the canonical user under the write lock and returns a
// deep copy of the result. fn receives the canonical record; returning an
// error aborts without further effect.
func (s *Store) Update(id string, fn func(*domain.User) error) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			if err := fn(&s.users[i]); err != nil {
				return domain.User{}, err
			}
			return s.users[i].Clone(), nil
		}
	}
	return domain.User{}, sentinel.ErrNotFound
}

// Remove deletes the user with the given id.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return sentinel.ErrNotFound
}

// Documents flattens every user's documents into the global index, each
// record enriched with its owner's id and name.
func (s *Store) Documents() []domain.DocumentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.DocumentRecord
	for _, u := range s.users {
		for _, d := range u.Documents {
			out = append(out, domain.DocumentRecord{
				Document: d,
				UserID:   u.ID,
				UserName: u.Personal.FullName,
			})
		}
	}
	return out
}

// UpdateDocument locates the document by id across all users (ids are
// globally unique), applies fn to the canonical document and its owning
// user in a single pass under the write lock, and returns deep copies of
// both. fn may mutate the document and append to the owner's audit trail;
// the replacement is atomic with respect to other store operations.
func (s *Store) UpdateDocument(docID string, fn func(owner *domain.User, doc *domain.Document)) (domain.DocumentRecord, domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		for j := range s.users[i].Documents {
			if s.users[i].Documents[j].ID != docID {
				continue
			}
			fn(&s.users[i], &s.users[i].Documents[j])
			rec := domain.DocumentRecord{
				Document: s.users[i].Documents[j],
				UserID:   s.users[i].ID,
				UserName: s.users[i].Personal.FullName,
			}
			return rec, s.users[i].Clone(), nil
		}
	}
	return domain.DocumentRecord{}, domain.User{}, sentinel.ErrNotFound
}
