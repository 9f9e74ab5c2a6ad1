package content

import (
	"context"
	"sync"

	"ayushdesk/internal/domain"
	"ayushdesk/pkg/platform/sentinel"
)

// InMemoryStore keeps content in process memory, newest-first. It is the
// default backing when no database is configured.
type InMemoryStore struct {
	mu            sync.RWMutex
	announcements []domain.Announcement
	gallery       []domain.GalleryItem
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func cloneAnnouncement(a domain.Announcement) domain.Announcement {
	out := a
	if a.ScheduledFor != nil {
		t := *a.ScheduledFor
		out.ScheduledFor = &t
	}
	if a.UpdatedAt != nil {
		t := *a.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

func cloneGalleryItem(g domain.GalleryItem) domain.GalleryItem {
	out := g
	if g.UpdatedAt != nil {
		t := *g.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

func (s *InMemoryStore) ListAnnouncements(_ context.Context) ([]domain.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Announcement, 0, len(s.announcements))
	for _, a := range s.announcements {
		out = append(out, cloneAnnouncement(a))
	}
	return out, nil
}

func (s *InMemoryStore) GetAnnouncement(_ context.Context, id string) (domain.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.announcements {
		if a.ID == id {
			return cloneAnnouncement(a), nil
		}
	}
	return domain.Announcement{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) InsertAnnouncement(_ context.Context, a domain.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.announcements = append([]domain.Announcement{cloneAnnouncement(a)}, s.announcements...)
	return nil
}

func (s *InMemoryStore) UpdateAnnouncement(_ context.Context, a domain.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.announcements {
		if s.announcements[i].ID == a.ID {
			s.announcements[i] = cloneAnnouncement(a)
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (s *InMemoryStore) DeleteAnnouncement(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.announcements {
		if s.announcements[i].ID == id {
			s.announcements = append(s.announcements[:i], s.announcements[i+1:]...)
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (s *InMemoryStore) ListGalleryItems(_ context.Context) ([]domain.GalleryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.GalleryItem, 0, len(s.gallery))
	for _, g := range s.gallery {
		out = append(out, cloneGalleryItem(g))
	}
	return out, nil
}

func (s *InMemoryStore) GetGalleryItem(_ context.Context, id string) (domain.GalleryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.gallery {
		if g.ID == id {
			return cloneGalleryItem(g), nil
		}
	}
	return domain.GalleryItem{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) InsertGalleryItem(_ context.Context, g domain.GalleryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gallery = append([]domain.GalleryItem{cloneGalleryItem(g)}, s.gallery...)
	return nil
}

func (s *InMemoryStore) UpdateGalleryItem(_ context.Context, g domain.GalleryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.gallery {
		if s.gallery[i].ID == g.ID {
			s.gallery[i] = cloneGalleryItem(g)
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (s *InMemoryStore) DeleteGalleryItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.gallery {
		if s.gallery[i].ID == id {
			s.gallery = append(s.gallery[:i], s.gallery[i+1:]...)
			return nil
		}
	}
	return sentinel.ErrNotFound
}
