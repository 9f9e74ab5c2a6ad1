package content

import (
	"context"

	"ayushdesk/internal/domain"
)

// Store persists announcements and gallery items. Implementations keep both
// collections ordered newest-first by creation.
//
// Stores are interface-driven so the memory implementation (default) and the
// Postgres one are interchangeable without rewiring the service.
type Store interface {
	ListAnnouncements(ctx context.Context) ([]domain.Announcement, error)
	GetAnnouncement(ctx context.Context, id string) (domain.Announcement, error)
	InsertAnnouncement(ctx context.Context, a domain.Announcement) error
	UpdateAnnouncement(ctx context.Context, a domain.Announcement) error
	DeleteAnnouncement(ctx context.Context, id string) error

	ListGalleryItems(ctx context.Context) ([]domain.GalleryItem, error)
	GetGalleryItem(ctx context.Context, id string) (domain.GalleryItem, error)
	InsertGalleryItem(ctx context.Context, g domain.GalleryItem) error
	UpdateGalleryItem(ctx context.Context, g domain.GalleryItem) error
	DeleteGalleryItem(ctx context.Context, id string) error
}
