package content

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"ayushdesk/internal/domain"
	"ayushdesk/internal/platform/metrics"
	dErrors "ayushdesk/pkg/domain-errors"
	"ayushdesk/pkg/platform/sentinel"
)

// AnnouncementInput carries the mutable announcement fields. On update,
// blank fields keep their previous value.
type AnnouncementInput struct {
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	Audience     string     `json:"audience"`
	Link         string     `json:"link"`
	ScheduledFor *time.Time `json:"scheduledFor"`
}

// GalleryInput carries the mutable gallery fields. Description is a pointer
// on purpose: an explicitly empty string clears the description, while an
// absent field keeps it.
type GalleryInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
}

// Service implements announcement and gallery CRUD on top of a Store.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{store: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ListAnnouncements(ctx context.Context) ([]domain.Announcement, error) {
	return s.store.ListAnnouncements(ctx)
}

func (s *Service) CreateAnnouncement(ctx context.Context, in AnnouncementInput) (domain.Announcement, error) {
	title := strings.TrimSpace(in.Title)
	message := strings.TrimSpace(in.Message)
	audience := strings.TrimSpace(in.Audience)
	if title == "" || message == "" || audience == "" {
		return domain.Announcement{}, dErrors.New(dErrors.CodeBadRequest, "title, message and audience are required")
	}

	now := s.now()
	a := domain.Announcement{
		ID:           uuid.NewString(),
		Title:        title,
		Message:      message,
		Audience:     audience,
		Link:         strings.TrimSpace(in.Link),
		CreatedAt:    now,
		ScheduledFor: in.ScheduledFor,
	}
	a.Status = announcementStatus(a.ScheduledFor)

	if err := s.store.InsertAnnouncement(ctx, a); err != nil {
		return domain.Announcement{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create announcement")
	}
	s.metrics.ObserveMutation("create_announcement")
	s.logger.InfoContext(ctx, "announcement created", "id", a.ID, "status", string(a.Status))
	return a, nil
}

func (s *Service) UpdateAnnouncement(ctx context.Context, id string, in AnnouncementInput) (domain.Announcement, error) {
	current, err := s.store.GetAnnouncement(ctx, id)
	if err != nil {
		return domain.Announcement{}, wrapContentErr(err, "announcement")
	}

	current.Title = fallback(in.Title, current.Title)
	current.Message = fallback(in.Message, current.Message)
	current.Audience = fallback(in.Audience, current.Audience)
	current.Link = fallback(in.Link, current.Link)
	if in.ScheduledFor != nil {
		current.ScheduledFor = in.ScheduledFor
	}
	now := s.now()
	current.Status = announcementStatus(current.ScheduledFor)
	current.UpdatedAt = &now

	if err := s.store.UpdateAnnouncement(ctx, current); err != nil {
		return domain.Announcement{}, wrapContentErr(err, "announcement")
	}
	s.metrics.ObserveMutation("update_announcement")
	return current, nil
}

func (s *Service) DeleteAnnouncement(ctx context.Context, id string) error {
	if err := s.store.DeleteAnnouncement(ctx, id); err != nil {
		return wrapContentErr(err, "announcement")
	}
	s.metrics.ObserveMutation("delete_announcement")
	return nil
}

func (s *Service) ListGalleryItems(ctx context.Context) ([]domain.GalleryItem, error) {
	return s.store.ListGalleryItems(ctx)
}

func (s *Service) CreateGalleryItem(ctx context.Context, in GalleryInput) (domain.GalleryItem, error) {
	title := strings.TrimSpace(in.Title)
	category := strings.TrimSpace(in.Category)
	imageURL := strings.TrimSpace(in.ImageURL)
	if title == "" || category == "" || imageURL == "" {
		return domain.GalleryItem{}, dErrors.New(dErrors.CodeBadRequest, "title, category and imageUrl are required")
	}

	g := domain.GalleryItem{
		ID:        uuid.NewString(),
		Title:     title,
		Category:  category,
		ImageURL:  imageURL,
		CreatedAt: s.now(),
	}
	if in.Description != nil {
		g.Description = *in.Description
	}

	if err := s.store.InsertGalleryItem(ctx, g); err != nil {
		return domain.GalleryItem{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create gallery item")
	}
	s.metrics.ObserveMutation("create_gallery_item")
	s.logger.InfoContext(ctx, "gallery item created", "id", g.ID, "category", g.Category)
	return g, nil
}

func (s *Service) UpdateGalleryItem(ctx context.Context, id string, in GalleryInput) (domain.GalleryItem, error) {
	current, err := s.store.GetGalleryItem(ctx, id)
	if err != nil {
		return domain.GalleryItem{}, wrapContentErr(err, "gallery item")
	}

	current.Title = fallback(in.Title, current.Title)
	current.Category = fallback(in.Category, current.Category)
	current.ImageURL = fallback(in.ImageURL, current.ImageURL)
	// Description honors an explicit empty string, unlike the other fields.
	if in.Description != nil {
		current.Description = *in.Description
	}
	now := s.now()
	current.UpdatedAt = &now

	if err := s.store.UpdateGalleryItem(ctx, current); err != nil {
		return domain.GalleryItem{}, wrapContentErr(err, "gallery item")
	}
	s.metrics.ObserveMutation("update_gallery_item")
	return current, nil
}

func (s *Service) DeleteGalleryItem(ctx context.Context, id string) error {
	if err := s.store.DeleteGalleryItem(ctx, id); err != nil {
		return wrapContentErr(err, "gallery item")
	}
	s.metrics.ObserveMutation("delete_gallery_item")
	return nil
}

// announcementStatus derives the lifecycle from presence of a schedule: any
// announcement with a scheduledFor timestamp is SCHEDULED, even one in the
// past, everything else is PUBLISHED immediately.
func announcementStatus(scheduledFor *time.Time) domain.AnnouncementStatus {
	if scheduledFor != nil {
		return domain.AnnouncementScheduled
	}
	return domain.AnnouncementPublished
}

func fallback(next, prev string) string {
	if trimmed := strings.TrimSpace(next); trimmed != "" {
		return trimmed
	}
	return prev
}

func wrapContentErr(err error, kind string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, kind+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update "+kind)
}
