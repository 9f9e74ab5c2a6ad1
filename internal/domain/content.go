package domain

import "time"

// AnnouncementStatus is derived, never set directly: SCHEDULED when a future
// publish time is present, PUBLISHED otherwise.
type AnnouncementStatus string

const (
	AnnouncementScheduled AnnouncementStatus = "SCHEDULED"
	AnnouncementPublished AnnouncementStatus = "PUBLISHED"
)

type Announcement struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Message      string             `json:"message"`
	Audience     string             `json:"audience"`
	Link         string             `json:"link,omitempty"`
	Status       AnnouncementStatus `json:"status"`
	CreatedAt    time.Time          `json:"createdAt"`
	ScheduledFor *time.Time         `json:"scheduledFor,omitempty"`
	UpdatedAt    *time.Time         `json:"updatedAt,omitempty"`
}

type GalleryItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	ImageURL    string     `json:"imageUrl"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}
