package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"ayushdesk/internal/domain"
	"ayushdesk/pkg/platform/sentinel"
)

// PostgresStore persists content in PostgreSQL, selected when DATABASE_URL
// is configured. Listing orders newest-first to match the memory store's
// prepend semantics.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Open connects to PostgreSQL and verifies the connection.
func Open(url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the content tables when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS announcements (
			id            TEXT PRIMARY KEY,
			title         TEXT NOT NULL,
			message       TEXT NOT NULL,
			audience      TEXT NOT NULL,
			link          TEXT NOT NULL DEFAULT '',
			status        TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL,
			scheduled_for TIMESTAMPTZ,
			updated_at    TIMESTAMPTZ
		);
		CREATE TABLE IF NOT EXISTS gallery_items (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category    TEXT NOT NULL,
			image_url   TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ
		);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure content schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAnnouncements(ctx context.Context) ([]domain.Announcement, error) {
	const query = `
		SELECT id, title, message, audience, link, status, created_at, scheduled_for, updated_at
		FROM announcements
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	out := []domain.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetAnnouncement(ctx context.Context, id string) (domain.Announcement, error) {
	const query = `
		SELECT id, title, message, audience, link, status, created_at, scheduled_for, updated_at
		FROM announcements
		WHERE id = $1
	`
	a, err := scanAnnouncement(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Announcement{}, sentinel.ErrNotFound
	}
	return a, err
}

func (s *PostgresStore) InsertAnnouncement(ctx context.Context, a domain.Announcement) error {
	const query = `
		INSERT INTO announcements (id, title, message, audience, link, status, created_at, scheduled_for, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		a.ID, a.Title, a.Message, a.Audience, a.Link, string(a.Status),
		a.CreatedAt, nullTime(a.ScheduledFor), nullTime(a.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateAnnouncement(ctx context.Context, a domain.Announcement) error {
	const query = `
		UPDATE announcements
		SET title = $2, message = $3, audience = $4, link = $5, status = $6,
		    scheduled_for = $7, updated_at = $8
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		a.ID, a.Title, a.Message, a.Audience, a.Link, string(a.Status),
		nullTime(a.ScheduledFor), nullTime(a.UpdatedAt))
	if err != nil {
		return fmt.Errorf("update announcement: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) DeleteAnnouncement(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) ListGalleryItems(ctx context.Context) ([]domain.GalleryItem, error) {
	const query = `
		SELECT id, title, description, category, image_url, created_at, updated_at
		FROM gallery_items
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list gallery items: %w", err)
	}
	defer rows.Close()

	out := []domain.GalleryItem{}
	for rows.Next() {
		g, err := scanGalleryItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetGalleryItem(ctx context.Context, id string) (domain.GalleryItem, error) {
	const query = `
		SELECT id, title, description, category, image_url, created_at, updated_at
		FROM gallery_items
		WHERE id = $1
	`
	g, err := scanGalleryItem(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GalleryItem{}, sentinel.ErrNotFound
	}
	return g, err
}

func (s *PostgresStore) InsertGalleryItem(ctx context.Context, g domain.GalleryItem) error {
	const query = `
		INSERT INTO gallery_items (id, title, description, category, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		g.ID, g.Title, g.Description, g.Category, g.ImageURL, g.CreatedAt, nullTime(g.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert gallery item: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateGalleryItem(ctx context.Context, g domain.GalleryItem) error {
	const query = `
		UPDATE gallery_items
		SET title = $2, description = $3, category = $4, image_url = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		g.ID, g.Title, g.Description, g.Category, g.ImageURL, nullTime(g.UpdatedAt))
	if err != nil {
		return fmt.Errorf("update gallery item: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) DeleteGalleryItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM gallery_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete gallery item: %w", err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnnouncement(row rowScanner) (domain.Announcement, error) {
	var a domain.Announcement
	var status string
	var scheduledFor, updatedAt sql.NullTime
	if err := row.Scan(&a.ID, &a.Title, &a.Message, &a.Audience, &a.Link, &status,
		&a.CreatedAt, &scheduledFor, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Announcement{}, err
		}
		return domain.Announcement{}, fmt.Errorf("scan announcement: %w", err)
	}
	a.Status = domain.AnnouncementStatus(status)
	if scheduledFor.Valid {
		a.ScheduledFor = &scheduledFor.Time
	}
	if updatedAt.Valid {
		a.UpdatedAt = &updatedAt.Time
	}
	return a, nil
}

func scanGalleryItem(row rowScanner) (domain.GalleryItem, error) {
	var g domain.GalleryItem
	var updatedAt sql.NullTime
	if err := row.Scan(&g.ID, &g.Title, &g.Description, &g.Category, &g.ImageURL,
		&g.CreatedAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.GalleryItem{}, err
		}
		return domain.GalleryItem{}, fmt.Errorf("scan gallery item: %w", err)
	}
	if updatedAt.Valid {
		g.UpdatedAt = &updatedAt.Time
	}
	return g, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
