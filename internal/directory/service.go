package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"ayushdesk/internal/audit/stream"
	"ayushdesk/internal/domain"
	"ayushdesk/internal/platform/metrics"
	dErrors "ayushdesk/pkg/domain-errors"
	"ayushdesk/pkg/platform/sentinel"
)

// Latency is the simulated round-trip applied per operation tier. The zero
// value disables the delay entirely (tests).
type Latency struct {
	Read     time.Duration
	Document time.Duration
	Bulk     time.Duration
}

// DefaultLatency matches the tiers the console was tuned against.
var DefaultLatency = Latency{
	Read:     240 * time.Millisecond,
	Document: 160 * time.Millisecond,
	Bulk:     220 * time.Millisecond,
}

// Service owns all reads and mutations over the practitioner store. It is
// the only writer; handlers and the remote adapter call it, never the store.
type Service struct {
	store   *Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	stream  *stream.Publisher
	tracer  trace.Tracer
	latency Latency
	now     func() time.Time
}

type serviceConfig struct {
	metrics *metrics.Metrics
	stream  *stream.Publisher
	latency *Latency
	now     func() time.Time
}

// Option configures optional service collaborators.
type Option func(*serviceConfig)

// WithMetrics wires mutation counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *serviceConfig) { c.metrics = m }
}

// WithAuditStream mirrors appended audit entries to the stream publisher.
func WithAuditStream(p *stream.Publisher) Option {
	return func(c *serviceConfig) { c.stream = p }
}

// WithLatency overrides the simulated latency tiers. Pass the zero Latency
// to disable delays.
func WithLatency(l Latency) Option {
	return func(c *serviceConfig) { c.latency = &l }
}

// WithClock injects the timestamp source for audit entries.
func WithClock(now func() time.Time) Option {
	return func(c *serviceConfig) { c.now = now }
}

// NewService builds the directory service over the given store.
func NewService(store *Store, logger *slog.Logger, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	latency := DefaultLatency
	if cfg.latency != nil {
		latency = *cfg.latency
	}
	now := cfg.now
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:   store,
		logger:  logger,
		metrics: cfg.metrics,
		stream:  cfg.stream,
		tracer:  otel.Tracer("ayushdesk/directory"),
		latency: latency,
		now:     now,
	}
}

// simulate blocks for the configured delay. Deliberately not context-aware:
// once an operation's timer starts it always completes and applies its
// effect; callers discard stale results rather than cancel side effects.
func (s *Service) simulate(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

func (s *Service) auditEntry(actor string, action domain.AuditAction, details string) domain.AuditEntry {
	return domain.AuditEntry{At: s.now(), Actor: actor, Action: action, Details: details}
}

// ListUsers serves one page of the local user list.
func (s *Service) ListUsers(ctx context.Context, p Params) (Page[domain.UserSummary], error) {
	s.simulate(s.latency.Read)
	return QueryUsers(s.store.Summaries(), p), nil
}

// Summaries exposes the unfiltered local projection for the remote adapter's
// fallback path.
func (s *Service) Summaries(ctx context.Context) []domain.UserSummary {
	return s.store.Summaries()
}

// GetUser returns the detail projection for one practitioner.
func (s *Service) GetUser(ctx context.Context, id string) (domain.UserDetail, error) {
	if id == "" {
		return domain.UserDetail{}, dErrors.New(dErrors.CodeBadRequest, "user id is required")
	}
	s.simulate(s.latency.Read)
	user, err := s.store.Get(id)
	if err != nil {
		return domain.UserDetail{}, wrapUserErr(err, id)
	}
	return user.Detail(), nil
}

// UpdateStatusInput drives a single-user status change.
type UpdateStatusInput struct {
	ID     string
	Status domain.Status
	Note   string
	Actor  string
}

// UpdateUserStatus sets the lifecycle status and prepends the audit entries:
// the optional NOTE_ADDED first, then STATUS_UPDATED, so the status change
// ends up newest.
func (s *Service) UpdateUserStatus(ctx context.Context, in UpdateStatusInput) (domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "directory.UpdateUserStatus")
	defer span.End()

	if !in.Status.IsValid() {
		return domain.User{}, dErrors.Newf(dErrors.CodeBadRequest, "invalid status %q", in.Status)
	}
	actor := in.Actor
	if actor == "" {
		actor = "superadmin"
	}
	s.simulate(s.latency.Read)

	var appended []domain.AuditEntry
	updated, err := s.store.Update(in.ID, func(u *domain.User) error {
		u.Status = in.Status
		if in.Note != "" {
			entry := s.auditEntry(actor, domain.AuditNoteAdded, in.Note)
			u.Audit = append([]domain.AuditEntry{entry}, u.Audit...)
			appended = append(appended, entry)
		}
		entry := s.auditEntry(actor, domain.AuditStatusUpdated, fmt.Sprintf("Status changed to %s", in.Status))
		u.Audit = append([]domain.AuditEntry{entry}, u.Audit...)
		appended = append(appended, entry)
		return nil
	})
	if err != nil {
		return domain.User{}, wrapUserErr(err, in.ID)
	}
	s.metrics.ObserveMutation("update_user_status")
	for _, entry := range appended {
		s.stream.Emit(ctx, updated.ID, entry)
	}
	return updated, nil
}

// DeleteUser removes a practitioner from the local store.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "directory.DeleteUser")
	defer span.End()

	if id == "" {
		return dErrors.New(dErrors.CodeBadRequest, "user id is required")
	}
	s.simulate(s.latency.Read)
	if err := s.store.Remove(id); err != nil {
		return wrapUserErr(err, id)
	}
	s.metrics.ObserveMutation("delete_user")
	return nil
}

// DocumentActionInput drives a verify or reject on a single document.
type DocumentActionInput struct {
	DocID string
	Note  string
	Actor string
}

// DocumentActionResult carries both updated views a reviewer needs: the
// enriched document and the owning user with its new audit trail.
type DocumentActionResult struct {
	Document domain.DocumentRecord `json:"document"`
	User     domain.User           `json:"user"`
}

// VerifyDocument marks a document VERIFIED and records DOCUMENT_VERIFIED on
// the owning user.
func (s *Service) VerifyDocument(ctx context.Context, in DocumentActionInput) (DocumentActionResult, error) {
	return s.setDocumentStatus(ctx, in, domain.DocVerified, domain.AuditDocumentVerified)
}

// RejectDocument marks a document REJECTED and records DOCUMENT_REJECTED on
// the owning user. Rejected documents stay re-reviewable.
func (s *Service) RejectDocument(ctx context.Context, in DocumentActionInput) (DocumentActionResult, error) {
	return s.setDocumentStatus(ctx, in, domain.DocRejected, domain.AuditDocumentRejected)
}

func (s *Service) setDocumentStatus(ctx context.Context, in DocumentActionInput, status domain.DocumentStatus, action domain.AuditAction) (DocumentActionResult, error) {
	ctx, span := s.tracer.Start(ctx, "directory.SetDocumentStatus")
	defer span.End()

	actor := in.Actor
	if actor == "" {
		actor = "verifier"
	}
	s.simulate(s.latency.Document)

	var entry domain.AuditEntry
	doc, user, err := s.store.UpdateDocument(in.DocID, func(owner *domain.User, d *domain.Document) {
		details := fmt.Sprintf("%s marked as %s", d.Name, status)
		if in.Note != "" {
			details += " – " + in.Note
			d.Notes = in.Note
		}
		d.VerifiedStatus = status
		entry = s.auditEntry(actor, action, details)
		owner.Audit = append([]domain.AuditEntry{entry}, owner.Audit...)
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return DocumentActionResult{}, dErrors.Newf(dErrors.CodeNotFound, "document %s not found", in.DocID)
		}
		return DocumentActionResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "document update failed")
	}
	s.metrics.ObserveMutation("set_document_status")
	s.stream.Emit(ctx, user.ID, entry)
	return DocumentActionResult{Document: doc, User: user}, nil
}

// BulkUpdateUsers applies the status change to every resolvable id, silently
// skipping ids with no matching user. Best-effort by design: there is no
// partial-failure error, only the list of users actually updated.
func (s *Service) BulkUpdateUsers(ctx context.Context, ids []string, status domain.Status, actor string) ([]domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "directory.BulkUpdateUsers")
	defer span.End()

	if !status.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "invalid status %q", status)
	}
	if actor == "" {
		actor = "superadmin"
	}
	s.simulate(s.latency.Bulk)

	updated := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		var entry domain.AuditEntry
		user, err := s.store.Update(id, func(u *domain.User) error {
			u.Status = status
			entry = s.auditEntry(actor, domain.AuditStatusUpdated, fmt.Sprintf("Bulk status change to %s", status))
			u.Audit = append([]domain.AuditEntry{entry}, u.Audit...)
			return nil
		})
		if err != nil {
			continue
		}
		s.stream.Emit(ctx, user.ID, entry)
		updated = append(updated, user)
	}
	s.metrics.ObserveMutation("bulk_update_users")
	return updated, nil
}

// DocumentParams drives one page of the global document index.
type DocumentParams struct {
	Page     int
	PageSize int
	Type     string
	Status   string
	Search   string
}

// ListDocuments filters the global document index by type, review status and
// substring search, then paginates.
func (s *Service) ListDocuments(ctx context.Context, p DocumentParams) (Page[domain.DocumentRecord], error) {
	s.simulate(s.latency.Read)
	docs := s.store.Documents()
	if p.Type != "" && p.Type != "ALL" {
		docs = keepDocs(docs, func(d domain.DocumentRecord) bool { return string(d.Type) == p.Type })
	}
	if p.Status != "" && p.Status != "ALL" {
		docs = keepDocs(docs, func(d domain.DocumentRecord) bool { return string(d.VerifiedStatus) == p.Status })
	}
	if query := normalizeQuery(p.Search); query != "" {
		docs = keepDocs(docs, func(d domain.DocumentRecord) bool {
			return containsFold(query, d.Name, d.UserName, string(d.Type), string(d.VerifiedStatus))
		})
	}
	return Paginate(docs, p.Page, p.PageSize), nil
}

// Reset restores the exact initial generated dataset, discarding every
// mutation. The only non-append path for audit trails.
func (s *Service) Reset(ctx context.Context) {
	s.store.Reset()
	s.metrics.ObserveReset()
	s.logger.InfoContext(ctx, "seed store reset")
}

func keepDocs(docs []domain.DocumentRecord, keep func(domain.DocumentRecord) bool) []domain.DocumentRecord {
	out := make([]domain.DocumentRecord, 0, len(docs))
	for _, d := range docs {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func containsFold(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func wrapUserErr(err error, id string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Newf(dErrors.CodeNotFound, "user %s not found", id)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "user operation failed")
}
