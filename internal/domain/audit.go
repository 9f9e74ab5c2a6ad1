package domain

import "time"

// AuditAction is the closed set of actions recorded on a user's audit trail.
type AuditAction string

const (
	AuditUserCreated      AuditAction = "USER_CREATED"
	AuditStatusUpdated    AuditAction = "STATUS_UPDATED"
	AuditNoteAdded        AuditAction = "NOTE_ADDED"
	AuditDocumentVerified AuditAction = "DOCUMENT_VERIFIED"
	AuditDocumentRejected AuditAction = "DOCUMENT_REJECTED"
)

// AuditEntry is immutable once created. Entries are prepended to the owning
// user's trail, keeping it most-recent-first.
type AuditEntry struct {
	At      time.Time   `json:"at"`
	Actor   string      `json:"actor"`
	Action  AuditAction `json:"action"`
	Details string      `json:"details"`
}
