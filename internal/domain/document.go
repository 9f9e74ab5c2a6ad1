package domain

import "time"

// DocumentType is the closed set of upload categories.
type DocumentType string

const (
	DocTypePhoto        DocumentType = "PHOTO"
	DocTypeIDProof      DocumentType = "ID_PROOF"
	DocTypeAddressProof DocumentType = "ADDRESS_PROOF"
	DocTypeUGDegree     DocumentType = "UG_DEGREE"
	DocTypePGDegree     DocumentType = "PG_DEGREE"
	DocTypePhDCert      DocumentType = "PHD_CERT"
	DocTypeCouncilReg   DocumentType = "COUNCIL_REG"
	DocTypeOther        DocumentType = "OTHER"
)

// DocumentStatus is the review state of a single document.
//
// State machine: UNVERIFIED -> VERIFIED (terminal) or UNVERIFIED -> REJECTED
// (re-reviewable). Nothing transitions out of VERIFIED, and only the explicit
// verify/reject operations change the status.
type DocumentStatus string

const (
	DocUnverified DocumentStatus = "UNVERIFIED"
	DocVerified   DocumentStatus = "VERIFIED"
	DocRejected   DocumentStatus = "REJECTED"
)

// Document belongs to exactly one user. IDs are unique across the whole
// store, which is what lets verify/reject locate a document without knowing
// its owner.
type Document struct {
	ID             string         `json:"id"`
	Type           DocumentType   `json:"type"`
	Name           string         `json:"name"`
	URL            string         `json:"url"`
	UploadedAt     time.Time      `json:"uploadedAt"`
	VerifiedStatus DocumentStatus `json:"verifiedStatus"`
	Notes          string         `json:"notes,omitempty"`
}

// DocumentRecord is a document enriched with its owner, as served by the
// global document index.
type DocumentRecord struct {
	Document
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}
