package domain

import "time"

// Status is the 4-state review lifecycle of a practitioner registration.
//
// Invariants:
//   - Transitions happen only through directory mutations, never by direct
//     field writes from callers (reads hand out deep copies).
//   - Status is independent of the 2-state email-verification flag carried
//     on list projections; the two concepts are deliberately kept apart.
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusVerified    Status = "VERIFIED"
	StatusRejected    Status = "REJECTED"
)

// IsValid reports whether s is one of the closed set of lifecycle states.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusVerified, StatusRejected:
		return true
	}
	return false
}

// VerificationFlag is the 2-state email-verification projection used by the
// user list and its status filter. Distinct from Status by design.
type VerificationFlag string

const (
	FlagVerified   VerificationFlag = "VERIFIED"
	FlagUnverified VerificationFlag = "UNVERIFIED"
)

// User is the aggregate root for a practitioner registration under review.
// Documents and the audit trail are owned exclusively by the user; the audit
// trail is newest-first and append-only except for a store reset.
type User struct {
	ID             string         `json:"id"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt,omitzero"`
	Status         Status         `json:"status"`
	Personal       Personal       `json:"personal"`
	Contact        Contact        `json:"contact"`
	Qualifications Qualifications `json:"qualifications"`
	Regulatory     Regulatory     `json:"regulatory"`
	Documents      []Document     `json:"documents"`
	Audit          []AuditEntry   `json:"audit"`
}

type Personal struct {
	FullName      string `json:"fullName"`
	Gender        string `json:"gender"`
	DOB           string `json:"dob"`
	ParentsName   string `json:"parentsName"`
	MaritalStatus string `json:"maritalStatus"`
	Nationality   string `json:"nationality"`
	PhotoURL      string `json:"photoUrl"`
}

type Address struct {
	HouseNo string `json:"houseNo"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	PinCode string `json:"pinCode"`
}

type Contact struct {
	PermanentAddress      Address `json:"permanentAddress"`
	CorrespondenceAddress Address `json:"correspondenceAddress"`
	MobileNumber          string  `json:"mobileNumber"`
	AltContactNumber      string  `json:"altContactNumber,omitempty"`
	EmailPrimary          string  `json:"emailPrimary"`
	EmailAlternate        string  `json:"emailAlternate,omitempty"`
}

type UGQualification struct {
	Degree        string `json:"degree"`
	College       string `json:"college"`
	YearOfPassing int    `json:"yearOfPassing"`
}

type PGQualification struct {
	Degree         string `json:"degree"`
	Specialization string `json:"specialization"`
	College        string `json:"college"`
	YearOfPassing  int    `json:"yearOfPassing"`
}

type PhD struct {
	Title     string `json:"title"`
	Institute string `json:"institute"`
	Year      int    `json:"year"`
}

type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   int    `json:"year"`
}

// Qualifications always carries a UG record; PG and PhD are optional and nil
// when absent. Certifications keep their insertion order.
type Qualifications struct {
	UG             UGQualification  `json:"ug"`
	PG             *PGQualification `json:"pg,omitempty"`
	PhD            *PhD             `json:"phd,omitempty"`
	Certifications []Certification  `json:"certifications"`
}

type Regulatory struct {
	AyushCouncilRegNo  string    `json:"ayushCouncilRegNo"`
	CouncilName        string    `json:"councilName"`
	DateOfRegistration time.Time `json:"dateOfRegistration"`
	Validity           time.Time `json:"validity"`
}

// Clone returns a deep, independent copy. Callers can never mutate store
// state through a returned user, nor observe later mutations through it.
func (u User) Clone() User {
	out := u
	if u.Qualifications.PG != nil {
		pg := *u.Qualifications.PG
		out.Qualifications.PG = &pg
	}
	if u.Qualifications.PhD != nil {
		phd := *u.Qualifications.PhD
		out.Qualifications.PhD = &phd
	}
	out.Qualifications.Certifications = append([]Certification(nil), u.Qualifications.Certifications...)
	out.Documents = append([]Document(nil), u.Documents...)
	out.Audit = append([]AuditEntry(nil), u.Audit...)
	return out
}

// EmailVerified is the projection rule used by list views: the email flag is
// derived from the lifecycle status when no explicit flag is known.
func (u User) EmailVerified() bool {
	return u.Status == StatusVerified
}

// Summary builds the flat list projection for the user table.
func (u User) Summary() UserSummary {
	flag := FlagUnverified
	if u.EmailVerified() {
		flag = FlagVerified
	}
	return UserSummary{
		ID:              u.ID,
		Fullname:        u.Personal.FullName,
		Email:           u.Contact.EmailPrimary,
		PhoneNumber:     u.Contact.MobileNumber,
		IsEmailVerified: u.EmailVerified(),
		CreatedAt:       u.CreatedAt,
		RegisteredAs:    u.Qualifications.UG.Degree,
		Status:          flag,
	}
}

// UserSummary is the normalized row shape the user list renders, regardless
// of whether the row came from the upstream registry or the local store.
type UserSummary struct {
	ID              string           `json:"id"`
	Fullname        string           `json:"fullname"`
	Email           string           `json:"email"`
	PhoneNumber     string           `json:"phoneNumber"`
	IsEmailVerified bool             `json:"isEmailVerified"`
	CreatedAt       time.Time        `json:"createdAt"`
	Role            string           `json:"role"`
	RegisteredAs    string           `json:"registeredAs"`
	Status          VerificationFlag `json:"status"`
}
