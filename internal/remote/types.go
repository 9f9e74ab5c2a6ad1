package remote

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ayushdesk/internal/domain"
)

// RemoteUser is the loose upstream user shape. Several deployments disagree
// on key names, so identity and contact fields accept every alias observed
// in the wild; Normalize collapses them into the internal projection.
type RemoteUser struct {
	MongoID         string          `json:"_id"`
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	Fullname        string          `json:"fullname"`
	PhoneNumber     json.RawMessage `json:"phoneNumber"`
	IsEmailVerified *bool           `json:"isEmailVerified"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
	Role            string          `json:"role"`
	RegisteredAs    string          `json:"registeredAs"`
	Contact         *RemoteContact  `json:"contact"`
	Personal        *RemotePersonal `json:"personal"`
}

type RemoteContact struct {
	MobileNumber string `json:"mobileNumber"`
	EmailPrimary string `json:"emailPrimary"`
}

type RemotePersonal struct {
	FullName string `json:"fullName"`
}

// Normalize maps a remote user onto the internal list projection:
// identity from _id|id|email (generated when all absent), phone from the
// top-level field or contact.mobileNumber, the email-verification flag from
// the explicit boolean or derived from status == VERIFIED.
func (r RemoteUser) Normalize(now time.Time) domain.UserSummary {
	id := firstNonEmpty(r.MongoID, r.ID, r.Email)
	if id == "" {
		id = "user-" + uuid.NewString()
	}

	createdAt := now
	if t, ok := parseTime(firstNonEmpty(r.CreatedAt, r.UpdatedAt)); ok {
		createdAt = t
	}

	phone := rawToString(r.PhoneNumber)
	if phone == "" && r.Contact != nil {
		phone = r.Contact.MobileNumber
	}
	email := r.Email
	if email == "" && r.Contact != nil {
		email = r.Contact.EmailPrimary
	}
	fullname := r.Fullname
	if fullname == "" && r.Personal != nil {
		fullname = r.Personal.FullName
	}

	verified := false
	switch {
	case r.IsEmailVerified != nil:
		verified = *r.IsEmailVerified
	case r.Status != "":
		verified = r.Status == string(domain.StatusVerified)
	}

	flag := domain.FlagUnverified
	if verified {
		flag = domain.FlagVerified
	}
	return domain.UserSummary{
		ID:              id,
		Fullname:        fullname,
		Email:           email,
		PhoneNumber:     phone,
		IsEmailVerified: verified,
		CreatedAt:       createdAt,
		Role:            r.Role,
		RegisteredAs:    r.RegisteredAs,
		Status:          flag,
	}
}

// UserStats is the upstream dashboard aggregate shape.
type UserStats struct {
	User struct {
		Total      int `json:"total"`
		Verified   int `json:"verified"`
		Unverified int `json:"unverified"`
	} `json:"user"`
	Profile struct {
		Medical    int `json:"medical"`
		NonMedical int `json:"nonMedical"`
	} `json:"profile"`
}

// Metrics maps the upstream stats whole onto the dashboard aggregate.
// Document counters are not served upstream and stay zero; partial remote
// data is never mixed with local computation.
func (s UserStats) Metrics(now time.Time) domain.DashboardMetrics {
	counts := domain.ZeroStatusCounts()
	counts[domain.StatusVerified] = s.User.Verified
	counts[domain.StatusPending] = s.User.Unverified
	return domain.DashboardMetrics{
		TotalUsers:              s.User.Total,
		StatusCounts:            counts,
		MedicalProfessionals:    s.Profile.Medical,
		NonMedicalProfessionals: s.Profile.NonMedical,
		NonVerifiedUsers:        s.User.Unverified,
		UpdatedAt:               now,
	}
}

// Detail is the upstream user-detail payload. The profile body is kept
// opaque; only identity and professional type are probed.
type Detail struct {
	ProfessionalType string          `json:"professionalType"`
	Data             json.RawMessage `json:"data"`
}

type detailProbe struct {
	UserID           string `json:"userId"`
	MongoID          string `json:"_id"`
	ProfessionalType string `json:"professionalType"`
}

// Normalize resolves the detail's identity aliases against the requested id.
func (d Detail) Normalize(requestedID string) UserDetail {
	var probe detailProbe
	_ = json.Unmarshal(d.Data, &probe)

	profile := d.Data
	if len(profile) == 0 {
		profile = json.RawMessage(`{}`)
	}
	return UserDetail{
		ID:               firstNonEmpty(probe.UserID, probe.MongoID, requestedID),
		ProfessionalType: firstNonEmpty(d.ProfessionalType, probe.ProfessionalType),
		Profile:          profile,
	}
}

// UserDetail is the normalized detail shape handed to the UI; Profile is raw
// JSON because upstream and local profiles share a schema the UI consumes
// directly.
type UserDetail struct {
	ID               string          `json:"id"`
	ProfessionalType string          `json:"professionalType"`
	Profile          json.RawMessage `json:"profile"`
}

// LoginResult is the normalized login payload. Token accepts every alias the
// upstream variants use.
type LoginResult struct {
	Admin       json.RawMessage `json:"admin"`
	Token       string          `json:"token"`
	Email       string          `json:"email,omitempty"`
	DisplayName string          `json:"displayName,omitempty"`
	Message     string          `json:"message,omitempty"`
}

type loginPayload struct {
	Admin   json.RawMessage `json:"admin"`
	User    json.RawMessage `json:"user"`
	Profile json.RawMessage `json:"profile"`
	Email   string          `json:"email"`

	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
	AuthToken   string `json:"authToken"`
	Tokens      struct {
		Access string `json:"access"`
	} `json:"tokens"`
}

type adminProbe struct {
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	FullName string `json:"full_name"`
	Name     string `json:"name"`
}

func parseLoginPayload(data json.RawMessage) LoginResult {
	var p loginPayload
	_ = json.Unmarshal(data, &p)

	admin := p.Admin
	if len(admin) == 0 {
		admin = p.User
	}
	if len(admin) == 0 {
		admin = p.Profile
	}
	if len(admin) == 0 {
		admin = json.RawMessage(`{}`)
	}

	var probe adminProbe
	_ = json.Unmarshal(admin, &probe)

	return LoginResult{
		Admin:       admin,
		Token:       firstNonEmpty(p.Token, p.AccessToken, p.AuthToken, p.Tokens.Access),
		Email:       firstNonEmpty(probe.Email, p.Email),
		DisplayName: firstNonEmpty(probe.Fullname, probe.FullName, probe.Name),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		return fmt.Sprint(v)
	}
	return ""
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
