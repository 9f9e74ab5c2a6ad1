package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayushdesk/internal/domain"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestUsersIsDeterministic(t *testing.T) {
	first := Users(base)
	second := Users(base)
	require.Len(t, first, Count)
	assert.Equal(t, first, second)
}

func TestUsersDifferWithBase(t *testing.T) {
	a := Users(base)
	b := Users(base.Add(time.Hour))
	assert.NotEqual(t, a[0].CreatedAt, b[0].CreatedAt)
	// Identity fields do not depend on the base.
	assert.Equal(t, a[0].Personal.FullName, b[0].Personal.FullName)
}

func TestNewUserDerivations(t *testing.T) {
	u := NewUser(1, base)

	assert.Equal(t, "user-1", u.ID)
	assert.Equal(t, "Diya Chopra", u.Personal.FullName)
	assert.Equal(t, domain.StatusUnderReview, u.Status)
	assert.Equal(t, base.Add(-3*24*time.Hour), u.CreatedAt)
	assert.Equal(t, "diya.chopra@ayushmail.com", u.Contact.EmailPrimary)
	assert.Len(t, u.Documents, 4)
}

func TestDocumentCountRange(t *testing.T) {
	for _, u := range Users(base) {
		assert.GreaterOrEqual(t, len(u.Documents), 3, "user %s", u.ID)
		assert.LessOrEqual(t, len(u.Documents), 7, "user %s", u.ID)
	}
}

func TestOptionalQualifications(t *testing.T) {
	users := Users(base)
	for i, u := range users {
		index := i + 1
		if index%3 == 0 {
			assert.NotNil(t, u.Qualifications.PG, "user %s should hold a PG degree", u.ID)
		} else {
			assert.Nil(t, u.Qualifications.PG, "user %s should not hold a PG degree", u.ID)
		}
		if index%7 == 0 {
			assert.NotNil(t, u.Qualifications.PhD, "user %s should hold a PhD", u.ID)
		} else {
			assert.Nil(t, u.Qualifications.PhD, "user %s should not hold a PhD", u.ID)
		}
	}
}

func TestInitialAuditTrail(t *testing.T) {
	u := NewUser(5, base)
	require.Len(t, u.Audit, 3)

	assert.Equal(t, domain.AuditUserCreated, u.Audit[0].Action)
	assert.Equal(t, "system", u.Audit[0].Actor)
	assert.Equal(t, u.CreatedAt, u.Audit[0].At)

	assert.Equal(t, domain.AuditStatusUpdated, u.Audit[1].Action)
	assert.Equal(t, u.CreatedAt.Add(3*24*time.Hour), u.Audit[1].At)

	assert.Equal(t, domain.AuditNoteAdded, u.Audit[2].Action)
	assert.Equal(t, u.CreatedAt.Add(5*24*time.Hour), u.Audit[2].At)
}

func TestRejectedDocumentsCarryNotes(t *testing.T) {
	for _, u := range Users(base) {
		for _, d := range u.Documents {
			if d.VerifiedStatus == domain.DocRejected {
				assert.NotEmpty(t, d.Notes, "rejected doc %s should carry a note", d.ID)
			} else {
				assert.Empty(t, d.Notes, "doc %s should carry no note", d.ID)
			}
			assert.NotEmpty(t, d.URL, "doc %s should carry a URL", d.ID)
		}
	}
}

func TestMobileNumbersAreUnique(t *testing.T) {
	seen := map[string]string{}
	for _, u := range Users(base) {
		prev, dup := seen[u.Contact.MobileNumber]
		assert.False(t, dup, "mobile %s shared by %s and %s", u.Contact.MobileNumber, prev, u.ID)
		seen[u.Contact.MobileNumber] = u.ID
	}
}
