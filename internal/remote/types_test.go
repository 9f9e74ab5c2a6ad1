package remote

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayushdesk/internal/domain"
)

var normalizeNow = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

func TestRemoteUserNormalizeIdentityAliases(t *testing.T) {
	byMongo := RemoteUser{MongoID: "m-1", ID: "plain-1", Email: "a@b.c"}.Normalize(normalizeNow)
	assert.Equal(t, "m-1", byMongo.ID)

	byID := RemoteUser{ID: "plain-1", Email: "a@b.c"}.Normalize(normalizeNow)
	assert.Equal(t, "plain-1", byID.ID)

	byEmail := RemoteUser{Email: "a@b.c"}.Normalize(normalizeNow)
	assert.Equal(t, "a@b.c", byEmail.ID)

	generated := RemoteUser{}.Normalize(normalizeNow)
	assert.True(t, strings.HasPrefix(generated.ID, "user-"))
	assert.NotEqual(t, "user-", generated.ID)
}

func TestRemoteUserNormalizePhoneShapes(t *testing.T) {
	asString := RemoteUser{PhoneNumber: json.RawMessage(`"+91-9800000001"`)}.Normalize(normalizeNow)
	assert.Equal(t, "+91-9800000001", asString.PhoneNumber)

	asNumber := RemoteUser{PhoneNumber: json.RawMessage(`9800000001`)}.Normalize(normalizeNow)
	assert.Equal(t, "9800000001", asNumber.PhoneNumber)

	fromContact := RemoteUser{Contact: &RemoteContact{MobileNumber: "+91-77"}}.Normalize(normalizeNow)
	assert.Equal(t, "+91-77", fromContact.PhoneNumber)

	asNull := RemoteUser{PhoneNumber: json.RawMessage(`null`)}.Normalize(normalizeNow)
	assert.Empty(t, asNull.PhoneNumber)
}

func TestRemoteUserNormalizeVerificationFlag(t *testing.T) {
	explicit := true
	fromBool := RemoteUser{IsEmailVerified: &explicit, Status: "REJECTED"}.Normalize(normalizeNow)
	assert.True(t, fromBool.IsEmailVerified)
	assert.Equal(t, domain.FlagVerified, fromBool.Status)

	fromStatus := RemoteUser{Status: "VERIFIED"}.Normalize(normalizeNow)
	assert.True(t, fromStatus.IsEmailVerified)

	neither := RemoteUser{}.Normalize(normalizeNow)
	assert.False(t, neither.IsEmailVerified)
	assert.Equal(t, domain.FlagUnverified, neither.Status)
}

func TestRemoteUserNormalizeTimestamps(t *testing.T) {
	parsed := RemoteUser{CreatedAt: "2024-03-01T10:00:00Z"}.Normalize(normalizeNow)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), parsed.CreatedAt)

	fromUpdated := RemoteUser{UpdatedAt: "2024-04-02"}.Normalize(normalizeNow)
	assert.Equal(t, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), fromUpdated.CreatedAt)

	fallback := RemoteUser{CreatedAt: "not-a-date"}.Normalize(normalizeNow)
	assert.Equal(t, normalizeNow, fallback.CreatedAt)
}

func TestUserStatsMetrics(t *testing.T) {
	var stats UserStats
	stats.User.Total = 40
	stats.User.Verified = 25
	stats.User.Unverified = 15
	stats.Profile.Medical = 12
	stats.Profile.NonMedical = 28

	m := stats.Metrics(normalizeNow)
	assert.Equal(t, 40, m.TotalUsers)
	assert.Equal(t, 25, m.StatusCounts[domain.StatusVerified])
	assert.Equal(t, 15, m.StatusCounts[domain.StatusPending])
	assert.Equal(t, 15, m.NonVerifiedUsers)
	assert.Equal(t, 12, m.MedicalProfessionals)
	// Document counters are not served upstream.
	assert.Zero(t, m.DocumentsPending)
	assert.Zero(t, m.DocumentsFlagged)
}

func TestDetailNormalize(t *testing.T) {
	d := Detail{
		ProfessionalType: "medical_prof",
		Data:             json.RawMessage(`{"userId":"u-9","fullname":"Dr. X"}`),
	}
	out := d.Normalize("requested-id")
	assert.Equal(t, "u-9", out.ID)
	assert.Equal(t, "medical_prof", out.ProfessionalType)

	empty := Detail{}.Normalize("requested-id")
	assert.Equal(t, "requested-id", empty.ID)
	assert.JSONEq(t, `{}`, string(empty.Profile))
}

func TestParseLoginPayloadTokenAliases(t *testing.T) {
	cases := map[string]string{
		`{"token":"t1"}`:              "t1",
		`{"accessToken":"t2"}`:        "t2",
		`{"authToken":"t3"}`:          "t3",
		`{"tokens":{"access":"t4"}}`:  "t4",
		`{"token":"t1","authToken":"x"}`: "t1",
	}
	for payload, want := range cases {
		got := parseLoginPayload(json.RawMessage(payload))
		assert.Equal(t, want, got.Token, "payload %s", payload)
	}
}

func TestParseLoginPayloadAdminAliases(t *testing.T) {
	fromUser := parseLoginPayload(json.RawMessage(`{"user":{"email":"a@b.c","name":"Alex"},"token":"t"}`))
	require.NotEmpty(t, fromUser.Admin)
	assert.Equal(t, "a@b.c", fromUser.Email)
	assert.Equal(t, "Alex", fromUser.DisplayName)

	bare := parseLoginPayload(json.RawMessage(`{"token":"t"}`))
	assert.JSONEq(t, `{}`, string(bare.Admin))
}
