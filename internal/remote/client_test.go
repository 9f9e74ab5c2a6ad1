package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayushdesk/pkg/platform/sentinel"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, srv.Client()), srv
}

func TestClientWrapsTransportErrors(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", nil)

	_, err := client.GetAllUsers(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	assert.True(t, IsUnavailable(err))
}

func TestClientRefusalIsStatusError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"success":false,"message":"forbidden"}`))
	})
	defer srv.Close()

	_, err := client.GetUserStats(context.Background())
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.Status)
	assert.Equal(t, "forbidden", se.Message)
	assert.False(t, IsUnavailable(err))
}

func TestGetAllUsersNonArrayDataIsEmptyList(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, usersEndpoint, r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{"unexpected":"shape"}}`))
	})
	defer srv.Close()

	items, err := client.GetAllUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetAllUsersDecodesList(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[{"_id":"m-1","fullname":"Remote One"}]}`))
	})
	defer srv.Close()

	items, err := client.GetAllUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "m-1", items[0].MongoID)
}

func TestGetUserStatsRequiresData(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":null}`))
	})
	defer srv.Close()

	_, err := client.GetUserStats(context.Background())
	assert.Error(t, err)
}

func TestLoginFailureEnvelopeIsRefusal(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	})
	defer srv.Close()

	_, err := client.Login(context.Background(), "a@b.c", "pw")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Invalid credentials", se.Message)
}

func TestLoginParsesTokenAliases(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, loginEndpoint, r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"message":"Welcome","data":{"admin":{"email":"a@b.c"},"accessToken":"tok-1"}}`))
	})
	defer srv.Close()

	result, err := client.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", result.Token)
	assert.Equal(t, "Welcome", result.Message)
}

func TestLogoutTreats401AsSuccess(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"session expired"}`))
	})
	defer srv.Close()

	assert.NoError(t, client.Logout(context.Background()))
}
