package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"ayushdesk/internal/remote"
	"ayushdesk/internal/remote/mocks"
	dErrors "ayushdesk/pkg/domain-errors"
)

type AuthServiceSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	upstream *mocks.MockUpstream
	svc      *Service
}

func (s *AuthServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.upstream = mocks.NewMockUpstream(s.ctrl)

	tokens := NewTokenService("test-signing-key", "ayushdesk-test", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.svc = NewService(s.upstream, tokens, LocalOperator{
		Email:       "admin@ayushdesk.local",
		Password:    "admin123",
		DisplayName: "Super Admin",
	}, logger)
}

func (s *AuthServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) TestLoginPrefersUpstream() {
	s.upstream.EXPECT().Login(gomock.Any(), "op@example.org", "pw").Return(remote.LoginResult{
		Admin: json.RawMessage(`{"email":"op@example.org"}`),
		Token: "upstream-token",
	}, nil)

	result, err := s.svc.Login(s.ctx, "op@example.org", "pw")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "upstream-token", result.Token)
}

func (s *AuthServiceSuite) TestLoginUpstreamRefusalSurfaces() {
	s.upstream.EXPECT().Login(gomock.Any(), "op@example.org", "wrong").
		Return(remote.LoginResult{}, &remote.StatusError{Status: 401, Message: "Invalid credentials"})

	_, err := s.svc.Login(s.ctx, "op@example.org", "wrong")
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeBadRequest))
	assert.Equal(s.T(), "Invalid credentials", dErrors.MessageFor(err))
}

func (s *AuthServiceSuite) TestLoginFallsBackToLocalOperator() {
	s.upstream.EXPECT().Login(gomock.Any(), "admin@ayushdesk.local", "admin123").
		Return(remote.LoginResult{}, errors.New("dial tcp: connection refused"))

	result, err := s.svc.Login(s.ctx, "admin@ayushdesk.local", "admin123")
	require.NoError(s.T(), err)

	assert.NotEmpty(s.T(), result.Token)
	assert.Equal(s.T(), "Login successful (local session)", result.Message)

	claims, err := s.svc.Validate(result.Token)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "admin@ayushdesk.local", claims.Email)
	assert.Equal(s.T(), "Super Admin", claims.DisplayName)
}

func (s *AuthServiceSuite) TestLoginLocalFallbackRejectsWrongPassword() {
	s.upstream.EXPECT().Login(gomock.Any(), "admin@ayushdesk.local", "guess").
		Return(remote.LoginResult{}, errors.New("dial tcp: connection refused"))

	_, err := s.svc.Login(s.ctx, "admin@ayushdesk.local", "guess")
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *AuthServiceSuite) TestLoginRequiresCredentials() {
	_, err := s.svc.Login(s.ctx, "", "pw")
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *AuthServiceSuite) TestLogoutUnreachableIsSuccess() {
	s.upstream.EXPECT().Logout(gomock.Any()).Return(errors.New("dial tcp: connection refused"))
	assert.NoError(s.T(), s.svc.Logout(s.ctx))
}

func (s *AuthServiceSuite) TestRegisterHasNoLocalFallback() {
	s.upstream.EXPECT().Register(gomock.Any(), gomock.Any()).
		Return(nil, "", errors.New("dial tcp: connection refused"))

	_, _, err := s.svc.Register(s.ctx, map[string]string{"email": "a@b.c", "password": "pw"})
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeUpstream))
}

func (s *AuthServiceSuite) TestValidateRejectsGarbage() {
	_, err := s.svc.Validate("not-a-token")
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *AuthServiceSuite) TestValidateTokenMiddlewareAdapter() {
	token, err := NewTokenService("test-signing-key", "ayushdesk-test", time.Hour).
		Generate("admin@ayushdesk.local", "Super Admin")
	require.NoError(s.T(), err)

	claims, err := s.svc.ValidateToken(token)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "admin@ayushdesk.local", claims.Email)
}
