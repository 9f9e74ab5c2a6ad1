package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"ayushdesk/internal/platform/middleware"
	"ayushdesk/internal/remote"
	dErrors "ayushdesk/pkg/domain-errors"
)

// LocalOperator is the seeded console operator honored when the upstream
// registry is unreachable. Credentials come from configuration; the default
// exists so a fresh checkout can log in against pure seed data.
type LocalOperator struct {
	Email       string
	Password    string
	DisplayName string
}

// Service proxies operator auth to the upstream registry. When the upstream
// is unreachable (not when it refuses the credentials), login degrades to
// the locally seeded operator and a locally signed session token, keeping
// the console usable against seed data.
type Service struct {
	upstream remote.Upstream
	tokens   *TokenService
	local    LocalOperator
	logger   *slog.Logger
}

func NewService(upstream remote.Upstream, tokens *TokenService, local LocalOperator, logger *slog.Logger) *Service {
	return &Service{upstream: upstream, tokens: tokens, local: local, logger: logger}
}

// Login authenticates an operator. Upstream refusals surface as-is; only an
// unreachable upstream triggers the local fallback.
func (s *Service) Login(ctx context.Context, email, password string) (remote.LoginResult, error) {
	if email == "" || password == "" {
		return remote.LoginResult{}, dErrors.New(dErrors.CodeBadRequest, "email and password are required")
	}
	result, err := s.upstream.Login(ctx, email, password)
	if err == nil {
		return result, nil
	}
	if !remote.IsUnavailable(err) {
		msg := "failed to login"
		var se *remote.StatusError
		if errors.As(err, &se) && se.Message != "" {
			msg = se.Message
		}
		return remote.LoginResult{}, dErrors.Wrap(err, dErrors.CodeBadRequest, msg)
	}

	s.logger.WarnContext(ctx, "upstream login unavailable, trying local operator", "error", err.Error())
	if email != s.local.Email || password != s.local.Password {
		return remote.LoginResult{}, dErrors.New(dErrors.CodeBadRequest, "invalid credentials")
	}
	token, tokenErr := s.tokens.Generate(s.local.Email, s.local.DisplayName)
	if tokenErr != nil {
		return remote.LoginResult{}, dErrors.Wrap(tokenErr, dErrors.CodeInternal, "failed to issue session token")
	}
	admin, _ := json.Marshal(map[string]string{
		"email":    s.local.Email,
		"fullname": s.local.DisplayName,
	})
	return remote.LoginResult{
		Admin:       admin,
		Token:       token,
		Email:       s.local.Email,
		DisplayName: s.local.DisplayName,
		Message:     "Login successful (local session)",
	}, nil
}

// Logout ends the upstream session; an unreachable upstream is not a logout
// failure, the client-side session simply ends.
func (s *Service) Logout(ctx context.Context) error {
	err := s.upstream.Logout(ctx)
	if err == nil {
		return nil
	}
	if remote.IsUnavailable(err) {
		s.logger.WarnContext(ctx, "upstream logout unavailable, session ends locally", "error", err.Error())
		return nil
	}
	return dErrors.Wrap(err, dErrors.CodeUpstream, "failed to logout")
}

// Register creates an operator account upstream. There is no local
// fallback: account creation must not silently target the seed store.
func (s *Service) Register(ctx context.Context, payload map[string]string) (json.RawMessage, string, error) {
	if payload["email"] == "" || payload["password"] == "" {
		return nil, "", dErrors.New(dErrors.CodeBadRequest, "email and password are required")
	}
	data, message, err := s.upstream.Register(ctx, payload)
	if err != nil {
		if remote.IsUnavailable(err) {
			return nil, "", dErrors.Wrap(err, dErrors.CodeUpstream, "registration requires the upstream registry")
		}
		return nil, "", dErrors.Wrap(err, dErrors.CodeBadRequest, fmt.Sprintf("failed to register admin: %v", err))
	}
	return data, message, nil
}

// Validate checks a session token issued by this service.
func (s *Service) Validate(raw string) (*Claims, error) {
	return s.tokens.Validate(raw)
}

// ValidateToken satisfies the auth middleware's validator interface.
func (s *Service) ValidateToken(raw string) (*middleware.SessionClaims, error) {
	claims, err := s.tokens.Validate(raw)
	if err != nil {
		return nil, err
	}
	return &middleware.SessionClaims{Email: claims.Email, DisplayName: claims.DisplayName}, nil
}
