package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ayushdesk/internal/auth"
	"ayushdesk/internal/platform/middleware"
	"ayushdesk/internal/transport/http/shared"
	dErrors "ayushdesk/pkg/domain-errors"
)

// AuthHandler serves operator login, logout and registration. These routes
// are public; everything else behind the admin prefix requires a session.
type AuthHandler struct {
	auth   *auth.Service
	logger *slog.Logger
}

func NewAuthHandler(svc *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: svc, logger: logger}
}

func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/admin-login", h.handleLogin)
	r.Post("/admin-logout", h.handleLogout)
	r.Post("/admin-register", h.handleRegister)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	result, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	message := result.Message
	if message == "" {
		message = "Login successful"
	}
	shared.WriteJSON(w, http.StatusOK, message, map[string]any{
		"admin": result.Admin,
		"token": result.Token,
	})
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, "Logout successful", nil)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload map[string]string
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	data, message, err := h.auth.Register(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if message == "" {
		message = "Admin registered successfully"
	}
	shared.WriteJSON(w, http.StatusCreated, message, data)
}
