package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"ayushdesk/internal/directory"
	"ayushdesk/internal/domain"
	"ayushdesk/internal/platform/middleware"
	"ayushdesk/internal/remote"
	"ayushdesk/internal/transport/http/shared"
	dErrors "ayushdesk/pkg/domain-errors"
)

// UserHandler serves the practitioner list, detail, stats and mutation
// endpoints. Reads go through the remote-first adapter; mutations apply to
// the local store.
type UserHandler struct {
	adapter   *remote.Adapter
	directory *directory.Service
	logger    *slog.Logger
}

func NewUserHandler(adapter *remote.Adapter, dir *directory.Service, logger *slog.Logger) *UserHandler {
	return &UserHandler{adapter: adapter, directory: dir, logger: logger}
}

// Register mounts the user routes. The caller applies auth.
func (h *UserHandler) Register(r chi.Router) {
	r.Get("/get-user-stats", h.handleGetUserStats)
	r.Get("/get-all-users", h.handleGetAllUsers)
	r.Get("/get-user/{id}", h.handleGetUser)
	r.Delete("/users/{id}", h.handleDeleteUser)
	r.Patch("/users/{id}/status", h.handleUpdateStatus)
	r.Post("/users/bulk-status", h.handleBulkStatus)
}

func (h *UserHandler) handleGetUserStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats, err := h.adapter.GetUserStats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load user stats",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, "User stats fetched successfully", stats)
}

func (h *UserHandler) handleGetAllUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := parseUserParams(r)
	page, err := h.adapter.GetUsers(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list users",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, "Users fetched successfully", page)
}

func (h *UserHandler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	detail, err := h.adapter.GetUser(ctx, chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, "User fetched successfully", detail)
}

func (h *UserHandler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.adapter.DeleteUser(ctx, chi.URLParam(r, "id")); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, "User deleted successfully", nil)
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func (h *UserHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	user, err := h.directory.UpdateUserStatus(ctx, directory.UpdateStatusInput{
		ID:     chi.URLParam(r, "id"),
		Status: domain.Status(req.Status),
		Note:   req.Note,
		Actor:  middleware.GetOperatorEmail(ctx),
	})
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, "User status updated successfully", user)
}

type bulkStatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

func (h *UserHandler) handleBulkStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req bulkStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if len(req.IDs) == 0 {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "ids are required"))
		return
	}
	updated, err := h.directory.BulkUpdateUsers(ctx, req.IDs, domain.Status(req.Status), middleware.GetOperatorEmail(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, "Users updated successfully", updated)
}

// parseUserParams reads the list query string. Unknown or malformed values
// fall back to defaults rather than erroring; the console sends well-formed
// requests and a stray bookmark should still render page one.
func parseUserParams(r *http.Request) directory.Params {
	q := r.URL.Query()
	p := directory.Params{
		Page:     queryInt(q.Get("page"), 1),
		PageSize: queryPageSize(q, 10),
		Search:   q.Get("search"),
		Sort: directory.Sort{
			Key:  q.Get("sortBy"),
			Desc: queryDesc(q),
		},
		Filters: directory.Filters{
			Status: q.Get("status"),
		},
	}
	if t, ok := queryDate(q.Get("dateFrom")); ok {
		p.Filters.DateFrom = &t
	}
	if t, ok := queryDate(q.Get("dateTo")); ok {
		p.Filters.DateTo = &t
	}
	return p
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// queryPageSize prefers pageSize and keeps the console's older limit alias.
func queryPageSize(q url.Values, fallback int) int {
	if raw := q.Get("pageSize"); raw != "" {
		return queryInt(raw, fallback)
	}
	return queryInt(q.Get("limit"), fallback)
}

// queryDesc accepts sortDesc=true alongside the older sortOrder=desc form.
func queryDesc(q url.Values) bool {
	if raw := q.Get("sortDesc"); raw != "" {
		desc, err := strconv.ParseBool(raw)
		return err == nil && desc
	}
	return q.Get("sortOrder") == "desc"
}

func queryDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
