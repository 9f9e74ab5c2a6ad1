package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ayushdesk/internal/directory"
	"ayushdesk/internal/platform/middleware"
	"ayushdesk/internal/transport/http/shared"
	dErrors "ayushdesk/pkg/domain-errors"
)

// DocumentHandler serves the global document review queue.
type DocumentHandler struct {
	directory *directory.Service
	logger    *slog.Logger
}

func NewDocumentHandler(dir *directory.Service, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{directory: dir, logger: logger}
}

// Register mounts the document routes. The caller applies auth.
func (h *DocumentHandler) Register(r chi.Router) {
	r.Get("/documents", h.handleListDocuments)
	r.Post("/documents/{docId}/verify", h.handleVerify)
	r.Post("/documents/{docId}/reject", h.handleReject)
}

func (h *DocumentHandler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	page, err := h.directory.ListDocuments(ctx, directory.DocumentParams{
		Page:     queryInt(q.Get("page"), 1),
		PageSize: queryPageSize(q, 12),
		Type:     q.Get("type"),
		Status:   q.Get("status"),
		Search:   q.Get("search"),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list documents",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, "Documents fetched successfully", page)
}

type documentActionRequest struct {
	Note string `json:"note"`
}

func (h *DocumentHandler) handleVerify(w http.ResponseWriter, r *http.Request) {
	h.handleAction(w, r, h.directory.VerifyDocument, "Document verified successfully")
}

func (h *DocumentHandler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.handleAction(w, r, h.directory.RejectDocument, "Document rejected successfully")
}

type documentAction func(ctx context.Context, in directory.DocumentActionInput) (directory.DocumentActionResult, error)

func (h *DocumentHandler) handleAction(w http.ResponseWriter, r *http.Request, action documentAction, message string) {
	ctx := r.Context()
	var req documentActionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
			return
		}
	}
	result, err := action(ctx, directory.DocumentActionInput{
		DocID: chi.URLParam(r, "docId"),
		Note:  req.Note,
		Actor: middleware.GetOperatorEmail(ctx),
	})
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, message, result)
}
