package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ayushdesk/internal/content"
	"ayushdesk/internal/platform/middleware"
	"ayushdesk/internal/transport/http/shared"
	dErrors "ayushdesk/pkg/domain-errors"
)

// ContentHandler serves announcements and gallery CRUD.
type ContentHandler struct {
	content *content.Service
	logger  *slog.Logger
}

func NewContentHandler(svc *content.Service, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{content: svc, logger: logger}
}

// Register mounts the content routes. The caller applies auth.
func (h *ContentHandler) Register(r chi.Router) {
	r.Route("/announcements", func(r chi.Router) {
		r.Get("/", h.handleListAnnouncements)
		r.Post("/", h.handleCreateAnnouncement)
		r.Put("/{id}", h.handleUpdateAnnouncement)
		r.Delete("/{id}", h.handleDeleteAnnouncement)
	})
	r.Route("/gallery", func(r chi.Router) {
		r.Get("/", h.handleListGallery)
		r.Post("/", h.handleCreateGalleryItem)
		r.Put("/{id}", h.handleUpdateGalleryItem)
		r.Delete("/{id}", h.handleDeleteGalleryItem)
	})
}

func (h *ContentHandler) handleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := h.content.ListAnnouncements(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list announcements",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list announcements"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, "Announcements fetched successfully", items)
}

func (h *ContentHandler) handleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var in content.AnnouncementInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	created, err := h.content.CreateAnnouncement(r.Context(), in)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, "Announcement created successfully", created)
}

func (h *ContentHandler) handleUpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var in content.AnnouncementInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	updated, err := h.content.UpdateAnnouncement(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, "Announcement updated successfully", updated)
}

func (h *ContentHandler) handleDeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteAnnouncement(r.Context(), chi.URLParam(r, "id")); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, "Announcement deleted successfully", nil)
}

func (h *ContentHandler) handleListGallery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := h.content.ListGalleryItems(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list gallery items",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list gallery items"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, "Gallery fetched successfully", items)
}

func (h *ContentHandler) handleCreateGalleryItem(w http.ResponseWriter, r *http.Request) {
	var in content.GalleryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	created, err := h.content.CreateGalleryItem(r.Context(), in)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, "Gallery item created successfully", created)
}

func (h *ContentHandler) handleUpdateGalleryItem(w http.ResponseWriter, r *http.Request) {
	var in content.GalleryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	updated, err := h.content.UpdateGalleryItem(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, "Gallery item updated successfully", updated)
}

func (h *ContentHandler) handleDeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteGalleryItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, "Gallery item deleted successfully", nil)
}
