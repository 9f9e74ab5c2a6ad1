package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ayushdesk/internal/directory"
	"ayushdesk/internal/transport/http/shared"
)

// SystemHandler serves the dataset reset endpoint.
type SystemHandler struct {
	directory *directory.Service
	stats     *directory.StatsProvider
	logger    *slog.Logger
}

func NewSystemHandler(dir *directory.Service, stats *directory.StatsProvider, logger *slog.Logger) *SystemHandler {
	return &SystemHandler{directory: dir, stats: stats, logger: logger}
}

// Register mounts the system routes. The caller applies auth.
func (h *SystemHandler) Register(r chi.Router) {
	r.Post("/reset", h.handleReset)
}

func (h *SystemHandler) handleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.directory.Reset(ctx)
	h.stats.Invalidate(ctx)
	shared.WriteJSON(w, http.StatusOK, "Dataset reset to initial state", nil)
}
