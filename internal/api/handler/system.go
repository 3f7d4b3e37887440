package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck/internal/api/response"
	"github.com/taskdeck/taskdeck/internal/domain"
)

// healthTimeout bounds the database ping behind /health.
const healthTimeout = 2 * time.Second

// SystemHandler handles system-level operations.
type SystemHandler struct {
	db *sql.DB
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(db *sql.DB) *SystemHandler {
	return &SystemHandler{db: db}
}

// Health handles GET /health.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		response.Error(w, r, domain.NewInternalError(domain.ErrCodeServer, "Database unavailable", err))
		return
	}
	response.OK(w, map[string]string{"status": "ok"})
}
