package sync_sheet

import (
	"net/http"

	"github.com/m04kA/SMC-GradShootBooking/internal/api/handlers"
)

const (
	msgNothingToSync = "No unsynced bookings"
	msgSyncFailed    = "Sync failed"
)

type Handler struct {
	service SyncService
	logger  Logger
}

func NewHandler(service SyncService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/sync-sheet (вызывается планировщиком)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Sweep(r.Context())
	if err != nil {
		h.logger.Error("POST /sync-sheet - Sweep failed: %v", err)
		handlers.RespondError(w, http.StatusInternalServerError, msgSyncFailed)
		return
	}

	h.logger.Info("POST /sync-sheet - Synced %d of %d", result.Synced, result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromSweepResult(result))
}
