package sync_sheet

import (
	"fmt"

	"github.com/m04kA/SMC-GradShootBooking/internal/service/syncer"
)

// SyncSheetResponse HTTP response model
type SyncSheetResponse struct {
	Message string `json:"message"`
	Synced  int    `json:"synced"`
	Total   int    `json:"total"`
}

// FromSweepResult конвертирует результат свипа в HTTP response
func FromSweepResult(res *syncer.SweepResult) *SyncSheetResponse {
	if res.Total == 0 {
		return &SyncSheetResponse{Message: msgNothingToSync}
	}
	return &SyncSheetResponse{
		Message: fmt.Sprintf("Synced %d of %d bookings", res.Synced, res.Total),
		Synced:  res.Synced,
		Total:   res.Total,
	}
}
