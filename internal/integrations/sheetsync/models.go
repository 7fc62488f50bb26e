package sheetsync

import "github.com/m04kA/SMC-GradShootBooking/internal/domain"

// BatchRequest пачка строк для одного запроса
type BatchRequest struct {
	Rows []domain.SyncPayload `json:"rows"`
}

// Response ответ таблицы; SyncedIDs заполняется только для пачки
type Response struct {
	Success   bool     `json:"success"`
	SyncedIDs []string `json:"syncedIds,omitempty"`
	Error     string   `json:"error,omitempty"`
}
