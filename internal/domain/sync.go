package domain

// SyncPayload формат строки, принимаемый таблицей
type SyncPayload struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	PackageName string `json:"packageName"`
	AddOns      string `json:"addOns"`
	Makeup      string `json:"makeup"`
	Remarks     string `json:"remarks"`
	Status      string `json:"status"`
}

// SyncMark отметка о выгрузке: synced ставится, только если строка
// в базе все еще этой версии
type SyncMark struct {
	ID      string
	Version int64
}
