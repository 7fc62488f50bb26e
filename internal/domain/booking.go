package domain

import "time"

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCancelled BookingStatus = "Cancelled"
)

// ShootType тип фотосессии
type ShootType string

const (
	ShootTypeStudio ShootType = "studio"
	ShootTypeCampus ShootType = "campus"
)

// IsValid true для известных типов съемки
func (t ShootType) IsValid() bool {
	return t == ShootTypeStudio || t == ShootTypeCampus
}

// Booking заявка выпускника на слот фотосессии.
// Строки не удаляются, отмена только меняет статус.
type Booking struct {
	ID     string
	UserID string
	Type   ShootType
	Date   time.Time
	Time   string
	Status BookingStatus

	// Контактные данные и выбор пакета
	Name    string
	Email   string
	Mobile  string
	Package string
	Addons  string
	Makeup  string
	Remarks string

	// Synced строка уже выгружена в таблицу
	Synced bool
	// Version растет при каждом изменении строки
	Version int64

	// InitialBookingAt время самой первой брони пользователя, не меняется при переносе
	InitialBookingAt time.Time

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CancelledAt *time.Time
}

// IsConfirmed true для активной брони
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// Slot ключ слота, которому принадлежит бронь
func (b *Booking) Slot() SlotKey {
	return SlotKey{Type: b.Type, Date: b.Date, Time: b.Time}
}

// SyncPayload строка для выгрузки в таблицу
func (b *Booking) SyncPayload() SyncPayload {
	return SyncPayload{
		ID:          b.ID,
		Type:        string(b.Type),
		Date:        b.Date.Format(DateFormat),
		Time:        b.Time,
		Name:        b.Name,
		Email:       b.Email,
		Mobile:      b.Mobile,
		PackageName: b.Package,
		AddOns:      b.Addons,
		Makeup:      b.Makeup,
		Remarks:     b.Remarks,
		Status:      string(b.Status),
	}
}

// SyncMark версия строки, которая уходит в таблицу
func (b *Booking) SyncMark() SyncMark {
	return SyncMark{ID: b.ID, Version: b.Version}
}
