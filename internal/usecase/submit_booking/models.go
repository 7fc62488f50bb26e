package submit_booking

import (
	"time"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
)

// Action тип запроса
type Action string

const (
	ActionBook       Action = "book"
	ActionReschedule Action = "reschedule"
)

// Request модель запроса на бронирование или перенос
type Request struct {
	Identity domain.Identity // Пользователь из identity provider

	Type    string // studio | campus
	Date    string // YYYY-MM-DD
	Time    string // Метка времени слота, например "09:00"
	Name    string
	Mobile  string
	Package string
	Addons  string // Опционально
	Makeup  string
	Remarks string // Опционально
	Action  Action // Пустое значение трактуется как book
}

// Response модель ответа с созданной бронью
type Response struct {
	ID               string
	Type             domain.ShootType
	Date             time.Time
	Time             string
	Status           domain.BookingStatus
	InitialBookingAt time.Time
	Rescheduled      bool
	CancelledID      *string // ID отмененной при переносе брони
}
