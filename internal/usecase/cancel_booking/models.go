package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
)

// Request модель запроса на отмену
type Request struct {
	Identity domain.Identity
}

// Response модель ответа с отмененной бронью
type Response struct {
	ID          string
	Status      domain.BookingStatus
	CancelledAt time.Time
	HoursLeft   int // Сколько часов еще открыто окно изменений
}
