package cancel_booking

import (
	"time"

	cancelBooking "github.com/m04kA/SMC-GradShootBooking/internal/usecase/cancel_booking"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	BookingID   string `json:"bookingId"`
	Status      string `json:"status"`
	CancelledAt string `json:"cancelledAt"`
	HoursLeft   int    `json:"hoursLeft"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		Success:     true,
		Message:     msgCancelled,
		BookingID:   resp.ID,
		Status:      string(resp.Status),
		CancelledAt: resp.CancelledAt.UTC().Format(time.RFC3339),
		HoursLeft:   resp.HoursLeft,
	}
}
