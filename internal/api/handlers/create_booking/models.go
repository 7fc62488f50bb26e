package create_booking

import (
	"time"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
	submitBooking "github.com/m04kA/SMC-GradShootBooking/internal/usecase/submit_booking"
)

// SubmitBookingRequest HTTP request model.
// Поле email из формы игнорируется, используется подтвержденный email.
type SubmitBookingRequest struct {
	Type    string `json:"type"`
	Date    string `json:"date"` // "2026-03-12"
	Time    string `json:"time"` // "09:00"
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Package string `json:"package"`
	Addons  string `json:"addons,omitempty"`
	Makeup  string `json:"makeup"`
	Remarks string `json:"remarks,omitempty"`
	Action  string `json:"action,omitempty"` // book | reschedule
}

// SubmitBookingResponse HTTP response model
type SubmitBookingResponse struct {
	Success          bool    `json:"success"`
	Message          string  `json:"message"`
	BookingID        string  `json:"bookingId"`
	Type             string  `json:"type"`
	Date             string  `json:"date"`
	Time             string  `json:"time"`
	Rescheduled      bool    `json:"rescheduled"`
	CancelledID      *string `json:"cancelledId,omitempty"`
	InitialBookingAt string  `json:"initialBookingAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitBookingRequest) ToUseCaseRequest(id domain.Identity) *submitBooking.Request {
	return &submitBooking.Request{
		Identity: id,
		Type:     r.Type,
		Date:     r.Date,
		Time:     r.Time,
		Name:     r.Name,
		Mobile:   r.Mobile,
		Package:  r.Package,
		Addons:   r.Addons,
		Makeup:   r.Makeup,
		Remarks:  r.Remarks,
		Action:   submitBooking.Action(r.Action),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *SubmitBookingResponse {
	message := msgBooked
	if resp.Rescheduled {
		message = msgRescheduled
	}
	return &SubmitBookingResponse{
		Success:          true,
		Message:          message,
		BookingID:        resp.ID,
		Type:             string(resp.Type),
		Date:             resp.Date.Format(domain.DateFormat),
		Time:             resp.Time,
		Rescheduled:      resp.Rescheduled,
		CancelledID:      resp.CancelledID,
		InitialBookingAt: resp.InitialBookingAt.UTC().Format(time.RFC3339),
	}
}
