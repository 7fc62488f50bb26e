package models

import (
	"time"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
)

// BookingResponse бронь в ответах API
type BookingResponse struct {
	ID               string     `json:"id"`
	Type             string     `json:"type"`
	Date             string     `json:"date"` // "2026-03-12"
	Time             string     `json:"time"`
	Status           string     `json:"status"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Mobile           string     `json:"mobile"`
	Package          string     `json:"package"`
	Addons           string     `json:"addons,omitempty"`
	Makeup           string     `json:"makeup"`
	Remarks          string     `json:"remarks,omitempty"`
	Synced           bool       `json:"synced"`
	InitialBookingAt time.Time  `json:"initialBookingAt"`
	CreatedAt        time.Time  `json:"createdAt"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`
}

// MyBookingResponse активная бронь пользователя.
// Booking = nil, если подтвержденной брони нет; InitialBookingAt = nil, если пользователь не бронировал.
type MyBookingResponse struct {
	Booking          *BookingResponse `json:"booking"`
	InitialBookingAt *time.Time       `json:"initialBookingAt"`
}

// WindowResponse состояние окна отмены/переноса
type WindowResponse struct {
	Allowed          bool      `json:"allowed"`
	HoursLeft        int       `json:"hoursLeft"`
	InitialBookingAt time.Time `json:"initialBookingAt"`
	ExpiresAt        time.Time `json:"expiresAt"`
}

// BookingListResponse список броней
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует domain.Booking в ответ
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:               b.ID,
		Type:             string(b.Type),
		Date:             b.Date.Format(domain.DateFormat),
		Time:             b.Time,
		Status:           string(b.Status),
		Name:             b.Name,
		Email:            b.Email,
		Mobile:           b.Mobile,
		Package:          b.Package,
		Addons:           b.Addons,
		Makeup:           b.Makeup,
		Remarks:          b.Remarks,
		Synced:           b.Synced,
		InitialBookingAt: b.InitialBookingAt,
		CreatedAt:        b.CreatedAt,
		CancelledAt:      b.CancelledAt,
	}
}

// FromDomainBookingList конвертирует список броней
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// FromDomainWindow конвертирует окно переноса
func FromDomainWindow(w domain.RescheduleWindow) *WindowResponse {
	return &WindowResponse{
		Allowed:          w.Allowed,
		HoursLeft:        w.HoursLeft,
		InitialBookingAt: w.InitialBookingAt,
		ExpiresAt:        w.ExpiresAt,
	}
}
