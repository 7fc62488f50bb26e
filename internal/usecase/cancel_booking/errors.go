package cancel_booking

import "errors"

var (
	// ErrUnauthorized возвращается, когда личность пользователя не определена
	ErrUnauthorized = errors.New("cancel_booking: unauthorized")

	// ErrNoBookingHistory возвращается, когда пользователь ни разу не бронировал
	ErrNoBookingHistory = errors.New("cancel_booking: initial booking records not found")

	// ErrWindowExpired возвращается, когда с первой брони прошло больше окна
	ErrWindowExpired = errors.New("cancel_booking: reschedule window expired")

	// ErrBookingNotFound возвращается, когда нет подтвержденной брони
	ErrBookingNotFound = errors.New("cancel_booking: no confirmed booking")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
