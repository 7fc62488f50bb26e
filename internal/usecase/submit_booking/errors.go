package submit_booking

import "errors"

var (
	// ErrUnauthorized возвращается, когда личность пользователя не определена
	ErrUnauthorized = errors.New("submit_booking: unauthorized")

	// ErrEmailDomainNotAllowed возвращается, когда подтвержденный email не из домена университета
	ErrEmailDomainNotAllowed = errors.New("submit_booking: email domain is not allowed")

	// ErrInvalidMobile возвращается при некорректном номере телефона
	ErrInvalidMobile = errors.New("submit_booking: invalid mobile number")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrActiveBookingExists возвращается, когда у пользователя уже есть подтвержденная бронь
	ErrActiveBookingExists = errors.New("submit_booking: user already has an active booking")

	// ErrSlotNotConfigured возвращается, когда для слота не задана вместимость
	ErrSlotNotConfigured = errors.New("submit_booking: slot not configured")

	// ErrSlotFull возвращается, когда все места в слоте заняты
	ErrSlotFull = errors.New("submit_booking: slot full")

	// ErrWindowExpired возвращается, когда окно переноса истекло
	ErrWindowExpired = errors.New("submit_booking: reschedule window expired")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)
