package availability

import "errors"

var (
	// ErrInvalidInput неизвестный тип съемки, дата или время
	ErrInvalidInput = errors.New("availability: invalid input")

	// ErrAccessDenied вместимость меняют только администраторы
	ErrAccessDenied = errors.New("availability: access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
