package identity

import "errors"

var (
	// ErrInvalidToken токен отсутствует, поврежден или не принадлежит пользователю
	ErrInvalidToken = errors.New("identity client: invalid token")

	// ErrUnavailable identity provider недоступен или ответил неожиданно
	ErrUnavailable = errors.New("identity client: provider unavailable")

	// ErrInvalidResponse ответ provider не удалось разобрать
	ErrInvalidResponse = errors.New("identity client: invalid response")
)
