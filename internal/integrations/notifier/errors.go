package notifier

import "errors"

var (
	// ErrConnect не удалось подключиться к брокеру
	ErrConnect = errors.New("notifier: failed to connect")

	// ErrPublish не удалось опубликовать письмо
	ErrPublish = errors.New("notifier: failed to publish")
)
