package sheetsync

import "errors"

var (
	// ErrRequest не удалось выполнить запрос (сеть, таймаут)
	ErrRequest = errors.New("sheetsync client: request failed")

	// ErrInvalidResponse ответ не JSON или неожиданный статус
	ErrInvalidResponse = errors.New("sheetsync client: invalid response")

	// ErrRejected таблица ответила success=false
	ErrRejected = errors.New("sheetsync client: rejected by target")
)
