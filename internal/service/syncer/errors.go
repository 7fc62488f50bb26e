package syncer

import "errors"

var (
	// ErrInternal ошибка чтения или обновления броней во время свипа
	ErrInternal = errors.New("syncer: internal error")
)
