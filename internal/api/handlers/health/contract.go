package health

import "context"

// Pinger проверка доступности хранилища журнала
type Pinger interface {
	PingContext(ctx context.Context) error
}

// IntentCounter количество незавершенных бронирований в памяти
type IntentCounter interface {
	Len() int
}

type Logger interface {
	Warn(format string, v ...interface{})
}
