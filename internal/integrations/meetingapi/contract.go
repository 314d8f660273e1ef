package meetingapi

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder интерфейс для метрик вызовов бэкенда
type MetricsRecorder interface {
	ObserveBackendCall(operation, outcome string, duration time.Duration)
}
