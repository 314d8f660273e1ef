package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Форматы локального времени бэкенда (без смещения UTC)
const (
	LocalDateTimeLayout = "2006-01-02T15:04:05"
	LocalDateLayout     = "2006-01-02"
)

// ErrInvalidLocalDateTime возвращается при некорректной строке даты-времени
var ErrInvalidLocalDateTime = errors.New("invalid local datetime string")

// acceptedLayouts форматы, которые принимаются на вход и нормализуются в LocalDateTimeLayout
var acceptedLayouts = []string{
	LocalDateTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// LocalDateTime время "по настенным часам" без часового пояса
// Сериализуется как "YYYY-MM-DDTHH:mm:ss"
// Внутри хранится как время в UTC с теми же показаниями часов, поэтому значения сравнимы между собой
type LocalDateTime struct {
	t time.Time
}

// NewLocalDateTime создает LocalDateTime из time.Time, беря показания часов в зоне loc
func NewLocalDateTime(t time.Time, loc *time.Location) LocalDateTime {
	if loc != nil {
		t = t.In(loc)
	}
	return LocalDateTime{t: wallClock(t)}
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// ParseLocalDateTime парсит строку в одном из поддерживаемых форматов
// RFC 3339 со смещением тоже принимается и переводится в loc
func ParseLocalDateTime(value string, loc *time.Location) (LocalDateTime, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return LocalDateTime{}, fmt.Errorf("%w: empty value", ErrInvalidLocalDateTime)
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range acceptedLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return LocalDateTime{t: t}, nil
		}
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return NewLocalDateTime(t, loc), nil
	}

	return LocalDateTime{}, fmt.Errorf("%w: %q", ErrInvalidLocalDateTime, value)
}

// MustParseLocalDateTime как ParseLocalDateTime, но паникует при ошибке (для тестов и констант)
func MustParseLocalDateTime(value string, loc *time.Location) LocalDateTime {
	v, err := ParseLocalDateTime(value, loc)
	if err != nil {
		panic(err)
	}
	return v
}

// Time возвращает показания часов как time.Time в UTC (без учета реальной зоны)
func (d LocalDateTime) Time() time.Time {
	return d.t
}

// IsZero проверяет, что значение не задано
func (d LocalDateTime) IsZero() bool {
	return d.t.IsZero()
}

// Before сравнивает два момента времени
func (d LocalDateTime) Before(other LocalDateTime) bool {
	return d.t.Before(other.t)
}

// Date возвращает дату без времени в формате YYYY-MM-DD
func (d LocalDateTime) Date() string {
	return d.t.Format(LocalDateLayout)
}

// String возвращает нормализованную строку YYYY-MM-DDTHH:mm:ss
func (d LocalDateTime) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(LocalDateTimeLayout)
}

func (d LocalDateTime) MarshalJSON() ([]byte, error) {
	if d.t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *LocalDateTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = LocalDateTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLocalDateTime, err)
	}
	parsed, err := ParseLocalDateTime(s, time.UTC)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
