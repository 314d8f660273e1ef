package domain

// RecurrenceType represents how a meeting repeats. Expansion is done by the backend.
type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "DAILY"
	RecurrenceWeekly  RecurrenceType = "WEEKLY"
	RecurrenceMonthly RecurrenceType = "MONTHLY"
)

// IsValid reports whether the recurrence type is supported
func (t RecurrenceType) IsValid() bool {
	switch t {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// RecurrenceSpec bounds a series by an end date and an optional occurrence count
type RecurrenceSpec struct {
	Type           RecurrenceType
	Until          string // YYYY-MM-DD, inclusive
	MaxOccurrences *int
}
