package domain

// EquipmentStatus represents the condition of an equipment item
type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "AVAILABLE"
	EquipmentDamaged     EquipmentStatus = "DAMAGED"
	EquipmentMaintenance EquipmentStatus = "MAINTENANCE"
)

// Equipment is a bookable resource type with a total quantity
type Equipment struct {
	ID            int64
	Name          string
	Description   string
	TotalQuantity int
	Status        EquipmentStatus
}

// EquipmentAvailability holds counts for one equipment type within a time window
type EquipmentAvailability struct {
	Name        string
	Total       int
	Maintenance int
	Booked      int // booked during the overlapping window
}

// Available returns total - maintenance - booked. May be negative when the backend over-books.
func (e EquipmentAvailability) Available() int {
	return e.Total - e.Maintenance - e.Booked
}

// AvailabilityStatus is the advisory classification of a requested quantity
type AvailabilityStatus string

const (
	AvailabilityOK          AvailabilityStatus = "ok"
	AvailabilityExceed      AvailabilityStatus = "exceed"
	AvailabilityUnavailable AvailabilityStatus = "unavailable"
)

// ClassifyAvailability is a pure function of (available, requested) with non-overlapping tiers:
// available <= 0 -> unavailable; requested > available -> exceed; otherwise ok.
func ClassifyAvailability(available, requested int) AvailabilityStatus {
	switch {
	case available <= 0:
		return AvailabilityUnavailable
	case requested > available:
		return AvailabilityExceed
	default:
		return AvailabilityOK
	}
}
