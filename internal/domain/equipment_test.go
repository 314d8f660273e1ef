package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEquipmentAvailability_Projector(t *testing.T) {
	projector := EquipmentAvailability{Name: "Projector", Total: 7, Maintenance: 0, Booked: 2}

	assert.Equal(t, 5, projector.Available())
	assert.Equal(t, AvailabilityExceed, ClassifyAvailability(projector.Available(), 6))
}

func TestClassifyAvailability_Tiers(t *testing.T) {
	tests := []struct {
		available int
		requested int
		want      AvailabilityStatus
	}{
		{available: 0, requested: 1, want: AvailabilityUnavailable},
		{available: -2, requested: 0, want: AvailabilityUnavailable},
		{available: 0, requested: 0, want: AvailabilityUnavailable},
		{available: 3, requested: 4, want: AvailabilityExceed},
		{available: 3, requested: 3, want: AvailabilityOK},
		{available: 3, requested: 0, want: AvailabilityOK},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyAvailability(tt.available, tt.requested),
			"available=%d requested=%d", tt.available, tt.requested)
	}
}
