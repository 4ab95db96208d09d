package get_availability

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
	"github.com/labiga/LaBiga-OrderService/internal/service/availability"
)

func TestFromSnapshot_RemainingOnlyWhenOpen(t *testing.T) {
	open := availability.Snapshot{
		State: domain.AvailabilityState{
			Status: domain.StatusOpen,
			Label:  "Abierto ahora",
			Color:  "green",
		},
		UnitsSold:   5,
		Capacity:    12,
		Remaining:   7,
		GeneratedAt: time.Date(2026, time.January, 2, 20, 0, 0, 0, time.UTC),
	}

	resp := FromSnapshot(open)
	assert.Equal(t, 7, resp.Remaining)

	payload, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"remaining":7`)

	// Вне окна работы остаток не показывается, даже если счетчики ненулевые
	closed := open
	closed.State = domain.AvailabilityState{
		Status: domain.StatusClosed,
		Label:  "Cerrado",
		Color:  "red",
	}

	payload, err = json.Marshal(FromSnapshot(closed))
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "remaining")
	assert.Contains(t, string(payload), `"unitsSold":5`)
}
