package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
)

// Январь 2026: Чт 1, Пт 2, Сб 3, Вс 4, Пн 5, Вт 6, Ср 7
func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.January, day, hour, minute, 0, 0, time.UTC)
}

func TestDerive_StatusTransitions(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		unitsSold  int
		capacity   int
		wantStatus domain.ShopStatus
	}{
		{
			name:       "thursday pre-open window",
			now:        at(1, 18, 30),
			capacity:   12,
			wantStatus: domain.StatusOpeningSoon,
		},
		{
			name:       "friday evening open",
			now:        at(2, 20, 0),
			capacity:   12,
			wantStatus: domain.StatusOpen,
		},
		{
			name:       "saturday last call",
			now:        at(3, 22, 45),
			capacity:   12,
			wantStatus: domain.StatusClosingSoon,
		},
		{
			name:       "sunday after close",
			now:        at(4, 23, 30),
			capacity:   12,
			wantStatus: domain.StatusClosed,
		},
		{
			name:       "monday is not a service day",
			now:        at(5, 20, 0),
			capacity:   12,
			wantStatus: domain.StatusClosed,
		},
		{
			name:       "sold out wins over open window",
			now:        at(2, 20, 0),
			unitsSold:  12,
			capacity:   12,
			wantStatus: domain.StatusSoldOut,
		},
		{
			name:       "sold out wins over pre-open window",
			now:        at(2, 18, 30),
			unitsSold:  15,
			capacity:   12,
			wantStatus: domain.StatusSoldOut,
		},
		{
			name:       "sold out does not apply outside service days",
			now:        at(7, 20, 0),
			unitsSold:  12,
			capacity:   12,
			wantStatus: domain.StatusClosed,
		},
		{
			name:       "zero capacity day is sold out",
			now:        at(2, 20, 0),
			unitsSold:  0,
			capacity:   0,
			wantStatus: domain.StatusSoldOut,
		},
		{
			name:       "thursday morning closed",
			now:        at(1, 10, 0),
			capacity:   12,
			wantStatus: domain.StatusClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := Derive(tt.now, tt.unitsSold, tt.capacity)
			assert.Equal(t, tt.wantStatus, state.Status)
		})
	}
}

func TestDerive_WindowBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		wantStatus domain.ShopStatus
	}{
		{"17:59 still closed", at(2, 17, 59), domain.StatusClosed},
		{"18:00 opening soon", at(2, 18, 0), domain.StatusOpeningSoon},
		{"18:59 opening soon", at(2, 18, 59), domain.StatusOpeningSoon},
		{"19:00 open", at(2, 19, 0), domain.StatusOpen},
		{"22:29 open", at(2, 22, 29), domain.StatusOpen},
		{"22:30 closing soon", at(2, 22, 30), domain.StatusClosingSoon},
		{"22:59 closing soon", at(2, 22, 59), domain.StatusClosingSoon},
		{"23:00 closed", at(2, 23, 0), domain.StatusClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := Derive(tt.now, 0, 12)
			assert.Equal(t, tt.wantStatus, state.Status)
		})
	}
}

func TestDerive_ClosedSubtexts(t *testing.T) {
	tests := []struct {
		name        string
		now         time.Time
		wantSubtext string
	}{
		{"service day before opening", at(1, 10, 0), subtextSeeYouToday},
		{"thursday after close", at(1, 23, 30), subtextSeeYouTomorrow},
		{"saturday after close", at(3, 23, 30), subtextSeeYouTomorrow},
		{"sunday after close", at(4, 23, 30), subtextSeeYouThursday},
		{"monday", at(5, 12, 0), subtextSeeYouThursday},
		{"wednesday", at(7, 12, 0), subtextSeeYouThursday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := Derive(tt.now, 0, 12)
			require.Equal(t, domain.StatusClosed, state.Status)
			assert.Equal(t, tt.wantSubtext, state.Subtext)
		})
	}
}

func TestDerive_SoldOutNeverOffersToday(t *testing.T) {
	// Распродались до открытия: подсказка не должна обещать сегодняшнее окно
	state := Derive(at(1, 10, 0), 12, 12)

	require.Equal(t, domain.StatusSoldOut, state.Status)
	assert.NotContains(t, state.Subtext, subtextSeeYouToday)
	assert.Contains(t, state.Subtext, subtextSeeYouTomorrow)
}

func TestDerive_Texts(t *testing.T) {
	open := Derive(at(2, 20, 0), 0, 12)
	assert.Equal(t, labelOpen, open.Label)
	assert.Equal(t, "green", open.Color)
	require.NotNil(t, open.CTA)
	assert.Equal(t, "Pide ya", open.CTA.Label)
	assert.Contains(t, open.CTA.Link, domain.WhatsAppNumber)

	closing := Derive(at(2, 22, 45), 0, 12)
	assert.Equal(t, subtextClosingSoon, closing.Subtext)
	assert.Equal(t, "orange", closing.Color)

	soldOut := Derive(at(2, 20, 0), 12, 12)
	assert.Equal(t, labelSoldOut, soldOut.Label)
	assert.Equal(t, "purple", soldOut.Color)
	require.NotNil(t, soldOut.CTA)
	assert.Equal(t, "Agenda tu pedido", soldOut.CTA.Label)

	closed := Derive(at(5, 12, 0), 0, 12)
	assert.Equal(t, "red", closed.Color)
	assert.Nil(t, closed.CTA)
}

func TestDerive_IsPure(t *testing.T) {
	now := at(3, 20, 15)

	first := Derive(now, 5, 12)
	second := Derive(now, 5, 12)

	assert.Equal(t, first, second)
}
