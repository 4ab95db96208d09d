package stream_availability

import (
	"time"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
	"github.com/labiga/LaBiga-OrderService/internal/service/availability"
)

// CTAResponse кнопка призыва к действию
type CTAResponse struct {
	Label string `json:"label"`
	Link  string `json:"link"`
}

// AvailabilityEvent payload одного SSE события
type AvailabilityEvent struct {
	Status      string       `json:"status"`
	Label       string       `json:"label"`
	Subtext     string       `json:"subtext,omitempty"`
	Color       string       `json:"color"`
	CTA         *CTAResponse `json:"cta,omitempty"`
	UnitsSold   int          `json:"unitsSold"`
	Capacity    int          `json:"capacity"`
	Remaining   int          `json:"remaining,omitempty"`
	GeneratedAt string       `json:"generatedAt"`
}

// FromSnapshot конвертирует снимок движка в SSE payload.
// Остаток присутствует только в состоянии open
func FromSnapshot(s availability.Snapshot) *AvailabilityEvent {
	event := &AvailabilityEvent{
		Status:      string(s.State.Status),
		Label:       s.State.Label,
		Subtext:     s.State.Subtext,
		Color:       s.State.Color,
		UnitsSold:   s.UnitsSold,
		Capacity:    s.Capacity,
		GeneratedAt: s.GeneratedAt.Format(time.RFC3339),
	}

	if s.State.Status == domain.StatusOpen {
		event.Remaining = s.Remaining
	}

	if s.State.CTA != nil {
		event.CTA = &CTAResponse{
			Label: s.State.CTA.Label,
			Link:  s.State.CTA.Link,
		}
	}

	return event
}
