package get_availability

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

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
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

// FromSnapshot конвертирует снимок движка в HTTP response
func FromSnapshot(s availability.Snapshot) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		Status:      string(s.State.Status),
		Label:       s.State.Label,
		Subtext:     s.State.Subtext,
		Color:       s.State.Color,
		UnitsSold:   s.UnitsSold,
		Capacity:    s.Capacity,
		GeneratedAt: s.GeneratedAt.Format(time.RFC3339),
	}

	// Остаток - аргумент "заказывай сейчас", вне open он только путает:
	// закрытый магазин с ненулевым остатком выглядит как работающий
	if s.State.Status == domain.StatusOpen {
		resp.Remaining = s.Remaining
	}

	if s.State.CTA != nil {
		resp.CTA = &CTAResponse{
			Label: s.State.CTA.Label,
			Link:  s.State.CTA.Link,
		}
	}

	return resp
}
