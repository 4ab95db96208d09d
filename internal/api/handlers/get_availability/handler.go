package get_availability

import (
	"net/http"

	"github.com/labiga/LaBiga-OrderService/internal/api/handlers"
)

type Handler struct {
	provider AvailabilityProvider
	logger   Logger
}

func NewHandler(provider AvailabilityProvider, logger Logger) *Handler {
	return &Handler{
		provider: provider,
		logger:   logger,
	}
}

// Handle GET /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	snapshot := h.provider.Current()
	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(snapshot))
}
