package get_orders

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labiga/LaBiga-OrderService/internal/api/handlers"
	"github.com/labiga/LaBiga-OrderService/internal/domain"
	ordersService "github.com/labiga/LaBiga-OrderService/internal/service/orders"
	"github.com/labiga/LaBiga-OrderService/internal/service/orders/models"
)

const (
	msgInvalidDate  = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgInvalidLimit = "límite inválido"
	msgInvalidInput = "parámetros de búsqueda inválidos"
)

type Handler struct {
	service OrdersService
	logger  Logger
}

func NewHandler(service OrdersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/orders
//
// Query параметры:
//   - since, until: границы периода в формате YYYY-MM-DD (опционально)
//   - customer: поиск по имени клиента, подстрока без учета регистра (опционально)
//   - limit: максимум заказов в ответе (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /admin/orders - Invalid query: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, ordersService.ErrInvalidInput) {
			h.logger.Warn("GET /admin/orders - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("GET /admin/orders - Failed to list orders: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(r *http.Request) (*models.ListOrdersRequest, error) {
	req := &models.ListOrdersRequest{}
	query := r.URL.Query()

	if raw := query.Get("since"); raw != "" {
		since, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, errors.New(msgInvalidDate)
		}
		req.Since = &since
	}

	if raw := query.Get("until"); raw != "" {
		until, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, errors.New(msgInvalidDate)
		}
		// Правая граница включительно: конец дня
		until = until.Add(24*time.Hour - time.Nanosecond)
		req.Until = &until
	}

	if raw := query.Get("customer"); raw != "" {
		req.CustomerName = &raw
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return nil, errors.New(msgInvalidLimit)
		}
		req.Limit = limit
	}

	return req, nil
}
