package get_menu

import (
	"net/http"

	"github.com/labiga/LaBiga-OrderService/internal/api/handlers"
	"github.com/labiga/LaBiga-OrderService/internal/domain"
)

// MenuItemResponse позиция меню в ответе
type MenuItemResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
}

// MenuResponse HTTP response model
type MenuResponse struct {
	Items []MenuItemResponse `json:"items"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Handle GET /api/v1/menu
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	menu := domain.Menu()

	resp := MenuResponse{Items: make([]MenuItemResponse, len(menu))}
	for i, item := range menu {
		resp.Items[i] = MenuItemResponse{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
		}
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
