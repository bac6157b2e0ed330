package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/resto-pos/internal/domain/entity"
)

// MenuItemRequest cuerpo de creación/edición de un plato.
type MenuItemRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
}

// MenuListRequest filtros de GET /api/menu-items.
type MenuListRequest struct {
	Search   string `query:"search"`
	Category string `query:"category"`
	PageRequest
}

// MenuItemResponse representación JSON de un plato.
type MenuItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Available   bool            `json:"available"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MenuListResponse respuesta paginada del menú.
type MenuListResponse struct {
	MenuItems []MenuItemResponse `json:"menu_items"`
	PageResponse
}

// NewMenuItemResponse mapea la entidad al DTO.
func NewMenuItemResponse(m *entity.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:          m.ID,
		Name:        m.Name,
		Price:       m.Price,
		Category:    m.Category,
		Image:       m.Image,
		Description: m.Description,
		Available:   m.Available,
		CreatedAt:   m.CreatedAt,
	}
}
