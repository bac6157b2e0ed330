package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem plato del menú de un restaurante. Los pedidos congelan nombre y
// precio al momento de ordenar, así que editar un plato no altera pedidos
// ni historia ya registrados.
type MenuItem struct {
	ID           string
	RestaurantID string
	Name         string
	Price        decimal.Decimal
	Category     string
	Image        string
	Description  string
	Available    bool
	CreatedAt    time.Time
}
