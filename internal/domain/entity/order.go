package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/resto-pos/internal/domain"
)

// Estados del ciclo de vida de un pedido.
// pending es el único estado mutable; completed y cancelled son terminales,
// con una sola excepción: un pedido completed puede revertirse a cancelled
// (anulación de una venta ya cobrada).
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Valid indica si el string corresponde a un estado conocido.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// RollupEffect describe qué debe hacer el motor de agregados de ventas
// ante una transición de estado.
type RollupEffect int

const (
	RollupNone    RollupEffect = iota // persistir el estado, sin tocar agregados
	RollupApply                       // sumar la venta a MonthlySales y SalesHistory
	RollupReverse                     // restar la venta y retirar el snapshot
)

// Transition valida un cambio de estado contra la tabla cerrada de
// transiciones y devuelve su efecto sobre los agregados de ventas.
//
//	pending   → completed   RollupApply
//	pending   → cancelled   RollupNone
//	completed → cancelled   RollupReverse
//
// Cualquier otra combinación retorna ErrInvalidState. En particular,
// cancelled → completed se rechaza de forma explícita: revivir un pedido
// anulado volvería a sumar una venta cuyo snapshot ya no existe.
func Transition(from, to OrderStatus) (RollupEffect, error) {
	switch {
	case from == StatusPending && to == StatusCompleted:
		return RollupApply, nil
	case from == StatusPending && to == StatusCancelled:
		return RollupNone, nil
	case from == StatusCompleted && to == StatusCancelled:
		return RollupReverse, nil
	}
	return RollupNone, domain.ErrInvalidState
}

// OrderItem es una línea del pedido con nombre y precio congelados al
// momento de ordenar. El catálogo no se vuelve a consultar después.
type OrderItem struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
}

// Límites de validación por línea (mismos rangos que el esquema de pedidos).
const (
	MinItemQuantity = 1
	MaxItemQuantity = 100
)

// Order representa el pedido de una mesa. Table 0 es para llevar.
// Total se almacena de forma independiente y lo mutan las operaciones de
// agregar/quitar líneas; en la creación debe igualar Σ precio×cantidad.
type Order struct {
	ID           string
	RestaurantID string
	Table        int
	Items        []OrderItem
	Total        decimal.Decimal
	Status       OrderStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ItemsTotal calcula Σ precio×cantidad sobre las líneas actuales.
func (o *Order) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

// AddItems agrega líneas al pedido e incrementa el total.
// Solo es legal mientras el pedido sigue en pending.
func (o *Order) AddItems(items []OrderItem, additionalTotal decimal.Decimal) error {
	if o.Status != StatusPending {
		return domain.ErrInvalidState
	}
	if len(items) == 0 || additionalTotal.IsNegative() {
		return domain.ErrInvalidInput
	}
	for _, it := range items {
		if it.Name == "" || it.Price.IsNegative() ||
			it.Quantity < MinItemQuantity || it.Quantity > MaxItemQuantity {
			return domain.ErrInvalidInput
		}
	}
	o.Items = append(o.Items, items...)
	o.Total = o.Total.Add(additionalTotal)
	return nil
}

// DecrementItem reduce en una unidad la línea indicada.
// Si la cantidad es 1 se elimina la línea completa. Si el pedido queda sin
// líneas se auto-cancela (nunca llegó a completarse, no hay agregados que
// revertir).
func (o *Order) DecrementItem(itemIndex int) error {
	if o.Status != StatusPending {
		return domain.ErrInvalidState
	}
	if itemIndex < 0 || itemIndex >= len(o.Items) {
		return domain.ErrInvalidInput
	}

	item := &o.Items[itemIndex]
	if item.Quantity > 1 {
		item.Quantity--
		o.Total = o.Total.Sub(item.Price)
	} else {
		o.Total = o.Total.Sub(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		o.Items = append(o.Items[:itemIndex], o.Items[itemIndex+1:]...)
	}

	if len(o.Items) == 0 {
		o.Status = StatusCancelled
	}
	return nil
}

// Snapshot congela el pedido como detalle embebido para SalesHistory.
// El snapshot se fecha con CreatedAt del pedido, no con el momento de la
// transición: la atribución histórica sigue siendo correcta aunque el
// pedido se complete días después.
func (o *Order) Snapshot() OrderSnapshot {
	items := make([]SnapshotItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = SnapshotItem{Name: it.Name, Quantity: it.Quantity, Price: it.Price}
	}
	return OrderSnapshot{
		OrderID:   o.ID,
		Table:     o.Table,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
		Status:    string(StatusCompleted),
		Items:     items,
	}
}
