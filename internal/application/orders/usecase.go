// Package orders contiene los casos de uso del ciclo de vida de un pedido:
// creación, mutación de líneas mientras está pending, transición de estado
// (único punto que toca el motor de agregados) y consultas de seguimiento.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/resto-pos/internal/application/dto"
	"github.com/tu-usuario/resto-pos/internal/domain"
	"github.com/tu-usuario/resto-pos/internal/domain/entity"
	"github.com/tu-usuario/resto-pos/internal/domain/repository"
	"github.com/tu-usuario/resto-pos/pkg/logger"
)

const defaultListLimit = 100

// UseCase casos de uso de pedidos.
type UseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
	menuRepo  repository.MenuItemRepository
	rollup    RollupEngine
	maxTables int
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuItemRepository,
	rollup RollupEngine,
	maxTables int,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		rollup:    rollup,
		maxTables: maxTables,
		log:       log,
	}
}

// Place crea un pedido en estado pending. No toca los agregados de ventas:
// eso ocurre recién cuando el pedido se completa.
func (uc *UseCase) Place(ctx context.Context, restaurantID string, in dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	if in.Table == nil || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	table := *in.Table
	// Mesa 0 = para llevar; el resto dentro del rango configurado.
	if table < 0 || table > uc.maxTables {
		return nil, domain.ErrInvalidInput
	}

	items := make([]entity.OrderItem, len(in.Items))
	sum := decimal.Zero
	ids := make([]string, 0, len(in.Items))
	for i, it := range in.Items {
		if it.MenuItemID == "" || it.Name == "" || it.Price.IsNegative() ||
			it.Quantity < entity.MinItemQuantity || it.Quantity > entity.MaxItemQuantity {
			return nil, domain.ErrInvalidInput
		}
		items[i] = entity.OrderItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Price:      it.Price,
			Quantity:   it.Quantity,
		}
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		ids = append(ids, it.MenuItemID)
	}
	// El total viaja aparte en el request y se almacena de forma
	// independiente: en la creación debe cuadrar exactamente con las líneas.
	if in.Total.IsNegative() || !in.Total.Equal(sum) {
		return nil, domain.ErrInvalidInput
	}

	// Todos los platos referenciados deben existir para este restaurante y
	// estar disponibles. El pedido congela nombre y precio: después de esto
	// el catálogo no se vuelve a consultar.
	available, err := uc.menuRepo.ListAvailableByIDs(ctx, restaurantID, ids)
	if err != nil {
		return nil, fmt.Errorf("validar platos: %w", err)
	}
	availableSet := make(map[string]struct{}, len(available))
	for _, m := range available {
		availableSet[m.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := availableSet[id]; !ok {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	order := &entity.Order{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Table:        table,
		Items:        items,
		Total:        in.Total,
		Status:       entity.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("crear pedido: %w", err)
	}

	uc.log.Info().
		Str("restaurant_id", restaurantID).
		Str("order_id", order.ID).
		Int("table", table).
		Str("total", order.Total.String()).
		Msg("pedido creado")

	resp := dto.NewOrderResponse(order)
	return &resp, nil
}

// AddItems agrega líneas a un pedido pending e incrementa su total.
func (uc *UseCase) AddItems(ctx context.Context, restaurantID, orderID string, in dto.AddItemsRequest) (*dto.OrderResponse, error) {
	order, err := uc.loadOrder(ctx, restaurantID, orderID)
	if err != nil {
		return nil, err
	}

	items := make([]entity.OrderItem, len(in.Items))
	for i, it := range in.Items {
		items[i] = entity.OrderItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Price:      it.Price,
			Quantity:   it.Quantity,
		}
	}
	if err := order.AddItems(items, in.AdditionalTotal); err != nil {
		return nil, err
	}
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("actualizar pedido: %w", err)
	}

	resp := dto.NewOrderResponse(order)
	return &resp, nil
}

// DecrementItem resta una unidad de la línea indicada. Si el pedido queda
// sin líneas se auto-cancela: nunca se completó, no hay agregados que
// revertir.
func (uc *UseCase) DecrementItem(ctx context.Context, restaurantID, orderID string, itemIndex int) (*dto.OrderResponse, error) {
	order, err := uc.loadOrder(ctx, restaurantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.DecrementItem(itemIndex); err != nil {
		return nil, err
	}
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("actualizar pedido: %w", err)
	}

	if order.Status == entity.StatusCancelled {
		uc.log.Info().
			Str("restaurant_id", restaurantID).
			Str("order_id", orderID).
			Msg("pedido auto-cancelado al quedar sin líneas")
	}

	resp := dto.NewOrderResponse(order)
	return &resp, nil
}

// SetStatus transiciona el estado del pedido. Es la única operación que
// toca el motor de agregados, y todo (estado + tres upserts) confirma en
// una sola transacción: o la venta queda registrada completa o no queda.
func (uc *UseCase) SetStatus(ctx context.Context, restaurantID, orderID, newStatus string) (*dto.OrderResponse, error) {
	status := entity.OrderStatus(newStatus)
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Order
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		monthlyRepo repository.MonthlySalesRepository,
		historyRepo repository.SalesHistoryRepository,
	) error {
		order, err := orderRepo.GetByID(ctx, restaurantID, orderID)
		if err != nil {
			return fmt.Errorf("cargar pedido: %w", err)
		}
		if order == nil {
			return domain.ErrNotFound
		}

		effect, err := entity.Transition(order.Status, status)
		if err != nil {
			return err
		}

		order.Status = status
		order.UpdatedAt = time.Now()
		if err := orderRepo.Update(ctx, order); err != nil {
			return fmt.Errorf("actualizar estado: %w", err)
		}

		switch effect {
		case entity.RollupApply:
			if err := uc.rollup.Apply(ctx, monthlyRepo, historyRepo, order); err != nil {
				return err
			}
		case entity.RollupReverse:
			if err := uc.rollup.Reverse(ctx, monthlyRepo, historyRepo, order); err != nil {
				return err
			}
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("restaurant_id", restaurantID).
		Str("order_id", orderID).
		Str("status", newStatus).
		Msg("estado de pedido actualizado")

	resp := dto.NewOrderResponse(updated)
	return &resp, nil
}

// Get devuelve un pedido del restaurante.
func (uc *UseCase) Get(ctx context.Context, restaurantID, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.loadOrder(ctx, restaurantID, orderID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewOrderResponse(order)
	return &resp, nil
}

// List pedidos del restaurante con filtros de estado y mesa.
func (uc *UseCase) List(ctx context.Context, restaurantID string, in dto.OrderListRequest) (*dto.OrderListResponse, error) {
	in.DefaultPage(defaultListLimit)

	f := repository.OrderFilter{
		Status: in.Status,
		Table:  in.Table,
		Limit:  in.Limit,
		Offset: in.Offset(),
	}
	list, total, err := uc.orderRepo.List(ctx, restaurantID, f)
	if err != nil {
		return nil, fmt.Errorf("listar pedidos: %w", err)
	}

	resp := &dto.OrderListResponse{
		Orders:       make([]dto.OrderResponse, len(list)),
		PageResponse: dto.NewPageResponse(in.Page, in.Limit, total),
	}
	for i, o := range list {
		resp.Orders[i] = dto.NewOrderResponse(o)
	}
	return resp, nil
}

// Delete elimina el pedido. La historia de ventas no se toca: el aporte de
// un pedido completado solo se revierte anulándolo, no borrándolo.
func (uc *UseCase) Delete(ctx context.Context, restaurantID, orderID string) error {
	deleted, err := uc.orderRepo.Delete(ctx, restaurantID, orderID)
	if err != nil {
		return fmt.Errorf("eliminar pedido: %w", err)
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *UseCase) loadOrder(ctx context.Context, restaurantID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, restaurantID, orderID)
	if err != nil {
		return nil, fmt.Errorf("cargar pedido: %w", err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}
