package menu

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/resto-pos/internal/application/dto"
	"github.com/tu-usuario/resto-pos/internal/domain"
	"github.com/tu-usuario/resto-pos/internal/domain/entity"
	"github.com/tu-usuario/resto-pos/internal/domain/repository"
)

const defaultListLimit = 50

// UseCase operaciones CRUD del menú. El borrado es lógico: los platos se
// marcan como no disponibles y los pedidos ya creados conservan nombre y
// precio congelados.
type UseCase struct {
	menuRepo repository.MenuItemRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(menuRepo repository.MenuItemRepository) *UseCase {
	return &UseCase{menuRepo: menuRepo}
}

// Create registra un plato nuevo, disponible por defecto.
func (uc *UseCase) Create(ctx context.Context, restaurantID string, req dto.MenuItemRequest) (*dto.MenuItemResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	item := &entity.MenuItem{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		Name:         strings.TrimSpace(req.Name),
		Price:        req.Price,
		Category:     strings.TrimSpace(req.Category),
		Image:        req.Image,
		Description:  req.Description,
		Available:    true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.menuRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("crear plato: %w", err)
	}

	resp := dto.NewMenuItemResponse(item)
	return &resp, nil
}

// Update edita un plato existente. No toca los pedidos previos.
func (uc *UseCase) Update(ctx context.Context, restaurantID, id string, req dto.MenuItemRequest) (*dto.MenuItemResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	item, err := uc.menuRepo.GetByID(ctx, restaurantID, id)
	if err != nil {
		return nil, fmt.Errorf("buscar plato: %w", err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	item.Name = strings.TrimSpace(req.Name)
	item.Price = req.Price
	item.Category = strings.TrimSpace(req.Category)
	item.Image = req.Image
	item.Description = req.Description

	if err := uc.menuRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("actualizar plato: %w", err)
	}

	resp := dto.NewMenuItemResponse(item)
	return &resp, nil
}

// Delete borrado lógico: el plato deja de ser ordenable pero sigue en la
// base para la historia.
func (uc *UseCase) Delete(ctx context.Context, restaurantID, id string) error {
	ok, err := uc.menuRepo.SetAvailable(ctx, restaurantID, id, false)
	if err != nil {
		return fmt.Errorf("retirar plato: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Get devuelve un plato por ID.
func (uc *UseCase) Get(ctx context.Context, restaurantID, id string) (*dto.MenuItemResponse, error) {
	item, err := uc.menuRepo.GetByID(ctx, restaurantID, id)
	if err != nil {
		return nil, fmt.Errorf("buscar plato: %w", err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewMenuItemResponse(item)
	return &resp, nil
}

// List platos disponibles con búsqueda, categoría y paginación.
func (uc *UseCase) List(ctx context.Context, restaurantID string, req dto.MenuListRequest) (*dto.MenuListResponse, error) {
	req.DefaultPage(defaultListLimit)

	items, total, err := uc.menuRepo.List(ctx, restaurantID, repository.MenuItemFilter{
		Search:   strings.TrimSpace(req.Search),
		Category: req.Category,
		Limit:    req.Limit,
		Offset:   req.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("listar menú: %w", err)
	}

	resp := &dto.MenuListResponse{
		MenuItems:    make([]dto.MenuItemResponse, len(items)),
		PageResponse: dto.NewPageResponse(req.Page, req.Limit, total),
	}
	for i, it := range items {
		resp.MenuItems[i] = dto.NewMenuItemResponse(it)
	}
	return resp, nil
}

func validate(req dto.MenuItemRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return domain.ErrInvalidInput
	}
	if req.Price.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}
