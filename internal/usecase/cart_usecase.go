package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase is the cart ledger: the mutable staging area a checkout
// drains into an order.
type CartUsecase struct {
	cartRepo repo.CartLineRepository
	menuRepo repo.MenuItemRepository
}

func NewCartUsecase(cartRepo repo.CartLineRepository, menuRepo repo.MenuItemRepository) *CartUsecase {
	return &CartUsecase{
		cartRepo: cartRepo,
		menuRepo: menuRepo,
	}
}

type AddToCartInput struct {
	MenuItemID int64
	Quantity   int64
}

type CartLineResponse struct {
	ID        int64           `json:"id"`
	MenuItem  *model.MenuItem `json:"menu_item"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Price     decimal.Decimal `json:"price"`
}

type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// AddOrIncrement stages a menu item. A repeat add for the same item
// merges into the existing line: quantity grows, unit_price stays the
// snapshot taken at first add. Created reports whether a new line was
// made (201) or an existing one grew (200).
func (u *CartUsecase) AddOrIncrement(ctx context.Context, userID int64, in AddToCartInput) (CartLineResponse, bool, error) {
	if userID <= 0 {
		return CartLineResponse{}, false, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.MenuItemID <= 0 {
		return CartLineResponse{}, false, NewHTTPError(http.StatusBadRequest, "invalid menu item id")
	}
	// Zero and negative deltas are rejected outright; removal goes
	// through the cart-clear endpoint.
	if in.Quantity <= 0 {
		return CartLineResponse{}, false, NewHTTPError(http.StatusBadRequest, "quantity must be a positive number")
	}

	item, err := u.menuRepo.FindByID(ctx, in.MenuItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartLineResponse{}, false, NewHTTPError(http.StatusNotFound, "menu item not found")
	}
	if err != nil {
		return CartLineResponse{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	line, created, err := u.cartRepo.AddOrIncrement(ctx, userID, item.ID, in.Quantity, item.Price)
	if errors.Is(err, repo.ErrConflict) {
		// Lost the upsert race once; the second attempt merges into the
		// row the winner created.
		line, created, err = u.cartRepo.AddOrIncrement(ctx, userID, item.ID, in.Quantity, item.Price)
	}
	if err != nil {
		return CartLineResponse{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toCartLineResponse(line), created, nil
}

func (u *CartUsecase) List(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	lines, err := u.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]CartLineResponse, 0, len(lines))
	total := decimal.Zero
	for _, l := range lines {
		items = append(items, toCartLineResponse(l))
		total = total.Add(l.LinePrice)
	}

	return CartResponse{Items: items, Total: total}, nil
}

// Clear empties the cart. Clearing an already empty cart succeeds.
func (u *CartUsecase) Clear(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := u.cartRepo.Clear(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func toCartLineResponse(l model.CartLine) CartLineResponse {
	return CartLineResponse{
		ID:        l.ID,
		MenuItem:  l.MenuItem,
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice,
		Price:     l.LinePrice,
	}
}
