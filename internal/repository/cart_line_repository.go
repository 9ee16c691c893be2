package repository

import (
	"context"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

type CartLineRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error)
	// AddOrIncrement upserts the (user, menu item) line atomically: a new
	// line stores unitPrice as the snapshot, an existing line keeps its
	// original snapshot and gains addQty. Concurrent calls for the same
	// pair must never lose an increment or create a second row.
	// created reports whether a new line was inserted.
	AddOrIncrement(ctx context.Context, userID int64, menuItemID int64, addQty int64, unitPrice decimal.Decimal) (line model.CartLine, created bool, err error)
	// Clear deletes every line for the user. Clearing an empty cart is a
	// no-op, not an error.
	Clear(ctx context.Context, userID int64) error
}
