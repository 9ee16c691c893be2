package repository

import (
	"context"

	"app/internal/domain/model"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
	// Delete fails with ErrConflict while any menu item references the
	// category (protect-on-delete).
	Delete(ctx context.Context, id int64) error
}
