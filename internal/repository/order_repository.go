package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderListFilter struct {
	Page  int
	Limit int
	// nil means no filter.
	UserID         *int64
	DeliveryCrewID *int64
	Status         *bool
}

type OrderUpdate struct {
	// nil fields are left untouched.
	Status         *bool
	DeliveryCrewID *int64
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	List(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	Update(ctx context.Context, orderID int64, up OrderUpdate) error
	Delete(ctx context.Context, orderID int64) error
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
