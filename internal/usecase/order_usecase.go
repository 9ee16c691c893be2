package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// OrderUsecase materializes carts into orders and gates every
// order read and write through the access policy.
type OrderUsecase struct {
	tx     repo.TransactionManager
	policy *AccessPolicy
	groups repo.GroupRepository
}

func NewOrderUsecase(tx repo.TransactionManager, policy *AccessPolicy, groups repo.GroupRepository) *OrderUsecase {
	return &OrderUsecase{tx: tx, policy: policy, groups: groups}
}

type OrderItemOutput struct {
	MenuItemID int64           `json:"menu_item_id"`
	Title      string          `json:"title"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Price      decimal.Decimal `json:"price"`
}

type OrderOutput struct {
	ID             int64             `json:"id"`
	UserID         int64             `json:"user_id"`
	DeliveryCrewID *int64            `json:"delivery_crew_id"`
	Status         bool              `json:"status"`
	Total          decimal.Decimal   `json:"total"`
	Date           string            `json:"date"`
	Items          []OrderItemOutput `json:"order_items"`
}

// PlaceOrder drains the cart into a new order. The read, the order
// insert, the item copies and the cart delete commit as one
// transaction: a failure anywhere leaves the cart intact and no order
// rows behind. Transaction isolation also stops two concurrent
// checkouts for the same user from materializing the same lines twice.
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		lines, err := r.CartLines().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(lines) == 0 {
			return NewHTTPError(http.StatusBadRequest, "no items in the cart to place an order")
		}

		total := decimal.Zero
		items := make([]model.OrderItem, 0, len(lines))
		for _, l := range lines {
			total = total.Add(l.LinePrice)
			items = append(items, model.OrderItem{
				MenuItemID: l.MenuItemID,
				Quantity:   l.Quantity,
				UnitPrice:  l.UnitPrice,
				Price:      l.LinePrice,
			})
		}

		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID: userID,
			Status: false,
			Total:  total,
			Date:   now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.CartLines().Clear(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := model.Order{
			ID:     orderID,
			UserID: userID,
			Status: false,
			Total:  total,
			Date:   now,
		}
		stored, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = toOrderOutput(created, stored)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	return out, nil
}

type ListOrdersInput struct {
	Page   int
	Limit  int
	Status *bool
	// Manager-only filter.
	UserID *int64
}

// List is role-aware: customers see their own orders, managers see all
// (optionally filtered), delivery crew see their assignments.
func (u *OrderUsecase) List(ctx context.Context, userID int64, in ListOrdersInput) ([]OrderOutput, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Page == 0 {
		in.Page = 1
	}
	if in.Limit == 0 {
		in.Limit = 50
	}
	if in.Page < 0 || in.Limit < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid page")
	}

	roles, err := u.policy.RolesOf(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	f := repo.OrderListFilter{Page: in.Page, Limit: in.Limit, Status: in.Status}
	switch {
	case roles.IsManager():
		f.UserID = in.UserID
	case roles.IsDeliveryCrew():
		f.DeliveryCrewID = &userID
	default:
		f.UserID = &userID
	}

	var outs []OrderOutput
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().List(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return outs, nil
}

func (u *OrderUsecase) Get(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	roles, err := u.policy.RolesOf(ctx, userID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out OrderOutput
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if !CanReadOrder(userID, roles, o) {
			return NewHTTPError(http.StatusForbidden, "forbidden")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	return out, nil
}

type UpdateOrderInput struct {
	Status         *bool
	DeliveryCrewID *int64
}

// Update mutates the only two fields that stay writable after
// materialization. Managers may set both; the assigned delivery crew
// member may flip status only. The total is never recomputed.
func (u *OrderUsecase) Update(ctx context.Context, userID int64, orderID int64, in UpdateOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Status == nil && in.DeliveryCrewID == nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	roles, err := u.policy.RolesOf(ctx, userID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.DeliveryCrewID != nil {
		if !roles.IsManager() {
			return OrderOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
		}
		crewRoles, err := u.policy.RolesOf(ctx, *in.DeliveryCrewID)
		if err != nil {
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !crewRoles.IsDeliveryCrew() {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "user is not delivery crew")
		}
	}

	var out OrderOutput
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if !roles.IsManager() {
			// Only the assigned crew member gets past here, and only to
			// change the delivery status.
			if !IsAssignedCrew(userID, o) || in.Status == nil {
				return NewHTTPError(http.StatusForbidden, "forbidden")
			}
		}

		up := repo.OrderUpdate{Status: in.Status}
		if roles.IsManager() {
			up.DeliveryCrewID = in.DeliveryCrewID
		}
		if err := r.Orders().Update(ctx, orderID, up); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o, err = r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	return out, nil
}

func (u *OrderUsecase) Delete(ctx context.Context, userID int64, orderID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	roles, err := u.policy.RolesOf(ctx, userID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !roles.IsManager() {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		err := r.Orders().Delete(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		title := ""
		if it.MenuItem != nil {
			title = it.MenuItem.Title
		}
		outItems = append(outItems, OrderItemOutput{
			MenuItemID: it.MenuItemID,
			Title:      title,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Price:      it.Price,
		})
	}

	return OrderOutput{
		ID:             o.ID,
		UserID:         o.UserID,
		DeliveryCrewID: o.DeliveryCrewID,
		Status:         o.Status,
		Total:          o.Total,
		Date:           o.Date.Format("2006-01-02"),
		Items:          outItems,
	}
}
