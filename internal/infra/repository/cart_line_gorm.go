package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartLineGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartLineGormRepository(db *gorm.DB) *CartLineGormRepository {
	return &CartLineGormRepository{db: db}
}

func (r *CartLineGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	var lines []model.CartLine

	if err := r.db.WithContext(ctx).
		Preload("MenuItem").
		Preload("MenuItem.Category").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&lines).Error; err != nil {
		return []model.CartLine{}, err
	}

	return lines, nil
}

// AddOrIncrement is a single INSERT .. ON CONFLICT DO UPDATE so two
// concurrent adds for the same (user, menu item) serialize at the row:
// no lost increment, no duplicate line. The DO UPDATE branch keeps the
// originally snapshotted unit_price and recomputes line_price from it.
func (r *CartLineGormRepository) AddOrIncrement(ctx context.Context, userID int64, menuItemID int64, addQty int64, unitPrice decimal.Decimal) (model.CartLine, bool, error) {
	if addQty <= 0 {
		return model.CartLine{}, false, errors.New("invalid quantity")
	}

	line := model.CartLine{
		UserID:     userID,
		MenuItemID: menuItemID,
		Quantity:   addQty,
		UnitPrice:  unitPrice,
		LinePrice:  unitPrice.Mul(decimal.NewFromInt(addQty)),
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "menu_item_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			// UPDATE expressions see the pre-update row, so both read the
			// old quantity.
			"quantity":   gorm.Expr("cart_lines.quantity + excluded.quantity"),
			"line_price": gorm.Expr("cart_lines.unit_price * (cart_lines.quantity + excluded.quantity)"),
		}),
	}).Create(&line).Error
	if err != nil {
		return model.CartLine{}, false, err
	}

	var out model.CartLine
	err = r.db.WithContext(ctx).
		Preload("MenuItem").
		Preload("MenuItem.Category").
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		First(&out).Error
	if err != nil {
		return model.CartLine{}, false, err
	}

	// An existing line had quantity >= 1 before the add, so the result
	// equals addQty only when this call inserted the row.
	created := out.Quantity == addQty
	return out, created, nil
}

// Deleting zero rows is fine: clearing an empty cart is idempotent.
func (r *CartLineGormRepository) Clear(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartLine{}).Error
}
