package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one staged purchase entry. At most one row per
// (user, menu item); a repeat add increments Quantity instead.
// UnitPrice is the catalog price at first add and never changes.
type CartLine struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64           `gorm:"not null;uniqueIndex:uniq_cart_user_item" json:"user_id"`
	MenuItemID int64           `gorm:"not null;uniqueIndex:uniq_cart_user_item" json:"menu_item_id"`
	MenuItem   *MenuItem       `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Quantity   int64           `gorm:"not null;default:1" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"unit_price"`
	LinePrice  decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"price"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"-"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime" json:"-"`
}
