package model

import "github.com/shopspring/decimal"

// OrderItem is a frozen copy of a cart line at checkout time.
// Immutable after creation.
type OrderItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64           `gorm:"not null;uniqueIndex:uniq_order_item" json:"order_id"`
	MenuItemID int64           `gorm:"not null;uniqueIndex:uniq_order_item" json:"menu_item_id"`
	MenuItem   *MenuItem       `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Quantity   int64           `gorm:"not null;default:1" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"unit_price"`
	Price      decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"price"`
}
