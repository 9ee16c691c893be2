package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is created exactly once from a non-empty cart. Total is computed
// at creation and never recomputed; only Status and DeliveryCrewID are
// mutable afterwards. Status is a two-state flag: false=pending,
// true=delivered.
type Order struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64           `gorm:"not null;index" json:"user_id"`
	DeliveryCrewID *int64          `gorm:"index" json:"delivery_crew_id"`
	Status         bool            `gorm:"not null;default:false;index" json:"status"`
	Total          decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"total"`
	Date           time.Time       `gorm:"type:date;not null;index" json:"date"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime" json:"-"`
	UpdatedAt      time.Time       `gorm:"not null;autoUpdateTime" json:"-"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"order_items,omitempty"`
}
