package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is catalog reference data. Price edits here never touch
// cart lines or orders; those keep the snapshot taken at add-to-cart.
type MenuItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string          `gorm:"type:varchar(255);not null;index" json:"title"`
	Price      decimal.Decimal `gorm:"type:numeric(8,2);not null;index" json:"price"`
	Featured   bool            `gorm:"not null;default:false;index" json:"featured"`
	CategoryID int64           `gorm:"not null;index" json:"category_id"`
	Category   *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"-"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime" json:"-"`
}
