package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Reference   string          `gorm:"type:varchar(50);index" json:"reference"` // optional external code; uniqueness checked in service
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price" validate:"dec_positive"`
	Location    string          `gorm:"type:varchar(100)" json:"location"`
	Stock       int             `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
	TargetStock int             `gorm:"not null;default:100" json:"target_stock" validate:"gt=0"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Suppliers []Supplier `gorm:"many2many:product_suppliers;" json:"suppliers,omitempty"`
}

// StockAlert reports whether remaining stock has dropped to 10% or less of
// the target level. A zero target never alerts.
func (p *Product) StockAlert() bool {
	if p.TargetStock == 0 {
		return false
	}
	threshold := float64(p.TargetStock) * 0.10
	return float64(p.Stock) <= threshold
}
