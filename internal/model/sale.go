package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is one row of the append-only purchase ledger. UnitPrice is a
// snapshot of the product price at the moment of the sale, so later price
// edits never rewrite history. Rows are created by the sale service and
// never updated or deleted.
type Sale struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Quantity  int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`

	UserID    uint     `gorm:"not null;index" json:"user_id"`
	ProductID uint     `gorm:"not null;index" json:"product_id"`
	User      *User    `json:"user,omitempty"`
	Product   *Product `json:"product,omitempty"`
}

// Total is the derived amount of the sale: quantity * unit price.
func (s *Sale) Total() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}
