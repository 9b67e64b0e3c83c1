package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Supplier struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CompanyName string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"company_name" validate:"required"`
	Phone       string          `gorm:"type:varchar(20)" json:"phone"`
	Address     string          `gorm:"type:varchar(200)" json:"address"`
	TaxID       string          `gorm:"type:varchar(20);index" json:"tax_id"` // optional; uniqueness checked in service
	BillingInfo string          `gorm:"type:text" json:"billing_info"`
	DiscountPct decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"discount_pct" validate:"dec_percentage"`
	VATPct      decimal.Decimal `gorm:"type:decimal(5,2);default:21" json:"vat_pct" validate:"dec_percentage"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Products []Product `gorm:"many2many:product_suppliers;" json:"products,omitempty"`
}
