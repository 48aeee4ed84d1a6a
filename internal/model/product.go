package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockStatus classifies a product's quantity against its low-stock threshold
type StockStatus string

const (
	StatusInStock    StockStatus = "In Stock"
	StatusLowStock   StockStatus = "Low Stock"
	StatusOutOfStock StockStatus = "Out of Stock"
)

// DefaultLowStockThreshold is applied when a product is created without one
const DefaultLowStockThreshold = 10

type Product struct {
	BaseModel
	SKU  string `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`

	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id" validate:"uuid_required"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SupplierID uuid.UUID `gorm:"type:uuid;not null;index" json:"supplier_id" validate:"uuid_required"`
	Supplier   *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`

	Quantity          int         `gorm:"not null;default:0" json:"quantity"`
	Price             float64     `gorm:"not null;default:0" json:"price" validate:"gte=0"`
	LowStockThreshold int         `gorm:"not null;default:10" json:"low_stock_threshold"`
	Status            StockStatus `gorm:"type:varchar(20);not null" json:"status"`
}

// DeriveStatus computes the stock status from quantity and threshold.
// The threshold boundary is inclusive: quantity == threshold is Low Stock.
func DeriveStatus(quantity, threshold int) StockStatus {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= threshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// BeforeSave recomputes the status on every write so it never drifts from
// quantity. Callers cannot set status independently.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.Status = DeriveStatus(p.Quantity, p.LowStockThreshold)
	return nil
}
