package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item belonging to one department and one category.
// StockQuantity is only ever mutated through the stock ledger — see
// service.LedgerService.
type Product struct {
	ID            uint            `gorm:"primaryKey"`
	Name          string          `gorm:"index;not null"`
	Code          string          `gorm:"uniqueIndex;not null"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	MinStockLevel int             `gorm:"not null;default:0"`
	Image         *string
	DepartmentID  uint `gorm:"index;not null"`
	CategoryID    uint `gorm:"index;not null"`
	IsActive      bool `gorm:"not null;default:true"`
	CreatedAt     time.Time

	Department *Department `gorm:"foreignKey:DepartmentID"`
	Category   *Category   `gorm:"foreignKey:CategoryID"`
}
