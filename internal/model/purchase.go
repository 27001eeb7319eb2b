package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase records incoming stock bought from a supplier. Immutable once
// created; the matching +quantity ledger delta is applied in the same
// database transaction.
type Purchase struct {
	ID           uint            `gorm:"primaryKey"`
	ProductID    uint            `gorm:"index;not null"`
	Quantity     int             `gorm:"not null"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SupplierName *string
	UserID       uint `gorm:"not null"`
	DepartmentID uint `gorm:"index;not null"`
	CreatedAt    time.Time

	Product    *Product    `gorm:"foreignKey:ProductID"`
	User       *User       `gorm:"foreignKey:UserID"`
	Department *Department `gorm:"foreignKey:DepartmentID"`
}
