package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale records outgoing stock sold to a customer. Immutable once created;
// the matching -quantity ledger delta is applied in the same database
// transaction and the whole sale fails on insufficient stock.
type Sale struct {
	ID           uint            `gorm:"primaryKey"`
	ProductID    uint            `gorm:"index;not null"`
	Quantity     int             `gorm:"not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	UserID       uint            `gorm:"not null"`
	DepartmentID uint            `gorm:"index;not null"`
	CreatedAt    time.Time

	Product    *Product    `gorm:"foreignKey:ProductID"`
	User       *User       `gorm:"foreignKey:UserID"`
	Department *Department `gorm:"foreignKey:DepartmentID"`
}
