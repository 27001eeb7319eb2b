package model

import "time"

// Movement types.
const (
	MovementIn  = "in"
	MovementOut = "out"
)

// StockMovement records a manual inventory adjustment not tied to a purchase
// or sale (damage, loss, donation, audit correction). Immutable once created.
type StockMovement struct {
	ID           uint   `gorm:"primaryKey"`
	ProductID    uint   `gorm:"index;not null"`
	Type         string `gorm:"type:varchar(10);not null"` // "in" | "out"
	Quantity     int    `gorm:"not null"`
	Reason       string `gorm:"not null"`
	Notes        *string
	UserID       uint `gorm:"not null"`
	DepartmentID uint `gorm:"index;not null"`
	CreatedAt    time.Time

	Product    *Product    `gorm:"foreignKey:ProductID"`
	User       *User       `gorm:"foreignKey:UserID"`
	Department *Department `gorm:"foreignKey:DepartmentID"`
}
