package model

import "time"

// Department is the top-level partition of the catalog (a store section).
// Every downstream entity references exactly one department, directly or via
// its product.
type Department struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description *string
	IsActive    bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
}
