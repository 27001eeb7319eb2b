package model

import "time"

// Category groups products within a department. Code is a short unique
// prefix like "PHC" or "CAM" used when generating product codes.
type Category struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Code         string `gorm:"uniqueIndex;not null"`
	DepartmentID uint   `gorm:"index;not null"`
	// ParentID supports a category tree. It is stored and returned but no
	// query traverses it.
	ParentID  *uint `gorm:"index"`
	IsActive  bool  `gorm:"not null;default:true"`
	CreatedAt time.Time

	Department *Department `gorm:"foreignKey:DepartmentID"`
}
