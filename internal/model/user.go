package model

import (
	"time"

	"gorm.io/datatypes"
)

// User stores system accounts with role-based access.
// Role: "admin" | "employee". Admins implicitly hold every permission;
// employees are limited to the entries in Permissions.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string `gorm:"not null"`
	Role         string `gorm:"type:varchar(20);not null"`
	// Permissions is a JSON array of capability strings, e.g.
	// ["products.manage", "reports.view"].
	Permissions datatypes.JSONSlice[string] `gorm:"type:json"`
	IsActive    bool                        `gorm:"not null;default:true"`
	CreatedAt   time.Time
}
