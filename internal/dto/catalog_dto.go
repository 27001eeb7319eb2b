package dto

import "github.com/shopspring/decimal"

// ─── Departments ─────────────────────────────────────────────────────────────

type CreateDepartmentRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=120"`
	Description *string `json:"description"`
}

type UpdateDepartmentRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=120"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type DepartmentResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsActive    bool    `json:"isActive"`
	CreatedAt   string  `json:"createdAt"`
}

// ─── Categories ──────────────────────────────────────────────────────────────

type CreateCategoryRequest struct {
	Name         string `json:"name"         validate:"required,min=2,max=120"`
	Code         string `json:"code"         validate:"required,min=2,max=10,uppercase"`
	DepartmentID uint   `json:"departmentId" validate:"required,min=1"`
	ParentID     *uint  `json:"parentId"`
}

type UpdateCategoryRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=120"`
	Code     *string `json:"code" validate:"omitempty,min=2,max=10,uppercase"`
	ParentID *uint   `json:"parentId"`
	IsActive *bool   `json:"isActive"`
}

type CategoryResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	DepartmentID uint   `json:"departmentId"`
	ParentID     *uint  `json:"parentId"`
	IsActive     bool   `json:"isActive"`
	CreatedAt    string `json:"createdAt"`
}

// ─── Products ────────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name          string          `json:"name"          validate:"required,min=2,max=120"`
	Code          string          `json:"code"          validate:"required,min=3,max=20"`
	Price         decimal.Decimal `json:"price"         validate:"required"`
	StockQuantity int             `json:"stockQuantity" validate:"min=0"`
	MinStockLevel int             `json:"minStockLevel" validate:"min=0"`
	Image         *string         `json:"image"`
	DepartmentID  uint            `json:"departmentId"  validate:"required,min=1"`
	CategoryID    uint            `json:"categoryId"    validate:"required,min=1"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"          validate:"omitempty,min=2,max=120"`
	Price         *decimal.Decimal `json:"price"`
	MinStockLevel *int             `json:"minStockLevel" validate:"omitempty,min=0"`
	Image         *string          `json:"image"`
	CategoryID    *uint            `json:"categoryId"    validate:"omitempty,min=1"`
	IsActive      *bool            `json:"isActive"`
}

// ProductFilter is bound from the query string of GET /api/products.
type ProductFilter struct {
	DepartmentID uint   `form:"departmentId"`
	CategoryID   uint   `form:"categoryId"`
	Code         string `form:"code"`
	Name         string `form:"name"`
}

type ProductResponse struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	MinStockLevel int             `json:"minStockLevel"`
	Image         *string         `json:"image"`
	DepartmentID  uint            `json:"departmentId"`
	CategoryID    uint            `json:"categoryId"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     string          `json:"createdAt"`
}
