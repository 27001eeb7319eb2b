package dto

import "github.com/shopspring/decimal"

// Purchases, sales and stock movements share the same shape of flow: the
// request never carries a total — totals are always computed server-side
// from quantity × unit cost/price.

// ─── Purchases ───────────────────────────────────────────────────────────────

type CreatePurchaseRequest struct {
	ProductID    uint            `json:"productId"    validate:"required,min=1"`
	Quantity     int             `json:"quantity"     validate:"required,min=1"`
	UnitCost     decimal.Decimal `json:"unitCost"     validate:"required"`
	SupplierName *string         `json:"supplierName" validate:"omitempty,max=150"`
}

type PurchaseResponse struct {
	ID           uint            `json:"id"`
	ProductID    uint            `json:"productId"`
	ProductName  string          `json:"productName"`
	Quantity     int             `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	SupplierName *string         `json:"supplierName"`
	UserID       uint            `json:"userId"`
	DepartmentID uint            `json:"departmentId"`
	CreatedAt    string          `json:"createdAt"`
	// NewStockQuantity is the product quantity after the ledger delta,
	// as observed inside the commit.
	NewStockQuantity int `json:"newStockQuantity"`
}

// ─── Sales ───────────────────────────────────────────────────────────────────

type CreateSaleRequest struct {
	ProductID uint            `json:"productId" validate:"required,min=1"`
	Quantity  int             `json:"quantity"  validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"required"`
}

type SaleResponse struct {
	ID               uint            `json:"id"`
	ProductID        uint            `json:"productId"`
	ProductName      string          `json:"productName"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	TotalPrice       decimal.Decimal `json:"totalPrice"`
	UserID           uint            `json:"userId"`
	DepartmentID     uint            `json:"departmentId"`
	CreatedAt        string          `json:"createdAt"`
	NewStockQuantity int             `json:"newStockQuantity"`
}

// ─── Stock movements ─────────────────────────────────────────────────────────

type CreateStockMovementRequest struct {
	ProductID uint    `json:"productId" validate:"required,min=1"`
	Type      string  `json:"type"      validate:"required,oneof=in out"`
	Quantity  int     `json:"quantity"  validate:"required,min=1"`
	Reason    string  `json:"reason"    validate:"required,min=2,max=150"`
	Notes     *string `json:"notes"`
}

type StockMovementResponse struct {
	ID               uint    `json:"id"`
	ProductID        uint    `json:"productId"`
	ProductName      string  `json:"productName"`
	Type             string  `json:"type"`
	Quantity         int     `json:"quantity"`
	Reason           string  `json:"reason"`
	Notes            *string `json:"notes"`
	UserID           uint    `json:"userId"`
	DepartmentID     uint    `json:"departmentId"`
	CreatedAt        string  `json:"createdAt"`
	NewStockQuantity int     `json:"newStockQuantity"`
}

// TransactionFilter is bound from the query string of the transaction list
// endpoints (purchases, sales, stock movements).
type TransactionFilter struct {
	DepartmentID uint `form:"departmentId"`
	ProductID    uint `form:"productId"`
}
