package dto

import "github.com/shopspring/decimal"

// ReportFilter bounds a report to a date range. Dates are inclusive,
// formatted YYYY-MM-DD; both empty = all time.
type ReportFilter struct {
	From         string `form:"from"`
	To           string `form:"to"`
	DepartmentID uint   `form:"departmentId"`
}

// SalesReportRow is one date bucket of the sales report.
type SalesReportRow struct {
	Date  string          `json:"date"` // YYYY-MM-DD
	Total decimal.Decimal `json:"total"`
}

// StockReportRow is one product line of the stock report.
type StockReportRow struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// DashboardStats is the aggregate snapshot behind GET /api/dashboard/stats.
type DashboardStats struct {
	TotalProducts   int64           `json:"totalProducts"`
	TotalSales      int64           `json:"totalSales"`
	TotalPurchases  int64           `json:"totalPurchases"`
	SalesToday      decimal.Decimal `json:"salesToday"`
	LowStockItems   int64           `json:"lowStockItems"`
	ActiveEmployees int64           `json:"activeEmployees"`
}

// ChartPoint is one bucket of the dashboard sales chart.
type ChartPoint struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}
