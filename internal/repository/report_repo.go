package repository

import (
	"context"
	"time"

	"github.com/Shema-glitch/StockTracker/internal/dto"
	"github.com/Shema-glitch/StockTracker/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesBucket is one day of aggregated sales, as returned by the grouping
// queries below.
type SalesBucket struct {
	Day   time.Time       `gorm:"column:day"`
	Total decimal.Decimal `gorm:"column:total"`
	Count int64           `gorm:"column:count"`
}

// SaleLine is one sale joined with its product name, used by the
// spreadsheet export.
type SaleLine struct {
	CreatedAt   time.Time
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// ReportRepository aggregates transaction rows for dashboards and reports.
// All grouping happens in SQL — the service layer only shapes the result.
type ReportRepository interface {
	SalesByDay(ctx context.Context, filter dto.ReportFilter) ([]SalesBucket, error)
	SalesSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
	SaleLines(ctx context.Context, filter dto.ReportFilter) ([]SaleLine, error)
	StockLevels(ctx context.Context, departmentID uint) ([]dto.StockReportRow, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

// salesRange applies the inclusive from/to date filter.
func salesRange(q *gorm.DB, filter dto.ReportFilter) *gorm.DB {
	if filter.From != "" {
		q = q.Where("sales.created_at >= ?", filter.From)
	}
	if filter.To != "" {
		// inclusive upper bound: anything before the next day
		if to, err := time.Parse("2006-01-02", filter.To); err == nil {
			q = q.Where("sales.created_at < ?", to.AddDate(0, 0, 1))
		}
	}
	if filter.DepartmentID != 0 {
		q = q.Where("sales.department_id = ?", filter.DepartmentID)
	}
	return q
}

func (r *reportRepo) SalesByDay(ctx context.Context, filter dto.ReportFilter) ([]SalesBucket, error) {
	var buckets []SalesBucket
	q := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("DATE(created_at) AS day, COALESCE(SUM(total_price), 0) AS total, COUNT(*) AS count")
	q = salesRange(q, filter)
	err := q.Group("DATE(created_at)").Order("day ASC").Scan(&buckets).Error
	return buckets, err
}

func (r *reportRepo) SalesSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("created_at >= ?", since).
		Select("COALESCE(SUM(total_price), 0)").Scan(&total).Error
	return total, err
}

func (r *reportRepo) SaleLines(ctx context.Context, filter dto.ReportFilter) ([]SaleLine, error) {
	var lines []SaleLine
	q := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("sales.created_at, products.name AS product_name, sales.quantity, sales.unit_price, sales.total_price").
		Joins("JOIN products ON products.id = sales.product_id")
	q = salesRange(q, filter)
	err := q.Order("sales.created_at ASC").Scan(&lines).Error
	return lines, err
}

func (r *reportRepo) StockLevels(ctx context.Context, departmentID uint) ([]dto.StockReportRow, error) {
	var rows []dto.StockReportRow
	q := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("name AS product, stock_quantity AS quantity").
		Where("is_active = true")
	if departmentID != 0 {
		q = q.Where("department_id = ?", departmentID)
	}
	err := q.Order("name ASC").Scan(&rows).Error
	return rows, err
}
