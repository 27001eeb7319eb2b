package service

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/Shema-glitch/StockTracker/internal/dto"
	"github.com/Shema-glitch/StockTracker/internal/infra"
	"github.com/Shema-glitch/StockTracker/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	dashboardStatsKey = "dashboard:stats"
	dashboardStatsTTL = 60 * time.Second
)

type ReportService interface {
	DashboardStats(ctx context.Context) (*dto.DashboardStats, error)
	SalesChart(ctx context.Context, filter dto.ReportFilter) ([]dto.ChartPoint, error)
	SalesReport(ctx context.Context, filter dto.ReportFilter) ([]dto.SalesReportRow, error)
	StockReport(ctx context.Context, departmentID uint) ([]dto.StockReportRow, error)
	WriteSalesXLSX(ctx context.Context, w io.Writer, filter dto.ReportFilter) error
	WriteStockXLSX(ctx context.Context, w io.Writer, departmentID uint) error
	WriteSalesPDF(ctx context.Context, w io.Writer, filter dto.ReportFilter) error
}

type reportService struct {
	reports   repository.ReportRepository
	products  repository.ProductRepository
	sales     repository.SaleRepository
	purchases repository.PurchaseRepository
	users     repository.UserRepository
	rdb       *redis.Client
}

func NewReportService(
	reports repository.ReportRepository,
	products repository.ProductRepository,
	sales repository.SaleRepository,
	purchases repository.PurchaseRepository,
	users repository.UserRepository,
	rdb *redis.Client,
) ReportService {
	return &reportService{
		reports:   reports,
		products:  products,
		sales:     sales,
		purchases: purchases,
		users:     users,
		rdb:       rdb,
	}
}

// DashboardStats aggregates the landing-page counters. Results are cached
// in redis for a minute; a cache miss or a redis outage both fall through
// to the database.
func (s *reportService) DashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dashboardStatsKey).Result(); err == nil {
			var stats dto.DashboardStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.rdb.Set(ctx, dashboardStatsKey, payload, dashboardStatsTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("dashboard stats cache write failed")
			}
		}
	}
	return stats, nil
}

func (s *reportService) computeStats(ctx context.Context) (*dto.DashboardStats, error) {
	totalProducts, err := s.products.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	totalSales, err := s.sales.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalPurchases, err := s.purchases.Count(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	salesToday, err := s.reports.SalesSince(ctx, midnight)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.products.CountBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	activeEmployees, err := s.users.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStats{
		TotalProducts:   totalProducts,
		TotalSales:      totalSales,
		TotalPurchases:  totalPurchases,
		SalesToday:      salesToday,
		LowStockItems:   lowStock,
		ActiveEmployees: activeEmployees,
	}, nil
}

// SalesChart returns per-day buckets. With no explicit range it covers the
// last 30 days.
func (s *reportService) SalesChart(ctx context.Context, filter dto.ReportFilter) ([]dto.ChartPoint, error) {
	if filter.From == "" && filter.To == "" {
		filter.From = time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	}
	buckets, err := s.reports.SalesByDay(ctx, filter)
	if err != nil {
		return nil, err
	}
	points := make([]dto.ChartPoint, len(buckets))
	for i, b := range buckets {
		points[i] = dto.ChartPoint{
			Date:  b.Day.Format("2006-01-02"),
			Total: b.Total,
			Count: b.Count,
		}
	}
	return points, nil
}

func (s *reportService) SalesReport(ctx context.Context, filter dto.ReportFilter) ([]dto.SalesReportRow, error) {
	buckets, err := s.reports.SalesByDay(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.SalesReportRow, len(buckets))
	for i, b := range buckets {
		rows[i] = dto.SalesReportRow{
			Date:  b.Day.Format("2006-01-02"),
			Total: b.Total,
		}
	}
	return rows, nil
}

func (s *reportService) StockReport(ctx context.Context, departmentID uint) ([]dto.StockReportRow, error) {
	return s.reports.StockLevels(ctx, departmentID)
}

func (s *reportService) WriteSalesXLSX(ctx context.Context, w io.Writer, filter dto.ReportFilter) error {
	lines, err := s.reports.SaleLines(ctx, filter)
	if err != nil {
		return err
	}
	return infra.WriteSalesReportXLSX(w, lines)
}

func (s *reportService) WriteStockXLSX(ctx context.Context, w io.Writer, departmentID uint) error {
	rows, err := s.reports.StockLevels(ctx, departmentID)
	if err != nil {
		return err
	}
	return infra.WriteStockReportXLSX(w, rows)
}

func (s *reportService) WriteSalesPDF(ctx context.Context, w io.Writer, filter dto.ReportFilter) error {
	lines, err := s.reports.SaleLines(ctx, filter)
	if err != nil {
		return err
	}
	from, to := reportRange(filter, lines)
	return infra.WriteSalesReportPDF(w, lines, from, to)
}

// reportRange resolves the displayed date range, falling back to the data
// itself when the filter leaves an end open.
func reportRange(filter dto.ReportFilter, lines []repository.SaleLine) (time.Time, time.Time) {
	from, errFrom := time.Parse("2006-01-02", filter.From)
	to, errTo := time.Parse("2006-01-02", filter.To)
	if errFrom != nil {
		if len(lines) > 0 {
			from = lines[0].CreatedAt
		} else {
			from = time.Now()
		}
	}
	if errTo != nil {
		if len(lines) > 0 {
			to = lines[len(lines)-1].CreatedAt
		} else {
			to = time.Now()
		}
	}
	return from, to
}
