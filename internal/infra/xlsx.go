package infra

// xlsx.go — spreadsheet export for the report download endpoints.
// Built with excelize; each writer produces a workbook with a header row,
// one row per record, and (for sales) a trailing summary row.

import (
	"fmt"
	"io"

	"github.com/Shema-glitch/StockTracker/internal/dto"
	"github.com/Shema-glitch/StockTracker/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// WriteSalesReportXLSX streams a sales report workbook to w.
func WriteSalesReportXLSX(w io.Writer, lines []repository.SaleLine) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sales Report"
	f.SetSheetName("Sheet1", sheet)

	headers := []interface{}{"Date", "Product", "Quantity", "Price", "Total"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("xlsx: header row: %w", err)
	}
	for i, width := range []float64{15, 30, 10, 10, 15} {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, col, col, width)
	}

	grandTotal := decimal.Zero
	for i, line := range lines {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{
			line.CreatedAt.Format("2006-01-02"),
			line.ProductName,
			line.Quantity,
			line.UnitPrice.InexactFloat64(),
			line.TotalPrice.InexactFloat64(),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: row %d: %w", i+2, err)
		}
		grandTotal = grandTotal.Add(line.TotalPrice)
	}

	summary := []interface{}{"Total", "", "", "", grandTotal.InexactFloat64()}
	cell := fmt.Sprintf("A%d", len(lines)+2)
	if err := f.SetSheetRow(sheet, cell, &summary); err != nil {
		return fmt.Errorf("xlsx: summary row: %w", err)
	}

	return f.Write(w)
}

// WriteStockReportXLSX streams a stock report workbook to w.
func WriteStockReportXLSX(w io.Writer, rows []dto.StockReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Stock Report"
	f.SetSheetName("Sheet1", sheet)

	headers := []interface{}{"Product", "Quantity"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("xlsx: header row: %w", err)
	}
	_ = f.SetColWidth(sheet, "A", "A", 30)
	_ = f.SetColWidth(sheet, "B", "B", 12)

	for i, r := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{r.Product, r.Quantity}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: row %d: %w", i+2, err)
		}
	}

	return f.Write(w)
}
