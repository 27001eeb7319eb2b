package infra

// pdf.go — PDF export for the sales report download endpoint.
// Generates an A4 portrait document with a title, the covered date range,
// an item table (date, product, quantity, price, total) and a bold grand
// total at the bottom. Streamed to the caller instead of written to disk.

import (
	"fmt"
	"io"
	"time"

	"github.com/Shema-glitch/StockTracker/internal/repository"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// WriteSalesReportPDF streams a sales report document to w.
func WriteSalesReportPDF(w io.Writer, lines []repository.SaleLine, from, to time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 10, "Sales Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	rangeLabel := fmt.Sprintf("%s to %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	pdf.CellFormat(contentW, 6, rangeLabel, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	col1 := contentW * 0.16 // date
	col2 := contentW * 0.40 // product name
	col3 := contentW * 0.12 // qty
	col4 := contentW * 0.16 // unit price
	col5 := contentW * 0.16 // line total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Date", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 7, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 7, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	grandTotal := decimal.Zero
	for _, line := range lines {
		name := line.ProductName
		if len(name) > 40 {
			name = name[:39] + "…"
		}
		pdf.CellFormat(col1, 6, line.CreatedAt.Format("2006-01-02"), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, fmt.Sprintf("%d", line.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 6, line.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 6, line.TotalPrice.StringFixed(2), "", 1, "R", false, 0, "")
		grandTotal = grandTotal.Add(line.TotalPrice)
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3+col4, 8, "Grand Total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col5, 8, grandTotal.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: write: %w", err)
	}
	return nil
}
