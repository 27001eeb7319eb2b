package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Shema-glitch/StockTracker/internal/apierror"
	"github.com/Shema-glitch/StockTracker/internal/dto"
	"github.com/Shema-glitch/StockTracker/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

func (h *ReportsHandler) bindFilter(c *gin.Context) (dto.ReportFilter, bool) {
	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return filter, false
	}
	for _, d := range []string{filter.From, filter.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Dates must be formatted YYYY-MM-DD"))
			return filter, false
		}
	}
	return filter, true
}

func (h *ReportsHandler) Sales(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.SalesReport(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) Stock(c *gin.Context) {
	departmentID, ok := queryDepartmentID(c)
	if !ok {
		return
	}
	resp, err := h.svc.StockReport(c.Request.Context(), departmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SalesDownload godoc
// @Summary Download the sales report as a spreadsheet
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Router /reports/sales/download [get]
func (h *ReportsHandler) SalesDownload(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	setAttachmentHeaders(c, "sales_report.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := h.svc.WriteSalesXLSX(c.Request.Context(), c.Writer, filter); err != nil {
		// headers are already out; log and drop the connection
		_ = c.Error(err)
		c.Abort()
	}
}

func (h *ReportsHandler) StockDownload(c *gin.Context) {
	departmentID, ok := queryDepartmentID(c)
	if !ok {
		return
	}
	setAttachmentHeaders(c, "stock_report.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := h.svc.WriteStockXLSX(c.Request.Context(), c.Writer, departmentID); err != nil {
		_ = c.Error(err)
		c.Abort()
	}
}

func (h *ReportsHandler) SalesPDF(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	setAttachmentHeaders(c, "sales_report.pdf", "application/pdf")
	if err := h.svc.WriteSalesPDF(c.Request.Context(), c.Writer, filter); err != nil {
		_ = c.Error(err)
		c.Abort()
	}
}

func setAttachmentHeaders(c *gin.Context, filename, contentType string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
}

func queryDepartmentID(c *gin.Context) (uint, bool) {
	raw := c.Query("departmentId")
	if raw == "" {
		return 0, true
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid departmentId"))
		return 0, false
	}
	return uint(parsed), true
}
