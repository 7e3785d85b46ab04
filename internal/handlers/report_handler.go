package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant_manager/internal/models"
	"restaurant_manager/internal/repository"
	"restaurant_manager/internal/services"
)

// ReportHandler serves the sales report.
type ReportHandler struct {
	reports  services.ReportService
	format   Formatter
	pageSize int
}

func NewReportHandler(reports services.ReportService, format Formatter, pageSize int) *ReportHandler {
	return &ReportHandler{reports: reports, format: format, pageSize: pageSize}
}

type saleRow struct {
	ID            uint   `json:"id"`
	OrderID       uint   `json:"order_id"`
	CustomerName  string `json:"customer_name"`
	PaymentMethod string `json:"payment_method"`
	SaleDate      string `json:"sale_date"`
	Amount        string `json:"amount"`
}

func (h *ReportHandler) toRow(s models.Sale) saleRow {
	amount := s.Amount
	row := saleRow{
		ID:           s.ID,
		OrderID:      s.OrderID,
		CustomerName: s.CustomerName,
		SaleDate:     h.format.Date(s.BillDate),
		Amount:       h.format.Money(&amount),
	}
	if s.PaymentMethod != nil {
		row.PaymentMethod = s.PaymentMethod.Name
	}
	return row
}

// ListSales filters by customer-name substring, or by day when the query is
// a date.
func (h *ReportHandler) ListSales(c *gin.Context) {
	query, page := listParams(c)
	items, total, err := h.reports.ListSales(query, page, h.pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	rows := make([]saleRow, 0, len(items))
	for _, s := range items {
		rows = append(rows, h.toRow(s))
	}
	c.JSON(http.StatusOK, gin.H{
		"rows":        rows,
		"total":       total,
		"total_pages": repository.TotalPages(total, h.pageSize),
		"page":        page,
	})
}
