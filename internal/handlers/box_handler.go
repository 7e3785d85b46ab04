package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurant_manager/internal/models"
	"restaurant_manager/internal/repository"
	"restaurant_manager/internal/services"
)

// BoxHandler serves the cash-register lifecycle and the closing history.
type BoxHandler struct {
	boxes    services.BoxService
	format   Formatter
	pageSize int
}

func NewBoxHandler(boxes services.BoxService, format Formatter, pageSize int) *BoxHandler {
	return &BoxHandler{boxes: boxes, format: format, pageSize: pageSize}
}

// boxRow is the flat display shape of the closing-history table. Missing
// numbers render as "Not available", except the closing total which renders
// as zero.
type boxRow struct {
	ID           uint   `json:"id"`
	OpenedAt     string `json:"opened_at"`
	ClosedAt     string `json:"closed_at"`
	OpeningFund  string `json:"opening_fund"`
	TotalSales   string `json:"total_sales"`
	CashSales    string `json:"cash_sales"`
	CardSales    string `json:"card_sales"`
	ClosingTotal string `json:"closing_total"`
}

func (h *BoxHandler) toRow(b models.Box) boxRow {
	fund := b.OpeningFund
	return boxRow{
		ID:           b.ID,
		OpenedAt:     h.format.Date(b.OpenedAt),
		ClosedAt:     h.format.DateOr(b.ClosedAt, ""),
		OpeningFund:  h.format.Money(&fund),
		TotalSales:   h.format.Money(b.TotalSales),
		CashSales:    h.format.Money(b.CashSales),
		CardSales:    h.format.Money(b.CardSales),
		ClosingTotal: h.format.MoneyOrZero(b.ClosingAmount),
	}
}

func (h *BoxHandler) Open(c *gin.Context) {
	var req struct {
		OpeningFund string `json:"opening_fund"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format")
		return
	}
	fund, ok := parseDecimal(c, "opening fund", req.OpeningFund)
	if !ok {
		return
	}

	box, err := h.boxes.OpenToday(fund)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "box": box})
}

func (h *BoxHandler) Close(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		badRequest(c, "invalid id")
		return
	}

	box, err := h.boxes.CloseBox(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "box": box})
}

func (h *BoxHandler) Today(c *gin.Context) {
	box, err := h.boxes.OpenBoxForToday()
	if err != nil {
		respondError(c, err)
		return
	}
	if box == nil {
		c.JSON(http.StatusOK, gin.H{"open": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"open": true, "box": box})
}

func (h *BoxHandler) History(c *gin.Context) {
	_, page := listParams(c)
	items, total, err := h.boxes.History(page, h.pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	rows := make([]boxRow, 0, len(items))
	for _, b := range items {
		rows = append(rows, h.toRow(b))
	}
	c.JSON(http.StatusOK, gin.H{
		"rows":        rows,
		"total":       total,
		"total_pages": repository.TotalPages(total, h.pageSize),
		"page":        page,
	})
}
