package handlers

import (
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/urmedia/masala-api/internal/services"
)

type ReportHandler struct {
	reportService ReportServiceInterface
	orderService  OrderServiceInterface
}

func NewReportHandler(reportService ReportServiceInterface, orderService OrderServiceInterface) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		orderService:  orderService,
	}
}

// Dashboard bundles the stat cards, the recent-orders table, and the
// live badge seed into one response.
func (h *ReportHandler) Dashboard(c *drift.Context) {
	ctx := c.Request.Context()

	stats, err := h.reportService.Dashboard(ctx)
	if err != nil {
		c.InternalServerError("failed to load dashboard stats")
		return
	}

	recent, err := h.reportService.RecentOrders(ctx, 10)
	if err != nil {
		c.InternalServerError("failed to load recent orders")
		return
	}

	_ = c.JSON(200, map[string]any{
		"stats":         stats,
		"recent_orders": recent,
	})
}

func (h *ReportHandler) Summary(c *drift.Context) {
	since, _ := services.ParseRange(c.QueryParam("range"), time.Now().UTC())

	summary, err := h.reportService.Summary(c.Request.Context(), since)
	if err != nil {
		c.InternalServerError("failed to load report summary")
		return
	}

	_ = c.JSON(200, summary)
}

func (h *ReportHandler) Sales(c *drift.Context) {
	since, days := services.ParseRange(c.QueryParam("range"), time.Now().UTC())

	series, err := h.reportService.SalesSeries(c.Request.Context(), since, days)
	if err != nil {
		c.InternalServerError("failed to load sales series")
		return
	}

	_ = c.JSON(200, series)
}

func (h *ReportHandler) TopProducts(c *drift.Context) {
	since, _ := services.ParseRange(c.QueryParam("range"), time.Now().UTC())

	products, err := h.reportService.TopProducts(c.Request.Context(), since, 5)
	if err != nil {
		c.InternalServerError("failed to load top products")
		return
	}

	_ = c.JSON(200, products)
}
