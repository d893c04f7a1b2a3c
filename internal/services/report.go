package services

import (
	"context"
	"time"

	"github.com/urmedia/masala-api/internal/database"
	"github.com/urmedia/masala-api/internal/models"
)

// ReportService runs the read-only aggregations behind the dashboard and
// reports pages. Sales figures only count delivered orders.
type ReportService struct {
	db *database.DB
}

func NewReportService(db *database.DB) *ReportService {
	return &ReportService{db: db}
}

type DashboardStats struct {
	TotalSales       float64 `json:"total_sales"`
	TotalOrders      int     `json:"total_orders"`
	NewCustomers     int     `json:"new_customers"`
	PendingOrders    int     `json:"pending_orders"`
	ProcessingOrders int     `json:"processing_orders"`
	DeliveredOrders  int     `json:"delivered_orders"`
	CancelledOrders  int     `json:"cancelled_orders"`
}

type ReportSummary struct {
	TotalSales    float64 `json:"total_sales"`
	TotalOrders   int     `json:"total_orders"`
	AvgOrderValue float64 `json:"avg_order_value"`
	NewCustomers  int     `json:"new_customers"`
}

type SalesPoint struct {
	Date   string  `json:"date"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

type TopProduct struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// ParseRange maps the report range keys to a start time and day count.
// Unknown keys fall back to 30 days.
func ParseRange(key string, now time.Time) (time.Time, int) {
	days := 30
	switch key {
	case "7days":
		days = 7
	case "30days":
		days = 30
	case "6months":
		days = 180
	case "1year":
		days = 365
	}
	return now.AddDate(0, 0, -days), days
}

func (s *ReportService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	err := s.db.Pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(total) FILTER (WHERE order_status = 'delivered'), 0),
			COUNT(*),
			COUNT(*) FILTER (WHERE order_status = 'pending'),
			COUNT(*) FILTER (WHERE order_status = 'processing'),
			COUNT(*) FILTER (WHERE order_status = 'delivered'),
			COUNT(*) FILTER (WHERE order_status = 'cancelled')
		FROM orders
	`).Scan(
		&stats.TotalSales, &stats.TotalOrders,
		&stats.PendingOrders, &stats.ProcessingOrders,
		&stats.DeliveredOrders, &stats.CancelledOrders,
	)
	if err != nil {
		return nil, err
	}

	monthStart := time.Now().UTC()
	monthStart = time.Date(monthStart.Year(), monthStart.Month(), 1, 0, 0, 0, 0, time.UTC)
	err = s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM customers WHERE created_at >= $1
	`, monthStart).Scan(&stats.NewCustomers)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (s *ReportService) Summary(ctx context.Context, since time.Time) (*ReportSummary, error) {
	var summary ReportSummary
	var deliveredCount int
	err := s.db.Pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(total) FILTER (WHERE order_status = 'delivered'), 0),
			COUNT(*) FILTER (WHERE order_status = 'delivered'),
			COUNT(*)
		FROM orders
		WHERE created_at >= $1
	`, since).Scan(&summary.TotalSales, &deliveredCount, &summary.TotalOrders)
	if err != nil {
		return nil, err
	}

	if deliveredCount > 0 {
		summary.AvgOrderValue = summary.TotalSales / float64(deliveredCount)
	}

	err = s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM customers WHERE created_at >= $1
	`, since).Scan(&summary.NewCustomers)
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

// SalesSeries returns one point per day over the range, zero-filling days
// without delivered orders so charts render a continuous axis.
func (s *ReportService) SalesSeries(ctx context.Context, since time.Time, days int) ([]SalesPoint, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT to_char(created_at, 'YYYY-MM-DD'), COALESCE(SUM(total), 0), COUNT(*)
		FROM orders
		WHERE order_status = 'delivered' AND created_at >= $1
		GROUP BY 1
		ORDER BY 1
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grouped := make(map[string]SalesPoint)
	for rows.Next() {
		var p SalesPoint
		if err := rows.Scan(&p.Date, &p.Sales, &p.Orders); err != nil {
			return nil, err
		}
		grouped[p.Date] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	series := make([]SalesPoint, 0, days)
	now := time.Now().UTC()
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		point := SalesPoint{Date: date}
		if p, ok := grouped[date]; ok {
			point = p
		}
		series = append(series, point)
	}
	return series, nil
}

// TopProducts unrolls the order items JSONB and ranks item names by
// quantity sold across delivered orders.
func (s *ReportService) TopProducts(ctx context.Context, since time.Time, limit int) ([]TopProduct, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT item->>'name',
			COALESCE(SUM((item->>'qty')::int), 0),
			COALESCE(SUM((item->>'qty')::int * (item->>'unit_price')::numeric), 0)
		FROM orders, jsonb_array_elements(items) AS item
		WHERE order_status = 'delivered' AND created_at >= $1
		GROUP BY 1
		ORDER BY 2 DESC
		LIMIT $2
	`, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []TopProduct
	for rows.Next() {
		var p TopProduct
		if err := rows.Scan(&p.Name, &p.Quantity, &p.Revenue); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// RecentOrders feeds the dashboard's latest-orders table.
func (s *ReportService) RecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
