// Package dashboard holds the pure derivations behind the admin views:
// order filtering, stats aggregation and CSV export. Everything operates on
// in-memory order slices so it stays testable without a database.
package dashboard

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sandrine-beauty/kika-shop/internal/database"
	"github.com/sandrine-beauty/kika-shop/internal/enum"
)

const revenueWindowDays = 7

// Point is one labeled value of a chart series.
type Point struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// Stats is the aggregate payload behind the dashboard header cards and
// charts.
type Stats struct {
	TotalOrders        int             `json:"total_orders"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	NewOrders          int             `json:"new_orders"`
	ProcessingOrders   int             `json:"processing_orders"`
	DeliveredOrders    int             `json:"delivered_orders"`
	CancelledOrders    int             `json:"cancelled_orders"`
	TodayOrders        int             `json:"today_orders"`
	DailyRevenue       []Point         `json:"daily_revenue"`
	StatusDistribution []Point         `json:"status_distribution"`
}

// Filter narrows orders by free-text search and status. Search matches
// case-insensitively on customer name and address and verbatim on phone;
// both criteria must hold. Status "all" (or empty) matches everything.
func Filter(orders []database.Order, search, status string) []database.Order {
	search = strings.ToLower(strings.TrimSpace(search))

	var out []database.Order
	for _, o := range orders {
		if status != "" && status != enum.StatusFilterAll && o.Status != status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(o.CustomerName), search) &&
			!strings.Contains(strings.ToLower(o.CustomerAddress), search) &&
			!strings.Contains(o.CustomerPhone, search) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// ComputeStats aggregates orders into the dashboard payload. Revenue only
// counts DELIVERED orders, valued at each order's price snapshot. The daily
// revenue series covers the trailing revenueWindowDays calendar days ending
// at now, in now's location.
func ComputeStats(orders []database.Order, now time.Time) Stats {
	stats := Stats{
		TotalOrders:  len(orders),
		TotalRevenue: decimal.Zero,
	}

	today := now.Format("2006-01-02")
	daily := make(map[string]decimal.Decimal, revenueWindowDays)

	for _, o := range orders {
		switch o.Status {
		case enum.OrderStatusNew:
			stats.NewOrders++
		case enum.OrderStatusProcessing:
			stats.ProcessingOrders++
		case enum.OrderStatusDelivered:
			stats.DeliveredOrders++
		case enum.OrderStatusCancelled:
			stats.CancelledOrders++
		}

		created := o.CreatedAt.In(now.Location())
		if created.Format("2006-01-02") == today {
			stats.TodayOrders++
		}

		if o.Status == enum.OrderStatusDelivered {
			price := database.NumericToDecimal(o.ProductPrice)
			stats.TotalRevenue = stats.TotalRevenue.Add(price)
			day := created.Format("2006-01-02")
			daily[day] = daily[day].Add(price)
		}
	}

	for i := revenueWindowDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		key := day.Format("2006-01-02")
		value, ok := daily[key]
		if !ok {
			value = decimal.Zero
		}
		stats.DailyRevenue = append(stats.DailyRevenue, Point{
			Label: day.Format("02/01"),
			Value: value,
		})
	}

	for _, status := range enum.OrderStatuses {
		var count int
		switch status {
		case enum.OrderStatusNew:
			count = stats.NewOrders
		case enum.OrderStatusProcessing:
			count = stats.ProcessingOrders
		case enum.OrderStatusDelivered:
			count = stats.DeliveredOrders
		case enum.OrderStatusCancelled:
			count = stats.CancelledOrders
		}
		stats.StatusDistribution = append(stats.StatusDistribution, Point{
			Label: enum.StatusLabel(status),
			Value: decimal.NewFromInt(int64(count)),
		})
	}

	return stats
}

// csvHeader is the Arabic export header, in column order.
var csvHeader = []string{
	"رقم الطلب",
	"الاسم",
	"الهاتف",
	"العنوان",
	"الحالة",
	"التاريخ",
	"الملاحظات",
}

// ExportCSV writes orders as a spreadsheet-friendly CSV. The output starts
// with a UTF-8 BOM so Excel renders the Arabic text, every cell is quoted,
// and commas inside free text become semicolons so the column count stays
// fixed.
func ExportCSV(w io.Writer, orders []database.Order) error {
	if _, err := w.Write([]byte("\xEF\xBB\xBF")); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	if err := writeRow(w, csvHeader); err != nil {
		return err
	}

	for _, o := range orders {
		id := o.ID.String()
		if len(id) > 8 {
			id = id[:8]
		}
		notes := ""
		if o.CustomerNotes.Valid {
			notes = o.CustomerNotes.String
		}
		row := []string{
			id,
			sanitizeCell(o.CustomerName),
			o.CustomerPhone,
			sanitizeCell(o.CustomerAddress),
			enum.StatusLabel(o.Status),
			o.CreatedAt.Format("02/01/2006"),
			sanitizeCell(notes),
		}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

// ExportFilename names the download after the export date.
func ExportFilename(t time.Time) string {
	return "orders_" + t.Format("2006-01-02") + ".csv"
}

func sanitizeCell(s string) string {
	return strings.ReplaceAll(s, ",", ";")
}

func writeRow(w io.Writer, cells []string) error {
	for i, cell := range cells {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
		quoted := `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
		if _, err := io.WriteString(w, quoted); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	return nil
}
