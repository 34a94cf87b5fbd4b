package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/lawvergara/sisig-pos/models"
	"github.com/lawvergara/sisig-pos/utils"
)

func exportRangeStart(now time.Time, rng string) time.Time {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch rng {
	case "weekly":
		return start.AddDate(0, 0, -7)
	case "quarterly":
		return start.AddDate(0, -3, 0)
	case "yearly", "annual":
		return start.AddDate(-1, 0, 0)
	default: // monthly
		return start.AddDate(0, -1, 0)
	}
}

// ExportSalesReport renders the period's figures as a PDF: summary with
// period-over-period revenue change, a sales trend chart, and the top
// products table.
func (rc *ReportController) ExportSalesReport(c *gin.Context) {
	rng := c.Query("range")
	if rng == "" {
		rng = "monthly"
	}
	now := time.Now()
	start := exportRangeStart(now, rng)

	var orders []models.Order
	if err := rc.DB.Preload("Items").
		Where("created_at >= ? AND is_voided = ? AND is_refunded = ?", start, false, false).
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Preceding period of equal length, for the revenue delta.
	prevStart := start.Add(-now.Sub(start))
	var prevOrders []models.Order
	if err := rc.DB.
		Where("created_at >= ? AND created_at < ? AND is_voided = ? AND is_refunded = ?",
			prevStart, start, false, false).
		Find(&prevOrders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	revenue, items := sumOrders(orders)
	prevRevenue, _ := sumOrders(prevOrders)

	trend, err := rc.salesTrend(start)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	top, err := rc.topProducts(10)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Sisig ni Law Sales Report", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Range", rng},
		{"Start", start.Format("2006-01-02")},
		{"End", now.Format("2006-01-02")},
		{"Total Revenue (PHP)", utils.FormatCurrency(revenue)},
		{"Previous Revenue (PHP)", utils.FormatCurrency(prevRevenue)},
		{"Revenue Change (%)", fmt.Sprintf("%.2f", percentChange(revenue, prevRevenue))},
		{"Total Orders", fmt.Sprintf("%d", len(orders))},
		{"Items Sold", fmt.Sprintf("%g", items)},
	}
	for _, row := range rows {
		pdf.CellFormat(60, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	if png, err := renderTrendChart(trend); err == nil {
		pdf.RegisterImageOptionsReader("trend", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
		pdf.ImageOptions("trend", 10, pdf.GetY(), 190, 0, true, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Top Products", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(100, 7, "Product", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Qty Sold", "1", 1, "R", false, 0, "")
	for _, tp := range top {
		pdf.CellFormat(100, 7, tp.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%g", tp.Quantity), "1", 1, "R", false, 0, "")
	}

	fileName := fmt.Sprintf("Sales_Report_%s_%s.pdf", rng, now.Format("2006-01-02"))
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	if err := pdf.Output(c.Writer); err != nil {
		utils.ErrorLogger.Printf("sales report render failed: %v", err)
	}
}

// renderTrendChart plots daily sales. go-chart needs at least two points.
func renderTrendChart(trend []trendRow) ([]byte, error) {
	if len(trend) < 2 {
		return nil, fmt.Errorf("not enough trend points to chart")
	}

	xs := make([]float64, len(trend))
	ys := make([]float64, len(trend))
	ticks := make([]chart.Tick, len(trend))
	for i, row := range trend {
		xs[i] = float64(i)
		ys[i] = row.Sales
		ticks[i] = chart.Tick{Value: float64(i), Label: row.Date}
	}

	graph := chart.Chart{
		Height: 300,
		Width:  900,
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Sales",
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
