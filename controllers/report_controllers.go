package controllers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lawvergara/sisig-pos/models"
	"github.com/lawvergara/sisig-pos/utils"
)

// Restock alarms per stocking unit. A material below its unit's threshold
// shows up in the low-stock report.
var lowStockThresholds = map[string]float64{
	"kilograms":   2,
	"grams":       100,
	"liters":      1,
	"milliliters": 200,
	"pounds":      1,
	"ounces":      10,
	"pieces":      5,
	"packs":       3,
	"bags":        2,
	"boxes":       2,
	"cans":        5,
}

const lowStockProductFloor = 5

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// percentChange handles the zero-previous edge: no movement stays 0, any
// growth from zero reads as 100.
func percentChange(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}

func rangeStart(now time.Time, rng string) (current, previous time.Time) {
	switch rng {
	case "weekly":
		return now.AddDate(0, 0, -7), now.AddDate(0, 0, -14)
	case "monthly":
		return now.AddDate(0, -1, 0), now.AddDate(0, -2, 0)
	default:
		return now.AddDate(0, 0, -1), now.AddDate(0, 0, -2)
	}
}

func sumOrders(orders []models.Order) (sales float64, items float64) {
	for _, o := range orders {
		sales += o.Total
		for _, it := range o.Items {
			items += it.Quantity
		}
	}
	return sales, items
}

// GetSalesSummary -> totals for the range plus deltas against the preceding
// period of equal length. Voided orders never count as sales.
func (rc *ReportController) GetSalesSummary(c *gin.Context) {
	now := time.Now()
	currentStart, previousStart := rangeStart(now, c.Query("range"))

	var current, previous []models.Order
	if err := rc.DB.Preload("Items").
		Where("created_at >= ? AND is_voided = ?", currentStart, false).
		Find(&current).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := rc.DB.Preload("Items").
		Where("created_at >= ? AND created_at < ? AND is_voided = ?", previousStart, currentStart, false).
		Find(&previous).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	curSales, curItems := sumOrders(current)
	prevSales, prevItems := sumOrders(previous)

	utils.RespondJSON(c, http.StatusOK, "Sales summary", gin.H{
		"totalSales":     curSales,
		"totalOrders":    len(current),
		"totalItems":     curItems,
		"salesChange":    percentChange(curSales, prevSales),
		"ordersChange":   percentChange(float64(len(current)), float64(len(previous))),
		"itemsChange":    percentChange(curItems, prevItems),
		"previousSales":  prevSales,
		"previousOrders": len(previous),
		"previousItems":  prevItems,
	})
}

type topProduct struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"totalQuantitySold"`
}

func (rc *ReportController) topProducts(limit int) ([]topProduct, error) {
	var orders []models.Order
	if err := rc.DB.Preload("Items").
		Where("is_voided = ?", false).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	byProduct := make(map[uint]*topProduct)
	for _, o := range orders {
		for _, it := range o.Items {
			tp, ok := byProduct[it.ProductID]
			if !ok {
				tp = &topProduct{ProductID: it.ProductID, Name: it.Name}
				byProduct[it.ProductID] = tp
			}
			tp.Quantity += it.Quantity
		}
	}

	ranked := make([]topProduct, 0, len(byProduct))
	for _, tp := range byProduct {
		ranked = append(ranked, *tp)
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Quantity > ranked[j].Quantity })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (rc *ReportController) GetTopSellingProducts(c *gin.Context) {
	ranked, err := rc.topProducts(5)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Top selling products", ranked)
}

func (rc *ReportController) lowStock() (gin.H, error) {
	var products []models.Product
	if err := rc.DB.Select("id", "name", "quantity").
		Where("quantity <= ?", lowStockProductFloor).
		Find(&products).Error; err != nil {
		return nil, err
	}

	var materials []models.RawMaterial
	if err := rc.DB.Find(&materials).Error; err != nil {
		return nil, err
	}

	low := make([]models.RawMaterial, 0)
	for _, m := range materials {
		threshold, ok := lowStockThresholds[m.Unit]
		if !ok {
			threshold = 5
		}
		if m.Quantity < threshold {
			low = append(low, m)
		}
	}

	return gin.H{
		"products":     products,
		"rawMaterials": low,
	}, nil
}

func (rc *ReportController) GetLowStockAlerts(c *gin.Context) {
	alerts, err := rc.lowStock()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Low stock alerts", alerts)
}

func (rc *ReportController) GetDashboardReport(c *gin.Context) {
	ranked, err := rc.topProducts(5)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	alerts, err := rc.lowStock()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard report", gin.H{
		"topProducts": ranked,
		"lowStock":    alerts,
	})
}

type dailyEarning struct {
	Date     string  `json:"date"`
	Earnings float64 `json:"earnings"`
}

// GetEarningsReport -> revenue minus ingredient cost per day, over the 7 most
// recent orders that were neither voided nor refunded. Ingredient cost is
// replayed against the current recipe; an item whose product was deleted
// contributes revenue from its snapshot and no cost.
func (rc *ReportController) GetEarningsReport(c *gin.Context) {
	var orders []models.Order
	if err := rc.DB.Preload("Items").
		Where("is_voided = ? AND is_refunded = ?", false, false).
		Order("created_at DESC").
		Limit(7).
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type revCost struct{ revenue, cost float64 }
	daily := make(map[string]*revCost)

	for _, order := range orders {
		dateKey := fmt.Sprintf("%d/%d", int(order.CreatedAt.Month()), order.CreatedAt.Day())
		rcst, ok := daily[dateKey]
		if !ok {
			rcst = &revCost{}
			daily[dateKey] = rcst
		}

		for _, item := range order.Items {
			rcst.revenue += item.Price * item.Quantity

			var product models.Product
			if err := rc.DB.Preload("Ingredients.Material").First(&product, item.ProductID).Error; err != nil {
				continue
			}
			for _, ing := range product.Ingredients {
				rcst.cost += ing.Material.CostPerUnit * ing.Quantity * item.Quantity
			}
		}
	}

	rows := make([]dailyEarning, 0, len(daily))
	for date, v := range daily {
		rows = append(rows, dailyEarning{Date: date, Earnings: v.revenue - v.cost})
	}
	sort.Slice(rows, func(i, j int) bool {
		var im, id, jm, jd int
		fmt.Sscanf(rows[i].Date, "%d/%d", &im, &id)
		fmt.Sscanf(rows[j].Date, "%d/%d", &jm, &jd)
		if im == jm {
			return id < jd
		}
		return im < jm
	})

	utils.RespondJSON(c, http.StatusOK, "Earnings report", rows)
}

type trendRow struct {
	Date   string  `json:"date"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
	Items  float64 `json:"items"`
}

func (rc *ReportController) salesTrend(start time.Time) ([]trendRow, error) {
	var orders []models.Order
	if err := rc.DB.Preload("Items").
		Where("created_at >= ? AND is_voided = ?", start, false).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	byDay := make(map[string]*trendRow)
	for _, o := range orders {
		day := o.CreatedAt.Format("2006-01-02")
		row, ok := byDay[day]
		if !ok {
			row = &trendRow{Date: day[5:]}
			byDay[day] = row
		}
		row.Sales += o.Total
		row.Orders++
		for _, it := range o.Items {
			row.Items += it.Quantity
		}
	}

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]trendRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, *byDay[k])
	}
	return rows, nil
}

func (rc *ReportController) GetSalesTrend(c *gin.Context) {
	now := time.Now()
	var start time.Time
	switch c.Query("range") {
	case "weekly":
		start = now.AddDate(0, 0, -7)
	case "monthly":
		start = now.AddDate(0, -1, 0)
	default:
		start = now.AddDate(0, 0, -1)
	}

	rows, err := rc.salesTrend(start)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Sales trend", rows)
}

func (rc *ReportController) GetVoidedOrders(c *gin.Context) {
	var orders []models.Order
	if err := rc.DB.Preload("Items").Preload("Cashier").
		Where("is_voided = ?", true).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Voided orders", orders)
}

func (rc *ReportController) GetRefundedOrders(c *gin.Context) {
	var orders []models.Order
	if err := rc.DB.Preload("Items").Preload("Cashier").
		Where("is_refunded = ?", true).
		Order("refund_date DESC").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Refunded orders", orders)
}

// GetCashierSalesReport -> per-cashier totals, optionally date-bounded.
func (rc *ReportController) GetCashierSalesReport(c *gin.Context) {
	query := rc.DB.Preload("Cashier").Where("is_voided = ?", false)
	if start := c.Query("startDate"); start != "" {
		if t, err := time.Parse("2006-01-02", start); err == nil {
			query = query.Where("created_at >= ?", t)
		}
	}
	if end := c.Query("endDate"); end != "" {
		if t, err := time.Parse("2006-01-02", end); err == nil {
			query = query.Where("created_at <= ?", t.Add(24*time.Hour-time.Millisecond))
		}
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type cashierRow struct {
		CashierID    uint    `json:"cashierId"`
		CashierName  string  `json:"cashierName"`
		CashierEmail string  `json:"cashierEmail"`
		TotalSales   float64 `json:"totalSales"`
		OrderCount   int     `json:"orderCount"`
	}
	byCashier := make(map[uint]*cashierRow)
	for _, o := range orders {
		row, ok := byCashier[o.CashierID]
		if !ok {
			row = &cashierRow{
				CashierID:    o.CashierID,
				CashierName:  o.Cashier.Name,
				CashierEmail: o.Cashier.Email,
			}
			byCashier[o.CashierID] = row
		}
		row.TotalSales += o.Total
		row.OrderCount++
	}

	rows := make([]cashierRow, 0, len(byCashier))
	for _, row := range byCashier {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].TotalSales > rows[j].TotalSales })

	utils.RespondJSON(c, http.StatusOK, "Cashier sales report", rows)
}

func (rc *ReportController) GetTipsSummary(c *gin.Context) {
	query := rc.DB.Model(&models.Order{}).Where("is_voided = ?", false)
	if start := c.Query("start"); start != "" {
		if t, err := time.Parse("2006-01-02", start); err == nil {
			query = query.Where("created_at >= ?", t)
		}
	}
	if end := c.Query("end"); end != "" {
		if t, err := time.Parse("2006-01-02", end); err == nil {
			query = query.Where("created_at <= ?", t.Add(24*time.Hour-time.Millisecond))
		}
	}

	var totalTips float64
	if err := query.Select("COALESCE(SUM(tip), 0)").Scan(&totalTips).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tips summary", gin.H{"totalTips": totalTips})
}
