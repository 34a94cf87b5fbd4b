package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lawvergara/sisig-pos/models"
	"github.com/lawvergara/sisig-pos/services"
	"github.com/lawvergara/sisig-pos/utils"
)

type OrderController struct {
	DB    *gorm.DB
	Stock *services.StockService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db, Stock: services.NewStockService(db)}
}

// PlaceOrder -> validate, deduct stock, persist the order
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	type itemReq struct {
		Product  uint    `json:"product" binding:"required"`
		Quantity float64 `json:"quantity"`
	}
	type reqBody struct {
		Items         []itemReq `json:"items" binding:"required"`
		PaymentMethod string    `json:"paymentMethod"`
		OrderType     string    `json:"orderType"`
		GcashCode     string    `json:"gcashCode"`
		Tip           float64   `json:"tip"`
		CashPaid      float64   `json:"cashPaid"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.IsValidPaymentMethod(body.PaymentMethod) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid payment method"))
		return
	}
	if body.PaymentMethod == models.PaymentGCash && strings.TrimSpace(body.GcashCode) == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("GCash reference code is required"))
		return
	}
	if !models.IsValidOrderType(body.OrderType) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order type"))
		return
	}

	lines := make([]services.OrderLine, 0, len(body.Items))
	for _, item := range body.Items {
		lines = append(lines, services.OrderLine{ProductID: item.Product, Quantity: item.Quantity})
	}

	// Dry run: no stock is touched until every line has passed.
	quote, err := oc.Stock.ValidateOrder(lines)
	if err != nil {
		utils.RespondError(c, services.StatusForError(err), err)
		return
	}

	tip := decimal.NewFromFloat(body.Tip)
	due, _ := quote.Total.Add(tip).Float64()

	var change float64
	if body.PaymentMethod == models.PaymentCash {
		if body.CashPaid < due {
			err := &services.InsufficientCashError{}
			utils.RespondError(c, services.StatusForError(err), err)
			return
		}
		change, _ = decimal.NewFromFloat(body.CashPaid).Sub(quote.Total).Sub(tip).Float64()
	}

	if err := oc.Stock.Commit(quote.Items); err != nil {
		utils.RespondError(c, services.StatusForError(err), err)
		return
	}

	total, _ := quote.Total.Float64()
	totalCost, _ := quote.Cost.Float64()

	var gcashCode *string
	if body.PaymentMethod == models.PaymentGCash {
		code := strings.TrimSpace(body.GcashCode)
		gcashCode = &code
	}

	order := models.Order{
		Reference:     fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), uuid.New().String()[:8]),
		Items:         quote.Items,
		Total:         total,
		TotalCost:     totalCost,
		Tip:           body.Tip,
		PaymentMethod: body.PaymentMethod,
		GcashCode:     gcashCode,
		OrderType:     body.OrderType,
		CashPaid:      body.CashPaid,
		Change:        change,
		CashierID:     c.GetUint("userID"),
		CreatedAt:     time.Now(),
	}

	if err := oc.DB.Create(&order).Error; err != nil {
		// Deductions are already committed; give them back so a failed
		// ledger write never leaks stock.
		if restoreErr := oc.Stock.Restore(quote.Items); restoreErr != nil {
			utils.ErrorLogger.Printf("rollback after failed order create: %v", restoreErr)
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %s placed by cashier %d (total %s)",
		order.Reference, order.CashierID, utils.FormatCurrency(order.Total))
	utils.RespondJSON(c, http.StatusCreated, "Order placed", order)
}

// GetOrders -> list orders with optional filters: date range, order type,
// voided/refunded flags, cashier.
func (oc *OrderController) GetOrders(c *gin.Context) {
	query := oc.DB.Preload("Items").Preload("Cashier").Order("created_at DESC")

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
	if orderType := c.Query("orderType"); orderType != "" {
		query = query.Where("order_type = ?", orderType)
	}
	if cashier := c.Query("cashier"); cashier != "" {
		query = query.Where("cashier_id = ?", cashier)
	}
	if voided := c.Query("voided"); voided != "" {
		query = query.Where("is_voided = ?", voided == "true")
	}
	if refunded := c.Query("refunded"); refunded != "" {
		query = query.Where("is_refunded = ?", refunded == "true")
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail of one order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").Preload("Cashier").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// verifyAdminCredentials re-authenticates an admin for void/refund. This is a
// second factor independent of the caller's own session.
func verifyAdminCredentials(db *gorm.DB, email, password string) error {
	var admin models.User
	if err := db.Where("email = ?", email).First(&admin).Error; err != nil {
		return &services.ForbiddenError{Msg: "invalid admin credentials"}
	}
	if admin.Role != models.RoleAdmin {
		return &services.ForbiddenError{Msg: "invalid admin credentials"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return &services.ForbiddenError{Msg: "invalid admin credentials"}
	}
	return nil
}

type adminCredentialBody struct {
	AdminEmail    string `json:"adminEmail" binding:"required"`
	AdminPassword string `json:"adminPassword" binding:"required"`
}

// VoidOrder -> restore stock, then mark the order voided. The flag is only
// set after the restore succeeds, so voided always means stock was given back.
func (oc *OrderController) VoidOrder(c *gin.Context) {
	var body adminCredentialBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := verifyAdminCredentials(oc.DB, body.AdminEmail, body.AdminPassword); err != nil {
		utils.RespondError(c, services.StatusForError(err), err)
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, c.Param("order_id")).Error; err != nil {
		notFound := &services.NotFoundError{Msg: "order not found"}
		utils.RespondError(c, services.StatusForError(notFound), notFound)
		return
	}
	if order.IsVoided {
		conflict := &services.ConflictError{Msg: "order already voided"}
		utils.RespondError(c, services.StatusForError(conflict), conflict)
		return
	}

	if err := oc.Stock.Restore(order.Items); err != nil {
		utils.RespondError(c, services.StatusForError(err), err)
		return
	}

	if err := oc.DB.Model(&order).Update("is_voided", true).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %s voided, stock restored", order.Reference)
	utils.RespondJSON(c, http.StatusOK, "Order voided and stock restored", order)
}

// RefundOrder -> financial reversal only, stock stays deducted.
func (oc *OrderController) RefundOrder(c *gin.Context) {
	var body adminCredentialBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := verifyAdminCredentials(oc.DB, body.AdminEmail, body.AdminPassword); err != nil {
		utils.RespondError(c, services.StatusForError(err), err)
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, c.Param("order_id")).Error; err != nil {
		notFound := &services.NotFoundError{Msg: "order not found"}
		utils.RespondError(c, services.StatusForError(notFound), notFound)
		return
	}
	if order.IsRefunded {
		conflict := &services.ConflictError{Msg: "order already refunded"}
		utils.RespondError(c, services.StatusForError(conflict), conflict)
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"is_refunded": true,
		"refund_date": &now,
	}
	if err := oc.DB.Model(&order).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %s refunded", order.Reference)
	utils.RespondJSON(c, http.StatusOK, "Order refunded", order)
}
