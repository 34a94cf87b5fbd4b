package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"gorm.io/gorm"

	"github.com/lawvergara/sisig-pos/models"
	"github.com/lawvergara/sisig-pos/utils"
)

type ReceiptController struct {
	DB *gorm.DB
}

func NewReceiptController(db *gorm.DB) *ReceiptController {
	return &ReceiptController{DB: db}
}

// GetReceipt renders an order as a PDF receipt. Item names and prices come
// from the order's snapshots, so receipts survive product deletion.
func (rc *ReceiptController) GetReceipt(c *gin.Context) {
	var order models.Order
	if err := rc.DB.Preload("Items").First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Sisig ni Law - Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Order: %s", order.Reference), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", order.CreatedAt.Format("Jan 2, 2006 3:04 PM")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Order Type: %s", order.OrderType), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Payment Method: %s", order.PaymentMethod), "", 1, "L", false, 0, "")
	if order.PaymentMethod == models.PaymentGCash && order.GcashCode != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("GCash Ref: %s", *order.GcashCode), "", 1, "L", false, 0, "")
	}
	if order.Tip > 0 {
		pdf.CellFormat(0, 6, fmt.Sprintf("Tip: PHP %s", utils.FormatCurrency(order.Tip)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	for _, item := range order.Items {
		line := fmt.Sprintf("%s x %g - PHP %s", item.Name, item.Quantity,
			utils.FormatCurrency(item.Price*item.Quantity))
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total: PHP %s", utils.FormatCurrency(order.Total)), "", 1, "R", false, 0, "")
	if order.PaymentMethod == models.PaymentCash {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 6, fmt.Sprintf("Cash Paid: PHP %s", utils.FormatCurrency(order.CashPaid)), "", 1, "R", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("Change: PHP %s", utils.FormatCurrency(order.Change)), "", 1, "R", false, 0, "")
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename=receipt-%s.pdf`, order.Reference))
	if err := pdf.Output(c.Writer); err != nil {
		utils.ErrorLogger.Printf("receipt render failed for order %s: %v", order.Reference, err)
	}
}
