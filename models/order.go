package models

import "time"

const (
	PaymentCash  = "Cash"
	PaymentGCash = "GCash"

	OrderDineIn   = "Dine-In"
	OrderDelivery = "Delivery"
	OrderTakeout  = "Takeout"
)

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Reference     string      `gorm:"type:varchar(64);uniqueIndex;not null" json:"reference"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
	Total         float64     `gorm:"type:decimal(12,2);not null" json:"total"`
	TotalCost     float64     `gorm:"type:decimal(12,2);not null;default:0" json:"totalCost"`
	Tip           float64     `gorm:"type:decimal(10,2);not null;default:0" json:"tip"`
	PaymentMethod string      `gorm:"type:varchar(10);not null" json:"paymentMethod"`
	GcashCode     *string     `gorm:"type:varchar(64)" json:"gcashCode,omitempty"`
	OrderType     string      `gorm:"type:varchar(10);not null" json:"orderType"`
	CashPaid      float64     `gorm:"type:decimal(12,2);not null;default:0" json:"cashPaid"`
	Change        float64     `gorm:"type:decimal(12,2);not null;default:0" json:"change"`
	CashierID     uint        `gorm:"not null;index" json:"cashier_id"`
	Cashier       User        `gorm:"foreignKey:CashierID" json:"cashier"`
	IsVoided      bool        `gorm:"not null;default:false" json:"isVoided"`
	IsRefunded    bool        `gorm:"not null;default:false" json:"isRefunded"`
	RefundDate    *time.Time  `json:"refundDate,omitempty"`
	CreatedAt     time.Time   `gorm:"not null;index" json:"createdAt"`
}

// OrderItem references its product weakly: Name and Price are snapshotted at
// placement so history keeps displaying after the product is deleted.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null" json:"product"`
	Name      string  `gorm:"type:varchar(255);not null" json:"name"`
	Price     float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity  float64 `gorm:"not null" json:"quantity"`
}

func IsValidPaymentMethod(method string) bool {
	return method == PaymentCash || method == PaymentGCash
}

func IsValidOrderType(orderType string) bool {
	return orderType == OrderDineIn || orderType == OrderDelivery || orderType == OrderTakeout
}
