package models

import "time"

const (
	ShiftActive = "active"
	ShiftPaused = "paused"
	ShiftClosed = "closed"
)

type ShiftSession struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	CashierID       uint       `gorm:"not null;index" json:"cashier_id"`
	CashierName     string     `gorm:"type:varchar(255);not null" json:"cashierName"`
	StartedAt       time.Time  `gorm:"not null" json:"startedAt"`
	EndedAt         *time.Time `json:"endedAt,omitempty"`
	PausedAt        *time.Time `json:"pausedAt,omitempty"`
	TotalPausedMs   int64      `gorm:"not null;default:0" json:"totalPausedMs"`
	Status          string     `gorm:"type:varchar(10);not null;default:'active'" json:"status"`
	DurationMinutes int        `gorm:"not null;default:0" json:"durationMinutes"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ShiftReport is the end-of-shift summary written when a session closes.
type ShiftReport struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CashierID   uint      `gorm:"not null;index" json:"cashier_id"`
	CashierName string    `gorm:"type:varchar(255);not null" json:"cashierName"`
	TotalSales  float64   `gorm:"type:decimal(12,2);not null" json:"totalSales"`
	TotalOrders int       `gorm:"not null" json:"totalOrders"`
	Cash        float64   `gorm:"type:decimal(12,2);not null;default:0" json:"cash"`
	Gcash       float64   `gorm:"type:decimal(12,2);not null;default:0" json:"gcash"`
	Notes       string    `gorm:"type:text" json:"notes"`
	ClosedAt    time.Time `gorm:"not null" json:"closedAt"`
}
