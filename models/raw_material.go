package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Units a raw material can be stocked in.
var MaterialUnits = []string{
	"kilograms",
	"grams",
	"pounds",
	"ounces",
	"liters",
	"milliliters",
	"pieces",
	"packs",
	"bags",
	"boxes",
	"cans",
}

type RawMaterial struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Quantity    float64   `gorm:"not null;default:0" json:"quantity"`
	Unit        string    `gorm:"type:varchar(20);not null;default:'pieces'" json:"unit"`
	TotalCost   float64   `gorm:"type:decimal(12,2);not null;default:0" json:"totalCost"`
	CostPerUnit float64   `gorm:"type:decimal(12,4);not null;default:0" json:"costPerUnit"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func IsValidUnit(unit string) bool {
	for _, u := range MaterialUnits {
		if u == unit {
			return true
		}
	}
	return false
}

// BeforeSave derives whichever of TotalCost/CostPerUnit is missing from the
// other. Both present means both are trusted as-is.
func (m *RawMaterial) BeforeSave(tx *gorm.DB) error {
	if m.Quantity < 0 {
		return fmt.Errorf("raw material %q cannot have negative quantity", m.Name)
	}
	if m.Quantity > 0 {
		if m.TotalCost > 0 && m.CostPerUnit == 0 {
			m.CostPerUnit = m.TotalCost / m.Quantity
		}
		if m.CostPerUnit > 0 && m.TotalCost == 0 {
			m.TotalCost = m.CostPerUnit * m.Quantity
		}
	}
	return nil
}
