package models

import "time"

// Menu categories of the house.
var ProductCategories = []string{"Sisig", "Sizzling", "Silog", "Extras", "Drinks"}

type Product struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name"`
	Category    string       `gorm:"type:varchar(50);not null" json:"category"`
	Price       float64      `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity    float64      `gorm:"not null;default:0" json:"quantity"`
	IsAvailable bool         `gorm:"not null;default:true" json:"isAvailable"`
	IsFeatured  bool         `gorm:"not null;default:false" json:"isFeatured"`
	Image       *string      `gorm:"type:varchar(255)" json:"image,omitempty"`
	Ingredients []Ingredient `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"ingredients"`
	CreatedAt   time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updatedAt"`
}

// Ingredient links a product to a raw material. Quantity is the amount of
// material consumed per one unit of product. The material reference is weak:
// the material may have been deleted since, resolving to absent.
type Ingredient struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	ProductID  uint        `gorm:"not null;index" json:"product_id"`
	MaterialID uint        `gorm:"not null" json:"material_id"`
	Material   RawMaterial `gorm:"foreignKey:MaterialID" json:"material"`
	Quantity   float64     `gorm:"not null" json:"quantity"`
}

func IsValidCategory(category string) bool {
	for _, c := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}
