package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lawvergara/sisig-pos/models"
)

// StockService reconciles stock for order placement and void. Placement is
// two-phase: a dry run that validates every line without touching the
// database, then a commit inside one transaction where every deduction is a
// conditional update. A concurrent order that drained a material between the
// two phases makes the conditional update match zero rows, which aborts and
// rolls back the whole commit.
type StockService struct {
	DB *gorm.DB
}

func NewStockService(db *gorm.DB) *StockService {
	return &StockService{DB: db}
}

// OrderLine is one requested (product, quantity) pair, in caller order.
type OrderLine struct {
	ProductID uint
	Quantity  float64
}

// OrderQuote is the outcome of a successful dry run: order total, ingredient
// cost and per-item snapshots ready to persist.
type OrderQuote struct {
	Total decimal.Decimal
	Cost  decimal.Decimal
	Items []models.OrderItem
}

// ValidateOrder runs the dry-run pass over the lines in input order. It
// resolves each product, checks the quantity is a finite positive number,
// verifies every ingredient resolves to a live material with enough stock,
// and accumulates order total and material cost. Nothing is mutated. Errors
// always name the first offending product or material.
func (s *StockService) ValidateOrder(lines []OrderLine) (*OrderQuote, error) {
	if len(lines) == 0 {
		return nil, &ValidationError{Msg: "order must contain at least one item"}
	}

	quote := &OrderQuote{
		Total: decimal.Zero,
		Cost:  decimal.Zero,
		Items: make([]models.OrderItem, 0, len(lines)),
	}

	for _, line := range lines {
		var product models.Product
		err := s.DB.Preload("Ingredients.Material").First(&product, line.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "product not found"}
		}
		if err != nil {
			return nil, &StorageError{Err: err}
		}

		if math.IsNaN(line.Quantity) || math.IsInf(line.Quantity, 0) || line.Quantity <= 0 {
			return nil, &ValidationError{Msg: fmt.Sprintf("invalid quantity for %s", product.Name)}
		}
		qty := decimal.NewFromFloat(line.Quantity)

		if decimal.NewFromFloat(product.Quantity).LessThan(qty) {
			return nil, &InsufficientStockError{Name: product.Name}
		}

		quote.Total = quote.Total.Add(decimal.NewFromFloat(product.Price).Mul(qty))

		for _, ing := range product.Ingredients {
			// A dangling material reference is corrupt catalog data and
			// aborts the whole order, not just this item.
			if ing.MaterialID == 0 || ing.Material.ID == 0 {
				return nil, &ValidationError{Msg: fmt.Sprintf("product %q has an invalid ingredient", product.Name)}
			}

			used := decimal.NewFromFloat(ing.Quantity).Mul(qty)
			if decimal.NewFromFloat(ing.Material.Quantity).LessThan(used) {
				return nil, &InsufficientStockError{Name: ing.Material.Name}
			}
			quote.Cost = quote.Cost.Add(decimal.NewFromFloat(ing.Material.CostPerUnit).Mul(used))
		}

		quote.Items = append(quote.Items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
		})
	}

	return quote, nil
}

// Commit applies the deductions for an already-validated quote. Each product
// and material update carries a `quantity >= needed` predicate, so commit-time
// depletion by a concurrent order surfaces as zero rows affected and the whole
// transaction rolls back. Stock can never go negative through this path.
func (s *StockService) Commit(items []models.OrderItem) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var product models.Product
			err := tx.Preload("Ingredients.Material").First(&product, item.ProductID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Deleted between dry run and commit.
				return &NotFoundError{Msg: "product not found"}
			}
			if err != nil {
				return &StorageError{Err: err}
			}

			for _, ing := range product.Ingredients {
				used, _ := decimal.NewFromFloat(ing.Quantity).Mul(decimal.NewFromFloat(item.Quantity)).Float64()
				res := tx.Model(&models.RawMaterial{}).
					Where("id = ? AND quantity >= ?", ing.MaterialID, used).
					UpdateColumn("quantity", gorm.Expr("quantity - ?", used))
				if res.Error != nil {
					return &StorageError{Err: res.Error}
				}
				if res.RowsAffected == 0 {
					return &InsufficientStockError{Name: ing.Material.Name}
				}
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND quantity >= ?", product.ID, item.Quantity).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", item.Quantity))
			if res.Error != nil {
				return &StorageError{Err: res.Error}
			}
			if res.RowsAffected == 0 {
				return &InsufficientStockError{Name: product.Name}
			}
		}
		return nil
	})
}

// Restore is the inverse of Commit, used by void. It is best effort: a
// product or material deleted since the order was placed is skipped rather
// than failing the whole restore. Only storage errors propagate.
func (s *StockService) Restore(items []models.OrderItem) error {
	for _, item := range items {
		var product models.Product
		err := s.DB.Preload("Ingredients").First(&product, item.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return &StorageError{Err: err}
		}

		res := s.DB.Model(&models.Product{}).
			Where("id = ?", product.ID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return &StorageError{Err: res.Error}
		}

		for _, ing := range product.Ingredients {
			if ing.MaterialID == 0 {
				continue
			}
			back, _ := decimal.NewFromFloat(ing.Quantity).Mul(decimal.NewFromFloat(item.Quantity)).Float64()
			res := s.DB.Model(&models.RawMaterial{}).
				Where("id = ?", ing.MaterialID).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", back))
			if res.Error != nil {
				return &StorageError{Err: res.Error}
			}
		}
	}
	return nil
}
