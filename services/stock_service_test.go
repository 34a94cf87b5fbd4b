package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lawvergara/sisig-pos/models"
)

func setupStockDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.RawMaterial{},
		&models.Product{},
		&models.Ingredient{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

// seedSisig creates product "Sisig Meal" at 100 pesos requiring 2 units of
// "Pork" per serving, with 5 units of pork and 10 servings in stock.
func seedSisig(t *testing.T, db *gorm.DB) (models.Product, models.RawMaterial) {
	t.Helper()
	pork := models.RawMaterial{
		Name:        "Pork",
		Quantity:    5,
		Unit:        "kilograms",
		CostPerUnit: 10,
	}
	require.NoError(t, db.Create(&pork).Error)

	product := models.Product{
		Name:     "Sisig Meal",
		Category: "Sisig",
		Price:    100,
		Quantity: 10,
		Ingredients: []models.Ingredient{
			{MaterialID: pork.ID, Quantity: 2},
		},
	}
	require.NoError(t, db.Create(&product).Error)
	return product, pork
}

func materialQty(t *testing.T, db *gorm.DB, id uint) float64 {
	t.Helper()
	var m models.RawMaterial
	require.NoError(t, db.First(&m, id).Error)
	return m.Quantity
}

func productQty(t *testing.T, db *gorm.DB, id uint) float64 {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, id).Error)
	return p.Quantity
}

func TestValidateOrderInsufficientStockNamesMaterial(t *testing.T) {
	db := setupStockDB(t)
	product, pork := seedSisig(t, db)
	svc := NewStockService(db)

	// 3 servings need 6 pork, only 5 in stock.
	_, err := svc.ValidateOrder([]OrderLine{{ProductID: product.ID, Quantity: 3}})
	require.Error(t, err)

	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Pork", stockErr.Name)

	// Dry run never mutates.
	assert.Equal(t, 5.0, materialQty(t, db, pork.ID))
	assert.Equal(t, 10.0, productQty(t, db, product.ID))
}

func TestValidateAndCommitDeductsStock(t *testing.T) {
	db := setupStockDB(t)
	product, pork := seedSisig(t, db)
	svc := NewStockService(db)

	quote, err := svc.ValidateOrder([]OrderLine{{ProductID: product.ID, Quantity: 2}})
	require.NoError(t, err)

	total, _ := quote.Total.Float64()
	cost, _ := quote.Cost.Float64()
	assert.Equal(t, 200.0, total)
	assert.Equal(t, 40.0, cost) // 4 pork at 10/unit

	require.NoError(t, svc.Commit(quote.Items))
	assert.Equal(t, 1.0, materialQty(t, db, pork.ID))
	assert.Equal(t, 8.0, productQty(t, db, product.ID))
}

func TestValidateOrderInvalidQuantity(t *testing.T) {
	db := setupStockDB(t)
	product, _ := seedSisig(t, db)
	svc := NewStockService(db)

	for _, qty := range []float64{0, -1} {
		_, err := svc.ValidateOrder([]OrderLine{{ProductID: product.ID, Quantity: qty}})
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Contains(t, vErr.Error(), "Sisig Meal")
	}
}

func TestValidateOrderEmpty(t *testing.T) {
	db := setupStockDB(t)
	svc := NewStockService(db)

	_, err := svc.ValidateOrder(nil)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
}

func TestValidateOrderProductNotFound(t *testing.T) {
	db := setupStockDB(t)
	svc := NewStockService(db)

	_, err := svc.ValidateOrder([]OrderLine{{ProductID: 9999, Quantity: 1}})
	var nfErr *NotFoundError
	require.True(t, errors.As(err, &nfErr))
}

func TestValidateOrderInvalidIngredientAbortsOrder(t *testing.T) {
	db := setupStockDB(t)
	svc := NewStockService(db)

	// Product whose ingredient points at a deleted material.
	product := models.Product{
		Name:     "Broken Meal",
		Category: "Extras",
		Price:    50,
		Quantity: 10,
		Ingredients: []models.Ingredient{
			{MaterialID: 4242, Quantity: 1},
		},
	}
	require.NoError(t, db.Create(&product).Error)

	_, err := svc.ValidateOrder([]OrderLine{{ProductID: product.ID, Quantity: 1}})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Error(), "Broken Meal")
}

func TestCommitAllOrNothingOnConcurrentDepletion(t *testing.T) {
	db := setupStockDB(t)
	product, pork := seedSisig(t, db)

	onions := models.RawMaterial{Name: "Onions", Quantity: 10, Unit: "pieces", CostPerUnit: 1}
	require.NoError(t, db.Create(&onions).Error)
	sizzling := models.Product{
		Name:     "Sizzling Plate",
		Category: "Sizzling",
		Price:    150,
		Quantity: 10,
		Ingredients: []models.Ingredient{
			{MaterialID: onions.ID, Quantity: 2},
		},
	}
	require.NoError(t, db.Create(&sizzling).Error)

	svc := NewStockService(db)
	quote, err := svc.ValidateOrder([]OrderLine{
		{ProductID: sizzling.ID, Quantity: 1},
		{ProductID: product.ID, Quantity: 2},
	})
	require.NoError(t, err)

	// A competing order drains the pork after the dry run passed.
	require.NoError(t, db.Model(&models.RawMaterial{}).
		Where("id = ?", pork.ID).
		UpdateColumn("quantity", 1.0).Error)

	err = svc.Commit(quote.Items)
	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Pork", stockErr.Name)

	// The onion deduction from the first item must have been rolled back.
	assert.Equal(t, 10.0, materialQty(t, db, onions.ID))
	assert.Equal(t, 10.0, productQty(t, db, sizzling.ID))
	assert.Equal(t, 1.0, materialQty(t, db, pork.ID))
}

func TestCommitThenRestoreRoundTrip(t *testing.T) {
	db := setupStockDB(t)
	product, pork := seedSisig(t, db)
	svc := NewStockService(db)

	quote, err := svc.ValidateOrder([]OrderLine{{ProductID: product.ID, Quantity: 2}})
	require.NoError(t, err)
	require.NoError(t, svc.Commit(quote.Items))
	require.NoError(t, svc.Restore(quote.Items))

	assert.Equal(t, 5.0, materialQty(t, db, pork.ID))
	assert.Equal(t, 10.0, productQty(t, db, product.ID))
}

func TestRestoreSkipsDeletedProduct(t *testing.T) {
	db := setupStockDB(t)
	product, pork := seedSisig(t, db)
	svc := NewStockService(db)

	quote, err := svc.ValidateOrder([]OrderLine{{ProductID: product.ID, Quantity: 2}})
	require.NoError(t, err)
	require.NoError(t, svc.Commit(quote.Items))

	// Product deleted before the void lands; restore skips it rather than
	// failing, so the pork credit is skipped along with it.
	require.NoError(t, db.Where("product_id = ?", product.ID).Delete(&models.Ingredient{}).Error)
	require.NoError(t, db.Delete(&models.Product{}, product.ID).Error)

	require.NoError(t, svc.Restore(quote.Items))
	assert.Equal(t, 1.0, materialQty(t, db, pork.ID))
}
