package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lawvergara/sisig-pos/controllers"
	"github.com/lawvergara/sisig-pos/models"
	"github.com/lawvergara/sisig-pos/utils"
)

func setupCatalogRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	router := gin.New()
	productCtrl := controllers.NewProductController(db)
	materialCtrl := controllers.NewRawMaterialController(db)

	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/:id", productCtrl.GetOneProduct)
	router.POST("/products", productCtrl.CreateProduct)
	router.PUT("/products/:id", productCtrl.UpdateProduct)
	router.PATCH("/products/:id/featured", productCtrl.ToggleFeatured)
	router.DELETE("/products/:id", productCtrl.DeleteProduct)

	router.GET("/raw-materials", materialCtrl.GetAllMaterials)
	router.POST("/raw-materials", materialCtrl.CreateMaterial)
	router.PUT("/raw-materials/:id", materialCtrl.UpdateMaterial)
	router.DELETE("/raw-materials/:id", materialCtrl.DeleteMaterial)
	return router
}

func TestCreateProductWithIngredients(t *testing.T) {
	db := setupTestDB(t)
	router := setupCatalogRouter(db)

	pork := models.RawMaterial{Name: "Pork", Quantity: 10, Unit: "kilograms", CostPerUnit: 10}
	require.NoError(t, db.Create(&pork).Error)

	payload := map[string]interface{}{
		"name":     "Sisig Meal",
		"category": "Sisig",
		"price":    100.0,
		"quantity": 10.0,
		"ingredients": []map[string]interface{}{
			{"material": pork.ID, "quantity": 2.0},
		},
	}
	w := doJSON(t, router, "POST", "/products", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	var product models.Product
	require.NoError(t, db.Preload("Ingredients.Material").First(&product).Error)
	require.Len(t, product.Ingredients, 1)
	assert.Equal(t, "Pork", product.Ingredients[0].Material.Name)
	assert.True(t, product.IsAvailable)
}

func TestCreateProductRejectsBadCategoryAndUnknownMaterial(t *testing.T) {
	db := setupTestDB(t)
	router := setupCatalogRouter(db)

	w := doJSON(t, router, "POST", "/products", map[string]interface{}{
		"name":     "Mystery Meal",
		"category": "Desserts",
		"price":    50.0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "POST", "/products", map[string]interface{}{
		"name":     "Ghost Meal",
		"category": "Extras",
		"price":    50.0,
		"ingredients": []map[string]interface{}{
			{"material": 9999, "quantity": 1.0},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleFeatured(t *testing.T) {
	db := setupTestDB(t)
	router := setupCatalogRouter(db)

	product := models.Product{Name: "Tapsilog", Category: "Silog", Price: 80, Quantity: 5}
	require.NoError(t, db.Create(&product).Error)

	url := fmt.Sprintf("/products/%d/featured", product.ID)
	w := doJSON(t, router, "PATCH", url, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.True(t, got.IsFeatured)

	w = doJSON(t, router, "PATCH", url, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.False(t, got.IsFeatured)
}

func TestRawMaterialDerivesCostPerUnit(t *testing.T) {
	db := setupTestDB(t)
	router := setupCatalogRouter(db)

	w := doJSON(t, router, "POST", "/raw-materials", map[string]interface{}{
		"name":      "Rice",
		"quantity":  25.0,
		"unit":      "kilograms",
		"totalCost": 1250.0,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, 50.0, data["costPerUnit"])
}

func TestRawMaterialRejectsBadInput(t *testing.T) {
	db := setupTestDB(t)
	router := setupCatalogRouter(db)

	w := doJSON(t, router, "POST", "/raw-materials", map[string]interface{}{
		"name": "Mystery",
		"unit": "barrels",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "POST", "/raw-materials", map[string]interface{}{
		"name":     "Pork",
		"quantity": -2.0,
		"unit":     "kilograms",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
