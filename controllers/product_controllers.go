package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lawvergara/sisig-pos/models"
	"github.com/lawvergara/sisig-pos/utils"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// ingredientReq is decoded once at the boundary; no stringified JSON blobs.
type ingredientReq struct {
	Material uint    `json:"material" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required"`
}

type productReq struct {
	Name        string          `json:"name" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Price       float64         `json:"price"`
	Quantity    float64         `json:"quantity"`
	IsAvailable *bool           `json:"isAvailable"`
	IsFeatured  *bool           `json:"isFeatured"`
	Image       *string         `json:"image"`
	Ingredients []ingredientReq `json:"ingredients"`
}

func (pc *ProductController) GetAllProducts(c *gin.Context) {
	var products []models.Product
	if err := pc.DB.Preload("Ingredients.Material").Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

func (pc *ProductController) GetOneProduct(c *gin.Context) {
	var product models.Product
	if err := pc.DB.Preload("Ingredients.Material").First(&product, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.IsValidCategory(req.Category) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid product category"))
		return
	}
	if req.Price < 0 || req.Quantity < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price and quantity must not be negative"))
		return
	}

	ingredients := make([]models.Ingredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		var material models.RawMaterial
		if err := pc.DB.First(&material, ing.Material).Error; err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("ingredient references unknown raw material"))
			return
		}
		ingredients = append(ingredients, models.Ingredient{
			MaterialID: ing.Material,
			Quantity:   ing.Quantity,
		})
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	featured := false
	if req.IsFeatured != nil {
		featured = *req.IsFeatured
	}

	product := models.Product{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		IsAvailable: available,
		IsFeatured:  featured,
		Image:       req.Image,
		Ingredients: ingredients,
	}

	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := pc.DB.Preload("Ingredients").First(&product, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.IsValidCategory(req.Category) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid product category"))
		return
	}

	product.Name = req.Name
	product.Category = req.Category
	product.Price = req.Price
	product.Quantity = req.Quantity
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	product.Image = req.Image

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if req.Ingredients != nil {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.Ingredient{}).Error; err != nil {
				return err
			}
			product.Ingredients = nil
			for _, ing := range req.Ingredients {
				product.Ingredients = append(product.Ingredients, models.Ingredient{
					ProductID:  product.ID,
					MaterialID: ing.Material,
					Quantity:   ing.Quantity,
				})
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&product).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	if err := pc.DB.Select("Ingredients").Delete(&models.Product{}, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product deleted", nil)
}

// GetFeaturedProducts -> featured flag, plus anything created this week.
func (pc *ProductController) GetFeaturedProducts(c *gin.Context) {
	sevenDaysAgo := time.Now().AddDate(0, 0, -7)

	var featured []models.Product
	err := pc.DB.
		Where("is_available = ?", true).
		Where("is_featured = ? OR created_at >= ?", true, sevenDaysAgo).
		Order("created_at DESC").
		Limit(12).
		Find(&featured).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Featured products", featured)
}

func (pc *ProductController) ToggleFeatured(c *gin.Context) {
	var product models.Product
	if err := pc.DB.First(&product, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	product.IsFeatured = !product.IsFeatured
	if err := pc.DB.Model(&product).Update("is_featured", product.IsFeatured).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	msg := "Product removed from featured"
	if product.IsFeatured {
		msg = "Product marked as featured"
	}
	utils.RespondJSON(c, http.StatusOK, msg, product)
}
