package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lawvergara/sisig-pos/models"
	"github.com/lawvergara/sisig-pos/utils"
)

type RawMaterialController struct {
	DB *gorm.DB
}

func NewRawMaterialController(db *gorm.DB) *RawMaterialController {
	return &RawMaterialController{DB: db}
}

type rawMaterialReq struct {
	Name        string  `json:"name" binding:"required"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	TotalCost   float64 `json:"totalCost"`
	CostPerUnit float64 `json:"costPerUnit"`
}

func (rc *RawMaterialController) GetAllMaterials(c *gin.Context) {
	var materials []models.RawMaterial
	if err := rc.DB.Find(&materials).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of raw materials", materials)
}

func (rc *RawMaterialController) CreateMaterial(c *gin.Context) {
	var req rawMaterialReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Unit == "" {
		req.Unit = "pieces"
	}
	if !models.IsValidUnit(req.Unit) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid unit"))
		return
	}
	if req.Quantity < 0 || req.TotalCost < 0 || req.CostPerUnit < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("quantity and costs must not be negative"))
		return
	}

	material := models.RawMaterial{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		TotalCost:   req.TotalCost,
		CostPerUnit: req.CostPerUnit,
	}
	if err := rc.DB.Create(&material).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Raw material created", material)
}

func (rc *RawMaterialController) UpdateMaterial(c *gin.Context) {
	var material models.RawMaterial
	if err := rc.DB.First(&material, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("raw material not found"))
		return
	}

	var req rawMaterialReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Unit != "" && !models.IsValidUnit(req.Unit) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid unit"))
		return
	}
	if req.Quantity < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("quantity must not be negative"))
		return
	}

	material.Name = req.Name
	material.Quantity = req.Quantity
	if req.Unit != "" {
		material.Unit = req.Unit
	}
	material.TotalCost = req.TotalCost
	material.CostPerUnit = req.CostPerUnit

	if err := rc.DB.Save(&material).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Raw material updated", material)
}

func (rc *RawMaterialController) DeleteMaterial(c *gin.Context) {
	if err := rc.DB.Delete(&models.RawMaterial{}, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Raw material deleted", nil)
}
