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

type ShiftController struct {
	DB *gorm.DB
}

func NewShiftController(db *gorm.DB) *ShiftController {
	return &ShiftController{DB: db}
}

func (sc *ShiftController) currentUser(c *gin.Context) (*models.User, error) {
	var user models.User
	if err := sc.DB.First(&user, c.GetUint("userID")).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

// StartShift -> opens a session; starting twice just returns the active one.
func (sc *ShiftController) StartShift(c *gin.Context) {
	user, err := sc.currentUser(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var existing models.ShiftSession
	if err := sc.DB.Where("cashier_id = ? AND status = ?", user.ID, models.ShiftActive).
		First(&existing).Error; err == nil {
		utils.RespondJSON(c, http.StatusOK, "Shift already active", existing)
		return
	}

	shift := models.ShiftSession{
		CashierID:   user.ID,
		CashierName: user.Name,
		StartedAt:   time.Now(),
		Status:      models.ShiftActive,
	}
	if err := sc.DB.Create(&shift).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Shift started", shift)
}

func (sc *ShiftController) GetActiveShift(c *gin.Context) {
	user, err := sc.currentUser(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var shift models.ShiftSession
	if err := sc.DB.Where("cashier_id = ? AND status = ?", user.ID, models.ShiftActive).
		First(&shift).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("no active shift"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active shift", shift)
}

func (sc *ShiftController) PauseShift(c *gin.Context) {
	user, err := sc.currentUser(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var shift models.ShiftSession
	if err := sc.DB.Where("cashier_id = ? AND status = ?", user.ID, models.ShiftActive).
		First(&shift).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("no active shift to pause"))
		return
	}

	now := time.Now()
	shift.Status = models.ShiftPaused
	shift.PausedAt = &now
	if err := sc.DB.Save(&shift).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Shift paused", shift)
}

func (sc *ShiftController) ResumeShift(c *gin.Context) {
	user, err := sc.currentUser(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var shift models.ShiftSession
	if err := sc.DB.Where("cashier_id = ? AND status = ?", user.ID, models.ShiftPaused).
		First(&shift).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("no paused shift to resume"))
		return
	}

	if shift.PausedAt != nil {
		shift.TotalPausedMs += time.Since(*shift.PausedAt).Milliseconds()
	}
	shift.PausedAt = nil
	shift.Status = models.ShiftActive
	if err := sc.DB.Save(&shift).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Shift resumed", shift)
}

// EndShift -> closes the session and writes the end-of-shift report.
func (sc *ShiftController) EndShift(c *gin.Context) {
	user, err := sc.currentUser(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var body struct {
		TotalSales  float64 `json:"totalSales"`
		TotalOrders int     `json:"totalOrders"`
		Cash        float64 `json:"cash"`
		Gcash       float64 `json:"gcash"`
		Notes       string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var shift models.ShiftSession
	if err := sc.DB.Where("cashier_id = ? AND status = ?", user.ID, models.ShiftActive).
		First(&shift).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("no active shift to close"))
		return
	}

	endedAt := time.Now()
	shift.Status = models.ShiftClosed
	shift.EndedAt = &endedAt
	shift.DurationMinutes = int(endedAt.Sub(shift.StartedAt).Minutes())
	if err := sc.DB.Save(&shift).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	report := models.ShiftReport{
		CashierID:   user.ID,
		CashierName: user.Name,
		TotalSales:  body.TotalSales,
		TotalOrders: body.TotalOrders,
		Cash:        body.Cash,
		Gcash:       body.Gcash,
		Notes:       body.Notes,
		ClosedAt:    endedAt,
	}
	if err := sc.DB.Create(&report).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Shift closed for %s (%d orders)", user.Email, report.TotalOrders)
	utils.RespondJSON(c, http.StatusOK, "Shift ended", gin.H{
		"shift":  shift,
		"report": report,
	})
}

// GetShiftReports -> admin listing of end-of-shift summaries.
func (sc *ShiftController) GetShiftReports(c *gin.Context) {
	var reports []models.ShiftReport
	if err := sc.DB.Order("closed_at DESC").Find(&reports).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Shift reports", reports)
}
