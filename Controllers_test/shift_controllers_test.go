package Controllers_test

import (
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

func setupShiftRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", userID)
	})
	shiftCtrl := controllers.NewShiftController(db)
	router.POST("/shifts/start", shiftCtrl.StartShift)
	router.GET("/shifts/active", shiftCtrl.GetActiveShift)
	router.POST("/shifts/pause", shiftCtrl.PauseShift)
	router.POST("/shifts/resume", shiftCtrl.ResumeShift)
	router.POST("/shifts/end", shiftCtrl.EndShift)
	return router
}

func TestShiftLifecycle(t *testing.T) {
	db := setupTestDB(t)
	cashier, _ := seedUsers(t, db)
	router := setupShiftRouter(db, cashier.ID)

	w := doJSON(t, router, "POST", "/shifts/start", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Starting again returns the running shift instead of opening another.
	w = doJSON(t, router, "POST", "/shifts/start", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.ShiftSession{}).Count(&count)
	assert.Equal(t, int64(1), count)

	w = doJSON(t, router, "POST", "/shifts/pause", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// No active shift while paused.
	w = doJSON(t, router, "GET", "/shifts/active", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, "POST", "/shifts/resume", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "POST", "/shifts/end", map[string]interface{}{
		"totalSales":  1200.0,
		"totalOrders": 7,
		"cash":        900.0,
		"gcash":       300.0,
		"notes":       "smooth day",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var shift models.ShiftSession
	require.NoError(t, db.First(&shift).Error)
	assert.Equal(t, models.ShiftClosed, shift.Status)
	require.NotNil(t, shift.EndedAt)

	var report models.ShiftReport
	require.NoError(t, db.First(&report).Error)
	assert.Equal(t, 1200.0, report.TotalSales)
	assert.Equal(t, 7, report.TotalOrders)
}

func TestEndShiftWithoutActiveSession(t *testing.T) {
	db := setupTestDB(t)
	cashier, _ := seedUsers(t, db)
	router := setupShiftRouter(db, cashier.ID)

	w := doJSON(t, router, "POST", "/shifts/end", map[string]interface{}{
		"totalSales": 0.0,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
