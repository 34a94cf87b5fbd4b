package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lawvergara/sisig-pos/controllers"
	"github.com/lawvergara/sisig-pos/utils"
)

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	router := gin.New()
	userCtrl := controllers.NewUserController(db)
	router.POST("/auth/register", userCtrl.Register)
	router.POST("/auth/login", userCtrl.Login)
	router.POST("/auth/verify-admin", userCtrl.VerifyAdmin)
	return router
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	router := setupUserRouter(db)

	payload := map[string]interface{}{
		"name":     "Mia",
		"email":    "mia@sisig.ph",
		"password": "pass1234",
		"role":     "cashier",
	}
	w := doJSON(t, router, "POST", "/auth/register", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Duplicate email is rejected.
	w = doJSON(t, router, "POST", "/auth/register", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "POST", "/auth/login", map[string]interface{}{
		"email":    "mia@sisig.ph",
		"password": "pass1234",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	token, ok := data["token"].(string)
	require.True(t, ok)

	claims, err := utils.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cashier", claims.Role)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db)
	router := setupUserRouter(db)

	w := doJSON(t, router, "POST", "/auth/login", map[string]interface{}{
		"email":    "ana@sisig.ph",
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	db := setupTestDB(t)
	router := setupUserRouter(db)

	w := doJSON(t, router, "POST", "/auth/register", map[string]interface{}{
		"name":     "Eve",
		"email":    "eve@sisig.ph",
		"password": "pass1234",
		"role":     "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyAdmin(t *testing.T) {
	db := setupTestDB(t)
	cashier, admin := seedUsers(t, db)
	router := setupUserRouter(db)

	w := doJSON(t, router, "POST", "/auth/verify-admin", map[string]interface{}{
		"email":    admin.Email,
		"password": adminPassword,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Right password, wrong role.
	w = doJSON(t, router, "POST", "/auth/verify-admin", map[string]interface{}{
		"email":    cashier.Email,
		"password": adminPassword,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, "POST", "/auth/verify-admin", map[string]interface{}{
		"email":    admin.Email,
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
