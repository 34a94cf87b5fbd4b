package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lawvergara/sisig-pos/controllers"
	"github.com/lawvergara/sisig-pos/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())

	userCtrl := controllers.NewUserController(db)
	productCtrl := controllers.NewProductController(db)
	materialCtrl := controllers.NewRawMaterialController(db)
	orderCtrl := controllers.NewOrderController(db)
	receiptCtrl := controllers.NewReceiptController(db)
	reportCtrl := controllers.NewReportController(db)
	shiftCtrl := controllers.NewShiftController(db)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", middlewares.NewStrictRateLimiter(), userCtrl.Register)
		auth.POST("/login", middlewares.NewStrictRateLimiter(), userCtrl.Login)
		auth.POST("/verify-admin", middlewares.NewStrictRateLimiter(), middlewares.AuthMiddleware(), userCtrl.VerifyAdmin)
	}

	users := api.Group("/users", middlewares.AuthMiddleware(), middlewares.RequireAdmin())
	{
		users.GET("", userCtrl.GetAllUsers)
		users.GET("/:id", userCtrl.GetUserByID)
		users.PATCH("/:id/password", userCtrl.UpdatePassword)
		users.DELETE("/:id", userCtrl.DeleteUser)
	}

	products := api.Group("/products")
	{
		products.GET("", productCtrl.GetAllProducts)
		products.GET("/featured", productCtrl.GetFeaturedProducts)
		products.GET("/:id", productCtrl.GetOneProduct)

		admin := products.Group("", middlewares.AuthMiddleware(), middlewares.RequireAdmin())
		admin.POST("", productCtrl.CreateProduct)
		admin.PUT("/:id", productCtrl.UpdateProduct)
		admin.PATCH("/:id/featured", productCtrl.ToggleFeatured)
		admin.DELETE("/:id", productCtrl.DeleteProduct)
	}

	materials := api.Group("/raw-materials", middlewares.AuthMiddleware())
	{
		materials.GET("", materialCtrl.GetAllMaterials)

		admin := materials.Group("", middlewares.RequireAdmin())
		admin.POST("", materialCtrl.CreateMaterial)
		admin.PUT("/:id", materialCtrl.UpdateMaterial)
		admin.DELETE("/:id", materialCtrl.DeleteMaterial)
	}

	orders := api.Group("/orders", middlewares.AuthMiddleware())
	{
		orders.POST("", orderCtrl.PlaceOrder)
		orders.GET("", orderCtrl.GetOrders)
		orders.GET("/:order_id", orderCtrl.GetOrderByID)
		orders.GET("/:order_id/receipt", receiptCtrl.GetReceipt)
		orders.PATCH("/:order_id/void", orderCtrl.VoidOrder)
		orders.PATCH("/:order_id/refund", orderCtrl.RefundOrder)
	}

	reports := api.Group("/reports", middlewares.AuthMiddleware())
	{
		reports.GET("/sales-summary", reportCtrl.GetSalesSummary)
		reports.GET("/top-products", reportCtrl.GetTopSellingProducts)
		reports.GET("/low-stock", reportCtrl.GetLowStockAlerts)
		reports.GET("/dashboard", reportCtrl.GetDashboardReport)
		reports.GET("/earnings", reportCtrl.GetEarningsReport)
		reports.GET("/sales-trend", reportCtrl.GetSalesTrend)
		reports.GET("/tips-summary", reportCtrl.GetTipsSummary)
		reports.GET("/voided-orders", reportCtrl.GetVoidedOrders)
		reports.GET("/refunded-orders", reportCtrl.GetRefundedOrders)
		reports.GET("/cashier-sales", reportCtrl.GetCashierSalesReport)
		reports.GET("/export", middlewares.RequireAdmin(), reportCtrl.ExportSalesReport)
	}

	shifts := api.Group("/shifts", middlewares.AuthMiddleware())
	{
		shifts.POST("/start", shiftCtrl.StartShift)
		shifts.GET("/active", shiftCtrl.GetActiveShift)
		shifts.POST("/pause", shiftCtrl.PauseShift)
		shifts.POST("/resume", shiftCtrl.ResumeShift)
		shifts.POST("/end", shiftCtrl.EndShift)
	}

	api.GET("/shift-reports", middlewares.AuthMiddleware(), middlewares.RequireAdmin(), shiftCtrl.GetShiftReports)

	return r
}
