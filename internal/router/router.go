package router

import (
	"time"

	"github.com/Shema-glitch/StockTracker/internal/config"
	"github.com/Shema-glitch/StockTracker/internal/handler"
	"github.com/Shema-glitch/StockTracker/internal/middleware"
	"github.com/Shema-glitch/StockTracker/internal/repository"
	"github.com/Shema-glitch/StockTracker/internal/service"
	"github.com/Shema-glitch/StockTracker/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	userSvc := service.NewUserService(userRepo)
	departmentSvc := service.NewDepartmentService(departmentRepo)
	categorySvc := service.NewCategoryService(categoryRepo, departmentRepo)
	productSvc := service.NewProductService(productRepo, categoryRepo)
	ledger := service.NewLedgerService(productRepo)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, productRepo, ledger)
	saleSvc := service.NewSaleService(saleRepo, productRepo, ledger, dispatcher)
	movementSvc := service.NewMovementService(movementRepo, productRepo, ledger, dispatcher)
	reportSvc := service.NewReportService(reportRepo, productRepo, saleRepo, purchaseRepo, userRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, userSvc)
	usersH := handler.NewUsersHandler(userSvc)
	departmentsH := handler.NewDepartmentsHandler(departmentSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	productsH := handler.NewProductsHandler(productSvc)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	movementsH := handler.NewStockMovementsHandler(movementSvc)
	dashboardH := handler.NewDashboardHandler(reportSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/register", middleware.LoginRateLimiter(), authH.Register)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)
	{
		api.GET("/auth/me", authH.Me)

		// Catalog — all authenticated users can read, writes need the
		// matching permission (admins bypass)
		api.GET("/departments", departmentsH.List)
		api.GET("/departments/:id", departmentsH.Get)
		departments := api.Group("/departments", middleware.RequirePermission(userRepo, "departments.manage"))
		{
			departments.POST("", departmentsH.Create)
			departments.PUT("/:id", departmentsH.Update)
			departments.DELETE("/:id", departmentsH.Deactivate)
		}

		api.GET("/categories", categoriesH.List)
		api.GET("/categories/:id", categoriesH.Get)
		categories := api.Group("/categories", middleware.RequirePermission(userRepo, "categories.manage"))
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Deactivate)
		}

		api.GET("/products", productsH.List)
		api.GET("/products/:id", productsH.Get)
		products := api.Group("/products", middleware.RequirePermission(userRepo, "products.manage"))
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Deactivate)
		}

		// Transactions — recording needs the permission, listing is open to
		// any authenticated user
		api.GET("/purchases", purchasesH.List)
		api.POST("/purchases", middleware.RequirePermission(userRepo, "purchases.record"), purchasesH.Create)
		api.GET("/sales", salesH.List)
		api.POST("/sales", middleware.RequirePermission(userRepo, "sales.record"), salesH.Create)
		api.GET("/stock-movements", movementsH.List)
		api.POST("/stock-movements", middleware.RequirePermission(userRepo, "stock.move"), movementsH.Create)

		// Dashboard
		api.GET("/dashboard/stats", dashboardH.Stats)
		api.GET("/dashboard/chart", dashboardH.Chart)

		// Reports
		reports := api.Group("/reports", middleware.RequirePermission(userRepo, "reports.view"))
		{
			reports.GET("/sales", reportsH.Sales)
			reports.GET("/stock", reportsH.Stock)
			reports.GET("/sales/download", reportsH.SalesDownload)
			reports.GET("/stock/download", reportsH.StockDownload)
			reports.GET("/sales/pdf", reportsH.SalesPDF)
		}

		// Account management — admin only
		users := api.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.GET("/:id", usersH.Get)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
		}

		// /api/employees is the same account list for staff-facing screens.
		// Reads need the employees.view permission; writes go through
		// /api/users only.
		api.GET("/employees", middleware.RequirePermission(userRepo, "employees.view"), usersH.List)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
