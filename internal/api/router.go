package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nextgen-lms/backend/internal/api/handler"
	"github.com/nextgen-lms/backend/internal/api/middleware"
	"github.com/nextgen-lms/backend/internal/core/domain"
	"github.com/nextgen-lms/backend/internal/core/ports"
	"github.com/nextgen-lms/backend/internal/core/service"
	"github.com/nextgen-lms/backend/internal/infrastructure/config"
	lmsmongo "github.com/nextgen-lms/backend/internal/infrastructure/db/mongo"
	lmsredis "github.com/nextgen-lms/backend/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The activity sink is constructed by the caller so its worker lifecycle can
// be tied to the process context.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, activities ports.ActivitySink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.Production())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("lms"))

	// --- Repositories ---
	userRepo := lmsmongo.NewUserRepository(db)
	courseRepo := lmsmongo.NewCourseRepository(db)
	keyRepo := lmsmongo.NewAccessKeyRepository(db)
	grantRepo := lmsmongo.NewGrantRepository(db)
	noticeRepo := lmsmongo.NewNoticeRepository(db)
	contentRepo := lmsmongo.NewContentRepository(db)
	txRunner := lmsmongo.NewTxRunner(db.Client(), log)
	cache := lmsredis.NewCache(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, activities, cfg.JWTSecret, cfg.JWTExpire, log)
	userService := service.NewUserService(userRepo, log)
	courseService := service.NewCourseService(courseRepo, cache, activities, log)
	cartService := service.NewCartService(userRepo, log)
	keyService := service.NewAccessKeyService(keyRepo, grantRepo, userRepo, txRunner, activities, log)
	noticeService := service.NewNoticeService(noticeRepo, cache, log)
	contentService := service.NewContentService(contentRepo, log)
	adminService := service.NewAdminService(userRepo, courseRepo, lmsmongo.NewActivityRepository(db), log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	courseHandler := handler.NewCourseHandler(courseService, cfg.UploadDir)
	cartHandler := handler.NewCartHandler(cartService)
	keyHandler := handler.NewAccessKeyHandler(keyService)
	noticeHandler := handler.NewNoticeHandler(noticeService)
	contentHandler := handler.NewContentHandler(contentService)
	adminHandler := handler.NewAdminHandler(adminService)

	auth := middleware.Auth(cfg.JWTSecret)
	staffOnly := middleware.RBAC(domain.RoleInstructor, domain.RoleAdmin)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth ---
	authGroup := e.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/profile", authHandler.Profile, auth)

	// --- Users (admin management) ---
	users := e.Group("/api/users", auth, adminOnly)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Courses ---
	courses := e.Group("/api/courses")
	courses.GET("", courseHandler.List)
	courses.GET("/:id", courseHandler.Get)
	courses.POST("", courseHandler.Create, auth, staffOnly)
	courses.PUT("/:id", courseHandler.Update, auth, staffOnly)
	courses.DELETE("/:id", courseHandler.Delete, auth, staffOnly)

	// --- Cart ---
	cart := e.Group("/api/cart", auth)
	cart.GET("", cartHandler.Get)
	cart.POST("", cartHandler.Add)
	cart.DELETE("/:courseId", cartHandler.Remove)
	cart.DELETE("", cartHandler.Clear)

	// --- Access keys ---
	keys := e.Group("/api/access-keys")
	keys.POST("/validate", keyHandler.Redeem) // public redemption endpoint
	keys.POST("", keyHandler.Create, auth, staffOnly)
	keys.GET("", keyHandler.List, auth, staffOnly)
	keys.GET("/:id", keyHandler.Get, auth, staffOnly)
	keys.PUT("/:id", keyHandler.Update, auth, staffOnly)
	keys.DELETE("/:id", keyHandler.Delete, auth, staffOnly)

	// --- Notices ---
	notices := e.Group("/api/notices")
	notices.GET("", noticeHandler.ListPublic)
	notices.GET("/admin/all", noticeHandler.ListAll, auth, adminOnly)
	notices.GET("/:id", noticeHandler.Get)
	notices.POST("", noticeHandler.Create, auth, adminOnly)
	notices.PUT("/:id", noticeHandler.Update, auth, adminOnly)
	notices.DELETE("/:id", noticeHandler.Delete, auth, adminOnly)

	// --- Course content ---
	content := e.Group("/api/course-content", auth)
	content.POST("", contentHandler.Create, staffOnly)
	content.GET("/course/:courseId", contentHandler.GetByCourse)
	content.GET("/:id", contentHandler.Get)
	content.PUT("/:id", contentHandler.Update, staffOnly)
	content.DELETE("/:id", contentHandler.Delete, staffOnly)

	// --- Admin dashboard ---
	admin := e.Group("/api/admin", auth, adminOnly)
	admin.GET("/dashboard/stats", adminHandler.Stats)
	admin.GET("/dashboard/activities", adminHandler.Activities)

	// --- Uploaded course images ---
	e.Static("/uploads", cfg.UploadDir)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
