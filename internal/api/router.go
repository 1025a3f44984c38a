package api

import (
	"context"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/officecorner/hr-system/internal/api/handler"
	"github.com/officecorner/hr-system/internal/api/middleware"
	"github.com/officecorner/hr-system/internal/core/domain"
	"github.com/officecorner/hr-system/internal/core/ports"
	"github.com/officecorner/hr-system/internal/core/service"
	mongodb "github.com/officecorner/hr-system/internal/infrastructure/db/mongo"
	"github.com/officecorner/hr-system/internal/infrastructure/notify"
)

// Deps carries everything the router needs that is constructed in main:
// connected stores and the infrastructure adapters behind the ports.
type Deps struct {
	DB  *mongo.Database
	RDB *redis.Client // nil when the OTP backend is in-memory

	OTPStore ports.OTPStore
	Google   ports.GoogleVerifier
	Notifier ports.Notifier
	Hub      *notify.Hub
	Storage  ports.FileStorage

	JWTSecret   string
	TokenTTL    time.Duration
	RememberTTL time.Duration

	Version string
	Log     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hr"))

	// --- Repositories ---
	accountRepo := mongodb.NewAccountRepository(deps.DB)
	attendanceRepo := mongodb.NewAttendanceRepository(deps.DB)
	taskRepo := mongodb.NewTaskRepository(deps.DB)
	departmentRepo := mongodb.NewDepartmentRepository(deps.DB)
	calendarRepo := mongodb.NewCalendarRepository(deps.DB)

	// --- Services ---
	authService := service.NewAuthService(
		accountRepo, deps.OTPStore, deps.Google, deps.Notifier,
		deps.JWTSecret, deps.TokenTTL, deps.RememberTTL, deps.Log,
	)
	accountService := service.NewAccountService(accountRepo, deps.Notifier, deps.Log)
	attendanceService := service.NewAttendanceService(attendanceRepo, deps.Log)
	taskService := service.NewTaskService(taskRepo, deps.Log)
	departmentService := service.NewDepartmentService(departmentRepo)
	calendarService := service.NewCalendarService(calendarRepo)
	analyticsService := service.NewAnalyticsService(accountRepo, attendanceRepo, taskRepo, departmentRepo)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, deps.Log)
	adminHandler := handler.NewAdminHandler(accountService, deps.Log)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService, deps.Log)
	taskHandler := handler.NewTaskHandler(taskService, deps.Log)
	departmentHandler := handler.NewDepartmentHandler(departmentService)
	calendarHandler := handler.NewCalendarHandler(calendarService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	uploadHandler := handler.NewUploadHandler(deps.Storage, deps.Log)
	realtimeHandler := handler.NewRealtimeHandler(deps.Hub, deps.Log)

	authRequired := middleware.Auth(deps.JWTSecret)
	adminOnly := middleware.RBAC(string(domain.RoleAdministrator))

	// --- Public auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/send-otp", authHandler.SendOTP)
	auth.POST("/verify-otp", authHandler.VerifyOTP)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/email-login", authHandler.EmailLogin)
	auth.POST("/google-register", authHandler.GoogleRegister)
	auth.POST("/google-login", authHandler.GoogleLogin)

	// --- Protected routes ---
	apiGroup := e.Group("/api", authRequired)

	admin := apiGroup.Group("/admin", adminOnly)
	admin.GET("/pending-employees", adminHandler.PendingEmployees)
	admin.GET("/employees", adminHandler.Employees)
	admin.GET("/employees/:id", adminHandler.Employee)
	admin.PUT("/approve-employee/:id", adminHandler.Decide)

	attendance := apiGroup.Group("/attendance")
	attendance.POST("/record", attendanceHandler.Record)
	attendance.GET("/today", attendanceHandler.Today)
	attendance.GET("/history", attendanceHandler.History)
	attendance.GET("/by-date", attendanceHandler.ListByDate, adminOnly)
	attendance.POST("/manual", attendanceHandler.ManualEntry, adminOnly)
	attendance.PUT("/:id/status", attendanceHandler.Override, adminOnly)

	tasks := apiGroup.Group("/tasks")
	tasks.POST("", taskHandler.Create, adminOnly)
	tasks.GET("", taskHandler.List)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id/status", taskHandler.UpdateStatus)
	tasks.DELETE("/:id", taskHandler.Delete, adminOnly)

	departments := apiGroup.Group("/departments")
	departments.GET("", departmentHandler.List)
	departments.GET("/:id", departmentHandler.Get)
	departments.POST("", departmentHandler.Create, adminOnly)
	departments.PUT("/:id", departmentHandler.Update, adminOnly)
	departments.DELETE("/:id", departmentHandler.Delete, adminOnly)

	events := apiGroup.Group("/events")
	events.GET("", calendarHandler.List)
	events.GET("/:id", calendarHandler.Get)
	events.POST("", calendarHandler.Create)
	events.PUT("/:id", calendarHandler.Update)
	events.DELETE("/:id", calendarHandler.Delete, adminOnly)

	apiGroup.GET("/analytics/dashboard", analyticsHandler.Dashboard, adminOnly)
	apiGroup.POST("/upload", uploadHandler.Upload)
	apiGroup.GET("/notifications/stream", realtimeHandler.Stream)

	// --- Operational endpoints (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handler.NewHealthHandler(deps.Version, readinessChecks(deps)...)
	e.GET("/health", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)

	return e
}

func readinessChecks(deps Deps) []handler.ReadinessCheck {
	checks := []handler.ReadinessCheck{
		{
			Name: "mongo",
			Check: func(ctx context.Context) error {
				return deps.DB.Client().Ping(ctx, nil)
			},
		},
	}
	if deps.RDB != nil {
		checks = append(checks, handler.ReadinessCheck{
			Name: "redis",
			Check: func(ctx context.Context) error {
				return deps.RDB.Ping(ctx).Err()
			},
		})
	}
	return checks
}
