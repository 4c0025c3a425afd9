package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/visitflow/visitflow/internal/config"
	"github.com/visitflow/visitflow/internal/domain"
	"github.com/visitflow/visitflow/internal/handler/middleware"
	"github.com/visitflow/visitflow/internal/service"
	"github.com/visitflow/visitflow/pkg/auth"
	"github.com/visitflow/visitflow/pkg/metrics"
)

type RouterDeps struct {
	Config         *config.Config
	JWTManager     *auth.JWTManager
	Metrics        *metrics.Collector
	AuthSvc        *service.AuthService
	CompanySvc     *service.CompanyService
	EmployeeSvc    *service.EmployeeService
	VisitorSvc     *service.VisitorService
	AppointmentSvc *service.AppointmentService
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics(deps.Metrics))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": deps.Config.App.Version})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	globalLimiter := middleware.NewRateLimiter(deps.Config.RateLimit.RequestsPerSecond, deps.Config.RateLimit.BurstSize)
	// Login gets a much tighter bucket than the rest of the API.
	authLimiter := middleware.NewRateLimiter(float64(deps.Config.RateLimit.AuthRequestsPerMinute)/60.0, deps.Config.RateLimit.AuthRequestsPerMinute)

	authHandler := NewAuthHandler(deps.AuthSvc)
	companyHandler := NewCompanyHandler(deps.CompanySvc)
	employeeHandler := NewEmployeeHandler(deps.EmployeeSvc)
	visitorHandler := NewVisitorHandler(deps.VisitorSvc)
	appointmentHandler := NewAppointmentHandler(deps.AppointmentSvc)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(globalLimiter))

	authRoutes := api.Group("/auth")
	authRoutes.Use(middleware.RateLimit(authLimiter))
	{
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh", authHandler.Refresh)
	}

	protected := api.Group("")
	protected.Use(middleware.Authenticate(deps.JWTManager))

	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	companies := protected.Group("/companies")
	{
		companies.POST("", companyHandler.Create)
		companies.GET("", companyHandler.List)
		companies.GET("/:id", companyHandler.Get)
		companies.GET("/:id/employees", employeeHandler.ListByCompany)
		companies.PUT("/:id", companyHandler.Update)
		companies.DELETE("/:id", adminOnly, companyHandler.Delete)
	}

	employees := protected.Group("/employees")
	{
		employees.POST("", employeeHandler.Create)
		employees.GET("", employeeHandler.List)
		employees.GET("/:id", employeeHandler.Get)
		employees.PUT("/:id", employeeHandler.Update)
		employees.DELETE("/:id", adminOnly, employeeHandler.Delete)
	}

	visitors := protected.Group("/visitors")
	{
		visitors.POST("", visitorHandler.Register)
		visitors.GET("", visitorHandler.List)
		visitors.GET("/:id", visitorHandler.Get)
		visitors.PUT("/:id", visitorHandler.Update)
		visitors.DELETE("/:id", adminOnly, visitorHandler.Delete)
	}

	appointments := protected.Group("/appointments")
	{
		appointments.POST("", appointmentHandler.Schedule)
		appointments.GET("", appointmentHandler.List)
		appointments.GET("/:id", appointmentHandler.Get)
		appointments.PUT("/:id", appointmentHandler.Reschedule)
		appointments.POST("/:id/cancel", appointmentHandler.Cancel)
	}

	return r
}
