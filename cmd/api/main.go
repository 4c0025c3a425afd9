package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/visitflow/visitflow/internal/config"
	v1 "github.com/visitflow/visitflow/internal/handler/v1"
	"github.com/visitflow/visitflow/internal/repository/postgres"
	"github.com/visitflow/visitflow/internal/service"
	"github.com/visitflow/visitflow/pkg/auth"
	"github.com/visitflow/visitflow/pkg/database"
	"github.com/visitflow/visitflow/pkg/logger"
	"github.com/visitflow/visitflow/pkg/metrics"
	"github.com/visitflow/visitflow/pkg/tracer"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		zlog.Fatal("initializing tracer", zap.Error(err))
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		zlog.Fatal("connecting to database", zap.Error(err))
	}
	if err := database.Migrate(db, zlog); err != nil {
		zlog.Fatal("running migrations", zap.Error(err))
	}

	collector := metrics.NewCollector("visitflow")
	jwtManager := auth.NewJWTManager(cfg.JWT)

	companyRepo := postgres.NewCompanyRepository(db)
	employeeRepo := postgres.NewEmployeeRepository(db)
	visitorRepo := postgres.NewVisitorRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	adminRepo := postgres.NewAdminRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	txManager := postgres.NewTxManager(db)

	auditSvc := service.NewAuditService(auditRepo, collector, zlog)
	authSvc := service.NewAuthService(adminRepo, jwtManager, auditSvc, zlog)
	companySvc := service.NewCompanyService(companyRepo, auditSvc, zlog)
	employeeSvc := service.NewEmployeeService(employeeRepo, companyRepo, auditSvc, cfg.Scheduling.EmailCollision, zlog)
	visitorSvc := service.NewVisitorService(visitorRepo, companyRepo, auditSvc, collector, zlog)
	appointmentSvc := service.NewAppointmentService(txManager, service.Repos{
		Appointments: appointmentRepo,
		Visitors:     visitorRepo,
		Employees:    employeeRepo,
		Companies:    companyRepo,
	}, auditSvc, collector, zlog)

	router := v1.NewRouter(v1.RouterDeps{
		Config:         cfg,
		JWTManager:     jwtManager,
		Metrics:        collector,
		AuthSvc:        authSvc,
		CompanySvc:     companySvc,
		EmployeeSvc:    employeeSvc,
		VisitorSvc:     visitorSvc,
		AppointmentSvc: appointmentSvc,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zlog.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("forced shutdown", zap.Error(err))
	}

	// Flush buffered audit entries before the process exits.
	auditSvc.Shutdown()
	zlog.Info("stopped")
}
