package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/visitflow/visitflow/internal/config"
	"github.com/visitflow/visitflow/internal/domain"
	"github.com/visitflow/visitflow/internal/domain/appointment"
	"github.com/visitflow/visitflow/internal/domain/company"
	"github.com/visitflow/visitflow/internal/domain/employee"
	"github.com/visitflow/visitflow/internal/domain/visitor"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt:                              true,
		DisableForeignKeyConstraintWhenMigrating: false,
		DisableAutomaticPing:                     false,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: false,
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	schemas := []string{"registry", "scheduling", "auth", "audit"}
	for _, schema := range schemas {
		if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
			return fmt.Errorf("creating schema %s: %w", schema, err)
		}
	}

	models := []any{
		&domain.Admin{},
		&domain.AuditLog{},
		&company.Company{},
		&employee.Employee{},
		&visitor.Visitor{},
		&appointment.Appointment{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createConstraints(db); err != nil {
		return fmt.Errorf("creating constraints: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

// createConstraints adds the partial indexes the hot queries need, plus
// exclusion constraints that make double booking impossible at the database
// even if application-level locking ever regresses.
func createConstraints(db *gorm.DB) error {
	// Exclusion constraints on time ranges need btree_gist for the equality
	// part of the constraint.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}

	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_appointments_employee_window
			ON scheduling.appointments (employee_id, starts_at, ends_at)
			WHERE status = 'scheduled'`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_visitor_window
			ON scheduling.appointments (visitor_id, starts_at, ends_at)
			WHERE status = 'scheduled'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_visitors_email_live
			ON registry.visitors (email)
			WHERE deleted_at IS NULL`,
		`DO $$ BEGIN
			ALTER TABLE scheduling.appointments
				ADD CONSTRAINT excl_employee_overlap
				EXCLUDE USING gist (
					employee_id WITH =,
					tsrange(starts_at, ends_at) WITH &&
				) WHERE (status = 'scheduled');
		EXCEPTION WHEN duplicate_object OR duplicate_table THEN NULL;
		END $$`,
		`DO $$ BEGIN
			ALTER TABLE scheduling.appointments
				ADD CONSTRAINT excl_visitor_overlap
				EXCLUDE USING gist (
					visitor_id WITH =,
					tsrange(starts_at, ends_at) WITH &&
				) WHERE (status = 'scheduled');
		EXCEPTION WHEN duplicate_object OR duplicate_table THEN NULL;
		END $$`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
