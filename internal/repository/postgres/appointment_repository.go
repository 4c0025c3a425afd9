package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/visitflow/visitflow/internal/domain/appointment"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// liveRefs restricts an appointment query to rows whose visitor, employee,
// and company are all still live. Tombstoning a referenced entity hides the
// appointment from default reads without touching the row itself.
func liveRefs(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN registry.visitors v ON v.id = scheduling.appointments.visitor_id AND v.deleted_at IS NULL").
		Joins("JOIN registry.employees e ON e.id = scheduling.appointments.employee_id AND e.deleted_at IS NULL").
		Joins("JOIN registry.companies c ON c.id = scheduling.appointments.company_id AND c.deleted_at IS NULL")
}

func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	err := r.db.WithContext(ctx).
		Omit("Visitor", "Employee", "Company").
		Create(a).Error
	if err != nil {
		return fmt.Errorf("creating appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uint) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := liveRefs(r.db.WithContext(ctx).Model(&appointment.Appointment{})).
		Preload("Visitor").Preload("Employee").Preload("Employee.Company").Preload("Company").
		Where("scheduling.appointments.status = ?", appointment.StatusScheduled).
		Where("scheduling.appointments.id = ?", id).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appointment.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("fetching appointment %d: %w", id, err)
	}
	return &a, nil
}

func (r *AppointmentRepository) List(ctx context.Context) ([]*appointment.Appointment, error) {
	var appointments []*appointment.Appointment
	err := liveRefs(r.db.WithContext(ctx).Model(&appointment.Appointment{})).
		Preload("Visitor").Preload("Employee").Preload("Employee.Company").Preload("Company").
		Where("scheduling.appointments.status = ?", appointment.StatusScheduled).
		Order("scheduling.appointments.starts_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) ListByEmployee(ctx context.Context, employeeID uint, excludeID *uint) ([]*appointment.Appointment, error) {
	return r.listByOwner(ctx, "employee_id", employeeID, excludeID)
}

func (r *AppointmentRepository) ListByVisitor(ctx context.Context, visitorID uint, excludeID *uint) ([]*appointment.Appointment, error) {
	return r.listByOwner(ctx, "visitor_id", visitorID, excludeID)
}

func (r *AppointmentRepository) listByOwner(ctx context.Context, column string, ownerID uint, excludeID *uint) ([]*appointment.Appointment, error) {
	q := r.db.WithContext(ctx).
		Where("status = ?", appointment.StatusScheduled).
		Where(column+" = ?", ownerID)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var appointments []*appointment.Appointment
	if err := q.Order("starts_at ASC").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("listing appointments by %s %d: %w", column, ownerID, err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, a *appointment.Appointment) error {
	err := r.db.WithContext(ctx).
		Omit("Visitor", "Employee", "Company").
		Save(a).Error
	if err != nil {
		return fmt.Errorf("updating appointment %d: %w", a.ID, err)
	}
	return nil
}

func (r *AppointmentRepository) Cancel(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("id = ? AND status = ?", id, appointment.StatusScheduled).
		Updates(map[string]any{"status": appointment.StatusCancelled, "cancelled_at": now})
	if res.Error != nil {
		return fmt.Errorf("cancelling appointment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		var exists int64
		if err := r.db.WithContext(ctx).
			Model(&appointment.Appointment{}).
			Where("id = ?", id).
			Count(&exists).Error; err != nil {
			return fmt.Errorf("cancelling appointment %d: %w", id, err)
		}
		if exists == 0 {
			return appointment.ErrAppointmentNotFound
		}
		// Already cancelled: idempotent no-op.
	}
	return nil
}

var _ appointment.Repository = (*AppointmentRepository)(nil)
