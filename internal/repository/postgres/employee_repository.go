package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/visitflow/visitflow/internal/domain/employee"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	if err := r.db.WithContext(ctx).Omit("Company").Create(e).Error; err != nil {
		return fmt.Errorf("creating employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uint) (*employee.Employee, error) {
	return r.getByID(ctx, r.db, id)
}

// GetByIDForUpdate locks the employee row for the duration of the surrounding
// transaction, serializing concurrent overlap checks on the same employee.
func (r *EmployeeRepository) GetByIDForUpdate(ctx context.Context, id uint) (*employee.Employee, error) {
	return r.getByID(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *EmployeeRepository) getByID(ctx context.Context, db *gorm.DB, id uint) (*employee.Employee, error) {
	var e employee.Employee
	err := db.WithContext(ctx).
		Preload("Company").
		Where("deleted_at IS NULL").
		First(&e, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("fetching employee %d: %w", id, err)
	}
	return &e, nil
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	var employees []*employee.Employee
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("deleted_at IS NULL").
		Order("last_name ASC, first_name ASC").
		Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	return employees, nil
}

func (r *EmployeeRepository) ListByCompany(ctx context.Context, companyID uint) ([]*employee.Employee, error) {
	var employees []*employee.Employee
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("deleted_at IS NULL AND company_id = ?", companyID).
		Order("last_name ASC, first_name ASC").
		Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("listing employees of company %d: %w", companyID, err)
	}
	return employees, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if err := r.db.WithContext(ctx).Omit("Company").Save(e).Error; err != nil {
		return fmt.Errorf("updating employee %d: %w", e.ID, err)
	}
	return nil
}

func (r *EmployeeRepository) SoftDelete(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now)
	if res.Error != nil {
		return fmt.Errorf("deleting employee %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// ExistsByCompanyEmail compares as plain SQL equality: derived emails are
// already folded when they are written.
func (r *EmployeeRepository) ExistsByCompanyEmail(ctx context.Context, email string, excludeID *uint) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Where("deleted_at IS NULL AND company_email = ?", email)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking company email uniqueness: %w", err)
	}
	return count > 0, nil
}

var _ employee.Repository = (*EmployeeRepository)(nil)
