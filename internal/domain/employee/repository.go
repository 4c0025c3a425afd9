package employee

import "context"

type Repository interface {
	Create(ctx context.Context, e *Employee) error

	// GetByID retrieves a live employee with its company preloaded.
	// Returns ErrEmployeeNotFound if absent or tombstoned.
	GetByID(ctx context.Context, id uint) (*Employee, error)

	// GetByIDForUpdate is GetByID with a row lock, used by the scheduling
	// engine to serialize concurrent overlap checks on the same employee.
	// Outside a transaction it behaves like GetByID.
	GetByIDForUpdate(ctx context.Context, id uint) (*Employee, error)

	// List returns all live employees with companies preloaded.
	List(ctx context.Context) ([]*Employee, error)

	// ListByCompany returns the live employees of one company.
	ListByCompany(ctx context.Context, companyID uint) ([]*Employee, error)

	Update(ctx context.Context, e *Employee) error

	SoftDelete(ctx context.Context, id uint) error

	// ExistsByCompanyEmail checks derived-email uniqueness among live
	// employees, optionally excluding the row under update.
	ExistsByCompanyEmail(ctx context.Context, email string, excludeID *uint) (bool, error)
}
