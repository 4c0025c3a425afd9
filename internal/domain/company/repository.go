package company

import "context"

// Repository read methods only ever see live rows; tombstoned companies are
// filtered at this layer, not by callers.
type Repository interface {
	// Create persists a new company. Identity is assigned by the store.
	Create(ctx context.Context, c *Company) error

	// GetByID retrieves a live company. Returns ErrCompanyNotFound if absent
	// or tombstoned.
	GetByID(ctx context.Context, id uint) (*Company, error)

	// GetByName retrieves a live company whose folded name matches the folded
	// input. Returns ErrCompanyNotFound if no live match exists.
	GetByName(ctx context.Context, name string) (*Company, error)

	// List returns all live companies.
	List(ctx context.Context) ([]*Company, error)

	// Update saves the company in place, preserving identity.
	Update(ctx context.Context, c *Company) error

	// SoftDelete tombstones the company. Employees and appointments that
	// reference it are untouched.
	SoftDelete(ctx context.Context, id uint) error

	// ExistsByName checks fold-compared name uniqueness among live companies,
	// optionally excluding the row under update.
	ExistsByName(ctx context.Context, name string, excludeID *uint) (bool, error)
}
