package visitor

import "context"

type Repository interface {
	Create(ctx context.Context, v *Visitor) error

	// GetByID retrieves a live visitor. Returns ErrVisitorNotFound if absent
	// or tombstoned.
	GetByID(ctx context.Context, id uint) (*Visitor, error)

	// GetByIDForUpdate is GetByID with a row lock, used by the scheduling
	// engine to serialize concurrent overlap checks on the same visitor.
	// Outside a transaction it behaves like GetByID.
	GetByIDForUpdate(ctx context.Context, id uint) (*Visitor, error)

	// GetByEmail retrieves a live visitor whose folded email matches the
	// folded input.
	GetByEmail(ctx context.Context, email string) (*Visitor, error)

	// List returns all live visitors.
	List(ctx context.Context) ([]*Visitor, error)

	Update(ctx context.Context, v *Visitor) error

	SoftDelete(ctx context.Context, id uint) error

	// ExistsByEmail checks fold-compared email uniqueness among live
	// visitors, optionally excluding the row under update.
	ExistsByEmail(ctx context.Context, email string, excludeID *uint) (bool, error)
}
