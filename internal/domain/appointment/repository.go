package appointment

import "context"

type Repository interface {
	// Create persists a new appointment. Identity is assigned by the store.
	Create(ctx context.Context, a *Appointment) error

	// GetByID retrieves a non-cancelled appointment with visitor, employee,
	// and company preloaded. Appointments whose employee or company has since
	// been tombstoned are filtered out, like every default read.
	GetByID(ctx context.Context, id uint) (*Appointment, error)

	// List returns all non-cancelled appointments whose referenced entities
	// are live, with references preloaded.
	List(ctx context.Context) ([]*Appointment, error)

	// ListByEmployee returns the employee's non-cancelled appointments,
	// excluding excludeID when non-nil (self-exclusion on update).
	ListByEmployee(ctx context.Context, employeeID uint, excludeID *uint) ([]*Appointment, error)

	// ListByVisitor returns the visitor's non-cancelled appointments,
	// excluding excludeID when non-nil.
	ListByVisitor(ctx context.Context, visitorID uint, excludeID *uint) ([]*Appointment, error)

	// Update saves field changes in place; the identity is preserved.
	Update(ctx context.Context, a *Appointment) error

	// Cancel marks the appointment cancelled. Returns ErrAppointmentNotFound
	// if no row with this id exists at all; cancelling an already-cancelled
	// appointment succeeds without effect.
	Cancel(ctx context.Context, id uint) error
}
