package appointment

import (
	"time"

	"github.com/visitflow/visitflow/internal/domain/company"
	"github.com/visitflow/visitflow/internal/domain/employee"
	"github.com/visitflow/visitflow/internal/domain/visitor"
)

// Cancellation is the appointment's soft delete: terminal, never physically
// removed, excluded from overlap checks and default retrieval.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
)

type Appointment struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	// Half-open window [StartsAt, EndsAt); StartsAt < EndsAt always.
	StartsAt time.Time `gorm:"column:starts_at;not null;index"`
	EndsAt   time.Time `gorm:"column:ends_at;not null;index"`

	// The visitor is immutable once the appointment exists; rescheduling may
	// move the window and reassign employee/company, never the visitor.
	VisitorID  uint `gorm:"column:visitor_id;not null;index"`
	EmployeeID uint `gorm:"column:employee_id;not null;index"`
	CompanyID  uint `gorm:"column:company_id;not null;index"`

	Visitor  visitor.Visitor   `gorm:"foreignKey:VisitorID"`
	Employee employee.Employee `gorm:"foreignKey:EmployeeID"`
	Company  company.Company   `gorm:"foreignKey:CompanyID"`

	Status      Status     `gorm:"column:status;type:varchar(20);not null;default:'scheduled';index"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
}

func (Appointment) TableName() string {
	return "scheduling.appointments"
}

func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// Cancel marks the appointment cancelled. Cancelling an already-cancelled
// appointment is a no-op.
func (a *Appointment) Cancel() {
	if a.IsCancelled() {
		return
	}
	now := time.Now().UTC()
	a.Status = StatusCancelled
	a.CancelledAt = &now
}

// OverlapsWith reports whether another appointment's window intersects this
// one's.
func (a *Appointment) OverlapsWith(other *Appointment) bool {
	return Overlaps(a.StartsAt, a.EndsAt, other.StartsAt, other.EndsAt)
}

type ScheduleCommand struct {
	StartsAt   time.Time
	EndsAt     time.Time
	VisitorID  uint
	EmployeeID uint
	CompanyID  uint
}

type RescheduleCommand struct {
	StartsAt   time.Time
	EndsAt     time.Time
	EmployeeID uint
	CompanyID  uint
}
