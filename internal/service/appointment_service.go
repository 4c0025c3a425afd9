package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/visitflow/visitflow/internal/domain/appointment"
	"github.com/visitflow/visitflow/internal/domain/company"
	"github.com/visitflow/visitflow/internal/domain/employee"
	"github.com/visitflow/visitflow/internal/domain/visitor"
	"github.com/visitflow/visitflow/pkg/metrics"
)

// Repos bundles the repositories the scheduling engine touches inside one
// transaction.
type Repos struct {
	Appointments appointment.Repository
	Visitors     visitor.Repository
	Employees    employee.Repository
	Companies    company.Repository
}

// TxManager makes a read-check-write sequence atomic. Two concurrent
// proposals for the same employee or visitor must not both pass the overlap
// check before either commits; implementations serialize them via the row
// locks the engine takes on the parties involved.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(r Repos) error) error
}

// AppointmentService is the conflict-validation engine: it decides whether a
// proposed or edited appointment may be admitted given the existing
// appointments of the same employee and visitor, and the liveness of the
// entities it references. Checks run in a fixed order and the first failure
// wins; nothing is persisted unless every check passes.
type AppointmentService struct {
	tx       TxManager
	repos    Repos
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
}

func NewAppointmentService(tx TxManager, repos Repos, auditSvc *AuditService, collector *metrics.Collector, log *zap.Logger) *AppointmentService {
	return &AppointmentService{tx: tx, repos: repos, auditSvc: auditSvc, metrics: collector, log: log}
}

// Schedule admits a new appointment or rejects it with the first failing
// rule: visitor, employee, and company must resolve to live records, and the
// proposed window must not overlap any non-cancelled appointment of the
// employee or of the visitor.
func (s *AppointmentService) Schedule(ctx context.Context, cmd *appointment.ScheduleCommand, callerID uuid.UUID, callerRole string, ip string) (*appointment.Appointment, error) {
	if err := validateScheduleCommand(cmd); err != nil {
		return nil, err
	}

	var created *appointment.Appointment
	err := s.tx.RunInTx(ctx, func(r Repos) error {
		// Row locks on the visitor and employee serialize concurrent
		// proposals for the same parties until commit.
		v, err := r.Visitors.GetByIDForUpdate(ctx, cmd.VisitorID)
		if err != nil {
			return err
		}
		e, err := r.Employees.GetByIDForUpdate(ctx, cmd.EmployeeID)
		if err != nil {
			return err
		}
		c, err := r.Companies.GetByID(ctx, cmd.CompanyID)
		if err != nil {
			return err
		}

		if err := s.checkOverlaps(ctx, r, cmd.StartsAt, cmd.EndsAt, e.ID, v.ID, nil); err != nil {
			return err
		}

		a := &appointment.Appointment{
			StartsAt:   cmd.StartsAt,
			EndsAt:     cmd.EndsAt,
			VisitorID:  v.ID,
			EmployeeID: e.ID,
			CompanyID:  c.ID,
			Status:     appointment.StatusScheduled,
		}
		if err := r.Appointments.Create(ctx, a); err != nil {
			return err
		}

		// Bind the already-resolved references instead of re-fetching.
		a.Visitor, a.Employee, a.Company = *v, *e, *c
		created = a
		return nil
	})
	if err != nil {
		s.observeRejection(err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.AppointmentsTotal.WithLabelValues(string(appointment.StatusScheduled)).Inc()
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		AdminID:      callerID,
		AdminRole:    callerRole,
		Action:       "create",
		ResourceType: "appointment",
		ResourceID:   fmt.Sprint(created.ID),
		IPAddress:    ip,
	})
	s.log.Info("appointment scheduled",
		zap.Uint("appointment_id", created.ID),
		zap.Uint("employee_id", created.EmployeeID),
		zap.Uint("visitor_id", created.VisitorID),
	)
	return created, nil
}

// Reschedule moves an existing appointment to a new window and possibly a new
// employee and company. The visitor is immutable once the appointment exists.
// Both overlap scans exclude the appointment itself, otherwise every update
// would conflict with its own stored window.
func (s *AppointmentService) Reschedule(ctx context.Context, id uint, cmd *appointment.RescheduleCommand, callerID uuid.UUID, callerRole string, ip string) (*appointment.Appointment, error) {
	if err := validateRescheduleCommand(id, cmd); err != nil {
		return nil, err
	}

	var updated *appointment.Appointment
	err := s.tx.RunInTx(ctx, func(r Repos) error {
		a, err := r.Appointments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		e, err := r.Employees.GetByIDForUpdate(ctx, cmd.EmployeeID)
		if err != nil {
			return err
		}
		c, err := r.Companies.GetByID(ctx, cmd.CompanyID)
		if err != nil {
			return err
		}
		// Lock the visitor row as well; GetByID already guaranteed the
		// visitor is live inside this transaction.
		v, err := r.Visitors.GetByIDForUpdate(ctx, a.VisitorID)
		if err != nil {
			return err
		}

		if err := s.checkOverlaps(ctx, r, cmd.StartsAt, cmd.EndsAt, e.ID, v.ID, &id); err != nil {
			return err
		}

		a.StartsAt = cmd.StartsAt
		a.EndsAt = cmd.EndsAt
		a.EmployeeID = e.ID
		a.CompanyID = c.ID
		if err := r.Appointments.Update(ctx, a); err != nil {
			return err
		}

		a.Visitor, a.Employee, a.Company = *v, *e, *c
		updated = a
		return nil
	})
	if err != nil {
		s.observeRejection(err)
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		AdminID:      callerID,
		AdminRole:    callerRole,
		Action:       "update",
		ResourceType: "appointment",
		ResourceID:   fmt.Sprint(id),
		IPAddress:    ip,
	})
	return updated, nil
}

// Cancel tombstones the appointment. Cancelled appointments leave the overlap
// checks and default listings but stay in the store as history. Cancelling an
// already-cancelled appointment is a no-op success.
func (s *AppointmentService) Cancel(ctx context.Context, id uint, callerID uuid.UUID, callerRole string, ip string) error {
	if id == 0 {
		return &ValidationError{Fields: []string{"id must be a positive integer"}}
	}

	if err := s.repos.Appointments.Cancel(ctx, id); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.AppointmentsTotal.WithLabelValues(string(appointment.StatusCancelled)).Inc()
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		AdminID:      callerID,
		AdminRole:    callerRole,
		Action:       "cancel",
		ResourceType: "appointment",
		ResourceID:   fmt.Sprint(id),
		IPAddress:    ip,
	})
	return nil
}

func (s *AppointmentService) GetAppointment(ctx context.Context, id uint) (*appointment.Appointment, error) {
	return s.repos.Appointments.GetByID(ctx, id)
}

func (s *AppointmentService) ListAppointments(ctx context.Context) ([]*appointment.Appointment, error) {
	return s.repos.Appointments.List(ctx)
}

// checkOverlaps scans the employee's appointments first, then the visitor's;
// the ordering is observable through which conflict error the caller sees.
func (s *AppointmentService) checkOverlaps(ctx context.Context, r Repos, start, end time.Time, employeeID, visitorID uint, excludeID *uint) error {
	existing, err := r.Appointments.ListByEmployee(ctx, employeeID, excludeID)
	if err != nil {
		return err
	}
	for _, other := range existing {
		if appointment.Overlaps(start, end, other.StartsAt, other.EndsAt) {
			return appointment.ErrEmployeeConflict
		}
	}

	existing, err = r.Appointments.ListByVisitor(ctx, visitorID, excludeID)
	if err != nil {
		return err
	}
	for _, other := range existing {
		if appointment.Overlaps(start, end, other.StartsAt, other.EndsAt) {
			return appointment.ErrVisitorConflict
		}
	}
	return nil
}

func (s *AppointmentService) observeRejection(err error) {
	if s.metrics == nil {
		return
	}
	switch err {
	case appointment.ErrEmployeeConflict:
		s.metrics.ScheduleConflictsTotal.WithLabelValues("employee").Inc()
	case appointment.ErrVisitorConflict:
		s.metrics.ScheduleConflictsTotal.WithLabelValues("visitor").Inc()
	}
}

func validateScheduleCommand(cmd *appointment.ScheduleCommand) error {
	errs := validateWindow(cmd.StartsAt, cmd.EndsAt)
	if cmd.VisitorID == 0 {
		errs = append(errs, "visitor_id must be greater than zero")
	}
	if cmd.EmployeeID == 0 {
		errs = append(errs, "employee_id must be greater than zero")
	}
	if cmd.CompanyID == 0 {
		errs = append(errs, "company_id must be greater than zero")
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func validateRescheduleCommand(id uint, cmd *appointment.RescheduleCommand) error {
	var errs []string
	if id == 0 {
		errs = append(errs, "id must be greater than zero")
	}
	errs = append(errs, validateWindow(cmd.StartsAt, cmd.EndsAt)...)
	if cmd.EmployeeID == 0 {
		errs = append(errs, "employee_id must be greater than zero")
	}
	if cmd.CompanyID == 0 {
		errs = append(errs, "company_id must be greater than zero")
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func validateWindow(start, end time.Time) []string {
	var errs []string
	if start.IsZero() {
		errs = append(errs, "start date is required")
	}
	if end.IsZero() {
		errs = append(errs, "end date is required")
	}
	if !start.IsZero() && start.Before(time.Now()) {
		errs = append(errs, appointment.ErrScheduledInPast.Error())
	}
	if !start.IsZero() && !end.IsZero() && !end.After(start) {
		errs = append(errs, appointment.ErrEndNotAfterStart.Error())
	}
	return errs
}
