package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/visitflow/visitflow/internal/config"
	"github.com/visitflow/visitflow/internal/domain/company"
	"github.com/visitflow/visitflow/internal/domain/employee"
	"github.com/visitflow/visitflow/pkg/normalize"
)

type EmployeeService struct {
	repo        employee.Repository
	companyRepo company.Repository
	auditSvc    *AuditService
	collision   config.EmailCollisionPolicy
	log         *zap.Logger
}

func NewEmployeeService(repo employee.Repository, companyRepo company.Repository, auditSvc *AuditService, collision config.EmailCollisionPolicy, log *zap.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, companyRepo: companyRepo, auditSvc: auditSvc, collision: collision, log: log}
}

// CreateEmployee registers an employee under a live company. The company
// email is never accepted from the caller; it is derived from the folded
// name, title, and company name.
func (s *EmployeeService) CreateEmployee(ctx context.Context, cmd *employee.CreateEmployeeCommand, callerID uuid.UUID, callerRole string, ip string) (*employee.Employee, error) {
	if err := validateEmployeeFields(cmd.FirstName, cmd.LastName, cmd.Title, cmd.CompanyID); err != nil {
		return nil, err
	}

	c, err := s.companyRepo.GetByID(ctx, cmd.CompanyID)
	if err != nil {
		return nil, err
	}

	email := normalize.CompanyEmail(cmd.FirstName, cmd.LastName, cmd.Title, c.Name)
	if err := s.checkEmailCollision(ctx, email, nil); err != nil {
		return nil, err
	}

	e := &employee.Employee{
		FirstName:    normalize.TitleCase(cmd.FirstName),
		LastName:     normalize.TitleCase(cmd.LastName),
		Title:        normalize.TitleCase(cmd.Title),
		CompanyEmail: email,
		CompanyID:    c.ID,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	e.Company = *c

	s.auditSvc.LogAsync(ctx, AuditEntry{
		AdminID:      callerID,
		AdminRole:    callerRole,
		Action:       "create",
		ResourceType: "employee",
		ResourceID:   fmt.Sprint(e.ID),
		IPAddress:    ip,
	})
	return e, nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id uint) (*employee.Employee, error) {
	if id == 0 {
		return nil, &ValidationError{Fields: []string{"id must be a positive integer"}}
	}
	return s.repo.GetByID(ctx, id)
}

func (s *EmployeeService) ListEmployees(ctx context.Context) ([]*employee.Employee, error) {
	return s.repo.List(ctx)
}

func (s *EmployeeService) ListEmployeesByCompany(ctx context.Context, companyID uint) ([]*employee.Employee, error) {
	if companyID == 0 {
		return nil, &ValidationError{Fields: []string{"company_id must be a positive integer"}}
	}
	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		return nil, err
	}
	return s.repo.ListByCompany(ctx, companyID)
}

// UpdateEmployee re-derives the company email from the updated fields, so a
// name, title, or company change moves the address with it.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uint, cmd *employee.UpdateEmployeeCommand, callerID uuid.UUID, callerRole string, ip string) (*employee.Employee, error) {
	if id == 0 {
		return nil, &ValidationError{Fields: []string{"id must be a positive integer"}}
	}
	if err := validateEmployeeFields(cmd.FirstName, cmd.LastName, cmd.Title, cmd.CompanyID); err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := s.companyRepo.GetByID(ctx, cmd.CompanyID)
	if err != nil {
		return nil, err
	}

	email := normalize.CompanyEmail(cmd.FirstName, cmd.LastName, cmd.Title, c.Name)
	if err := s.checkEmailCollision(ctx, email, &id); err != nil {
		return nil, err
	}

	e.FirstName = normalize.TitleCase(cmd.FirstName)
	e.LastName = normalize.TitleCase(cmd.LastName)
	e.Title = normalize.TitleCase(cmd.Title)
	e.CompanyEmail = email
	e.CompanyID = c.ID
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	e.Company = *c

	s.auditSvc.LogAsync(ctx, AuditEntry{
		AdminID:      callerID,
		AdminRole:    callerRole,
		Action:       "update",
		ResourceType: "employee",
		ResourceID:   fmt.Sprint(id),
		IPAddress:    ip,
	})
	return e, nil
}

// DeleteEmployee tombstones the employee. Existing appointments stay on the
// books as history; new appointments against the employee are refused.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uint, callerID uuid.UUID, callerRole string, ip string) error {
	if id == 0 {
		return &ValidationError{Fields: []string{"id must be a positive integer"}}
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		AdminID:      callerID,
		AdminRole:    callerRole,
		Action:       "delete",
		ResourceType: "employee",
		ResourceID:   fmt.Sprint(id),
		IPAddress:    ip,
	})
	s.log.Info("employee deleted", zap.Uint("employee_id", id))
	return nil
}

// checkEmailCollision applies the configured policy when the derived email is
// already held by another live employee: reject returns ErrEmailCollision,
// warn logs and proceeds.
func (s *EmployeeService) checkEmailCollision(ctx context.Context, email string, excludeID *uint) error {
	taken, err := s.repo.ExistsByCompanyEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if !taken {
		return nil
	}
	if s.collision == config.EmailCollisionReject {
		return employee.ErrEmailCollision
	}
	s.log.Warn("derived company email collides with an existing employee",
		zap.String("company_email", email),
	)
	return nil
}

func validateEmployeeFields(firstName, lastName, title string, companyID uint) error {
	var errs []string
	errs = append(errs, validatePersonName("first_name", firstName)...)
	errs = append(errs, validatePersonName("last_name", lastName)...)
	errs = append(errs, validatePersonName("title", title)...)
	if companyID == 0 {
		errs = append(errs, "company_id must be greater than zero")
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
