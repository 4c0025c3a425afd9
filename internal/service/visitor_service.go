package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/visitflow/visitflow/internal/domain/company"
	"github.com/visitflow/visitflow/internal/domain/visitor"
	"github.com/visitflow/visitflow/pkg/metrics"
	"github.com/visitflow/visitflow/pkg/normalize"
)

type VisitorService struct {
	repo        visitor.Repository
	companyRepo company.Repository
	auditSvc    *AuditService
	metrics     *metrics.Collector
	log         *zap.Logger
}

func NewVisitorService(repo visitor.Repository, companyRepo company.Repository, auditSvc *AuditService, collector *metrics.Collector, log *zap.Logger) *VisitorService {
	return &VisitorService{repo: repo, companyRepo: companyRepo, auditSvc: auditSvc, metrics: collector, log: log}
}

// RegisterVisitor stores a visitor with a folded email, unique among live
// visitors. The company name is free text; when it fold-matches a registered
// company the visitor is linked to it, otherwise the text is kept as given.
func (s *VisitorService) RegisterVisitor(ctx context.Context, cmd *visitor.CreateVisitorCommand, callerID uuid.UUID, callerRole string, ip string) (*visitor.Visitor, error) {
	if err := validateVisitorFields(cmd.FirstName, cmd.LastName, cmd.Email, cmd.CompanyName); err != nil {
		return nil, err
	}

	email := normalize.Fold(cmd.Email)
	taken, err := s.repo.ExistsByEmail(ctx, email, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, visitor.ErrEmailTaken
	}

	v := &visitor.Visitor{
		FirstName:   normalize.TitleCase(cmd.FirstName),
		LastName:    normalize.TitleCase(cmd.LastName),
		Email:       email,
		CompanyName: strings.TrimSpace(cmd.CompanyName),
	}
	if err := s.resolveCompany(ctx, v); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.VisitorsRegisteredTotal.Inc()
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		AdminID:      callerID,
		AdminRole:    callerRole,
		Action:       "create",
		ResourceType: "visitor",
		ResourceID:   fmt.Sprint(v.ID),
		IPAddress:    ip,
	})
	return v, nil
}

func (s *VisitorService) GetVisitor(ctx context.Context, id uint) (*visitor.Visitor, error) {
	if id == 0 {
		return nil, &ValidationError{Fields: []string{"id must be a positive integer"}}
	}
	return s.repo.GetByID(ctx, id)
}

func (s *VisitorService) ListVisitors(ctx context.Context) ([]*visitor.Visitor, error) {
	return s.repo.List(ctx)
}

func (s *VisitorService) UpdateVisitor(ctx context.Context, id uint, cmd *visitor.UpdateVisitorCommand, callerID uuid.UUID, callerRole string, ip string) (*visitor.Visitor, error) {
	if id == 0 {
		return nil, &ValidationError{Fields: []string{"id must be a positive integer"}}
	}
	if err := validateVisitorFields(cmd.FirstName, cmd.LastName, cmd.Email, cmd.CompanyName); err != nil {
		return nil, err
	}

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email := normalize.Fold(cmd.Email)
	taken, err := s.repo.ExistsByEmail(ctx, email, &id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, visitor.ErrEmailTaken
	}

	v.FirstName = normalize.TitleCase(cmd.FirstName)
	v.LastName = normalize.TitleCase(cmd.LastName)
	v.Email = email
	v.CompanyName = strings.TrimSpace(cmd.CompanyName)
	if err := s.resolveCompany(ctx, v); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		AdminID:      callerID,
		AdminRole:    callerRole,
		Action:       "update",
		ResourceType: "visitor",
		ResourceID:   fmt.Sprint(id),
		IPAddress:    ip,
	})
	return v, nil
}

// DeleteVisitor tombstones the visitor. History survives; the scheduling
// engine refuses new appointments for a tombstoned visitor.
func (s *VisitorService) DeleteVisitor(ctx context.Context, id uint, callerID uuid.UUID, callerRole string, ip string) error {
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
		ResourceType: "visitor",
		ResourceID:   fmt.Sprint(id),
		IPAddress:    ip,
	})
	s.log.Info("visitor deleted", zap.Uint("visitor_id", id))
	return nil
}

// resolveCompany links the visitor to a registered company when the free-text
// name fold-matches one, and clears the link when it no longer does.
func (s *VisitorService) resolveCompany(ctx context.Context, v *visitor.Visitor) error {
	v.CompanyID = nil
	v.Company = nil
	if v.CompanyName == "" {
		return nil
	}
	c, err := s.companyRepo.GetByName(ctx, v.CompanyName)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return nil
		}
		return err
	}
	v.CompanyID = &c.ID
	v.Company = c
	return nil
}

func validateVisitorFields(firstName, lastName, email, companyName string) error {
	var errs []string
	errs = append(errs, validatePersonName("first_name", firstName)...)
	errs = append(errs, validatePersonName("last_name", lastName)...)
	errs = append(errs, validateEmail("email", email)...)
	if strings.TrimSpace(companyName) != "" {
		errs = append(errs, validateCompanyName("company_name", companyName)...)
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
