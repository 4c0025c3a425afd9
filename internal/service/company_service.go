package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/visitflow/visitflow/internal/domain/company"
)

type CompanyService struct {
	repo     company.Repository
	auditSvc *AuditService
	log      *zap.Logger
}

func NewCompanyService(repo company.Repository, auditSvc *AuditService, log *zap.Logger) *CompanyService {
	return &CompanyService{repo: repo, auditSvc: auditSvc, log: log}
}

// CreateCompany registers a company. The name is stored as entered but
// uniqueness is fold-compared, so "Café Corp" and "cafe corp" count as the
// same company.
func (s *CompanyService) CreateCompany(ctx context.Context, cmd *company.CreateCompanyCommand, callerID uuid.UUID, callerRole string, ip string) (*company.Company, error) {
	name := strings.TrimSpace(cmd.Name)
	if errs := validateCompanyName("name", name); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	taken, err := s.repo.ExistsByName(ctx, name, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, company.ErrNameTaken
	}

	c := &company.Company{Name: name}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		AdminID:      callerID,
		AdminRole:    callerRole,
		Action:       "create",
		ResourceType: "company",
		ResourceID:   fmt.Sprint(c.ID),
		IPAddress:    ip,
	})
	return c, nil
}

func (s *CompanyService) GetCompany(ctx context.Context, id uint) (*company.Company, error) {
	if id == 0 {
		return nil, &ValidationError{Fields: []string{"id must be a positive integer"}}
	}
	return s.repo.GetByID(ctx, id)
}

func (s *CompanyService) ListCompanies(ctx context.Context) ([]*company.Company, error) {
	return s.repo.List(ctx)
}

func (s *CompanyService) UpdateCompany(ctx context.Context, id uint, cmd *company.UpdateCompanyCommand, callerID uuid.UUID, callerRole string, ip string) (*company.Company, error) {
	if id == 0 {
		return nil, &ValidationError{Fields: []string{"id must be a positive integer"}}
	}
	name := strings.TrimSpace(cmd.Name)
	if errs := validateCompanyName("name", name); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByName(ctx, name, &id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, company.ErrNameTaken
	}

	c.Name = name
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		AdminID:      callerID,
		AdminRole:    callerRole,
		Action:       "update",
		ResourceType: "company",
		ResourceID:   fmt.Sprint(id),
		IPAddress:    ip,
	})
	return c, nil
}

// DeleteCompany tombstones the company. Existing employees and appointments
// keep their reference; the scheduling engine simply refuses new appointments
// against it.
func (s *CompanyService) DeleteCompany(ctx context.Context, id uint, callerID uuid.UUID, callerRole string, ip string) error {
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
		ResourceType: "company",
		ResourceID:   fmt.Sprint(id),
		IPAddress:    ip,
	})
	s.log.Info("company deleted", zap.Uint("company_id", id))
	return nil
}
