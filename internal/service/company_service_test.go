package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/visitflow/visitflow/internal/domain/company"
	"github.com/visitflow/visitflow/internal/service"
)

func newCompanyService(t *testing.T) (*service.CompanyService, *fakeCompanyRepo) {
	t.Helper()
	repo := newFakeCompanyRepo()
	auditSvc := service.NewAuditService(&fakeAuditRepo{}, nil, zap.NewNop())
	t.Cleanup(auditSvc.Shutdown)
	return service.NewCompanyService(repo, auditSvc, zap.NewNop()), repo
}

func TestCreateCompany_StoresNameAsEntered(t *testing.T) {
	svc, _ := newCompanyService(t)

	c, err := svc.CreateCompany(context.Background(), &company.CreateCompanyCommand{Name: "Café Corp"}, uuid.New(), "admin", "127.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, "Café Corp", c.Name)
	assert.NotZero(t, c.ID)
}

func TestCreateCompany_FoldedNameUniqueness(t *testing.T) {
	svc, _ := newCompanyService(t)
	_, err := svc.CreateCompany(context.Background(), &company.CreateCompanyCommand{Name: "Café Corp"}, uuid.New(), "admin", "127.0.0.1")
	require.NoError(t, err)

	// Accent and case variants of the same name are the same company.
	_, err = svc.CreateCompany(context.Background(), &company.CreateCompanyCommand{Name: "cafe corp"}, uuid.New(), "admin", "127.0.0.1")
	assert.ErrorIs(t, err, company.ErrNameTaken)
}

func TestCreateCompany_RejectsInvalidNames(t *testing.T) {
	svc, _ := newCompanyService(t)

	for _, name := range []string{"", "A", "Corp<script>", strings.Repeat("x", 51)} {
		_, err := svc.CreateCompany(context.Background(), &company.CreateCompanyCommand{Name: name}, uuid.New(), "admin", "127.0.0.1")
		var validErr *service.ValidationError
		assert.ErrorAs(t, err, &validErr, "name %q", name)
	}
}

func TestUpdateCompany_ExcludesItselfFromUniqueness(t *testing.T) {
	svc, _ := newCompanyService(t)
	c, err := svc.CreateCompany(context.Background(), &company.CreateCompanyCommand{Name: "Acme Corp"}, uuid.New(), "admin", "127.0.0.1")
	require.NoError(t, err)

	// Re-saving under a fold-equal spelling of its own name must not count
	// as a duplicate.
	updated, err := svc.UpdateCompany(context.Background(), c.ID, &company.UpdateCompanyCommand{Name: "ACME CORP"}, uuid.New(), "admin", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "ACME CORP", updated.Name)
}

func TestUpdateCompany_RejectsTakenName(t *testing.T) {
	svc, _ := newCompanyService(t)
	_, err := svc.CreateCompany(context.Background(), &company.CreateCompanyCommand{Name: "Acme Corp"}, uuid.New(), "admin", "127.0.0.1")
	require.NoError(t, err)
	c2, err := svc.CreateCompany(context.Background(), &company.CreateCompanyCommand{Name: "Other Inc."}, uuid.New(), "admin", "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.UpdateCompany(context.Background(), c2.ID, &company.UpdateCompanyCommand{Name: "acme corp"}, uuid.New(), "admin", "127.0.0.1")
	assert.ErrorIs(t, err, company.ErrNameTaken)
}

func TestDeleteCompany_FreesTheName(t *testing.T) {
	svc, _ := newCompanyService(t)
	c, err := svc.CreateCompany(context.Background(), &company.CreateCompanyCommand{Name: "Acme Corp"}, uuid.New(), "admin", "127.0.0.1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCompany(context.Background(), c.ID, uuid.New(), "admin", "127.0.0.1"))

	_, err = svc.GetCompany(context.Background(), c.ID)
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)

	// Tombstoned rows no longer participate in uniqueness.
	_, err = svc.CreateCompany(context.Background(), &company.CreateCompanyCommand{Name: "Acme Corp"}, uuid.New(), "admin", "127.0.0.1")
	assert.NoError(t, err)
}
