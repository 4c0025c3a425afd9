package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/visitflow/visitflow/internal/config"
	"github.com/visitflow/visitflow/internal/domain/company"
	"github.com/visitflow/visitflow/internal/domain/employee"
	"github.com/visitflow/visitflow/internal/service"
)

func newEmployeeService(t *testing.T, policy config.EmailCollisionPolicy) (*service.EmployeeService, *fakeEmployeeRepo, uint) {
	t.Helper()
	companies := newFakeCompanyRepo()
	repo := newFakeEmployeeRepo(companies)

	c := &company.Company{Name: "Acme Corp"}
	require.NoError(t, companies.Create(context.Background(), c))

	auditSvc := service.NewAuditService(&fakeAuditRepo{}, nil, zap.NewNop())
	t.Cleanup(auditSvc.Shutdown)
	return service.NewEmployeeService(repo, companies, auditSvc, policy, zap.NewNop()), repo, c.ID
}

func TestCreateEmployee_DerivesCompanyEmail(t *testing.T) {
	svc, _, companyID := newEmployeeService(t, config.EmailCollisionWarn)

	e, err := svc.CreateEmployee(context.Background(), &employee.CreateEmployeeCommand{
		FirstName: "josé",
		LastName:  "müller",
		Title:     "sales lead",
		CompanyID: companyID,
	}, uuid.New(), "admin", "127.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, "jose.muller.saleslead@acmecorp.com", e.CompanyEmail)
	// Names are stored title-cased.
	assert.Equal(t, "José", e.FirstName)
	assert.Equal(t, "Müller", e.LastName)
	assert.Equal(t, "Sales Lead", e.Title)
}

func TestCreateEmployee_UnknownCompany(t *testing.T) {
	svc, _, _ := newEmployeeService(t, config.EmailCollisionWarn)

	_, err := svc.CreateEmployee(context.Background(), &employee.CreateEmployeeCommand{
		FirstName: "Jane",
		LastName:  "Doe",
		Title:     "Engineer",
		CompanyID: 999,
	}, uuid.New(), "admin", "127.0.0.1")

	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestCreateEmployee_CollisionPolicyReject(t *testing.T) {
	svc, _, companyID := newEmployeeService(t, config.EmailCollisionReject)

	cmd := &employee.CreateEmployeeCommand{
		FirstName: "Jane",
		LastName:  "Doe",
		Title:     "Engineer",
		CompanyID: companyID,
	}
	_, err := svc.CreateEmployee(context.Background(), cmd, uuid.New(), "admin", "127.0.0.1")
	require.NoError(t, err)

	// Same name, title, and company: the derived address collides.
	_, err = svc.CreateEmployee(context.Background(), cmd, uuid.New(), "admin", "127.0.0.1")
	assert.ErrorIs(t, err, employee.ErrEmailCollision)
}

func TestCreateEmployee_CollisionPolicyWarnProceeds(t *testing.T) {
	svc, _, companyID := newEmployeeService(t, config.EmailCollisionWarn)

	cmd := &employee.CreateEmployeeCommand{
		FirstName: "Jane",
		LastName:  "Doe",
		Title:     "Engineer",
		CompanyID: companyID,
	}
	_, err := svc.CreateEmployee(context.Background(), cmd, uuid.New(), "admin", "127.0.0.1")
	require.NoError(t, err)

	e2, err := svc.CreateEmployee(context.Background(), cmd, uuid.New(), "admin", "127.0.0.1")
	require.NoError(t, err)
	assert.NotZero(t, e2.ID)
}

func TestCreateEmployee_RejectsInvalidNames(t *testing.T) {
	svc, _, companyID := newEmployeeService(t, config.EmailCollisionWarn)

	cases := []employee.CreateEmployeeCommand{
		{FirstName: "J", LastName: "Doe", Title: "Engineer", CompanyID: companyID},
		{FirstName: "Jane", LastName: "Doe3", Title: "Engineer", CompanyID: companyID},
		{FirstName: "Jane", LastName: "Doe", Title: "", CompanyID: companyID},
		{FirstName: "-Jane", LastName: "Doe", Title: "Engineer", CompanyID: companyID},
	}
	for _, cmd := range cases {
		_, err := svc.CreateEmployee(context.Background(), &cmd, uuid.New(), "admin", "127.0.0.1")
		var validErr *service.ValidationError
		assert.ErrorAs(t, err, &validErr, "%+v", cmd)
	}
}

func TestUpdateEmployee_RederivesEmail(t *testing.T) {
	svc, _, companyID := newEmployeeService(t, config.EmailCollisionWarn)

	e, err := svc.CreateEmployee(context.Background(), &employee.CreateEmployeeCommand{
		FirstName: "Jane",
		LastName:  "Doe",
		Title:     "Engineer",
		CompanyID: companyID,
	}, uuid.New(), "admin", "127.0.0.1")
	require.NoError(t, err)

	updated, err := svc.UpdateEmployee(context.Background(), e.ID, &employee.UpdateEmployeeCommand{
		FirstName: "Jane",
		LastName:  "Doe",
		Title:     "Staff Engineer",
		CompanyID: companyID,
	}, uuid.New(), "admin", "127.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, "jane.doe.staffengineer@acmecorp.com", updated.CompanyEmail)
}

func TestUpdateEmployee_UnchangedFieldsKeepEmail(t *testing.T) {
	svc, _, companyID := newEmployeeService(t, config.EmailCollisionReject)

	e, err := svc.CreateEmployee(context.Background(), &employee.CreateEmployeeCommand{
		FirstName: "Jane",
		LastName:  "Doe",
		Title:     "Engineer",
		CompanyID: companyID,
	}, uuid.New(), "admin", "127.0.0.1")
	require.NoError(t, err)

	// An identity update re-derives the same address; its own row must not
	// count as a collision even under the reject policy.
	updated, err := svc.UpdateEmployee(context.Background(), e.ID, &employee.UpdateEmployeeCommand{
		FirstName: "Jane",
		LastName:  "Doe",
		Title:     "Engineer",
		CompanyID: companyID,
	}, uuid.New(), "admin", "127.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, e.CompanyEmail, updated.CompanyEmail)
}

func TestDeleteEmployee_Tombstones(t *testing.T) {
	svc, _, companyID := newEmployeeService(t, config.EmailCollisionWarn)

	e, err := svc.CreateEmployee(context.Background(), &employee.CreateEmployeeCommand{
		FirstName: "Jane",
		LastName:  "Doe",
		Title:     "Engineer",
		CompanyID: companyID,
	}, uuid.New(), "admin", "127.0.0.1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEmployee(context.Background(), e.ID, uuid.New(), "admin", "127.0.0.1"))

	_, err = svc.GetEmployee(context.Background(), e.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
