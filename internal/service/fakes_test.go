package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/visitflow/visitflow/internal/domain"
	"github.com/visitflow/visitflow/internal/domain/appointment"
	"github.com/visitflow/visitflow/internal/domain/company"
	"github.com/visitflow/visitflow/internal/domain/employee"
	"github.com/visitflow/visitflow/internal/domain/visitor"
	"github.com/visitflow/visitflow/internal/service"
	"github.com/visitflow/visitflow/pkg/normalize"
)

// In-memory repositories mirroring the semantics of the postgres layer:
// reads only see live rows, appointment reads only see scheduled rows whose
// referenced parties are live.

type fakeCompanyRepo struct {
	mu        sync.Mutex
	nextID    uint
	companies map[uint]*company.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{nextID: 1, companies: map[uint]*company.Company{}}
}

func (r *fakeCompanyRepo) Create(_ context.Context, c *company.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.nextID
	r.nextID++
	c.CreatedAt = time.Now()
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id uint) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok || c.DeletedAt != nil {
		return nil, company.ErrCompanyNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCompanyRepo) GetByName(_ context.Context, name string) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	folded := normalize.Fold(name)
	for _, c := range r.companies {
		if c.DeletedAt == nil && normalize.Fold(c.Name) == folded {
			cp := *c
			return &cp, nil
		}
	}
	return nil, company.ErrCompanyNotFound
}

func (r *fakeCompanyRepo) List(_ context.Context) ([]*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*company.Company
	for _, c := range r.companies {
		if c.DeletedAt == nil {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, c *company.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) SoftDelete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok || c.DeletedAt != nil {
		return company.ErrCompanyNotFound
	}
	now := time.Now()
	c.DeletedAt = &now
	return nil
}

func (r *fakeCompanyRepo) ExistsByName(_ context.Context, name string, excludeID *uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	folded := normalize.Fold(name)
	for _, c := range r.companies {
		if c.DeletedAt != nil {
			continue
		}
		if excludeID != nil && c.ID == *excludeID {
			continue
		}
		if normalize.Fold(c.Name) == folded {
			return true, nil
		}
	}
	return false, nil
}

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	nextID    uint
	employees map[uint]*employee.Employee
	companies *fakeCompanyRepo
}

func newFakeEmployeeRepo(companies *fakeCompanyRepo) *fakeEmployeeRepo {
	return &fakeEmployeeRepo{nextID: 1, employees: map[uint]*employee.Employee{}, companies: companies}
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e *employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = r.nextID
	r.nextID++
	e.CreatedAt = time.Now()
	cp := *e
	r.employees[e.ID] = &cp
	return nil
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id uint) (*employee.Employee, error) {
	r.mu.Lock()
	e, ok := r.employees[id]
	if !ok || e.DeletedAt != nil {
		r.mu.Unlock()
		return nil, employee.ErrEmployeeNotFound
	}
	cp := *e
	r.mu.Unlock()
	if c, err := r.companies.GetByID(ctx, cp.CompanyID); err == nil {
		cp.Company = *c
	}
	return &cp, nil
}

func (r *fakeEmployeeRepo) GetByIDForUpdate(ctx context.Context, id uint) (*employee.Employee, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeEmployeeRepo) List(_ context.Context) ([]*employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*employee.Employee
	for _, e := range r.employees {
		if e.DeletedAt == nil {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) ListByCompany(_ context.Context, companyID uint) ([]*employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*employee.Employee
	for _, e := range r.employees {
		if e.DeletedAt == nil && e.CompanyID == companyID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, e *employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.employees[e.ID] = &cp
	return nil
}

func (r *fakeEmployeeRepo) SoftDelete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok || e.DeletedAt != nil {
		return employee.ErrEmployeeNotFound
	}
	now := time.Now()
	e.DeletedAt = &now
	return nil
}

func (r *fakeEmployeeRepo) ExistsByCompanyEmail(_ context.Context, email string, excludeID *uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employees {
		if e.DeletedAt != nil {
			continue
		}
		if excludeID != nil && e.ID == *excludeID {
			continue
		}
		if e.CompanyEmail == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeVisitorRepo struct {
	mu       sync.Mutex
	nextID   uint
	visitors map[uint]*visitor.Visitor
}

func newFakeVisitorRepo() *fakeVisitorRepo {
	return &fakeVisitorRepo{nextID: 1, visitors: map[uint]*visitor.Visitor{}}
}

func (r *fakeVisitorRepo) Create(_ context.Context, v *visitor.Visitor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v.ID = r.nextID
	r.nextID++
	v.CreatedAt = time.Now()
	cp := *v
	r.visitors[v.ID] = &cp
	return nil
}

func (r *fakeVisitorRepo) GetByID(_ context.Context, id uint) (*visitor.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.visitors[id]
	if !ok || v.DeletedAt != nil {
		return nil, visitor.ErrVisitorNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVisitorRepo) GetByIDForUpdate(ctx context.Context, id uint) (*visitor.Visitor, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeVisitorRepo) GetByEmail(_ context.Context, email string) (*visitor.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	folded := normalize.Fold(email)
	for _, v := range r.visitors {
		if v.DeletedAt == nil && v.Email == folded {
			cp := *v
			return &cp, nil
		}
	}
	return nil, visitor.ErrVisitorNotFound
}

func (r *fakeVisitorRepo) List(_ context.Context) ([]*visitor.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*visitor.Visitor
	for _, v := range r.visitors {
		if v.DeletedAt == nil {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeVisitorRepo) Update(_ context.Context, v *visitor.Visitor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.visitors[v.ID] = &cp
	return nil
}

func (r *fakeVisitorRepo) SoftDelete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.visitors[id]
	if !ok || v.DeletedAt != nil {
		return visitor.ErrVisitorNotFound
	}
	now := time.Now()
	v.DeletedAt = &now
	return nil
}

func (r *fakeVisitorRepo) ExistsByEmail(_ context.Context, email string, excludeID *uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	folded := normalize.Fold(email)
	for _, v := range r.visitors {
		if v.DeletedAt != nil {
			continue
		}
		if excludeID != nil && v.ID == *excludeID {
			continue
		}
		if v.Email == folded {
			return true, nil
		}
	}
	return false, nil
}

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	nextID       uint
	appointments map[uint]*appointment.Appointment
	visitors     *fakeVisitorRepo
	employees    *fakeEmployeeRepo
	companies    *fakeCompanyRepo
}

func newFakeAppointmentRepo(v *fakeVisitorRepo, e *fakeEmployeeRepo, c *fakeCompanyRepo) *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		nextID:       1,
		appointments: map[uint]*appointment.Appointment{},
		visitors:     v,
		employees:    e,
		companies:    c,
	}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *appointment.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.nextID
	r.nextID++
	a.CreatedAt = time.Now()
	cp := *a
	r.appointments[a.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) refsLive(ctx context.Context, a *appointment.Appointment) bool {
	if _, err := r.visitors.GetByID(ctx, a.VisitorID); err != nil {
		return false
	}
	if _, err := r.employees.GetByID(ctx, a.EmployeeID); err != nil {
		return false
	}
	if _, err := r.companies.GetByID(ctx, a.CompanyID); err != nil {
		return false
	}
	return true
}

func (r *fakeAppointmentRepo) GetByID(ctx context.Context, id uint) (*appointment.Appointment, error) {
	r.mu.Lock()
	a, ok := r.appointments[id]
	if !ok || a.IsCancelled() {
		r.mu.Unlock()
		return nil, appointment.ErrAppointmentNotFound
	}
	cp := *a
	r.mu.Unlock()
	if !r.refsLive(ctx, &cp) {
		return nil, appointment.ErrAppointmentNotFound
	}
	if v, err := r.visitors.GetByID(ctx, cp.VisitorID); err == nil {
		cp.Visitor = *v
	}
	if e, err := r.employees.GetByID(ctx, cp.EmployeeID); err == nil {
		cp.Employee = *e
	}
	if c, err := r.companies.GetByID(ctx, cp.CompanyID); err == nil {
		cp.Company = *c
	}
	return &cp, nil
}

func (r *fakeAppointmentRepo) List(ctx context.Context) ([]*appointment.Appointment, error) {
	r.mu.Lock()
	var candidates []appointment.Appointment
	for _, a := range r.appointments {
		if !a.IsCancelled() {
			candidates = append(candidates, *a)
		}
	}
	r.mu.Unlock()
	var out []*appointment.Appointment
	for i := range candidates {
		if r.refsLive(ctx, &candidates[i]) {
			out = append(out, &candidates[i])
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListByEmployee(_ context.Context, employeeID uint, excludeID *uint) ([]*appointment.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*appointment.Appointment
	for _, a := range r.appointments {
		if a.IsCancelled() || a.EmployeeID != employeeID {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListByVisitor(_ context.Context, visitorID uint, excludeID *uint) ([]*appointment.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*appointment.Appointment
	for _, a := range r.appointments {
		if a.IsCancelled() || a.VisitorID != visitorID {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, a *appointment.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[a.ID]; !ok {
		return appointment.ErrAppointmentNotFound
	}
	cp := *a
	r.appointments[a.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) Cancel(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return appointment.ErrAppointmentNotFound
	}
	a.Cancel()
	return nil
}

// fakeTxManager hands the callback the same repositories the test seeded; no
// transactional behavior is simulated.
type fakeTxManager struct {
	repos service.Repos
}

func (m *fakeTxManager) RunInTx(_ context.Context, fn func(r service.Repos) error) error {
	return fn(m.repos)
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

var (
	_ company.Repository      = (*fakeCompanyRepo)(nil)
	_ employee.Repository     = (*fakeEmployeeRepo)(nil)
	_ visitor.Repository      = (*fakeVisitorRepo)(nil)
	_ appointment.Repository  = (*fakeAppointmentRepo)(nil)
	_ service.TxManager       = (*fakeTxManager)(nil)
	_ service.AuditRepository = (*fakeAuditRepo)(nil)
)
