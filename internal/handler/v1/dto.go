package v1

import (
	"time"

	"github.com/visitflow/visitflow/internal/domain/appointment"
	"github.com/visitflow/visitflow/internal/domain/company"
	"github.com/visitflow/visitflow/internal/domain/employee"
	"github.com/visitflow/visitflow/internal/domain/visitor"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type companyRequest struct {
	Name string `json:"name" binding:"required"`
}

type companyResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCompanyResponse(c *company.Company) companyResponse {
	return companyResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCompanyResponses(cs []*company.Company) []companyResponse {
	out := make([]companyResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCompanyResponse(c))
	}
	return out
}

type employeeRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Title     string `json:"title" binding:"required"`
	CompanyID uint   `json:"company_id" binding:"required"`
}

type employeeResponse struct {
	ID           uint      `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Title        string    `json:"title"`
	CompanyEmail string    `json:"company_email"`
	CompanyID    uint      `json:"company_id"`
	CompanyName  string    `json:"company_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toEmployeeResponse(e *employee.Employee) employeeResponse {
	return employeeResponse{
		ID:           e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Title:        e.Title,
		CompanyEmail: e.CompanyEmail,
		CompanyID:    e.CompanyID,
		CompanyName:  e.Company.Name,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toEmployeeResponses(es []*employee.Employee) []employeeResponse {
	out := make([]employeeResponse, 0, len(es))
	for _, e := range es {
		out = append(out, toEmployeeResponse(e))
	}
	return out
}

type visitorRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	CompanyName string `json:"company_name"`
}

type visitorResponse struct {
	ID          uint      `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	CompanyID   *uint     `json:"company_id,omitempty"`
	CompanyName string    `json:"company_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toVisitorResponse(v *visitor.Visitor) visitorResponse {
	return visitorResponse{
		ID:          v.ID,
		FirstName:   v.FirstName,
		LastName:    v.LastName,
		Email:       v.Email,
		CompanyID:   v.CompanyID,
		CompanyName: v.CompanyName,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func toVisitorResponses(vs []*visitor.Visitor) []visitorResponse {
	out := make([]visitorResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, toVisitorResponse(v))
	}
	return out
}

type scheduleRequest struct {
	StartsAt   time.Time `json:"starts_at" binding:"required"`
	EndsAt     time.Time `json:"ends_at" binding:"required"`
	VisitorID  uint      `json:"visitor_id" binding:"required"`
	EmployeeID uint      `json:"employee_id" binding:"required"`
	CompanyID  uint      `json:"company_id" binding:"required"`
}

type rescheduleRequest struct {
	StartsAt   time.Time `json:"starts_at" binding:"required"`
	EndsAt     time.Time `json:"ends_at" binding:"required"`
	EmployeeID uint      `json:"employee_id" binding:"required"`
	CompanyID  uint      `json:"company_id" binding:"required"`
}

type appointmentResponse struct {
	ID          uint       `json:"id"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      time.Time  `json:"ends_at"`
	Status      string     `json:"status"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	VisitorID    uint   `json:"visitor_id"`
	VisitorName  string `json:"visitor_name,omitempty"`
	EmployeeID   uint   `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	CompanyID    uint   `json:"company_id"`
	CompanyName  string `json:"company_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toAppointmentResponse(a *appointment.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:           a.ID,
		StartsAt:     a.StartsAt,
		EndsAt:       a.EndsAt,
		Status:       string(a.Status),
		CancelledAt:  a.CancelledAt,
		VisitorID:    a.VisitorID,
		VisitorName:  a.Visitor.FullName(),
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.Employee.FullName(),
		CompanyID:    a.CompanyID,
		CompanyName:  a.Company.Name,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toAppointmentResponses(as []*appointment.Appointment) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(as))
	for _, a := range as {
		out = append(out, toAppointmentResponse(a))
	}
	return out
}
