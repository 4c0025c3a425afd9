package employee

import (
	"strings"
	"time"

	"github.com/visitflow/visitflow/internal/domain/company"
)

type Employee struct {
	ID        uint       `gorm:"primaryKey"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"` // Soft delete

	FirstName string `gorm:"column:first_name;type:varchar(50);not null"`
	LastName  string `gorm:"column:last_name;type:varchar(50);not null"`
	Title     string `gorm:"column:title;type:varchar(50);not null"`

	// Derived from (first name, last name, title, company name) via the
	// normalize fold. Never user-supplied.
	CompanyEmail string `gorm:"column:company_email;type:varchar(255);not null;index"`

	CompanyID uint            `gorm:"column:company_id;not null;index"`
	Company   company.Company `gorm:"foreignKey:CompanyID"`
}

func (Employee) TableName() string {
	return "registry.employees"
}

func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func (e *Employee) IsActive() bool {
	return e.DeletedAt == nil
}

type CreateEmployeeCommand struct {
	FirstName string
	LastName  string
	Title     string
	CompanyID uint
}

type UpdateEmployeeCommand struct {
	FirstName string
	LastName  string
	Title     string
	CompanyID uint
}
