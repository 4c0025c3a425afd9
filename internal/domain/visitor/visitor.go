package visitor

import (
	"strings"
	"time"

	"github.com/visitflow/visitflow/internal/domain/company"
)

type Visitor struct {
	ID        uint       `gorm:"primaryKey"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"` // Soft delete

	FirstName string `gorm:"column:first_name;type:varchar(50);not null"`
	LastName  string `gorm:"column:last_name;type:varchar(50);not null"`

	// Unique among live visitors, fold-compared.
	Email string `gorm:"column:email;type:varchar(100);not null;index"`

	// A visitor may be unaffiliated. CompanyName keeps the free-text name the
	// visitor gave even when it matched no registered company.
	CompanyID   *uint            `gorm:"column:company_id;index"`
	CompanyName string           `gorm:"column:company_name;type:varchar(50)"`
	Company     *company.Company `gorm:"foreignKey:CompanyID"`
}

func (Visitor) TableName() string {
	return "registry.visitors"
}

func (v *Visitor) FullName() string {
	return strings.TrimSpace(v.FirstName + " " + v.LastName)
}

func (v *Visitor) IsActive() bool {
	return v.DeletedAt == nil
}

type CreateVisitorCommand struct {
	FirstName   string
	LastName    string
	Email       string
	CompanyName string
}

type UpdateVisitorCommand struct {
	FirstName   string
	LastName    string
	Email       string
	CompanyName string
}
