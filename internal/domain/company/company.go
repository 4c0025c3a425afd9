package company

import (
	"time"
)

type Company struct {
	ID        uint       `gorm:"primaryKey"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"` // Soft delete

	Name string `gorm:"column:name;type:varchar(50);not null"`
}

func (Company) TableName() string {
	return "registry.companies"
}

// IsActive reports whether the company is live (not tombstoned). Appointments
// referencing a tombstoned company remain valid history; only new references
// are refused.
func (c *Company) IsActive() bool {
	return c.DeletedAt == nil
}

type CreateCompanyCommand struct {
	Name string
}

type UpdateCompanyCommand struct {
	Name string
}
