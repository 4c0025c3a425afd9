package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/visitflow/visitflow/internal/domain/company"
	"github.com/visitflow/visitflow/pkg/normalize"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, c *company.Company) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("creating company: %w", err)
	}
	return nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uint) (*company.Company, error) {
	var c company.Company
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("fetching company %d: %w", id, err)
	}
	return &c, nil
}

// GetByName fold-compares in memory: company names are stored as entered, so
// accent- and case-insensitive matching cannot be expressed as a plain SQL
// equality.
func (r *CompanyRepository) GetByName(ctx context.Context, name string) (*company.Company, error) {
	companies, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	folded := normalize.Fold(name)
	for _, c := range companies {
		if normalize.Fold(c.Name) == folded {
			return c, nil
		}
	}
	return nil, company.ErrCompanyNotFound
}

func (r *CompanyRepository) List(ctx context.Context) ([]*company.Company, error) {
	var companies []*company.Company
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("name ASC").
		Find(&companies).Error
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	return companies, nil
}

func (r *CompanyRepository) Update(ctx context.Context, c *company.Company) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return fmt.Errorf("updating company %d: %w", c.ID, err)
	}
	return nil
}

func (r *CompanyRepository) SoftDelete(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&company.Company{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now)
	if res.Error != nil {
		return fmt.Errorf("deleting company %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepository) ExistsByName(ctx context.Context, name string, excludeID *uint) (bool, error) {
	companies, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	folded := normalize.Fold(name)
	for _, c := range companies {
		if excludeID != nil && c.ID == *excludeID {
			continue
		}
		if normalize.Fold(c.Name) == folded {
			return true, nil
		}
	}
	return false, nil
}

var _ company.Repository = (*CompanyRepository)(nil)
