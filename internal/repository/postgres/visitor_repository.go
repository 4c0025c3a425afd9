package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/visitflow/visitflow/internal/domain/visitor"
	"github.com/visitflow/visitflow/pkg/normalize"
)

type VisitorRepository struct {
	db *gorm.DB
}

func NewVisitorRepository(db *gorm.DB) *VisitorRepository {
	return &VisitorRepository{db: db}
}

func (r *VisitorRepository) Create(ctx context.Context, v *visitor.Visitor) error {
	if err := r.db.WithContext(ctx).Omit("Company").Create(v).Error; err != nil {
		return fmt.Errorf("creating visitor: %w", err)
	}
	return nil
}

func (r *VisitorRepository) GetByID(ctx context.Context, id uint) (*visitor.Visitor, error) {
	return r.getByID(ctx, r.db, id)
}

// GetByIDForUpdate locks the visitor row for the duration of the surrounding
// transaction, serializing concurrent overlap checks on the same visitor.
func (r *VisitorRepository) GetByIDForUpdate(ctx context.Context, id uint) (*visitor.Visitor, error) {
	return r.getByID(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *VisitorRepository) getByID(ctx context.Context, db *gorm.DB, id uint) (*visitor.Visitor, error) {
	var v visitor.Visitor
	err := db.WithContext(ctx).
		Preload("Company").
		Where("deleted_at IS NULL").
		First(&v, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, visitor.ErrVisitorNotFound
		}
		return nil, fmt.Errorf("fetching visitor %d: %w", id, err)
	}
	return &v, nil
}

// GetByEmail matches on the folded email; visitor emails are stored folded,
// so equality in SQL suffices.
func (r *VisitorRepository) GetByEmail(ctx context.Context, email string) (*visitor.Visitor, error) {
	var v visitor.Visitor
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("deleted_at IS NULL AND email = ?", normalize.Fold(email)).
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, visitor.ErrVisitorNotFound
		}
		return nil, fmt.Errorf("fetching visitor by email: %w", err)
	}
	return &v, nil
}

func (r *VisitorRepository) List(ctx context.Context) ([]*visitor.Visitor, error) {
	var visitors []*visitor.Visitor
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("deleted_at IS NULL").
		Order("last_name ASC, first_name ASC").
		Find(&visitors).Error
	if err != nil {
		return nil, fmt.Errorf("listing visitors: %w", err)
	}
	return visitors, nil
}

func (r *VisitorRepository) Update(ctx context.Context, v *visitor.Visitor) error {
	if err := r.db.WithContext(ctx).Omit("Company").Save(v).Error; err != nil {
		return fmt.Errorf("updating visitor %d: %w", v.ID, err)
	}
	return nil
}

func (r *VisitorRepository) SoftDelete(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&visitor.Visitor{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now)
	if res.Error != nil {
		return fmt.Errorf("deleting visitor %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return visitor.ErrVisitorNotFound
	}
	return nil
}

func (r *VisitorRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uint) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&visitor.Visitor{}).
		Where("deleted_at IS NULL AND email = ?", normalize.Fold(email))
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking visitor email uniqueness: %w", err)
	}
	return count > 0, nil
}

var _ visitor.Repository = (*VisitorRepository)(nil)
