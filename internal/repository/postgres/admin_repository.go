package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/visitflow/visitflow/internal/domain"
	"github.com/visitflow/visitflow/internal/service"
)

const maxFailedLogins = 5

const loginLockDuration = 15 * time.Minute

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, a *domain.Admin) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL AND email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("fetching admin by email: %w", err)
	}
	return &a, nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	var a domain.Admin
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL AND id = ?", id).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("fetching admin %s: %w", id, err)
	}
	return &a, nil
}

// UpdateLoginAttempt records a login outcome. A successful login resets the
// failure counter; repeated failures lock the account for a cooldown period.
func (r *AdminRepository) UpdateLoginAttempt(ctx context.Context, id uuid.UUID, success bool) error {
	db := r.db.WithContext(ctx)
	if success {
		now := time.Now().UTC()
		return db.Model(&domain.Admin{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"failed_login_count": 0,
				"locked_until":       nil,
				"last_login_at":      now,
			}).Error
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var a domain.Admin
		if err := tx.First(&a, "id = ?", id).Error; err != nil {
			return err
		}
		updates := map[string]any{"failed_login_count": a.FailedLoginCount + 1}
		if a.FailedLoginCount+1 >= maxFailedLogins {
			updates["locked_until"] = time.Now().UTC().Add(loginLockDuration)
		}
		return tx.Model(&domain.Admin{}).Where("id = ?", id).Updates(updates).Error
	})
}

var _ service.AdminRepository = (*AdminRepository)(nil)
