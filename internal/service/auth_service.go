package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/visitflow/visitflow/internal/domain"
	"github.com/visitflow/visitflow/pkg/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is temporarily locked due to multiple failed login attempts")
	ErrAccountInactive    = errors.New("account is inactive")
)

type AdminRepository interface {
	Create(ctx context.Context, a *domain.Admin) error
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
	UpdateLoginAttempt(ctx context.Context, id uuid.UUID, success bool) error
}

type AuthService struct {
	adminRepo  AdminRepository
	jwtManager *auth.JWTManager
	auditSvc   *AuditService
	log        *zap.Logger
}

func NewAuthService(adminRepo AdminRepository, jwtManager *auth.JWTManager, auditSvc *AuditService, log *zap.Logger) *AuthService {
	return &AuthService{adminRepo: adminRepo, jwtManager: jwtManager, auditSvc: auditSvc, log: log}
}

func (s *AuthService) Login(ctx context.Context, email, password, ip string) (*domain.TokenPair, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		// Burn a bcrypt hash so response timing does not reveal whether the
		// email exists.
		_, _ = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		return nil, ErrInvalidCredentials
	}

	if !admin.IsActive {
		return nil, ErrAccountInactive
	}

	if admin.IsLocked() {
		return nil, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		_ = s.adminRepo.UpdateLoginAttempt(ctx, admin.ID, false)
		s.log.Warn("failed login attempt",
			zap.String("email", email),
			zap.String("ip", ip),
		)
		return nil, ErrInvalidCredentials
	}

	_ = s.adminRepo.UpdateLoginAttempt(ctx, admin.ID, true)

	pair, err := s.jwtManager.GenerateTokenPair(&domain.Claims{
		AdminID: admin.ID,
		Email:   admin.Email,
		Role:    admin.Role,
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		AdminID:      admin.ID,
		AdminRole:    string(admin.Role),
		Action:       "login",
		ResourceType: "admin",
		ResourceID:   admin.ID.String(),
		IPAddress:    ip,
	})

	return pair, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair. The admin
// record is re-checked so a deactivated or locked account cannot keep
// refreshing its way past revocation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.adminRepo.GetByID(ctx, claims.AdminID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, ErrAccountInactive
	}
	if admin.IsLocked() {
		return nil, ErrAccountLocked
	}

	return s.jwtManager.GenerateTokenPair(&domain.Claims{
		AdminID: admin.ID,
		Email:   admin.Email,
		Role:    admin.Role,
	})
}
