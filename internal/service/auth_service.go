package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/work-nest/backoffice/internal/auth"
	"github.com/work-nest/backoffice/internal/config"
	"github.com/work-nest/backoffice/internal/domain"
	"github.com/work-nest/backoffice/internal/events"
	"github.com/work-nest/backoffice/internal/repository"
	apperrors "github.com/work-nest/backoffice/pkg/util/errorutil"
)

// ForgotPasswordMessage is returned whether or not the email exists, so the
// endpoint cannot be used to enumerate accounts.
const ForgotPasswordMessage = "If the email exists, a reset link has been sent."

const invalidCredentialsMessage = "Invalid credentials"

// AuthService coordinates login and the password-reset token lifecycle.
type AuthService struct {
	accounts   repository.AccountRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	redis      *redis.Client
	logger     *zap.Logger
	bcryptCost int
	resetTTL   time.Duration
	cooldown   time.Duration
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	AccountRepo repository.AccountRepository
	Dispatcher  events.Dispatcher
	Redis       *redis.Client
	Logger      *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts:   deps.AccountRepo,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL(), cfg.InvitationTTL()),
		dispatcher: deps.Dispatcher,
		redis:      deps.Redis,
		logger:     deps.Logger,
		bcryptCost: cfg.BcryptCost,
		resetTTL:   cfg.PasswordResetTTL(),
		cooldown:   cfg.ForgotPasswordCooldown,
	}
}

// Login authenticates an account by email and password.
//
// Unknown email, unactivated account, and wrong password all burn a bcrypt
// comparison and fail with the same message, so response latency does not
// reveal which case occurred.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			auth.BurnComparison(password)
			return nil, "", time.Time{}, apperrors.NewUnauthorized(invalidCredentialsMessage)
		}
		return nil, "", time.Time{}, err
	}
	if !account.CanAuthenticate() {
		auth.BurnComparison(password)
		return nil, "", time.Time{}, apperrors.NewUnauthorized(invalidCredentialsMessage)
	}

	if err := auth.ComparePassword(*account.HashedPassword, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized(invalidCredentialsMessage)
	}

	token, exp, err := s.tokenMgr.GenerateSessionToken(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, exp, nil
}

// ForgotPassword issues an opaque reset token when the account exists and
// dispatches the reset email. The response is identical either way.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if !s.allowResetRequest(ctx, email) {
		return ForgotPasswordMessage, nil
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ForgotPasswordMessage, nil
		}
		return "", err
	}

	raw, hash, err := auth.NewOpaqueToken()
	if err != nil {
		return "", err
	}
	if err := s.accounts.SetResetToken(ctx, account.ID, hash, time.Now().Add(s.resetTTL)); err != nil {
		return "", err
	}

	publishAsync(s.dispatcher, events.Event{
		Type: events.EventPasswordResetRequested,
		Payload: events.PasswordResetRequestedPayload{
			AccountID: account.ID,
			Email:     account.Email,
			FirstName: account.FirstName,
			Token:     raw,
		},
	})
	return ForgotPasswordMessage, nil
}

// ResetPassword consumes a raw reset token. The stored hash and expiry are
// cleared in the same update that sets the password, making the token
// single-use regardless of its remaining validity window.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) (string, error) {
	hash := auth.HashOpaqueToken(rawToken)

	account, err := s.accounts.FindByResetToken(ctx, hash, time.Now())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewBadRequest("Invalid or expired reset token")
		}
		return "", err
	}

	hashedPassword, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return "", err
	}
	if err := s.accounts.CompleteReset(ctx, account.ID, hashedPassword); err != nil {
		return "", err
	}
	return "Password reset successfully", nil
}

// ChangePassword verifies the current password before updating to the new one.
func (s *AuthService) ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) (string, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return "", err
	}
	if !account.CanAuthenticate() {
		return "", apperrors.NewBadRequest("Cannot change password for this account")
	}
	if err := auth.ComparePassword(*account.HashedPassword, oldPassword); err != nil {
		return "", apperrors.NewBadRequest("Old password is incorrect")
	}

	hashed, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return "", err
	}
	if err := s.accounts.UpdatePasswordHash(ctx, account.ID, hashed); err != nil {
		return "", err
	}
	return "Password updated successfully", nil
}

// TokenManager exposes the underlying token manager for middleware and the
// invitation service.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// allowResetRequest applies a best-effort per-email cooldown. Redis being
// down never blocks the request.
func (s *AuthService) allowResetRequest(ctx context.Context, email string) bool {
	if s.redis == nil || s.cooldown <= 0 {
		return true
	}
	ok, err := s.redis.SetNX(ctx, "pwreset:cooldown:"+email, 1, s.cooldown).Result()
	if err != nil {
		s.logger.Warn("reset cooldown check failed", zap.Error(err))
		return true
	}
	return ok
}
