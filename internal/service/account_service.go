package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/work-nest/backoffice/internal/domain"
	"github.com/work-nest/backoffice/internal/repository"
	apperrors "github.com/work-nest/backoffice/pkg/util/errorutil"
)

// AccountService exposes profile self-service operations.
type AccountService struct {
	accounts repository.AccountRepository
}

// NewAccountService builds the service.
func NewAccountService(accounts repository.AccountRepository) *AccountService {
	return &AccountService{accounts: accounts}
}

// GetProfile returns the caller's account.
func (s *AccountService) GetProfile(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("account", map[string]any{"id": accountID})
		}
		return nil, err
	}
	return account, nil
}

// UpdateProfilePicture sets the caller's profile picture URL.
func (s *AccountService) UpdateProfilePicture(ctx context.Context, accountID, url string) error {
	if err := s.accounts.UpdateProfilePicture(ctx, accountID, url); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("account", map[string]any{"id": accountID})
		}
		return err
	}
	return nil
}
