package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/work-nest/backoffice/internal/auth"
	"github.com/work-nest/backoffice/internal/config"
	"github.com/work-nest/backoffice/internal/domain"
	"github.com/work-nest/backoffice/internal/events"
	"github.com/work-nest/backoffice/internal/repository"
	apperrors "github.com/work-nest/backoffice/pkg/util/errorutil"
)

// inviteTxTimeout bounds the lookup-or-create transaction.
const inviteTxTimeout = 10 * time.Second

// InvitationService provisions accounts through invitation tokens.
type InvitationService struct {
	accounts    repository.AccountRepository
	departments repository.DepartmentRepository
	tx          repository.TxRunner
	tokenMgr    *auth.TokenManager
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	bcryptCost  int
}

// InvitationDependencies bundles requirements for the invitation service.
type InvitationDependencies struct {
	AccountRepo    repository.AccountRepository
	DepartmentRepo repository.DepartmentRepository
	Tx             repository.TxRunner
	TokenManager   *auth.TokenManager
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewInvitationService builds the service.
func NewInvitationService(cfg config.AuthConfig, deps InvitationDependencies) *InvitationService {
	return &InvitationService{
		accounts:    deps.AccountRepo,
		departments: deps.DepartmentRepo,
		tx:          deps.Tx,
		tokenMgr:    deps.TokenManager,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
		bcryptCost:  cfg.BcryptCost,
	}
}

// InviteInput describes an invitation request.
type InviteInput struct {
	Email        string
	FirstName    string
	LastName     string
	Role         domain.AccountRole
	DepartmentID *string
}

// AcceptInput describes an invitation acceptance.
type AcceptInput struct {
	Token             string
	Password          string
	FirstName         *string
	LastName          *string
	ProfilePictureURL *string
}

// InviteUser provisions a PENDING account for the email, or reuses the
// existing account untouched: re-inviting only regenerates the token and
// email. Creation and token issuance share one transaction so a created
// account always has a usable path to activation.
func (s *InvitationService) InviteUser(ctx context.Context, input InviteInput) (*domain.Account, string, error) {
	if input.DepartmentID != nil {
		if _, err := s.departments.GetByID(ctx, *input.DepartmentID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, "", apperrors.NewBadRequest("Department not found")
			}
			return nil, "", err
		}
	}

	var account *domain.Account
	var token string

	inviteTx := func(ctx context.Context) error {
		existing, err := s.accounts.GetByEmail(ctx, input.Email)
		switch {
		case err == nil:
			account = existing
		case errors.Is(err, pgx.ErrNoRows):
			account = &domain.Account{
				Email:        input.Email,
				FirstName:    input.FirstName,
				LastName:     input.LastName,
				Role:         input.Role,
				Status:       domain.AccountStatusPending,
				DepartmentID: input.DepartmentID,
			}
			if err := s.accounts.Create(ctx, account); err != nil {
				return err
			}
		default:
			return err
		}

		signed, _, err := s.tokenMgr.GenerateInvitationToken(account.ID, account.Email, account.Role)
		if err != nil {
			return err
		}
		token = signed
		return nil
	}

	err := s.tx.WithinTx(ctx, inviteTxTimeout, inviteTx)
	if apperrors.IsUniqueViolation(err) {
		// Lost a race with a concurrent invite for the same email. The
		// retry runs in a fresh transaction and reuses the winner's row.
		err = s.tx.WithinTx(ctx, inviteTxTimeout, inviteTx)
	}
	if err != nil {
		return nil, "", err
	}

	publishAsync(s.dispatcher, events.Event{
		Type: events.EventUserInvited,
		Payload: events.UserInvitedPayload{
			AccountID: account.ID,
			Email:     account.Email,
			FirstName: account.FirstName,
			LastName:  account.LastName,
			Role:      account.Role,
			Token:     token,
		},
	})
	return account, token, nil
}

// AcceptInvitation activates a pending account. The signed token remains
// replayable within its validity window, so the stored ACTIVE status is the
// single-use check; expiry alone is not relied on.
func (s *InvitationService) AcceptInvitation(ctx context.Context, input AcceptInput) (string, time.Time, error) {
	claims, err := s.tokenMgr.ParseToken(input.Token)
	if err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("Invalid or expired invitation token")
	}

	var sessionToken string
	var expiresAt time.Time
	var activated *domain.Account

	err = s.tx.WithinTx(ctx, inviteTxTimeout, func(ctx context.Context) error {
		account, err := s.accounts.GetByID(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewUnauthorized("Invalid or expired invitation token")
			}
			return err
		}
		if account.Status == domain.AccountStatusActive {
			return apperrors.NewUnauthorized("Invitation already accepted")
		}

		hashed, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return err
		}
		activated, err = s.accounts.Activate(ctx, account.ID, hashed, input.FirstName, input.LastName, input.ProfilePictureURL)
		if err != nil {
			return err
		}

		sessionToken, expiresAt, err = s.tokenMgr.GenerateSessionToken(activated.ID, activated.Email, activated.Role)
		return err
	})
	if err != nil {
		return "", time.Time{}, err
	}

	// Published only after the transaction commits; a rolled-back
	// activation must not announce itself.
	publishAsync(s.dispatcher, events.Event{
		Type: events.EventInvitationAccepted,
		Payload: events.InvitationAcceptedPayload{
			AccountID: activated.ID,
			Email:     activated.Email,
		},
	})
	return sessionToken, expiresAt, nil
}
