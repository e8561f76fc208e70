package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/work-nest/backoffice/internal/auth"
	"github.com/work-nest/backoffice/internal/domain"
	"github.com/work-nest/backoffice/internal/events"
	apperrors "github.com/work-nest/backoffice/pkg/util/errorutil"
)

type invitationFixture struct {
	accounts    *fakeAccountRepo
	departments *fakeDepartmentRepo
	dispatcher  *captureDispatcher
	tx          *fakeTxRunner
	svc         *InvitationService
	authSvc     *AuthService
}

func newInvitationFixture() *invitationFixture {
	accounts := newFakeAccountRepo()
	departments := newFakeDepartmentRepo()
	dispatcher := &captureDispatcher{}
	tx := &fakeTxRunner{stores: []snapshotter{accounts, departments}}

	authSvc := NewAuthService(testAuthConfig(), AuthDependencies{
		AccountRepo: accounts,
		Dispatcher:  dispatcher,
		Logger:      zap.NewNop(),
	})
	svc := NewInvitationService(testAuthConfig(), InvitationDependencies{
		AccountRepo:    accounts,
		DepartmentRepo: departments,
		Tx:             tx,
		TokenManager:   authSvc.TokenManager(),
		Dispatcher:     dispatcher,
		Logger:         zap.NewNop(),
	})
	return &invitationFixture{
		accounts:    accounts,
		departments: departments,
		dispatcher:  dispatcher,
		tx:          tx,
		svc:         svc,
		authSvc:     authSvc,
	}
}

func TestInviteUserCreatesPendingAccount(t *testing.T) {
	f := newInvitationFixture()

	account, token, err := f.svc.InviteUser(context.Background(), InviteInput{
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Nguyen",
		Role:      domain.RoleStaff,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, domain.AccountStatusPending, account.Status)
	assert.Nil(t, account.HashedPassword)
	assert.Equal(t, "alice@example.com", account.Email)

	claims, err := f.authSvc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.Subject)

	event, ok := f.dispatcher.waitFor(events.EventUserInvited)
	require.True(t, ok, "expected an invitation event")
	payload := event.Payload.(events.UserInvitedPayload)
	assert.Equal(t, account.ID, payload.AccountID)
	assert.Equal(t, token, payload.Token)
}

func TestInviteUserIsIdempotentPerEmail(t *testing.T) {
	f := newInvitationFixture()

	first, _, err := f.svc.InviteUser(context.Background(), InviteInput{
		Email: "alice@example.com", FirstName: "Alice", LastName: "Nguyen", Role: domain.RoleStaff,
	})
	require.NoError(t, err)

	// Re-inviting with different attributes reuses the account untouched;
	// only the token is regenerated.
	second, token, err := f.svc.InviteUser(context.Background(), InviteInput{
		Email: "Alice@Example.com", FirstName: "Someone", LastName: "Else", Role: domain.RoleAdmin,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Alice", second.FirstName)
	assert.Equal(t, domain.RoleStaff, second.Role)
}

func TestInviteUserRejectsUnknownDepartment(t *testing.T) {
	f := newInvitationFixture()

	_, _, err := f.svc.InviteUser(context.Background(), InviteInput{
		Email:        "alice@example.com",
		FirstName:    "Alice",
		LastName:     "Nguyen",
		Role:         domain.RoleStaff,
		DepartmentID: strPtr("no-such-department"),
	})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Department not found", domainErr.Message)
}

func TestInviteUserRollsBackWhenCreateFails(t *testing.T) {
	f := newInvitationFixture()
	f.accounts.failOn["Create"] = errors.New("insert failed")

	_, _, err := f.svc.InviteUser(context.Background(), InviteInput{
		Email: "alice@example.com", FirstName: "Alice", LastName: "Nguyen", Role: domain.RoleStaff,
	})
	require.Error(t, err)

	_, err = f.accounts.GetByEmail(context.Background(), "alice@example.com")
	assert.Error(t, err, "failed invite must not leave an account behind")
}

func TestInviteUserReusesWinnerAfterLosingCreateRace(t *testing.T) {
	f := newInvitationFixture()
	// The concurrent winner commits in its own transaction, so its row
	// sits outside this invite's rollback scope.
	f.tx.stores = []snapshotter{f.departments}

	var winner domain.Account
	raced := false
	f.accounts.onCreate = func(*domain.Account) error {
		if raced {
			return nil
		}
		raced = true
		winner = f.accounts.seed(domain.Account{
			Email:     "alice@example.com",
			FirstName: "Alice",
			LastName:  "Nguyen",
			Role:      domain.RoleStaff,
			Status:    domain.AccountStatusPending,
		})
		return &pgconn.PgError{Code: "23505", ConstraintName: "idx_accounts_email_lower"}
	}

	account, token, err := f.svc.InviteUser(context.Background(), InviteInput{
		Email: "alice@example.com", FirstName: "Alice", LastName: "Nguyen", Role: domain.RoleStaff,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, winner.ID, account.ID, "the loser reuses the winner's account")
	assert.Equal(t, 2, f.tx.began)
}

func TestAcceptInvitationEmitsNoEventWhenActivationFails(t *testing.T) {
	f := newInvitationFixture()

	invited, token, err := f.svc.InviteUser(context.Background(), InviteInput{
		Email: "alice@example.com", FirstName: "Alice", LastName: "Nguyen", Role: domain.RoleStaff,
	})
	require.NoError(t, err)
	_, ok := f.dispatcher.waitFor(events.EventUserInvited)
	require.True(t, ok)
	invitedEvents := f.dispatcher.count()

	f.accounts.failOn["Activate"] = errors.New("update failed")
	_, _, err = f.svc.AcceptInvitation(context.Background(), AcceptInput{
		Token:    token,
		Password: "Secret123!",
	})
	require.Error(t, err)

	stored, err := f.accounts.GetByID(context.Background(), invited.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusPending, stored.Status)

	// A rolled-back activation must not be announced.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, invitedEvents, f.dispatcher.count())
}

func TestAcceptInvitationActivatesAccount(t *testing.T) {
	f := newInvitationFixture()

	invited, token, err := f.svc.InviteUser(context.Background(), InviteInput{
		Email: "alice@example.com", FirstName: "Alice", LastName: "Nguyen", Role: domain.RoleStaff,
	})
	require.NoError(t, err)

	sessionToken, expiresAt, err := f.svc.AcceptInvitation(context.Background(), AcceptInput{
		Token:    token,
		Password: "Secret123!",
	})
	require.NoError(t, err)
	require.NotEmpty(t, sessionToken)
	assert.True(t, expiresAt.After(time.Now()))

	stored, err := f.accounts.GetByID(context.Background(), invited.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusActive, stored.Status)
	require.NotNil(t, stored.HashedPassword)
	assert.NoError(t, auth.ComparePassword(*stored.HashedPassword, "Secret123!"))

	_, ok := f.dispatcher.waitFor(events.EventInvitationAccepted)
	assert.True(t, ok)
}

func TestAcceptInvitationAppliesOptionalProfileFields(t *testing.T) {
	f := newInvitationFixture()

	_, token, err := f.svc.InviteUser(context.Background(), InviteInput{
		Email: "alice@example.com", FirstName: "Alice", LastName: "Nguyen", Role: domain.RoleStaff,
	})
	require.NoError(t, err)

	_, _, err = f.svc.AcceptInvitation(context.Background(), AcceptInput{
		Token:     token,
		Password:  "Secret123!",
		FirstName: strPtr("Alicia"),
	})
	require.NoError(t, err)

	stored, err := f.accounts.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", stored.FirstName)
	assert.Equal(t, "Nguyen", stored.LastName, "absent fields keep their invited values")
}

func TestAcceptInvitationRejectsReplay(t *testing.T) {
	f := newInvitationFixture()

	_, token, err := f.svc.InviteUser(context.Background(), InviteInput{
		Email: "alice@example.com", FirstName: "Alice", LastName: "Nguyen", Role: domain.RoleStaff,
	})
	require.NoError(t, err)

	_, _, err = f.svc.AcceptInvitation(context.Background(), AcceptInput{Token: token, Password: "Secret123!"})
	require.NoError(t, err)

	// The token is still within its signed validity window; the stored
	// ACTIVE status is what blocks the replay.
	_, _, err = f.svc.AcceptInvitation(context.Background(), AcceptInput{Token: token, Password: "Another123!"})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Invitation already accepted", domainErr.Message)
}

func TestAcceptInvitationRejectsBadToken(t *testing.T) {
	f := newInvitationFixture()

	_, _, err := f.svc.AcceptInvitation(context.Background(), AcceptInput{Token: "garbage", Password: "Secret123!"})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Invalid or expired invitation token", domainErr.Message)
}

func TestInviteAcceptLoginFlow(t *testing.T) {
	f := newInvitationFixture()

	_, token, err := f.svc.InviteUser(context.Background(), InviteInput{
		Email: "alice@example.com", FirstName: "Alice", LastName: "Nguyen", Role: domain.RoleStaff,
	})
	require.NoError(t, err)

	// Cannot log in while the invitation is pending.
	_, _, _, err = f.authSvc.Login(context.Background(), "alice@example.com", "Secret123!")
	require.Error(t, err)

	_, _, err = f.svc.AcceptInvitation(context.Background(), AcceptInput{Token: token, Password: "Secret123!"})
	require.NoError(t, err)

	account, sessionToken, _, err := f.authSvc.Login(context.Background(), "alice@example.com", "Secret123!")
	require.NoError(t, err)
	assert.NotEmpty(t, sessionToken)
	assert.Equal(t, domain.AccountStatusActive, account.Status)
}
