package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/work-nest/backoffice/internal/domain"
	"github.com/work-nest/backoffice/internal/events"
	"github.com/work-nest/backoffice/internal/repository"
)

// The fakes below mirror the SQL semantics of the Postgres repositories
// closely enough for service-level tests: copy-on-read, copy-on-write,
// pgx.ErrNoRows on missing rows, and status/soft-delete filtering.

type snapshotter interface {
	snapshot() any
	restore(any)
}

// fakeTxRunner snapshots every participating store before fn and restores
// them when fn fails, matching a rolled-back transaction.
type fakeTxRunner struct {
	stores []snapshotter
	began  int
}

func (f *fakeTxRunner) WithinTx(ctx context.Context, _ time.Duration, fn func(ctx context.Context) error) error {
	f.began++
	snaps := make([]any, len(f.stores))
	for i, s := range f.stores {
		snaps[i] = s.snapshot()
	}
	if err := fn(ctx); err != nil {
		for i, s := range f.stores {
			s.restore(snaps[i])
		}
		return err
	}
	return nil
}

var _ repository.TxRunner = (*fakeTxRunner)(nil)

// captureDispatcher records published events. publishAsync dispatches from a
// goroutine, so readers go through wait helpers.
type captureDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *captureDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *captureDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.events)
}

func (d *captureDispatcher) waitFor(eventType events.EventType) (events.Event, bool) {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		d.mu.Lock()
		for _, e := range d.events {
			if e.Type == eventType {
				d.mu.Unlock()
				return e, true
			}
		}
		d.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	return events.Event{}, false
}

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	failOn   map[string]error
	onCreate func(*domain.Account) error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*domain.Account{}, failOn: map[string]error{}}
}

var _ repository.AccountRepository = (*fakeAccountRepo)(nil)

func (r *fakeAccountRepo) snapshot() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]*domain.Account, len(r.accounts))
	for id, a := range r.accounts {
		c := *a
		snap[id] = &c
	}
	return snap
}

func (r *fakeAccountRepo) restore(snap any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = snap.(map[string]*domain.Account)
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	// Runs before the lock so a hook may seed rows, e.g. to stage a
	// concurrent writer winning the unique index.
	if r.onCreate != nil {
		if err := r.onCreate(account); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failOn["Create"]; err != nil {
		return err
	}
	account.ID = uuid.NewString()
	account.Email = strings.ToLower(account.Email)
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	stored := *account
	r.accounts[account.ID] = &stored
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	c := *account
	return &c, nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failOn["GetByEmail"]; err != nil {
		return nil, err
	}
	for _, account := range r.accounts {
		if account.Email == strings.ToLower(email) {
			c := *account
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) SetResetToken(_ context.Context, id, tokenHash string, expires time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	exp := expires
	account.ResetPasswordToken = &tokenHash
	account.ResetPasswordExpires = &exp
	return nil
}

func (r *fakeAccountRepo) FindByResetToken(_ context.Context, tokenHash string, now time.Time) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.ResetPasswordToken != nil && *account.ResetPasswordToken == tokenHash &&
			account.ResetPasswordExpires != nil && account.ResetPasswordExpires.After(now) {
			c := *account
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) CompleteReset(_ context.Context, id, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.HashedPassword = &hashedPassword
	account.ResetPasswordToken = nil
	account.ResetPasswordExpires = nil
	return nil
}

func (r *fakeAccountRepo) Activate(_ context.Context, id, hashedPassword string, firstName, lastName, profilePictureURL *string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failOn["Activate"]; err != nil {
		return nil, err
	}
	account, ok := r.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	account.HashedPassword = &hashedPassword
	account.Status = domain.AccountStatusActive
	if firstName != nil {
		account.FirstName = *firstName
	}
	if lastName != nil {
		account.LastName = *lastName
	}
	if profilePictureURL != nil {
		account.ProfilePictureURL = profilePictureURL
	}
	c := *account
	return &c, nil
}

func (r *fakeAccountRepo) UpdatePasswordHash(_ context.Context, id, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.HashedPassword = &hashedPassword
	return nil
}

func (r *fakeAccountRepo) UpdateProfilePicture(_ context.Context, id, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.ProfilePictureURL = &url
	return nil
}

func (r *fakeAccountRepo) CountActiveByDepartment(_ context.Context, departmentID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, account := range r.accounts {
		if account.DepartmentID != nil && *account.DepartmentID == departmentID && account.Status == domain.AccountStatusActive {
			count++
		}
	}
	return count, nil
}

func (r *fakeAccountRepo) ReassignDepartment(_ context.Context, fromDepartmentID, toDepartmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failOn["ReassignDepartment"]; err != nil {
		return err
	}
	for _, account := range r.accounts {
		if account.DepartmentID != nil && *account.DepartmentID == fromDepartmentID && account.Status == domain.AccountStatusActive {
			to := toDepartmentID
			account.DepartmentID = &to
		}
	}
	return nil
}

func (r *fakeAccountRepo) DeactivateByDepartment(_ context.Context, departmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.DepartmentID != nil && *account.DepartmentID == departmentID && account.Status == domain.AccountStatusActive {
			account.Status = domain.AccountStatusInactive
		}
	}
	return nil
}

func (r *fakeAccountRepo) ListActive(_ context.Context, departmentID *string) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Account
	for _, account := range r.accounts {
		if account.Status != domain.AccountStatusActive {
			continue
		}
		if departmentID != nil && (account.DepartmentID == nil || *account.DepartmentID != *departmentID) {
			continue
		}
		result = append(result, *account)
	}
	return result, nil
}

// seed inserts an account directly, bypassing Create side effects.
func (r *fakeAccountRepo) seed(account domain.Account) domain.Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	account.Email = strings.ToLower(account.Email)
	stored := account
	r.accounts[account.ID] = &stored
	return account
}

type fakeDepartmentRepo struct {
	mu          sync.Mutex
	departments map[string]*domain.Department
	failOn      map[string]error
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{departments: map[string]*domain.Department{}, failOn: map[string]error{}}
}

var _ repository.DepartmentRepository = (*fakeDepartmentRepo)(nil)

func (r *fakeDepartmentRepo) snapshot() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]*domain.Department, len(r.departments))
	for id, d := range r.departments {
		c := *d
		snap[id] = &c
	}
	return snap
}

func (r *fakeDepartmentRepo) restore(snap any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.departments = snap.(map[string]*domain.Department)
}

func (r *fakeDepartmentRepo) Create(_ context.Context, dept *domain.Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	dept.ID = uuid.NewString()
	dept.CreatedAt = time.Now()
	dept.UpdatedAt = dept.CreatedAt
	stored := *dept
	r.departments[dept.ID] = &stored
	return nil
}

func (r *fakeDepartmentRepo) GetByID(_ context.Context, id string) (*domain.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dept, ok := r.departments[id]
	if !ok || dept.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	c := *dept
	return &c, nil
}

func (r *fakeDepartmentRepo) FindActiveByName(_ context.Context, name string) (*domain.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dept := range r.departments {
		if !dept.IsDeleted && strings.EqualFold(dept.Name, name) {
			c := *dept
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeDepartmentRepo) List(_ context.Context) ([]domain.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Department
	for _, dept := range r.departments {
		if !dept.IsDeleted {
			result = append(result, *dept)
		}
	}
	return result, nil
}

func (r *fakeDepartmentRepo) SearchByName(_ context.Context, query string) ([]domain.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Department
	for _, dept := range r.departments {
		if !dept.IsDeleted && strings.Contains(strings.ToLower(dept.Name), strings.ToLower(query)) {
			result = append(result, *dept)
		}
	}
	return result, nil
}

func (r *fakeDepartmentRepo) UpdateName(_ context.Context, id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	dept, ok := r.departments[id]
	if !ok || dept.IsDeleted {
		return pgx.ErrNoRows
	}
	dept.Name = name
	return nil
}

func (r *fakeDepartmentRepo) SetHOD(_ context.Context, id string, userID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	dept, ok := r.departments[id]
	if !ok || dept.IsDeleted {
		return pgx.ErrNoRows
	}
	dept.HodID = userID
	return nil
}

func (r *fakeDepartmentRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failOn["SoftDelete"]; err != nil {
		return err
	}
	dept, ok := r.departments[id]
	if !ok || dept.IsDeleted {
		return pgx.ErrNoRows
	}
	now := time.Now()
	dept.IsDeleted = true
	dept.DeletedAt = &now
	return nil
}

func (r *fakeDepartmentRepo) seed(dept domain.Department) domain.Department {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dept.ID == "" {
		dept.ID = uuid.NewString()
	}
	stored := dept
	r.departments[dept.ID] = &stored
	return dept
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*domain.Booking{}}
}

var _ repository.BookingRepository = (*fakeBookingRepo)(nil)

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.ID = uuid.NewString()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	stored := *booking
	r.bookings[booking.ID] = &stored
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.bookings[booking.ID]
	if !ok || existing.IsDeleted {
		return pgx.ErrNoRows
	}
	stored := *booking
	r.bookings[booking.ID] = &stored
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok || booking.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	c := *booking
	return &c, nil
}

func (r *fakeBookingRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok || booking.IsDeleted {
		return pgx.ErrNoRows
	}
	booking.IsDeleted = true
	return nil
}

func (r *fakeBookingRepo) ExistsAtStart(_ context.Context, assignedUserID string, start time.Time, excludeID *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, booking := range r.bookings {
		if booking.IsDeleted || booking.AssignedUserID != assignedUserID {
			continue
		}
		if excludeID != nil && booking.ID == *excludeID {
			continue
		}
		if booking.StartTime.Equal(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) ExistsOverlapping(_ context.Context, assignedUserID string, start, end time.Time, excludeID *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, booking := range r.bookings {
		if booking.IsDeleted || booking.AssignedUserID != assignedUserID {
			continue
		}
		if excludeID != nil && booking.ID == *excludeID {
			continue
		}
		if booking.StartTime.Before(end) && booking.EndTime.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) List(_ context.Context, filter repository.BookingFilter) ([]domain.Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []domain.Booking
	for _, booking := range r.bookings {
		if booking.IsDeleted {
			continue
		}
		if filter.Status != nil && booking.Status != *filter.Status {
			continue
		}
		if filter.Search != nil && !strings.Contains(strings.ToLower(booking.Title), strings.ToLower(*filter.Search)) {
			continue
		}
		if filter.StartFrom != nil && booking.StartTime.Before(*filter.StartFrom) {
			continue
		}
		if filter.StartTo != nil && booking.StartTime.After(*filter.StartTo) {
			continue
		}
		matched = append(matched, *booking)
	}
	total := len(matched)
	if filter.Offset >= total {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

type fakeClientRepo struct {
	mu      sync.Mutex
	clients map[string]*domain.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[string]*domain.Client{}}
}

var _ repository.ClientRepository = (*fakeClientRepo)(nil)

func (r *fakeClientRepo) Create(_ context.Context, client *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	client.ID = uuid.NewString()
	client.CreatedAt = time.Now()
	client.UpdatedAt = client.CreatedAt
	stored := *client
	r.clients[client.ID] = &stored
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	client, ok := r.clients[id]
	if !ok || client.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	c := *client
	return &c, nil
}

func (r *fakeClientRepo) List(_ context.Context, search *string, limit, offset int) ([]domain.Client, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []domain.Client
	for _, client := range r.clients {
		if client.IsDeleted {
			continue
		}
		if search != nil && !strings.Contains(strings.ToLower(client.Name), strings.ToLower(*search)) {
			continue
		}
		matched = append(matched, *client)
	}
	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (r *fakeClientRepo) seed(client domain.Client) domain.Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	stored := client
	r.clients[client.ID] = &stored
	return client
}

func strPtr(s string) *string { return &s }
