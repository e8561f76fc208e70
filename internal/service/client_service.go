package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/work-nest/backoffice/internal/domain"
	"github.com/work-nest/backoffice/internal/repository"
	apperrors "github.com/work-nest/backoffice/pkg/util/errorutil"
)

// ClientService manages the client records bookings are scheduled for.
type ClientService struct {
	clients repository.ClientRepository
}

// NewClientService builds the service.
func NewClientService(clients repository.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

// Create adds a client record.
func (s *ClientService) Create(ctx context.Context, name, email, phone string) (*domain.Client, error) {
	client := &domain.Client{Name: name, Email: email, Phone: phone}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Get returns a non-deleted client by id.
func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("client", map[string]any{"id": id})
		}
		return nil, err
	}
	return client, nil
}

// List returns clients matching the optional search, paged.
func (s *ClientService) List(ctx context.Context, search *string, page, limit int) ([]domain.Client, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.clients.List(ctx, search, limit, (page-1)*limit)
}
