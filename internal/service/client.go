package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/repository"
	"sisdisfraz-backend/internal/utils"
)

type clientService struct {
	clientRepo repository.ClientRepository
	auditRepo  repository.AuditRepository
}

func NewClientService(clientRepo repository.ClientRepository, auditRepo repository.AuditRepository) ClientService {
	return &clientService{clientRepo: clientRepo, auditRepo: auditRepo}
}

func (s *clientService) Create(ctx context.Context, op Identity, c *domain.Client) error {
	if !op.Role.CanWrite() {
		return Forbidden("role may not register clients")
	}
	if err := validateClient(c); err != nil {
		return err
	}

	c.ID = uuid.NewString()
	c.Name = strings.TrimSpace(c.Name)
	if err := s.clientRepo.Create(ctx, c); err != nil {
		if err == repository.ErrDuplicate {
			return Conflict("a client with that DNI already exists", "look the client up by DNI")
		}
		return err
	}
	return nil
}

func (s *clientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	c, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, NotFound("client not found")
		}
		return nil, err
	}
	return c, nil
}

func (s *clientService) FindByNationalID(ctx context.Context, nationalID string) (*domain.Client, error) {
	if !utils.ValidNationalID(nationalID) {
		return nil, BadRequest("national_id must be exactly 8 digits")
	}
	c, err := s.clientRepo.GetByNationalID(ctx, nationalID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, NotFound("client not found")
		}
		return nil, err
	}
	return c, nil
}

func (s *clientService) Update(ctx context.Context, op Identity, c *domain.Client) error {
	if !op.Role.CanWrite() {
		return Forbidden("role may not modify clients")
	}
	if err := validateClient(c); err != nil {
		return err
	}

	existing, err := s.clientRepo.GetByID(ctx, c.ID)
	if err != nil {
		if err == repository.ErrNotFound {
			return NotFound("client not found")
		}
		return err
	}

	// Lifetime aggregates belong to the recorders, never to an edit.
	c.TotalRentals = existing.TotalRentals
	c.TotalSpentCents = existing.TotalSpentCents
	return s.clientRepo.Update(ctx, c)
}

func (s *clientService) List(ctx context.Context, query string, page, pageSize int32) ([]domain.Client, int32, error) {
	return s.clientRepo.List(ctx, strings.TrimSpace(query), page, pageSize)
}

func validateClient(c *domain.Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return BadRequest("client name is required")
	}
	if !utils.ValidNationalID(c.NationalID) {
		return BadRequest("national_id must be exactly 8 digits")
	}
	if !utils.ValidPhone(c.Phone) {
		return BadRequest("phone must match +51XXXXXXXXX")
	}
	return nil
}
