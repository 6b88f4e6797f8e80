package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/repository"
)

// CatalogCache is a read-through cache for costume detail lookups. The
// catalog is read on every registration but edited rarely, so hits are
// cheap and invalidation only happens on writes.
type CatalogCache interface {
	GetCostume(ctx context.Context, id string) (*domain.Costume, []domain.CostumePiece, bool)
	SetCostume(ctx context.Context, c *domain.Costume, pieces []domain.CostumePiece)
	Invalidate(ctx context.Context, id string)
}

type costumeService struct {
	costumeRepo repository.CostumeRepository
	cache       CatalogCache
}

// NewCostumeService builds the catalog service. cache may be nil, in
// which case every read goes to the database.
func NewCostumeService(costumeRepo repository.CostumeRepository, cache CatalogCache) CostumeService {
	return &costumeService{costumeRepo: costumeRepo, cache: cache}
}

func (s *costumeService) Create(ctx context.Context, op Identity, c *domain.Costume, pieces []domain.CostumePiece) error {
	// Catalog entries and removals are an administrator's call;
	// operators only edit details of existing costumes.
	if op.Role != domain.RoleAdministrator {
		return Forbidden("only an administrator may register costumes")
	}
	if err := validateCostume(c); err != nil {
		return err
	}

	c.ID = uuid.NewString()
	c.StockAvailable = c.StockTotal
	c.StockRented = 0
	c.StockLaundry = 0
	c.Active = true
	for i := range pieces {
		pieces[i].ID = uuid.NewString()
		pieces[i].CostumeID = c.ID
		pieces[i].Position = int32(i)
		if strings.TrimSpace(pieces[i].Name) == "" {
			return BadRequest("every costume piece needs a name")
		}
	}
	return s.costumeRepo.Create(ctx, c, pieces)
}

func (s *costumeService) Get(ctx context.Context, id string) (*domain.Costume, []domain.CostumePiece, error) {
	if s.cache != nil {
		if c, pieces, ok := s.cache.GetCostume(ctx, id); ok {
			return c, pieces, nil
		}
	}

	c, err := s.costumeRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, nil, NotFound("costume not found")
		}
		return nil, nil, err
	}
	pieces, err := s.costumeRepo.GetPieces(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if s.cache != nil {
		s.cache.SetCostume(ctx, c, pieces)
	}
	return c, pieces, nil
}

func (s *costumeService) Update(ctx context.Context, op Identity, c *domain.Costume) error {
	if !op.Role.CanWrite() {
		return Forbidden("role may not modify costumes")
	}
	if err := validateCostume(c); err != nil {
		return err
	}

	existing, err := s.costumeRepo.GetByID(ctx, c.ID)
	if err != nil {
		if err == repository.ErrNotFound {
			return NotFound("costume not found")
		}
		return err
	}

	// Stock counters move only through rentals, returns and laundry.
	c.StockAvailable = existing.StockAvailable
	c.StockRented = existing.StockRented
	c.StockLaundry = existing.StockLaundry

	if err := s.costumeRepo.Update(ctx, c); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, c.ID)
	}
	return nil
}

func (s *costumeService) Deactivate(ctx context.Context, op Identity, id string) error {
	if op.Role != domain.RoleAdministrator {
		return Forbidden("only an administrator may deactivate a costume")
	}
	if err := s.costumeRepo.Deactivate(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return NotFound("costume not found")
		}
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return nil
}

func (s *costumeService) List(ctx context.Context, activeOnly bool, page, pageSize int32) ([]domain.Costume, int32, error) {
	return s.costumeRepo.List(ctx, activeOnly, page, pageSize)
}

func validateCostume(c *domain.Costume) error {
	if strings.TrimSpace(c.Name) == "" {
		return BadRequest("costume name is required")
	}
	if c.BasePriceCents <= 0 {
		return BadRequest("base price must be positive")
	}
	if c.HighSeasonPriceCents < 0 {
		return BadRequest("high season price must not be negative")
	}
	if c.StockTotal < 0 {
		return BadRequest("stock must not be negative")
	}
	return nil
}
