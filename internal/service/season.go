package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/repository"
)

type seasonService struct {
	seasonRepo repository.SeasonRepository
}

func NewSeasonService(seasonRepo repository.SeasonRepository) SeasonService {
	return &seasonService{seasonRepo: seasonRepo}
}

func (s *seasonService) Create(ctx context.Context, op Identity, season *domain.Season) error {
	if op.Role != domain.RoleAdministrator {
		return Forbidden("only an administrator may configure seasons")
	}
	if err := validateSeason(season); err != nil {
		return err
	}
	season.ID = uuid.NewString()
	return s.seasonRepo.Create(ctx, season)
}

func (s *seasonService) Update(ctx context.Context, op Identity, season *domain.Season) error {
	if op.Role != domain.RoleAdministrator {
		return Forbidden("only an administrator may configure seasons")
	}
	if err := validateSeason(season); err != nil {
		return err
	}
	if err := s.seasonRepo.Update(ctx, season); err != nil {
		if err == repository.ErrNotFound {
			return NotFound("season not found")
		}
		return err
	}
	return nil
}

func (s *seasonService) List(ctx context.Context) ([]domain.Season, error) {
	return s.seasonRepo.List(ctx)
}

func validateSeason(season *domain.Season) error {
	if strings.TrimSpace(season.Name) == "" {
		return BadRequest("season name is required")
	}
	if season.Kind != domain.SeasonStandard && season.Kind != domain.SeasonHigh {
		return BadRequest("unknown season kind %q", season.Kind)
	}
	if season.EndDate.Before(season.StartDate) {
		return BadRequest("end date must not precede start date")
	}
	return nil
}
