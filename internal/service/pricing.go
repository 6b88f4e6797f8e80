package service

import (
	"context"
	"time"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/repository"
)

type pricingService struct {
	seasonRepo repository.SeasonRepository
}

func NewPricingService(seasonRepo repository.SeasonRepository) PricingService {
	return &pricingService{seasonRepo: seasonRepo}
}

// ResolvePrice applies the high-season price when the pickup date falls
// inside any active high season (closed interval, boundaries included),
// and the base price otherwise. No caching: each call resolves against
// the season table as it stands.
func (s *pricingService) ResolvePrice(ctx context.Context, costume *domain.Costume, pickupDate time.Time) (int64, domain.SeasonKind, error) {
	season, err := s.seasonRepo.ActiveHighSeasonOn(ctx, pickupDate)
	if err != nil {
		return 0, "", err
	}
	if season != nil {
		return costume.HighSeasonPriceCents, domain.SeasonHigh, nil
	}
	return costume.BasePriceCents, domain.SeasonStandard, nil
}

// MinReservationDepositCents is the 30% floor for reservations, rounded
// up in integer cents so that exactly 30% passes and anything below
// fails.
func MinReservationDepositCents(priceCents int64) int64 {
	return (priceCents*30 + 99) / 100
}
