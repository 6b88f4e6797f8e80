package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/service"
)

func TestPricingService_ResolvePrice(t *testing.T) {
	ctx := context.Background()
	costume := &domain.Costume{BasePriceCents: 10000, HighSeasonPriceCents: 15000}

	t.Run("High season wins on a boundary date", func(t *testing.T) {
		seasonRepo := new(MockSeasonRepo)
		pricing := service.NewPricingService(seasonRepo)

		pickup := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		seasonRepo.On("ActiveHighSeasonOn", ctx, pickup).Return(&domain.Season{Kind: domain.SeasonHigh}, nil)

		price, kind, err := pricing.ResolvePrice(ctx, costume, pickup)
		assert.NoError(t, err)
		assert.Equal(t, int64(15000), price)
		assert.Equal(t, domain.SeasonHigh, kind)
	})

	t.Run("Base price outside any high season", func(t *testing.T) {
		seasonRepo := new(MockSeasonRepo)
		pricing := service.NewPricingService(seasonRepo)
		seasonRepo.On("ActiveHighSeasonOn", ctx, mock.AnythingOfType("time.Time")).Return(nil, nil)

		price, kind, err := pricing.ResolvePrice(ctx, costume, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC))
		assert.NoError(t, err)
		assert.Equal(t, int64(10000), price)
		assert.Equal(t, domain.SeasonStandard, kind)
	})
}

func TestMinReservationDepositCents(t *testing.T) {
	cases := []struct {
		price int64
		want  int64
	}{
		{15000, 4500},
		{10000, 3000},
		{9999, 3000},  // 2999.7 rounds up
		{1, 1},        // never zero for a priced costume
		{13333, 4000}, // 3999.9 rounds up
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, service.MinReservationDepositCents(tc.price), "price %d", tc.price)
	}
}
