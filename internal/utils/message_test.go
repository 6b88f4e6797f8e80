package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComposeConfirmation(t *testing.T) {
	pickup := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, 6, 18, 0, 0, 0, 0, time.UTC)

	t.Run("Reservation template", func(t *testing.T) {
		msg := ComposeConfirmation(ConfirmationParams{
			ClientName:   "María",
			CostumeName:  "Diablada",
			Size:         "M",
			PickupDate:   pickup,
			DueDate:      due,
			TotalCents:   15000,
			PaidCents:    4500,
			BalanceCents: 10500,
			Reservation:  true,
		})

		assert.Contains(t, msg, "Reserva confirmada")
		assert.Contains(t, msg, "Diablada (Talla M)")
		assert.Contains(t, msg, "2024-06-15")
		assert.Contains(t, msg, "Total: S/ 150.00")
		assert.Contains(t, msg, "Adelanto pagado: S/ 45.00")
		assert.Contains(t, msg, "Saldo al recoger: S/ 105.00")
	})

	t.Run("Walk-in template", func(t *testing.T) {
		msg := ComposeConfirmation(ConfirmationParams{
			ClientName:  "María",
			CostumeName: "Diablada",
			Size:        "M",
			PickupDate:  pickup,
			DueDate:     due,
			TotalCents:  15000,
			PaidCents:   15000,
		})

		assert.Contains(t, msg, "Alquiler confirmado")
		assert.Contains(t, msg, "Total pagado: S/ 150.00")
		assert.NotContains(t, msg, "Saldo")
	})
}

func TestComposeReminder(t *testing.T) {
	due := time.Date(2024, 6, 18, 0, 0, 0, 0, time.UTC)

	assert.Contains(t, ComposeReminder("Ana", "Morenada", due, -1), "mañana")
	assert.Contains(t, ComposeReminder("Ana", "Morenada", due, 0), "hoy vence")
	assert.Contains(t, ComposeReminder("Ana", "Morenada", due, 1), "venció")
	assert.Contains(t, ComposeReminder("Ana", "Morenada", due, 5), "5 días de retraso")
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "150.00", FormatCents(15000))
	assert.Equal(t, "45.50", FormatCents(4550))
	assert.Equal(t, "0.00", FormatCents(0))
}
