package utils

import (
	"fmt"
	"time"
)

// ConfirmationParams carries everything the confirmation templates need.
// Amounts are in cents and rendered with two decimals.
type ConfirmationParams struct {
	ClientName   string
	CostumeName  string
	Size         string
	PickupDate   time.Time
	DueDate      time.Time
	TotalCents   int64
	PaidCents    int64
	BalanceCents int64
	Reservation  bool
}

// ComposeConfirmation renders the WhatsApp confirmation text for a new
// rental or reservation. Pure function: it only returns text, the
// recorder is responsible for enqueueing it.
func ComposeConfirmation(p ConfirmationParams) string {
	if p.Reservation {
		return fmt.Sprintf(
			"🎭 *¡Reserva confirmada! - SisDisfraz Perú*\n\n"+
				"Hola %s 👋\n\n"+
				"Tu reserva está asegurada:\n"+
				"• *Traje:* %s (Talla %s)\n"+
				"• *Fecha de recojo:* %s\n"+
				"• *Fecha de devolución:* %s\n\n"+
				"💰 *Detalle de pago:*\n"+
				"• Total: S/ %s\n"+
				"• Adelanto pagado: S/ %s\n"+
				"• Saldo al recoger: S/ %s\n\n"+
				"¡Te esperamos! 🎊",
			p.ClientName, p.CostumeName, p.Size,
			FormatDate(p.PickupDate), FormatDate(p.DueDate),
			FormatCents(p.TotalCents), FormatCents(p.PaidCents), FormatCents(p.BalanceCents),
		)
	}
	return fmt.Sprintf(
		"🎭 *¡Alquiler confirmado! - SisDisfraz Perú*\n\n"+
			"Hola %s 👋\n\n"+
			"Gracias por tu alquiler:\n"+
			"• *Traje:* %s (Talla %s)\n"+
			"• *Devolver antes del:* %s hasta las 7 PM\n\n"+
			"💰 *Total pagado:* S/ %s\n\n"+
			"Cuida bien el traje. ¡Que lo disfrutes! 🎉",
		p.ClientName, p.CostumeName, p.Size,
		FormatDate(p.DueDate), FormatCents(p.TotalCents),
	)
}

// ComposeReminder renders the tiered due-date reminders the nightly job
// enqueues.
func ComposeReminder(clientName, costumeName string, due time.Time, daysLate int) string {
	switch {
	case daysLate >= 3:
		return fmt.Sprintf(
			"🎭 *SisDisfraz Perú*\n\nHola %s, el traje *%s* tiene %d días de retraso. "+
				"Por favor acércate a la tienda hoy para evitar más recargos.",
			clientName, costumeName, daysLate)
	case daysLate >= 1:
		return fmt.Sprintf(
			"🎭 *SisDisfraz Perú*\n\nHola %s, la devolución del traje *%s* venció el %s. "+
				"Te esperamos en tienda para regularizarla.",
			clientName, costumeName, FormatDate(due))
	case daysLate == 0:
		return fmt.Sprintf(
			"🎭 *SisDisfraz Perú*\n\nHola %s, hoy vence la devolución del traje *%s*. "+
				"Te esperamos hasta las 7 PM. 🙌",
			clientName, costumeName)
	default:
		return fmt.Sprintf(
			"🎭 *SisDisfraz Perú*\n\nHola %s, te recordamos que el traje *%s* se devuelve mañana %s. 🙌",
			clientName, costumeName, FormatDate(due))
	}
}

// FormatCents renders a cent amount as soles with two decimals.
func FormatCents(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}
