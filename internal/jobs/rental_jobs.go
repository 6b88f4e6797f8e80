package jobs

import (
	"context"

	"github.com/google/uuid"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/logger"
)

// MarkOverdueRentals stamps active rentals past their due date as
// overdue and leaves an audit trace for each. A rental a client is
// already returning is untouched: the update only matches 'active'.
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()

		ids, err := jr.store.RentalRepository.MarkOverdue(ctx, jr.today())
		if err != nil {
			logger.Error("Failed to mark overdue rentals", "error", err)
			return
		}

		for _, id := range ids {
			entry := &domain.AuditEntry{
				ID:       uuid.NewString(),
				Action:   domain.AuditActionRentalMarkedLate,
				Entity:   "rentals",
				RecordID: id,
				Before:   map[string]any{"status": string(domain.RentalStatusActive)},
				After:    map[string]any{"status": string(domain.RentalStatusOverdue)},
			}
			if err := jr.store.AuditRepository.Create(ctx, entry); err != nil {
				logger.Error("Failed to audit overdue rental", "rental_id", id, "error", err)
			}
		}

		logger.Info("Marked rentals as overdue", "count", len(ids))
	})
}
