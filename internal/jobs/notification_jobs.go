package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/logger"
	"sisdisfraz-backend/internal/queue"
	"sisdisfraz-backend/internal/utils"
)

const dispatchBatchSize = 100

// EnqueueReminders queues one WhatsApp reminder per unreturned rental
// whose due date makes it eligible today. Each rental gets at most one
// row per tier per day; re-running the job is harmless.
func (jr *JobRunner) EnqueueReminders() {
	jr.runWithRecovery("EnqueueReminders", func() {
		ctx := context.Background()
		today := jr.today()

		// Window covers every tier: due tomorrow down to a month late.
		rentals, err := jr.store.RentalRepository.ListDueBetween(ctx, today.AddDate(0, -1, 0), today.AddDate(0, 0, 1))
		if err != nil {
			logger.Error("Failed to list rentals due for reminders", "error", err)
			return
		}

		queued := 0
		for _, rental := range rentals {
			daysLate := daysFromDue(rental.DueDate, today)
			kind, ok := reminderTier(daysLate)
			if !ok {
				continue
			}

			exists, err := jr.store.NotificationRepository.ExistsForRentalKindOn(ctx, rental.ID, kind, today)
			if err != nil {
				logger.Error("Failed to check reminder dedupe", "rental_id", rental.ID, "error", err)
				continue
			}
			if exists {
				continue
			}

			client, err := jr.store.ClientRepository.GetByID(ctx, rental.ClientID)
			if err != nil {
				logger.Error("Failed to load client for reminder", "rental_id", rental.ID, "error", err)
				continue
			}
			costume, err := jr.store.CostumeRepository.GetByID(ctx, rental.CostumeID)
			if err != nil {
				logger.Error("Failed to load costume for reminder", "rental_id", rental.ID, "error", err)
				continue
			}

			n := &domain.Notification{
				ID:       uuid.NewString(),
				RentalID: rental.ID,
				ClientID: client.ID,
				Phone:    client.Phone,
				Kind:     kind,
				Message:  utils.ComposeReminder(client.Name, costume.Name, rental.DueDate, daysLate),
			}
			if err := jr.store.NotificationRepository.Create(ctx, n); err != nil {
				logger.Error("Failed to queue reminder", "rental_id", rental.ID, "error", err)
				continue
			}
			queued++
		}

		logger.Info("Queued reminders", "count", queued)
	})
}

// daysFromDue counts calendar days from the due date to today;
// -1 means due tomorrow.
func daysFromDue(due, today time.Time) int {
	return int(domain.CivilDate(today).Sub(domain.CivilDate(due)).Hours() / 24)
}

func reminderTier(daysLate int) (domain.NotificationKind, bool) {
	switch {
	case daysLate == -1:
		return domain.NotificationReminder24h, true
	case daysLate == 0:
		return domain.NotificationDueToday, true
	case daysLate >= 1 && daysLate < 3:
		return domain.NotificationLate1d, true
	case daysLate >= 3:
		return domain.NotificationLate3dPlus, true
	}
	return "", false
}

// DispatchNotifications hands pending rows to the WhatsApp sender via
// RabbitMQ. A row is marked sent only after a confirmed publish, so a
// broker outage leaves it pending for the next run.
func (jr *JobRunner) DispatchNotifications() {
	jr.runWithRecovery("DispatchNotifications", func() {
		if jr.publisher == nil {
			logger.Warn("No queue publisher configured, skipping dispatch")
			return
		}

		ctx := context.Background()
		pending, err := jr.store.NotificationRepository.ListPending(ctx, dispatchBatchSize)
		if err != nil {
			logger.Error("Failed to list pending notifications", "error", err)
			return
		}

		sent := 0
		for _, n := range pending {
			msg := queue.OutboundMessage{
				NotificationID: n.ID,
				RentalID:       n.RentalID,
				Kind:           n.Kind,
				Phone:          n.Phone,
				Body:           n.Message,
				QueuedOn:       time.Now().UTC(),
			}
			if err := jr.publisher.Publish(ctx, msg); err != nil {
				logger.Error("Failed to publish notification", "notification_id", n.ID, "error", err)
				if markErr := jr.store.NotificationRepository.MarkFailed(ctx, n.ID, err.Error()); markErr != nil {
					logger.Error("Failed to record publish failure", "notification_id", n.ID, "error", markErr)
				}
				continue
			}
			if err := jr.store.NotificationRepository.MarkSent(ctx, n.ID, time.Now()); err != nil {
				logger.Error("Failed to mark notification sent", "notification_id", n.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Dispatched notifications", "sent", sent, "pending", len(pending))
	})
}
