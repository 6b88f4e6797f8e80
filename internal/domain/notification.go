package domain

import "time"

type NotificationKind string

const (
	NotificationReminder24h         NotificationKind = "reminder_24h"
	NotificationDueToday            NotificationKind = "due_today"
	NotificationLate1d              NotificationKind = "late_1d"
	NotificationLate3dPlus          NotificationKind = "late_3d_plus"
	NotificationReservationConfirm  NotificationKind = "reservation_confirmation"
	NotificationRentalConfirm       NotificationKind = "rental_confirmation"
)

// Notification is a queued outbound WhatsApp message. This service only
// enqueues rows with Sent=false; the dispatch job hands them to the
// external sender and flips Sent after a confirmed publish.
type Notification struct {
	ID        string           `json:"id"`
	RentalID  string           `json:"rental_id,omitempty"`
	ClientID  string           `json:"client_id"`
	Phone     string           `json:"phone"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	Sent      bool             `json:"sent"`
	Error     string           `json:"error,omitempty"`
	SentOn    *time.Time       `json:"sent_on,omitempty"`
	CreatedOn time.Time        `json:"created_on"`
}
