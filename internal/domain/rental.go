package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "active"
	RentalStatusReserved  RentalStatus = "reserved"
	RentalStatusReturned  RentalStatus = "returned"
	RentalStatusCancelled RentalStatus = "cancelled"
	RentalStatusOverdue   RentalStatus = "overdue"
)

type PieceCondition string

const (
	PieceConditionGood        PieceCondition = "good"
	PieceConditionLightDamage PieceCondition = "light_damage"
	PieceConditionNotReturned PieceCondition = "not_returned"
)

// Rental links a client and a costume unit for a date range.
// Price, deposit and balance are snapshots taken at registration time;
// BalanceCents always equals PriceCents plus fees minus the sum of the
// rental's payments, clamped at zero.
type Rental struct {
	ID                  string       `json:"id"`
	ClientID            string       `json:"client_id"`
	CostumeID           string       `json:"costume_id"`
	OperatorID          string       `json:"operator_id"`
	Reservation         bool         `json:"reservation"`
	Status              RentalStatus `json:"status"`
	SeasonApplied       SeasonKind   `json:"season_applied"`
	PickupDate          time.Time    `json:"pickup_date"`
	DueDate             time.Time    `json:"due_date"`
	ReturnDate          *time.Time   `json:"return_date,omitempty"`
	PriceCents          int64        `json:"price_cents"`
	DepositCents        int64        `json:"deposit_cents"`
	BalanceCents        int64        `json:"balance_cents"`
	LateFeeCents        int64        `json:"late_fee_cents"`
	DamageFeeCents      int64        `json:"damage_fee_cents"`
	TotalCollectedCents int64        `json:"total_collected_cents"`
	IDPhotoURL          string       `json:"id_photo_url,omitempty"`
	Notes               string       `json:"notes,omitempty"`
	CreatedOn           time.Time    `json:"created_on"`
	UpdatedOn           time.Time    `json:"updated_on"`
}

// CivilDate reads the calendar date t names in its own location and
// returns it as midnight UTC. This makes an evening wall-clock in the
// shop's zone and a date-only value stored at midnight UTC comparable
// as the days they name, which UTC truncation gets wrong for part of
// the local day.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysLate is a derived projection, never stored: how many whole
// calendar days past due an unreturned rental is as of the given day.
func (r Rental) DaysLate(today time.Time) int {
	if r.Status != RentalStatusActive && r.Status != RentalStatusOverdue {
		return 0
	}
	days := int(CivilDate(today).Sub(CivilDate(r.DueDate)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// RentalPiece is one checklist row, instantiated from the costume's
// template pieces at registration and completed at return time.
type RentalPiece struct {
	ID              string         `json:"id"`
	RentalID        string         `json:"rental_id"`
	PieceID         string         `json:"piece_id"`
	PieceName       string         `json:"piece_name"`
	OutCondition    PieceCondition `json:"out_condition"`
	ReturnCondition PieceCondition `json:"return_condition,omitempty"`
	DamagePhotoURL  string         `json:"damage_photo_url,omitempty"`
	ChargedCents    int64          `json:"charged_cents"`
}

// RentalRecord is the unit of work the recorder writes atomically: the
// rental row, its initial payment, the piece checklist, an audit entry
// and the queued confirmation message.
type RentalRecord struct {
	Rental       *Rental
	Payment      *Payment
	Pieces       []RentalPiece
	Audit        *AuditEntry
	Notification *Notification
	// ConsumeStock is false for reservations, which are taken against
	// future stock and only consume a unit when activated at pickup.
	ConsumeStock bool
}

// ReturnRecord is the mirror unit of work for processing a return.
type ReturnRecord struct {
	Rental        *Rental
	Pieces        []RentalPiece
	DamagePayment *Payment
	Laundry       *LaundryItem
	Audit         *AuditEntry
	// RestoreStock moves the unit back to available stock; when false
	// the unit goes to the laundry counter instead.
	RestoreStock bool
}
