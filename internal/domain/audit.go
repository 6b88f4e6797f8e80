package domain

import "time"

const (
	AuditActionRentalCreated      = "RENTAL_CREATED"
	AuditActionRentalActivated    = "RENTAL_ACTIVATED"
	AuditActionRentalReturned     = "RENTAL_RETURNED"
	AuditActionRentalCancelled    = "RENTAL_CANCELLED"
	AuditActionPaymentRegistered  = "PAYMENT_REGISTERED"
	AuditActionRentalMarkedLate   = "RENTAL_MARKED_OVERDUE"
)

// AuditEntry is an immutable trace of a state-changing action. Before
// and After hold small snapshots of the affected record, stored as JSON.
type AuditEntry struct {
	ID        string         `json:"id"`
	ProfileID string         `json:"profile_id"`
	Action    string         `json:"action"`
	Entity    string         `json:"entity"`
	RecordID  string         `json:"record_id"`
	Before    map[string]any `json:"before,omitempty"`
	After     map[string]any `json:"after,omitempty"`
	CreatedOn time.Time      `json:"created_on"`
}
