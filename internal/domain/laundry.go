package domain

import "time"

type LaundryStatus string

const (
	LaundryStatusReceived  LaundryStatus = "received"
	LaundryStatusInProcess LaundryStatus = "in_process"
	LaundryStatusUrgent    LaundryStatus = "urgent"
	LaundryStatusReady     LaundryStatus = "ready"
)

// LaundryItem tracks a returned costume unit through cleaning. While a
// unit sits here it counts against the costume's StockLaundry, not
// StockAvailable.
type LaundryItem struct {
	ID          string        `json:"id"`
	RentalID    string        `json:"rental_id"`
	CostumeID   string        `json:"costume_id"`
	Status      LaundryStatus `json:"status"`
	Urgent      bool          `json:"urgent"`
	ProcessedBy string        `json:"processed_by,omitempty"`
	ReceivedOn  time.Time     `json:"received_on"`
	ReadyOn     *time.Time    `json:"ready_on,omitempty"`
}
