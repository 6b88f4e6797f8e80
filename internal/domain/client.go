package domain

import "time"

// Client is a rental customer. TotalRentals and TotalSpentCents are
// lifetime aggregates maintained by the rental and payment recorders.
type Client struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	NationalID      string    `json:"national_id"`
	Phone           string    `json:"phone"`
	IDPhotoURL      string    `json:"id_photo_url,omitempty"`
	TotalRentals    int32     `json:"total_rentals"`
	TotalSpentCents int64     `json:"total_spent_cents"`
	CreatedOn       time.Time `json:"created_on"`
	UpdatedOn       time.Time `json:"updated_on"`
}
