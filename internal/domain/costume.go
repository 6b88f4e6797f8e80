package domain

import "time"

type CostumeCondition string

const (
	CostumeConditionNew         CostumeCondition = "new"
	CostumeConditionGood        CostumeCondition = "good"
	CostumeConditionLightWear   CostumeCondition = "light_wear"
	CostumeConditionNeedsRepair CostumeCondition = "needs_repair"
)

// Costume is a catalog entry. Stock counters are partitioned by state:
// StockAvailable + StockRented + StockLaundry <= StockTotal, and
// StockAvailable never goes below zero (enforced by a conditional
// decrement in the repository).
type Costume struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Dance                string           `json:"dance"`
	Size                 string           `json:"size"`
	Description          string           `json:"description,omitempty"`
	PhotoURL             string           `json:"photo_url,omitempty"`
	BasePriceCents       int64            `json:"base_price_cents"`
	HighSeasonPriceCents int64            `json:"high_season_price_cents"`
	Condition            CostumeCondition `json:"condition"`
	StockTotal           int32            `json:"stock_total"`
	StockAvailable       int32            `json:"stock_available"`
	StockRented          int32            `json:"stock_rented"`
	StockLaundry         int32            `json:"stock_laundry"`
	Active               bool             `json:"active"`
	CreatedOn            time.Time        `json:"created_on"`
	UpdatedOn            time.Time        `json:"updated_on"`
}

// CostumePiece is a template component of a costume (headpiece, cape,
// skirt...). Rental checklists are instantiated from these.
type CostumePiece struct {
	ID        string `json:"id"`
	CostumeID string `json:"costume_id"`
	Name      string `json:"name"`
	Required  bool   `json:"required"`
	Position  int32  `json:"position"`
}
