package domain

import "time"

type SeasonKind string

const (
	SeasonStandard SeasonKind = "standard"
	SeasonHigh     SeasonKind = "high"
)

// Season is a configured pricing window. StartDate and EndDate form a
// closed interval: a pickup date equal to either boundary falls inside
// the season.
type Season struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Kind      SeasonKind `json:"kind"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	Active    bool       `json:"active"`
}

// Contains reports whether the given date falls inside the season's
// closed interval, comparing calendar days only.
func (s Season) Contains(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(s.StartDate.Truncate(24*time.Hour)) && !d.After(s.EndDate.Truncate(24*time.Hour))
}
