package models

// GloriousSevenEntry — один из семи гонщиков мини-лиги этапа.
// DisplayOrder нужен только для UI; на подсчёт очков не влияет.
type GloriousSevenEntry struct {
	ID           int `json:"id" db:"id"`
	RaceID       int `json:"race_id" db:"race_id"`
	RiderID      int `json:"rider_id" db:"rider_id"`
	DisplayOrder int `json:"display_order" db:"display_order"`

	Rider *Rider `json:"rider,omitempty" db:"-"`
}

// GloriousSevenRiderIDs collects the rider IDs from a race's mini-league set.
func GloriousSevenRiderIDs(entries []GloriousSevenEntry) []int {
	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.RiderID)
	}
	return ids
}
