package scoring

import (
	"sort"

	"github.com/halftime-club/paddock-predict/models"
)

// RelativeStandings — порядок финиша гонщиков Glorious 7 относительно друг
// друга. Абсолютная позиция в гонке значения не имеет, только место среди
// остальных шести.
type RelativeStandings struct {
	ordered []models.RaceResult
	rank    map[int]int // rider id -> 1-based relative rank
}

// ResolveRelativeStandings filters the main-race results down to the given
// rider set and orders them by absolute position. Riders outside the set are
// ignored even if they finished between members of it.
func ResolveRelativeStandings(raceResults []models.RaceResult, riderIDs []int) RelativeStandings {
	members := make(map[int]bool, len(riderIDs))
	for _, id := range riderIDs {
		members[id] = true
	}

	ordered := make([]models.RaceResult, 0, len(riderIDs))
	for _, r := range raceResults {
		if members[r.RiderID] {
			ordered = append(ordered, r)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	rank := make(map[int]int, len(ordered))
	for i, r := range ordered {
		rank[r.RiderID] = i + 1
	}
	return RelativeStandings{ordered: ordered, rank: rank}
}

// Rank returns the rider's 1-based relative rank, or false if the rider has
// no classification in the main race (DNF).
func (rs RelativeStandings) Rank(riderID int) (int, bool) {
	r, ok := rs.rank[riderID]
	return r, ok
}

// Ordered returns the filtered results in ascending relative order.
func (rs RelativeStandings) Ordered() []models.RaceResult {
	out := make([]models.RaceResult, len(rs.ordered))
	copy(out, rs.ordered)
	return out
}
