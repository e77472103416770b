package scoring

import (
	"sort"

	"github.com/halftime-club/paddock-predict/models"
)

// Очки чемпионата MotoGP. Это тарифы самого чемпионата для зачёта гонщиков,
// не тарифы лиги прогнозов.
var (
	motoGPRacePoints   = []int{25, 20, 16, 13, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	motoGPSprintPoints = []int{12, 9, 7, 6, 5, 4, 3, 2, 1}
)

func motoGPPoints(resultType models.ResultType, position int) int {
	table := motoGPRacePoints
	if resultType == models.ResultTypeSprint {
		table = motoGPSprintPoints
	}
	if position < 1 || position > len(table) {
		return 0
	}
	return table[position-1]
}

// RiderStanding — гонщик и его набранные за сезон чемпионские очки.
type RiderStanding struct {
	RiderID int
	Points  int
}

// RiderStandings сворачивает результаты сезона в зачёт гонщиков по очкам
// чемпионата, по убыванию. Гонщики без единого финиша остаются в зачёте с
// нулём; результаты гонщиков вне списка игнорируются.
func RiderStandings(riderIDs []int, results []models.RaceResult) []RiderStanding {
	points := make(map[int]int, len(riderIDs))
	for _, id := range riderIDs {
		points[id] = 0
	}
	for _, r := range results {
		if _, ok := points[r.RiderID]; !ok {
			continue
		}
		points[r.RiderID] += motoGPPoints(r.ResultType, r.Position)
	}

	standings := make([]RiderStanding, 0, len(riderIDs))
	for _, id := range riderIDs {
		standings = append(standings, RiderStanding{RiderID: id, Points: points[id]})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Points > standings[j].Points
	})
	return standings
}

// GloriousSevenCandidates выделяет середину зачёта: без тройки лидеров и
// тройки замыкающих. Если гонщиков меньше 13, исключать некого и проходят все.
func GloriousSevenCandidates(standings []RiderStanding) []RiderStanding {
	n := len(standings)
	if n < 13 {
		return standings
	}
	return standings[3 : n-3]
}
