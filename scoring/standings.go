package scoring

import (
	"sort"

	"github.com/halftime-club/paddock-predict/models"
)

// Progressions строит для каждого игрока хронологию очков по этапам сезона.
// Этапы без записи очков дают Points == nil и не продвигают накопленный
// итог (carry-forward).
func Progressions(
	players []models.Player,
	races []models.Race,
	scores []models.PlayerScore,
) []models.PlayerProgression {
	ordered := make([]models.Race, len(races))
	copy(ordered, races)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].RoundNumber < ordered[j].RoundNumber
	})

	// (player, race) -> points this race
	byKey := make(map[[2]int]int, len(scores))
	for _, s := range scores {
		byKey[[2]int{s.PlayerID, s.RaceID}] = s.TotalPoints()
	}

	progressions := make([]models.PlayerProgression, 0, len(players))
	for _, player := range players {
		prog := models.PlayerProgression{
			PlayerID:   player.ID,
			PlayerName: player.Name,
			Rounds:     make([]models.ProgressionPoint, 0, len(ordered)),
		}
		running := 0
		for _, race := range ordered {
			point := models.ProgressionPoint{
				RaceID:      race.ID,
				RoundNumber: race.RoundNumber,
				RaceName:    race.Name,
			}
			if pts, ok := byKey[[2]int{player.ID, race.ID}]; ok {
				p := pts
				point.Points = &p
				running += pts
			}
			point.RunningTotal = running
			prog.Rounds = append(prog.Rounds, point)
		}
		prog.FinalTotal = running
		progressions = append(progressions, prog)
	}
	return progressions
}

// Leaderboard сводит сезон в общий зачёт: очки этапов плюс чемпионские очки,
// сортировка по убыванию итога. Равные итоги остаются во входном порядке —
// вторичного ключа у лиги нет.
func Leaderboard(
	players []models.Player,
	scores []models.PlayerScore,
	championshipPoints map[int]int,
) []models.LeaderboardEntry {
	racePoints := make(map[int]int, len(players))
	for _, s := range scores {
		racePoints[s.PlayerID] += s.TotalPoints()
	}

	entries := make([]models.LeaderboardEntry, 0, len(players))
	for _, p := range players {
		entry := models.LeaderboardEntry{
			PlayerID:           p.ID,
			PlayerName:         p.Name,
			RacePoints:         racePoints[p.ID],
			ChampionshipPoints: championshipPoints[p.ID],
		}
		entry.TotalPoints = entry.RacePoints + entry.ChampionshipPoints
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
