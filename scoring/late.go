package scoring

import "github.com/halftime-club/paddock-predict/models"

// CountLateSubmissions считает прошлые опоздания игрока: прогнозы с is_late
// по всем этапам, кроме текущего. Текущее опоздание в свой же тариф не
// входит — оно и есть оцениваемый проступок.
func CountLateSubmissions(playerID, raceID int, history []models.RacePrediction) int {
	count := 0
	for _, p := range history {
		if p.PlayerID == playerID && p.RaceID != raceID && p.IsLate {
			count++
		}
	}
	return count
}
