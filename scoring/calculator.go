package scoring

import "github.com/halftime-club/paddock-predict/models"

// riderPosition ищет финишную позицию гонщика в группе результатов.
func riderPosition(results []models.RaceResult, riderID int) (int, bool) {
	for _, r := range results {
		if r.RiderID == riderID {
			return r.Position, true
		}
	}
	return 0, false
}

// slotPoints scores one absolute-position slot: absent rider means DNF and
// zero points, otherwise the decay lookup against the slot's ordinal.
func slotPoints(t Tables, results []models.RaceResult, riderID, slotOrdinal int) int {
	pos, ok := riderPosition(results, riderID)
	if !ok {
		return 0
	}
	return PositionPoints(t, pos, slotOrdinal)
}

// gloriousSlotPoints scores one mini-league slot against the rider's relative
// rank within the Glorious 7 subset.
func gloriousSlotPoints(t Tables, rs RelativeStandings, riderID, slotOrdinal int) int {
	rank, ok := rs.Rank(riderID)
	if !ok {
		return 0
	}
	return PositionPoints(t, rank, slotOrdinal)
}

// RaceScore считает очки одного прогноза: топ-3 спринта и гонки против
// абсолютных позиций, топ-3 Glorious 7 против относительного порядка внутри
// семёрки, плюс штраф за опоздание. Полностью детерминирован, без побочных
// эффектов; висячие ссылки на гонщиков дают 0 очков, а не ошибку.
func RaceScore(
	t Tables,
	prediction models.RacePrediction,
	sprintResults []models.RaceResult,
	raceResults []models.RaceResult,
	gloriousRiderIDs []int,
	priorLateOffenses int,
) models.PlayerScore {
	score := models.PlayerScore{
		PlayerID: prediction.PlayerID,
		RaceID:   prediction.RaceID,
	}

	score.Sprint1stPoints = slotPoints(t, sprintResults, prediction.Sprint1stID, 1)
	score.Sprint2ndPoints = slotPoints(t, sprintResults, prediction.Sprint2ndID, 2)
	score.Sprint3rdPoints = slotPoints(t, sprintResults, prediction.Sprint3rdID, 3)

	score.Race1stPoints = slotPoints(t, raceResults, prediction.Race1stID, 1)
	score.Race2ndPoints = slotPoints(t, raceResults, prediction.Race2ndID, 2)
	score.Race3rdPoints = slotPoints(t, raceResults, prediction.Race3rdID, 3)

	rs := ResolveRelativeStandings(raceResults, gloriousRiderIDs)
	score.Glorious7Points = gloriousSlotPoints(t, rs, prediction.Glorious1stID, 1) +
		gloriousSlotPoints(t, rs, prediction.Glorious2ndID, 2) +
		gloriousSlotPoints(t, rs, prediction.Glorious3rdID, 3)

	if prediction.IsLate {
		score.PenaltyPoints = PenaltyPoints(t, priorLateOffenses+1)
	}

	return score
}

// BatchScores applies RaceScore to every prediction for a race. Output order
// matches input order; players never interact, so the caller may parallelize
// freely. Both result groups are assumed to have passed ValidateResults.
func BatchScores(
	t Tables,
	predictions []models.RacePrediction,
	sprintResults []models.RaceResult,
	raceResults []models.RaceResult,
	gloriousRiderIDs []int,
	priorLateOffenses map[int]int,
) []models.PlayerScore {
	scores := make([]models.PlayerScore, 0, len(predictions))
	for _, p := range predictions {
		scores = append(scores, RaceScore(t, p, sprintResults, raceResults, gloriousRiderIDs, priorLateOffenses[p.PlayerID]))
	}
	return scores
}
