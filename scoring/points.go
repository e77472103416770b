package scoring

// Podium — тройка идентификаторов гонщиков для чемпионского прогноза.
type Podium struct {
	FirstID  int
	SecondID int
	ThirdID  int
}

// PositionPoints scores a single slot: the absolute difference between the
// predicted rider's finishing position and the slot's reference position is
// looked up in the decay table. Whether the rider finished at all is the
// caller's problem — an absent rider never reaches this lookup.
func PositionPoints(t Tables, predictedPosition, referencePosition int) int {
	diff := predictedPosition - referencePosition
	if diff < 0 {
		diff = -diff
	}
	return t.Position[diff]
}

// PenaltyPoints returns the deduction for the given 1-based offense number.
// Offenses beyond the last tier plateau at the last tier.
func PenaltyPoints(t Tables, offenseNumber int) int {
	if offenseNumber <= 0 || len(t.PenaltyTiers) == 0 {
		return 0
	}
	if offenseNumber > len(t.PenaltyTiers) {
		return t.PenaltyTiers[len(t.PenaltyTiers)-1]
	}
	return t.PenaltyTiers[offenseNumber-1]
}

// ChampionshipPoints scores the season podium prediction. Each slot is
// awarded independently; there is no sweep bonus.
func ChampionshipPoints(t Tables, predicted, actual Podium) int {
	points := 0
	if predicted.FirstID == actual.FirstID {
		points += t.ChampionshipFirst
	}
	if predicted.SecondID == actual.SecondID {
		points += t.ChampionshipSecond
	}
	if predicted.ThirdID == actual.ThirdID {
		points += t.ChampionshipThird
	}
	return points
}
