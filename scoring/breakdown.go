package scoring

import "github.com/halftime-club/paddock-predict/models"

// SlotBreakdown — детализация одного из девяти слотов прогноза для UI.
// Reference — позиция (или относительный ранг), с которой сравнивался слот;
// Actual == nil означает DNF.
type SlotBreakdown struct {
	Slot      string `json:"slot"`
	RiderID   int    `json:"rider_id"`
	Reference int    `json:"reference"`
	Actual    *int   `json:"actual"`
	Points    int    `json:"points"`
}

type ScoreBreakdown struct {
	PlayerID      int             `json:"player_id"`
	RaceID        int             `json:"race_id"`
	Slots         []SlotBreakdown `json:"slots"`
	PenaltyPoints int             `json:"penalty_points"`
	TotalPoints   int             `json:"total_points"`
	IsLate        bool            `json:"is_late"`
}

// Breakdown recomputes the per-slot detail of RaceScore from the same inputs.
// The per-slot Glorious 7 split is not persisted, so UI breakdowns are always
// derived on demand and can never diverge from the stored score.
func Breakdown(
	t Tables,
	prediction models.RacePrediction,
	sprintResults []models.RaceResult,
	raceResults []models.RaceResult,
	gloriousRiderIDs []int,
	priorLateOffenses int,
) ScoreBreakdown {
	rs := ResolveRelativeStandings(raceResults, gloriousRiderIDs)

	absolute := func(slot string, results []models.RaceResult, riderID, ordinal int) SlotBreakdown {
		b := SlotBreakdown{Slot: slot, RiderID: riderID, Reference: ordinal}
		if pos, ok := riderPosition(results, riderID); ok {
			b.Actual = &pos
			b.Points = PositionPoints(t, pos, ordinal)
		}
		return b
	}
	relative := func(slot string, riderID, ordinal int) SlotBreakdown {
		b := SlotBreakdown{Slot: slot, RiderID: riderID, Reference: ordinal}
		if rank, ok := rs.Rank(riderID); ok {
			b.Actual = &rank
			b.Points = PositionPoints(t, rank, ordinal)
		}
		return b
	}

	bd := ScoreBreakdown{
		PlayerID: prediction.PlayerID,
		RaceID:   prediction.RaceID,
		IsLate:   prediction.IsLate,
		Slots: []SlotBreakdown{
			absolute("sprint_1st", sprintResults, prediction.Sprint1stID, 1),
			absolute("sprint_2nd", sprintResults, prediction.Sprint2ndID, 2),
			absolute("sprint_3rd", sprintResults, prediction.Sprint3rdID, 3),
			absolute("race_1st", raceResults, prediction.Race1stID, 1),
			absolute("race_2nd", raceResults, prediction.Race2ndID, 2),
			absolute("race_3rd", raceResults, prediction.Race3rdID, 3),
			relative("glorious_1st", prediction.Glorious1stID, 1),
			relative("glorious_2nd", prediction.Glorious2ndID, 2),
			relative("glorious_3rd", prediction.Glorious3rdID, 3),
		},
	}

	total := 0
	for _, s := range bd.Slots {
		total += s.Points
	}
	if prediction.IsLate {
		bd.PenaltyPoints = PenaltyPoints(t, priorLateOffenses+1)
	}
	bd.TotalPoints = total - bd.PenaltyPoints
	return bd
}
