package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halftime-club/paddock-predict/models"
)

func sprintResult(riderID, position int) models.RaceResult {
	return models.RaceResult{
		RaceID:     1,
		ResultType: models.ResultTypeSprint,
		Position:   position,
		RiderID:    riderID,
	}
}

var testGloriousIDs = []int{7, 8, 9, 10, 11, 12, 13}

func testSprintResults() []models.RaceResult {
	return []models.RaceResult{
		sprintResult(1, 1),
		sprintResult(2, 2),
		sprintResult(3, 3),
		sprintResult(4, 4),
		sprintResult(5, 5),
	}
}

func testRaceResults() []models.RaceResult {
	results := []models.RaceResult{
		raceResult(2, 1),
		raceResult(1, 2),
		raceResult(3, 3),
		raceResult(4, 4),
		raceResult(5, 5),
		raceResult(6, 6),
	}
	// Glorious 7 members finishing 7..13 in display order.
	for i, id := range testGloriousIDs {
		results = append(results, raceResult(id, 7+i))
	}
	return results
}

func testPrediction() models.RacePrediction {
	return models.RacePrediction{
		ID:            1,
		PlayerID:      42,
		RaceID:        1,
		Sprint1stID:   1,
		Sprint2ndID:   2,
		Sprint3rdID:   3,
		Race1stID:     2,
		Race2ndID:     1,
		Race3rdID:     3,
		Glorious1stID: 7,
		Glorious2ndID: 8,
		Glorious3rdID: 9,
		SubmittedAt:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestRaceScore_PerfectPrediction(t *testing.T) {
	score := RaceScore(CurrentTables, testPrediction(), testSprintResults(), testRaceResults(), testGloriousIDs, 0)

	assert.Equal(t, 42, score.PlayerID)
	assert.Equal(t, 1, score.RaceID)
	assert.Equal(t, 25, score.Sprint1stPoints)
	assert.Equal(t, 25, score.Sprint2ndPoints)
	assert.Equal(t, 25, score.Sprint3rdPoints)
	assert.Equal(t, 25, score.Race1stPoints)
	assert.Equal(t, 25, score.Race2ndPoints)
	assert.Equal(t, 25, score.Race3rdPoints)
	assert.Equal(t, 75, score.Glorious7Points)
	assert.Equal(t, 0, score.PenaltyPoints)
	assert.Equal(t, 225, score.TotalPoints())
}

func TestRaceScore_OffByOneSprintWinner(t *testing.T) {
	// Predicted rider finishes sprint P2 against reference 1.
	prediction := testPrediction()
	prediction.Sprint1stID = 2
	score := RaceScore(CurrentTables, prediction, testSprintResults(), testRaceResults(), testGloriousIDs, 0)
	assert.Equal(t, 18, score.Sprint1stPoints)
}

func TestRaceScore_GloriousUsesRelativeOrderNotAbsolute(t *testing.T) {
	// Member finishing P7 absolute is relative 1st; predicting it for the
	// first mini-league slot is an exact hit.
	prediction := testPrediction()
	score := RaceScore(CurrentTables, prediction, testSprintResults(), testRaceResults(), testGloriousIDs, 0)
	assert.Equal(t, 75, score.Glorious7Points)

	// Swapping two predicted members costs points in both slots.
	prediction.Glorious1stID = 8
	prediction.Glorious2ndID = 7
	swapped := RaceScore(CurrentTables, prediction, testSprintResults(), testRaceResults(), testGloriousIDs, 0)
	assert.Equal(t, 18+18+25, swapped.Glorious7Points)
}

func TestRaceScore_DNFScoresZero(t *testing.T) {
	prediction := testPrediction()
	prediction.Sprint1stID = 999
	prediction.Glorious1stID = 999
	score := RaceScore(CurrentTables, prediction, testSprintResults(), testRaceResults(), testGloriousIDs, 0)
	assert.Equal(t, 0, score.Sprint1stPoints)
	assert.Equal(t, 50, score.Glorious7Points) // remaining two slots only
}

func TestRaceScore_LatePenaltyTiers(t *testing.T) {
	prediction := testPrediction()
	prediction.IsLate = true

	tests := []struct {
		priorOffenses int
		wantPenalty   int
	}{
		{0, 10},
		{1, 25},
		{2, 50},
		{5, 50},
	}
	for _, tt := range tests {
		score := RaceScore(CurrentTables, prediction, testSprintResults(), testRaceResults(), testGloriousIDs, tt.priorOffenses)
		assert.Equal(t, tt.wantPenalty, score.PenaltyPoints, "prior offenses %d", tt.priorOffenses)
	}
}

func TestRaceScore_OnTimeNeverPenalized(t *testing.T) {
	score := RaceScore(CurrentTables, testPrediction(), testSprintResults(), testRaceResults(), testGloriousIDs, 4)
	assert.Equal(t, 0, score.PenaltyPoints)
}

func TestRaceScore_Deterministic(t *testing.T) {
	a := RaceScore(CurrentTables, testPrediction(), testSprintResults(), testRaceResults(), testGloriousIDs, 1)
	b := RaceScore(CurrentTables, testPrediction(), testSprintResults(), testRaceResults(), testGloriousIDs, 1)
	assert.Equal(t, a, b)
}

func TestRaceScore_EmptyResults(t *testing.T) {
	score := RaceScore(CurrentTables, testPrediction(), nil, nil, testGloriousIDs, 0)
	assert.Equal(t, 0, score.PositionPoints())
	assert.Equal(t, 0, score.TotalPoints())
}

func TestBatchScores_OrderAndIdentity(t *testing.T) {
	p1 := testPrediction()
	p2 := testPrediction()
	p2.PlayerID = 43
	p2.IsLate = true
	p3 := testPrediction()
	p3.PlayerID = 44

	lateCounts := map[int]int{43: 2}
	scores := BatchScores(CurrentTables, []models.RacePrediction{p1, p2, p3}, testSprintResults(), testRaceResults(), testGloriousIDs, lateCounts)

	require.Len(t, scores, 3)
	assert.Equal(t, 42, scores[0].PlayerID)
	assert.Equal(t, 43, scores[1].PlayerID)
	assert.Equal(t, 44, scores[2].PlayerID)
	for _, s := range scores {
		assert.Equal(t, 1, s.RaceID)
	}
	assert.Equal(t, 50, scores[1].PenaltyPoints) // third offense
	assert.Equal(t, 0, scores[2].PenaltyPoints)  // no history entry
}

func TestBatchScores_EmptyPredictions(t *testing.T) {
	scores := BatchScores(CurrentTables, nil, testSprintResults(), testRaceResults(), testGloriousIDs, nil)
	assert.Empty(t, scores)
}

func TestCountLateSubmissions(t *testing.T) {
	history := []models.RacePrediction{
		{PlayerID: 1, RaceID: 1, IsLate: true},
		{PlayerID: 1, RaceID: 2, IsLate: false},
		{PlayerID: 1, RaceID: 3, IsLate: true},
		{PlayerID: 1, RaceID: 4, IsLate: true}, // current race, excluded
		{PlayerID: 2, RaceID: 1, IsLate: true}, // other player
	}
	assert.Equal(t, 2, CountLateSubmissions(1, 4, history))
	assert.Equal(t, 3, CountLateSubmissions(1, 99, history))
	assert.Equal(t, 1, CountLateSubmissions(2, 4, history))
	assert.Equal(t, 0, CountLateSubmissions(3, 4, history))
}

func TestCountLateSubmissions_ThirdOffenseScenario(t *testing.T) {
	// Two prior late races: the current late submission is offense number 3
	// and costs 50 no matter how late it was.
	history := []models.RacePrediction{
		{PlayerID: 1, RaceID: 1, IsLate: true},
		{PlayerID: 1, RaceID: 2, IsLate: true},
	}
	prior := CountLateSubmissions(1, 3, history)
	assert.Equal(t, 50, PenaltyPoints(CurrentTables, prior+1))
}
