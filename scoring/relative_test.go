package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halftime-club/paddock-predict/models"
)

func raceResult(riderID, position int) models.RaceResult {
	return models.RaceResult{
		RaceID:     1,
		ResultType: models.ResultTypeRace,
		Position:   position,
		RiderID:    riderID,
	}
}

func TestResolveRelativeStandings_AllSevenFinish(t *testing.T) {
	// Seven members scattered through the field; outsiders in between are
	// irrelevant.
	results := []models.RaceResult{
		raceResult(10, 1), // outsider, race winner
		raceResult(1, 2),
		raceResult(11, 3), // outsider
		raceResult(2, 4),
		raceResult(3, 7),
		raceResult(4, 9),
		raceResult(5, 12),
		raceResult(6, 15),
		raceResult(7, 20),
	}
	rs := ResolveRelativeStandings(results, []int{1, 2, 3, 4, 5, 6, 7})

	ordered := rs.Ordered()
	require.Len(t, ordered, 7)
	wantOrder := []int{1, 2, 3, 4, 5, 6, 7}
	for i, want := range wantOrder {
		assert.Equal(t, want, ordered[i].RiderID)
	}
	for i, id := range wantOrder {
		rank, ok := rs.Rank(id)
		require.True(t, ok)
		assert.Equal(t, i+1, rank)
	}
}

func TestResolveRelativeStandings_SpecScenario(t *testing.T) {
	// A=5, B=9, D=12, E=20, G=15 in the set; C=2 and F=1 finish ahead of all
	// of them but are not members.
	const (
		a, b, c, d, e, f, g = 1, 2, 3, 4, 5, 6, 7
		extra1, extra2      = 8, 9
	)
	results := []models.RaceResult{
		raceResult(f, 1),
		raceResult(c, 2),
		raceResult(a, 5),
		raceResult(b, 9),
		raceResult(d, 12),
		raceResult(g, 15),
		raceResult(e, 20),
	}
	rs := ResolveRelativeStandings(results, []int{a, b, d, e, g, extra1, extra2})

	for id, wantRank := range map[int]int{a: 1, b: 2, d: 3, g: 4, e: 5} {
		rank, ok := rs.Rank(id)
		require.True(t, ok, "rider %d", id)
		assert.Equal(t, wantRank, rank, "rider %d", id)
	}

	// Predicting A for Glorious 1st is an exact relative match.
	assert.Equal(t, 25, PositionPoints(CurrentTables, 1, 1))
}

func TestResolveRelativeStandings_DNFHasNoRank(t *testing.T) {
	results := []models.RaceResult{
		raceResult(1, 1),
		raceResult(2, 2),
	}
	rs := ResolveRelativeStandings(results, []int{1, 2, 3})

	_, ok := rs.Rank(3)
	assert.False(t, ok)

	// Finishers are ranked without the DNF member.
	rank, ok := rs.Rank(2)
	require.True(t, ok)
	assert.Equal(t, 2, rank)
}

func TestResolveRelativeStandings_OutsiderHasNoRank(t *testing.T) {
	results := []models.RaceResult{
		raceResult(1, 1),
		raceResult(99, 2),
	}
	rs := ResolveRelativeStandings(results, []int{1})

	_, ok := rs.Rank(99)
	assert.False(t, ok)
	assert.Len(t, rs.Ordered(), 1)
}

func TestResolveRelativeStandings_DoesNotMutateInput(t *testing.T) {
	results := []models.RaceResult{
		raceResult(2, 9),
		raceResult(1, 3),
	}
	_ = ResolveRelativeStandings(results, []int{1, 2})

	assert.Equal(t, 2, results[0].RiderID)
	assert.Equal(t, 1, results[1].RiderID)
}
