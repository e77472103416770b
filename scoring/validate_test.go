package scoring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halftime-club/paddock-predict/models"
)

func resultsAt(positions ...int) []models.RaceResult {
	results := make([]models.RaceResult, 0, len(positions))
	for i, pos := range positions {
		results = append(results, models.RaceResult{
			RaceID:     1,
			ResultType: models.ResultTypeRace,
			Position:   pos,
			RiderID:    100 + i,
		})
	}
	return results
}

func TestValidateResults_Valid(t *testing.T) {
	assert.NoError(t, ValidateResults(resultsAt(1, 2, 3, 4, 5)))
	assert.NoError(t, ValidateResults(resultsAt(3, 1, 2)))
	assert.NoError(t, ValidateResults(resultsAt(1)))
	assert.NoError(t, ValidateResults(nil))
}

func TestValidateResults_AnyPermutationIsValid(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		n := 5 + rng.Intn(20)
		perm := rng.Perm(n)
		positions := make([]int, n)
		for i, p := range perm {
			positions[i] = p + 1
		}
		assert.NoError(t, ValidateResults(resultsAt(positions...)))
	}
}

func TestValidateResults_DuplicatePosition(t *testing.T) {
	err := ValidateResults(resultsAt(1, 2, 2, 4))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Duplicate")
}

func TestValidateResults_MissingPosition(t *testing.T) {
	err := ValidateResults(resultsAt(1, 2, 4, 5))
	require.Error(t, err)
	assert.Equal(t, "Missing position 3 in results", err.Error())
}

func TestValidateResults_NotStartingAtOne(t *testing.T) {
	err := ValidateResults(resultsAt(2, 3, 4))
	require.Error(t, err)
	assert.Equal(t, "Missing position 1 in results", err.Error())
}

func TestValidateResults_DuplicateCheckedFirst(t *testing.T) {
	// Both defects present: the duplicate wins.
	err := ValidateResults(resultsAt(1, 3, 3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Duplicate")
}

func TestValidateResults_RiderAtTwoPositionsStillValid(t *testing.T) {
	// Known permissiveness: rider uniqueness within a group is not checked.
	results := []models.RaceResult{
		{RaceID: 1, ResultType: models.ResultTypeRace, Position: 1, RiderID: 7},
		{RaceID: 1, ResultType: models.ResultTypeRace, Position: 2, RiderID: 7},
		{RaceID: 1, ResultType: models.ResultTypeRace, Position: 3, RiderID: 8},
	}
	assert.NoError(t, ValidateResults(results))
}

func TestValidateResults_ReasonIsTyped(t *testing.T) {
	err := ValidateResults(resultsAt(1, 1))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, vErr.Reason, err.Error())
}
