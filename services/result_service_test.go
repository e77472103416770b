package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halftime-club/paddock-predict/models"
)

func newResultFixture() (*mockResultRepo, *mockGloriousRepo, ResultService) {
	resultRepo := &mockResultRepo{byType: map[models.ResultType][]models.RaceResult{}}
	gloriousRepo := &mockGloriousRepo{}
	raceRepo := &mockRaceRepo{races: []models.Race{
		{ID: 10, SeasonYear: 2026, RoundNumber: 3, Status: models.RaceStatusInProgress},
	}}
	return resultRepo, gloriousRepo, NewResultService(resultRepo, gloriousRepo, raceRepo, &mockRiderRepo{})
}

func entryInputs(riderIDs ...int) []ResultEntryInput {
	inputs := make([]ResultEntryInput, 0, len(riderIDs))
	for i, riderID := range riderIDs {
		inputs = append(inputs, ResultEntryInput{Position: i + 1, RiderID: riderID})
	}
	return inputs
}

func TestResultService_ReplaceStoresValidResults(t *testing.T) {
	resultRepo, _, svc := newResultFixture()

	results, err := svc.Replace(context.Background(), 10, models.ResultTypeSprint, entryInputs(5, 6, 7))
	require.NoError(t, err)

	assert.Len(t, results, 3)
	require.Len(t, resultRepo.replaced[models.ResultTypeSprint], 3)
	assert.Equal(t, 1, resultRepo.replaced[models.ResultTypeSprint][0].Position)
}

func TestResultService_ReplaceRejectsDuplicatePositions(t *testing.T) {
	resultRepo, _, svc := newResultFixture()

	inputs := entryInputs(5, 6, 7)
	inputs[2].Position = 2

	_, err := svc.Replace(context.Background(), 10, models.ResultTypeRace, inputs)
	require.Error(t, err)

	var invalid *InvalidResultsError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "race", invalid.ResultType)
	assert.Equal(t, "Duplicate positions found in results", invalid.Reason)
	assert.Empty(t, resultRepo.replaced)
}

func TestResultService_ReplaceRejectsPositionGaps(t *testing.T) {
	_, _, svc := newResultFixture()

	inputs := entryInputs(5, 6, 7)
	inputs[1].Position = 5 // позиции 2 нет

	_, err := svc.Replace(context.Background(), 10, models.ResultTypeRace, inputs)

	var invalid *InvalidResultsError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Missing position 2 in results", invalid.Reason)
}

// Один гонщик на нескольких позициях — валидный набор: проверяются только
// сами позиции.
func TestResultService_ReplaceAllowsDuplicateRiders(t *testing.T) {
	_, _, svc := newResultFixture()

	inputs := entryInputs(5, 5, 5)

	results, err := svc.Replace(context.Background(), 10, models.ResultTypeSprint, inputs)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestResultService_ReplaceRejectsEmptySet(t *testing.T) {
	_, _, svc := newResultFixture()

	_, err := svc.Replace(context.Background(), 10, models.ResultTypeSprint, nil)
	assert.ErrorIs(t, err, ErrResultsEmpty)
}

func TestResultService_ReplaceRejectsUnknownType(t *testing.T) {
	_, _, svc := newResultFixture()

	_, err := svc.Replace(context.Background(), 10, models.ResultType("qualifying"), entryInputs(1))
	assert.ErrorIs(t, err, ErrInvalidResultType)
}

func TestResultService_SetGloriousSevenRequiresExactlySeven(t *testing.T) {
	_, _, svc := newResultFixture()

	_, err := svc.SetGloriousSeven(context.Background(), 10, []int{1, 2, 3, 4, 5, 6})
	assert.ErrorIs(t, err, ErrGloriousSevenSize)

	_, err = svc.SetGloriousSeven(context.Background(), 10, []int{1, 2, 3, 4, 5, 6, 7, 8})
	assert.ErrorIs(t, err, ErrGloriousSevenSize)

	// Повторы внутри семёрки тоже не набор из семи гонщиков.
	_, err = svc.SetGloriousSeven(context.Background(), 10, []int{1, 2, 3, 4, 5, 6, 6})
	assert.ErrorIs(t, err, ErrGloriousSevenSize)
}

func TestResultService_SetGloriousSevenStoresDisplayOrder(t *testing.T) {
	_, gloriousRepo, svc := newResultFixture()

	entries, err := svc.SetGloriousSeven(context.Background(), 10, []int{11, 12, 13, 14, 15, 16, 17})
	require.NoError(t, err)

	require.Len(t, entries, 7)
	assert.Equal(t, 1, entries[0].DisplayOrder)
	assert.Equal(t, 7, entries[6].DisplayOrder)
	assert.Len(t, gloriousRepo.replaced, 7)
}

// activeGrid строит заявку из n активных гонщиков с ID 1..n.
func activeGrid(n int) []models.Rider {
	riders := make([]models.Rider, 0, n)
	for id := 1; id <= n; id++ {
		riders = append(riders, models.Rider{ID: id, Active: true})
	}
	return riders
}

func newGenerateFixture(riders []models.Rider, seasonResults []models.RaceResult) (*mockGloriousRepo, *resultService) {
	resultRepo := &mockResultRepo{seasonResults: seasonResults}
	gloriousRepo := &mockGloriousRepo{}
	raceRepo := &mockRaceRepo{races: []models.Race{
		{ID: 10, SeasonYear: 2026, RoundNumber: 3, Status: models.RaceStatusUpcoming},
	}}
	svc := NewResultService(resultRepo, gloriousRepo, raceRepo, &mockRiderRepo{riders: riders}).(*resultService)
	// Детерминизм в тестах: кандидаты остаются в порядке зачёта.
	svc.shuffle = func(n int, swap func(i, j int)) {}
	return gloriousRepo, svc
}

func TestResultService_GenerateGloriousSevenExcludesTopAndBottom(t *testing.T) {
	// Одна гонка: позиции 1..15 занимают гонщики 1..15, гонщик 16 без финиша.
	results := make([]models.RaceResult, 0, 15)
	for pos := 1; pos <= 15; pos++ {
		results = append(results, models.RaceResult{RaceID: 5, ResultType: models.ResultTypeRace, Position: pos, RiderID: pos})
	}
	gloriousRepo, svc := newGenerateFixture(activeGrid(16), results)

	entries, err := svc.GenerateGloriousSeven(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, entries, 7)
	excluded := map[int]bool{1: true, 2: true, 3: true, 14: true, 15: true, 16: true}
	for i, e := range entries {
		assert.False(t, excluded[e.RiderID], "rider %d must not be selected", e.RiderID)
		assert.Equal(t, i+1, e.DisplayOrder)
	}
	assert.Len(t, gloriousRepo.replaced, 7)
}

func TestResultService_GenerateGloriousSevenSmallGridSkipsExclusion(t *testing.T) {
	// Девять гонщиков: исключать тройки не из чего, проходят все.
	_, svc := newGenerateFixture(activeGrid(9), []models.RaceResult{
		{RaceID: 5, ResultType: models.ResultTypeRace, Position: 1, RiderID: 1},
	})

	entries, err := svc.GenerateGloriousSeven(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, entries, 7)
	// Лидер зачёта не исключается на маленькой заявке.
	assert.Equal(t, 1, entries[0].RiderID)
}

func TestResultService_GenerateGloriousSevenNotEnoughRiders(t *testing.T) {
	gloriousRepo, svc := newGenerateFixture(activeGrid(6), nil)

	_, err := svc.GenerateGloriousSeven(context.Background(), 10)
	assert.ErrorIs(t, err, ErrNotEnoughRiders)
	assert.Empty(t, gloriousRepo.replaced)
}

func TestResultService_GenerateGloriousSevenUnknownRace(t *testing.T) {
	_, svc := newGenerateFixture(activeGrid(16), nil)

	_, err := svc.GenerateGloriousSeven(context.Background(), 99)
	assert.ErrorIs(t, err, ErrRaceNotFound)
}
