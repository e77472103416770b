package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halftime-club/paddock-predict/models"
)

func fullSubmitInput(raceID int) SubmitPredictionInput {
	return SubmitPredictionInput{
		RaceID:      raceID,
		Sprint1stID: 1, Sprint2ndID: 2, Sprint3rdID: 3,
		Race1stID: 1, Race2ndID: 2, Race3rdID: 3,
		Glorious1stID: 4, Glorious2ndID: 5, Glorious3rdID: 6,
	}
}

func newPredictionFixture(deadline time.Time) (*mockPredictionRepo, *predictionService) {
	predictionRepo := &mockPredictionRepo{}
	raceRepo := &mockRaceRepo{races: []models.Race{
		{ID: 10, SeasonYear: 2026, RoundNumber: 3, Deadline: deadline, Status: models.RaceStatusUpcoming},
	}}
	svc := NewPredictionService(predictionRepo, raceRepo).(*predictionService)
	return predictionRepo, svc
}

func TestPredictionService_SubmitBeforeDeadline(t *testing.T) {
	deadline := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	predictionRepo, svc := newPredictionFixture(deadline)
	svc.now = func() time.Time { return deadline.Add(-time.Hour) }

	prediction, err := svc.Submit(context.Background(), 1, fullSubmitInput(10))
	require.NoError(t, err)

	assert.False(t, prediction.IsLate)
	require.Len(t, predictionRepo.upserted, 1)
	assert.Equal(t, 1, predictionRepo.upserted[0].PlayerID)
}

func TestPredictionService_SubmitExactlyAtDeadlineIsNotLate(t *testing.T) {
	deadline := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	_, svc := newPredictionFixture(deadline)
	svc.now = func() time.Time { return deadline }

	prediction, err := svc.Submit(context.Background(), 1, fullSubmitInput(10))
	require.NoError(t, err)
	assert.False(t, prediction.IsLate)
}

func TestPredictionService_SubmitAfterDeadlineIsLate(t *testing.T) {
	deadline := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	_, svc := newPredictionFixture(deadline)
	svc.now = func() time.Time { return deadline.Add(time.Second) }

	prediction, err := svc.Submit(context.Background(), 1, fullSubmitInput(10))
	require.NoError(t, err)
	assert.True(t, prediction.IsLate)
}

func TestPredictionService_SubmitRequiresAllNineSlots(t *testing.T) {
	_, svc := newPredictionFixture(time.Now().Add(time.Hour))

	input := fullSubmitInput(10)
	input.Glorious3rdID = 0

	_, err := svc.Submit(context.Background(), 1, input)
	assert.ErrorIs(t, err, ErrPredictionIncomplete)
}

func TestPredictionService_SubmitUnknownRace(t *testing.T) {
	_, svc := newPredictionFixture(time.Now().Add(time.Hour))

	_, err := svc.Submit(context.Background(), 1, fullSubmitInput(404))
	assert.ErrorIs(t, err, ErrRaceNotFound)
}

func TestPredictionService_GetForPlayerNotFound(t *testing.T) {
	_, svc := newPredictionFixture(time.Now().Add(time.Hour))

	_, err := svc.GetForPlayer(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrPredictionNotFound)
}
