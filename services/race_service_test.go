package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halftime-club/paddock-predict/models"
)

func newRaceFixture(now time.Time, races ...models.Race) (*raceService, *mockRaceRepo) {
	raceRepo := &mockRaceRepo{races: races}
	svc := NewRaceService(raceRepo, nil, discardLogger()).(*raceService)
	svc.now = func() time.Time { return now }
	return svc, raceRepo
}

func TestRaceService_AutoUpdateStatusesByDates(t *testing.T) {
	now := time.Date(2026, 4, 12, 18, 0, 0, 0, time.UTC)
	svc, raceRepo := newRaceFixture(now,
		// Дедлайн ещё впереди: этап остаётся upcoming.
		models.Race{
			ID: 1, SeasonYear: 2026, Status: models.RaceStatusUpcoming,
			Deadline: now.Add(2 * time.Hour),
			RaceDate: now.Add(26 * time.Hour),
		},
		// Дедлайн прошёл, гонка в эти выходные: upcoming -> in_progress.
		models.Race{
			ID: 2, SeasonYear: 2026, Status: models.RaceStatusUpcoming,
			Deadline: now.Add(-3 * time.Hour),
			RaceDate: now.Add(20 * time.Hour),
		},
		// Гонка прошла больше суток назад: in_progress -> completed.
		models.Race{
			ID: 3, SeasonYear: 2026, Status: models.RaceStatusInProgress,
			Deadline: now.Add(-72 * time.Hour),
			RaceDate: now.Add(-30 * time.Hour),
		},
	)

	err := svc.AutoUpdateStatusesByDates(context.Background(), 2026)
	require.NoError(t, err)

	_, untouched := raceRepo.statusUpdates[1]
	assert.False(t, untouched)
	assert.Equal(t, models.RaceStatusInProgress, raceRepo.statusUpdates[2])
	assert.Equal(t, models.RaceStatusCompleted, raceRepo.statusUpdates[3])
}

func TestRaceService_AutoUpdateSkipsMatchingStatus(t *testing.T) {
	now := time.Date(2026, 4, 12, 18, 0, 0, 0, time.UTC)
	svc, raceRepo := newRaceFixture(now,
		models.Race{
			ID: 5, SeasonYear: 2026, Status: models.RaceStatusCompleted,
			Deadline: now.Add(-72 * time.Hour),
			RaceDate: now.Add(-48 * time.Hour),
		},
	)

	err := svc.AutoUpdateStatusesByDates(context.Background(), 2026)
	require.NoError(t, err)
	assert.Empty(t, raceRepo.statusUpdates)
}

func TestRaceService_UpdateStatus(t *testing.T) {
	now := time.Date(2026, 4, 12, 18, 0, 0, 0, time.UTC)
	svc, raceRepo := newRaceFixture(now,
		models.Race{ID: 7, SeasonYear: 2026, Status: models.RaceStatusUpcoming},
	)

	race, err := svc.UpdateStatus(context.Background(), 7, models.RaceStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.RaceStatusInProgress, race.Status)
	assert.Equal(t, models.RaceStatusInProgress, raceRepo.statusUpdates[7])

	_, err = svc.UpdateStatus(context.Background(), 7, models.RaceStatus("cancelled"))
	assert.ErrorIs(t, err, ErrInvalidRaceStatus)

	_, err = svc.UpdateStatus(context.Background(), 99, models.RaceStatusCompleted)
	assert.ErrorIs(t, err, ErrRaceNotFound)
}

func TestRaceService_UpdateStatusNoOpForSameStatus(t *testing.T) {
	now := time.Date(2026, 4, 12, 18, 0, 0, 0, time.UTC)
	svc, raceRepo := newRaceFixture(now,
		models.Race{ID: 8, SeasonYear: 2026, Status: models.RaceStatusCompleted},
	)

	race, err := svc.UpdateStatus(context.Background(), 8, models.RaceStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.RaceStatusCompleted, race.Status)
	assert.Empty(t, raceRepo.statusUpdates)
}
