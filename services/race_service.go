package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/halftime-club/paddock-predict/models"
	"github.com/halftime-club/paddock-predict/realtime"
	"github.com/halftime-club/paddock-predict/repositories"
)

type RaceService interface {
	GetByID(ctx context.Context, id int) (*models.Race, error)
	ListBySeason(ctx context.Context, seasonYear int) ([]models.Race, error)
	// UpdateStatus — ручной перевод статуса администратором.
	UpdateStatus(ctx context.Context, id int, status models.RaceStatus) (*models.Race, error)
	// AutoUpdateStatusesByDates переводит этапы по датам календаря:
	// upcoming -> in_progress после дедлайна, in_progress -> completed
	// на следующий день после гонки. Вызывается планировщиком.
	AutoUpdateStatusesByDates(ctx context.Context, seasonYear int) error
}

type raceService struct {
	raceRepo repositories.RaceRepository
	hub      *realtime.Hub
	logger   *slog.Logger
	now      func() time.Time
}

func NewRaceService(raceRepo repositories.RaceRepository, hub *realtime.Hub, logger *slog.Logger) RaceService {
	return &raceService{
		raceRepo: raceRepo,
		hub:      hub,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *raceService) GetByID(ctx context.Context, id int) (*models.Race, error) {
	race, err := s.raceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRaceNotFound) {
			return nil, ErrRaceNotFound
		}
		return nil, err
	}
	return race, nil
}

func (s *raceService) ListBySeason(ctx context.Context, seasonYear int) ([]models.Race, error) {
	if seasonYear <= 0 {
		return nil, ErrSeasonRequired
	}
	return s.raceRepo.ListBySeason(ctx, seasonYear)
}

func validRaceStatus(status models.RaceStatus) bool {
	switch status {
	case models.RaceStatusUpcoming, models.RaceStatusInProgress, models.RaceStatusCompleted:
		return true
	}
	return false
}

func (s *raceService) UpdateStatus(ctx context.Context, id int, status models.RaceStatus) (*models.Race, error) {
	if !validRaceStatus(status) {
		return nil, ErrInvalidRaceStatus
	}

	race, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if race.Status == status {
		return race, nil
	}

	if err := s.raceRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update race status: %w", err)
	}
	race.Status = status
	s.broadcastStatus(race)
	return race, nil
}

// desiredStatus вычисляет статус этапа исходя из текущего времени.
func (s *raceService) desiredStatus(race *models.Race, now time.Time) models.RaceStatus {
	raceEnd := race.RaceDate.Add(24 * time.Hour)
	switch {
	case now.After(raceEnd):
		return models.RaceStatusCompleted
	case now.After(race.Deadline):
		return models.RaceStatusInProgress
	default:
		return models.RaceStatusUpcoming
	}
}

func (s *raceService) AutoUpdateStatusesByDates(ctx context.Context, seasonYear int) error {
	races, err := s.raceRepo.ListBySeason(ctx, seasonYear)
	if err != nil {
		return fmt.Errorf("failed to list races for status update: %w", err)
	}

	now := s.now()
	updated := 0
	for i := range races {
		race := &races[i]
		want := s.desiredStatus(race, now)
		if race.Status == want {
			continue
		}
		if err := s.raceRepo.UpdateStatus(ctx, race.ID, want); err != nil {
			s.logger.Error("failed to auto-update race status",
				slog.Int("race_id", race.ID),
				slog.String("status", string(want)),
				slog.Any("error", err),
			)
			continue
		}
		race.Status = want
		s.broadcastStatus(race)
		updated++
	}
	if updated > 0 {
		s.logger.Info("race statuses updated", slog.Int("season_year", seasonYear), slog.Int("updated", updated))
	}
	return nil
}

func (s *raceService) broadcastStatus(race *models.Race) {
	if s.hub == nil {
		return
	}
	room := realtime.SeasonRoom(race.SeasonYear)
	s.hub.BroadcastToRoom(room, realtime.Message{
		Type:    realtime.EventRaceStatusUpdated,
		Payload: race,
		Room:    room,
	})
}
