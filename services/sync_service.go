package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/halftime-club/paddock-predict/ingest"
	"github.com/halftime-club/paddock-predict/models"
	"github.com/halftime-club/paddock-predict/realtime"
	"github.com/halftime-club/paddock-predict/repositories"
)

// SyncReport — сводка одного прохода синхронизации.
type SyncReport struct {
	SeasonYear        int `json:"season_year"`
	RidersUpserted    int `json:"riders_upserted"`
	RidersDeactivated int `json:"riders_deactivated"`
	RacesUpserted     int `json:"races_upserted"`
}

type SyncService interface {
	// SyncRiders подтягивает классификацию сезона. Классификация первична:
	// гонщики из неё активируются, все прочие деактивируются, но не
	// удаляются, чтобы исторические результаты не повисли.
	SyncRiders(ctx context.Context, seasonYear int) (*SyncReport, error)
	// SyncCalendar подтягивает календарь этапов сезона по ключу (сезон, раунд).
	SyncCalendar(ctx context.Context, seasonYear int) (*SyncReport, error)
	// SyncSeason — полный проход: сначала гонщики, затем календарь.
	SyncSeason(ctx context.Context, seasonYear int) (*SyncReport, error)
}

type syncService struct {
	client    *ingest.Client
	riderRepo repositories.RiderRepository
	raceRepo  repositories.RaceRepository
	hub       *realtime.Hub
	logger    *slog.Logger
}

func NewSyncService(
	client *ingest.Client,
	riderRepo repositories.RiderRepository,
	raceRepo repositories.RaceRepository,
	hub *realtime.Hub,
	logger *slog.Logger,
) SyncService {
	return &syncService{
		client:    client,
		riderRepo: riderRepo,
		raceRepo:  raceRepo,
		hub:       hub,
		logger:    logger,
	}
}

func (s *syncService) SyncRiders(ctx context.Context, seasonYear int) (*SyncReport, error) {
	if seasonYear <= 0 {
		return nil, ErrSeasonRequired
	}

	classified, err := s.client.Classification(ctx, seasonYear)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch classification: %w", err)
	}
	if len(classified) == 0 {
		// До первого этапа классификация пуста: берём заявочный список.
		s.logger.Warn("classification is empty, falling back to season entry list",
			slog.Int("season_year", seasonYear),
		)
		classified, err = s.client.SeasonRiders(ctx, seasonYear)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch season riders: %w", err)
		}
	}

	report := &SyncReport{SeasonYear: seasonYear}
	externalIDs := make([]string, 0, len(classified))
	for _, cr := range classified {
		rider := &models.Rider{
			ExternalID: cr.ExternalID,
			Name:       cr.FullName,
			Number:     cr.Number,
			Team:       cr.TeamName,
			Active:     true,
		}
		if err := s.riderRepo.UpsertByExternalID(ctx, rider); err != nil {
			return nil, fmt.Errorf("failed to upsert rider %q: %w", cr.FullName, err)
		}
		externalIDs = append(externalIDs, cr.ExternalID)
		report.RidersUpserted++
	}

	deactivated, err := s.riderRepo.DeactivateExcept(ctx, externalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate absent riders: %w", err)
	}
	report.RidersDeactivated = deactivated

	s.logger.Info("riders synced",
		slog.Int("season_year", seasonYear),
		slog.Int("upserted", report.RidersUpserted),
		slog.Int("deactivated", report.RidersDeactivated),
	)
	return report, nil
}

func (s *syncService) SyncCalendar(ctx context.Context, seasonYear int) (*SyncReport, error) {
	if seasonYear <= 0 {
		return nil, ErrSeasonRequired
	}

	events, err := s.client.Calendar(ctx, seasonYear)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar: %w", err)
	}

	report := &SyncReport{SeasonYear: seasonYear}
	for _, ev := range events {
		race := &models.Race{
			SeasonYear:  seasonYear,
			RoundNumber: ev.RoundNumber,
			Name:        ev.Name,
			Circuit:     ev.Circuit,
			Country:     ev.Country,
			SprintDate:  ev.SprintDate,
			RaceDate:    ev.RaceDate,
			Deadline:    ev.PracticeStart,
			Status:      models.RaceStatusUpcoming,
		}
		if err := s.raceRepo.UpsertByRound(ctx, race); err != nil {
			return nil, fmt.Errorf("failed to upsert race round %d: %w", ev.RoundNumber, err)
		}
		report.RacesUpserted++
	}

	if s.hub != nil && report.RacesUpserted > 0 {
		room := realtime.SeasonRoom(seasonYear)
		s.hub.BroadcastToRoom(room, realtime.Message{
			Type:    realtime.EventCalendarSynced,
			Payload: report,
			Room:    room,
		})
	}

	s.logger.Info("calendar synced",
		slog.Int("season_year", seasonYear),
		slog.Int("races", report.RacesUpserted),
	)
	return report, nil
}

func (s *syncService) SyncSeason(ctx context.Context, seasonYear int) (*SyncReport, error) {
	ridersReport, err := s.SyncRiders(ctx, seasonYear)
	if err != nil {
		return nil, err
	}
	calendarReport, err := s.SyncCalendar(ctx, seasonYear)
	if err != nil {
		return nil, err
	}
	return &SyncReport{
		SeasonYear:        seasonYear,
		RidersUpserted:    ridersReport.RidersUpserted,
		RidersDeactivated: ridersReport.RidersDeactivated,
		RacesUpserted:     calendarReport.RacesUpserted,
	}, nil
}
