package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/halftime-club/paddock-predict/models"
	"github.com/halftime-club/paddock-predict/repositories"
)

// PodiumInput — три места подиума чемпионата, как их присылает клиент.
type PodiumInput struct {
	FirstPlaceID  int `json:"first_place_id"`
	SecondPlaceID int `json:"second_place_id"`
	ThirdPlaceID  int `json:"third_place_id"`
}

func (p PodiumInput) validate() error {
	if p.FirstPlaceID <= 0 || p.SecondPlaceID <= 0 || p.ThirdPlaceID <= 0 {
		return ErrValidationFailed
	}
	return nil
}

type ChampionshipService interface {
	// SubmitPrediction принимает или обновляет прогноз подиума сезона.
	// После фиксации итога сезона прогнозы больше не принимаются.
	SubmitPrediction(ctx context.Context, playerID, seasonYear int, podium PodiumInput) (*models.ChampionshipPrediction, error)
	GetPrediction(ctx context.Context, playerID, seasonYear int) (*models.ChampionshipPrediction, error)
	// RecordResult фиксирует итоговый подиум сезона. Только администратор.
	RecordResult(ctx context.Context, seasonYear int, podium PodiumInput) (*models.ChampionshipResult, error)
	GetResult(ctx context.Context, seasonYear int) (*models.ChampionshipResult, error)
}

type championshipService struct {
	championshipRepo repositories.ChampionshipRepository
	logger           *slog.Logger
	now              func() time.Time
}

func NewChampionshipService(championshipRepo repositories.ChampionshipRepository, logger *slog.Logger) ChampionshipService {
	return &championshipService{
		championshipRepo: championshipRepo,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *championshipService) SubmitPrediction(ctx context.Context, playerID, seasonYear int, podium PodiumInput) (*models.ChampionshipPrediction, error) {
	if seasonYear <= 0 {
		return nil, ErrSeasonRequired
	}
	if err := podium.validate(); err != nil {
		return nil, err
	}

	_, err := s.championshipRepo.GetResultBySeason(ctx, seasonYear)
	if err == nil {
		return nil, ErrChampionshipSealed
	}
	if !errors.Is(err, repositories.ErrChampionshipResultNotFound) {
		return nil, fmt.Errorf("failed to check championship result: %w", err)
	}

	prediction := &models.ChampionshipPrediction{
		PlayerID:      playerID,
		SeasonYear:    seasonYear,
		FirstPlaceID:  podium.FirstPlaceID,
		SecondPlaceID: podium.SecondPlaceID,
		ThirdPlaceID:  podium.ThirdPlaceID,
		SubmittedAt:   s.now(),
	}
	if err := s.championshipRepo.UpsertPrediction(ctx, prediction); err != nil {
		return nil, fmt.Errorf("failed to store championship prediction: %w", err)
	}

	s.logger.Info("championship prediction submitted",
		slog.Int("player_id", playerID),
		slog.Int("season_year", seasonYear),
	)
	return prediction, nil
}

func (s *championshipService) GetPrediction(ctx context.Context, playerID, seasonYear int) (*models.ChampionshipPrediction, error) {
	prediction, err := s.championshipRepo.GetPredictionByPlayer(ctx, playerID, seasonYear)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionshipPredictionNotFound) {
			return nil, ErrChampionshipPredictionNotFound
		}
		return nil, err
	}
	return prediction, nil
}

func (s *championshipService) RecordResult(ctx context.Context, seasonYear int, podium PodiumInput) (*models.ChampionshipResult, error) {
	if seasonYear <= 0 {
		return nil, ErrSeasonRequired
	}
	if err := podium.validate(); err != nil {
		return nil, err
	}

	result := &models.ChampionshipResult{
		SeasonYear:    seasonYear,
		FirstPlaceID:  podium.FirstPlaceID,
		SecondPlaceID: podium.SecondPlaceID,
		ThirdPlaceID:  podium.ThirdPlaceID,
	}
	if err := s.championshipRepo.UpsertResult(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to store championship result: %w", err)
	}

	s.logger.Info("championship result recorded", slog.Int("season_year", seasonYear))
	return result, nil
}

func (s *championshipService) GetResult(ctx context.Context, seasonYear int) (*models.ChampionshipResult, error) {
	result, err := s.championshipRepo.GetResultBySeason(ctx, seasonYear)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionshipResultNotFound) {
			return nil, ErrChampionshipResultNotFound
		}
		return nil, err
	}
	return result, nil
}
