package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/halftime-club/paddock-predict/models"
	"github.com/halftime-club/paddock-predict/repositories"
)

type PredictionService interface {
	// Submit сохраняет прогноз игрока на этап; повторная отправка заменяет
	// предыдущий прогноз. Признак опоздания выводится из дедлайна этапа.
	Submit(ctx context.Context, playerID int, input SubmitPredictionInput) (*models.RacePrediction, error)
	GetForPlayer(ctx context.Context, playerID, raceID int) (*models.RacePrediction, error)
}

type SubmitPredictionInput struct {
	RaceID int `json:"race_id"`

	Sprint1stID int `json:"sprint_1st_id"`
	Sprint2ndID int `json:"sprint_2nd_id"`
	Sprint3rdID int `json:"sprint_3rd_id"`

	Race1stID int `json:"race_1st_id"`
	Race2ndID int `json:"race_2nd_id"`
	Race3rdID int `json:"race_3rd_id"`

	Glorious1stID int `json:"glorious_1st_id"`
	Glorious2ndID int `json:"glorious_2nd_id"`
	Glorious3rdID int `json:"glorious_3rd_id"`
}

type predictionService struct {
	predictionRepo repositories.PredictionRepository
	raceRepo       repositories.RaceRepository
	now            func() time.Time
}

func NewPredictionService(predictionRepo repositories.PredictionRepository, raceRepo repositories.RaceRepository) PredictionService {
	return &predictionService{
		predictionRepo: predictionRepo,
		raceRepo:       raceRepo,
		now:            time.Now,
	}
}

func (s *predictionService) Submit(ctx context.Context, playerID int, input SubmitPredictionInput) (*models.RacePrediction, error) {
	slots := []int{
		input.Sprint1stID, input.Sprint2ndID, input.Sprint3rdID,
		input.Race1stID, input.Race2ndID, input.Race3rdID,
		input.Glorious1stID, input.Glorious2ndID, input.Glorious3rdID,
	}
	for _, id := range slots {
		if id <= 0 {
			return nil, ErrPredictionIncomplete
		}
	}

	race, err := s.raceRepo.GetByID(ctx, input.RaceID)
	if err != nil {
		if errors.Is(err, repositories.ErrRaceNotFound) {
			return nil, ErrRaceNotFound
		}
		return nil, fmt.Errorf("failed to load race %d: %w", input.RaceID, err)
	}

	submittedAt := s.now()
	prediction := &models.RacePrediction{
		PlayerID:      playerID,
		RaceID:        race.ID,
		Sprint1stID:   input.Sprint1stID,
		Sprint2ndID:   input.Sprint2ndID,
		Sprint3rdID:   input.Sprint3rdID,
		Race1stID:     input.Race1stID,
		Race2ndID:     input.Race2ndID,
		Race3rdID:     input.Race3rdID,
		Glorious1stID: input.Glorious1stID,
		Glorious2ndID: input.Glorious2ndID,
		Glorious3rdID: input.Glorious3rdID,
		SubmittedAt:   submittedAt,
		// Строго после дедлайна — опоздание; ровно в дедлайн ещё нет.
		IsLate: submittedAt.After(race.Deadline),
	}

	if err := s.predictionRepo.Upsert(ctx, prediction); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPredictionRaceInvalid):
			return nil, ErrRaceNotFound
		case errors.Is(err, repositories.ErrPredictionRiderInvalid):
			return nil, ErrRiderNotFound
		}
		return nil, fmt.Errorf("failed to save prediction: %w", err)
	}
	return prediction, nil
}

func (s *predictionService) GetForPlayer(ctx context.Context, playerID, raceID int) (*models.RacePrediction, error) {
	prediction, err := s.predictionRepo.GetByPlayerAndRace(ctx, playerID, raceID)
	if err != nil {
		if errors.Is(err, repositories.ErrPredictionNotFound) {
			return nil, ErrPredictionNotFound
		}
		return nil, fmt.Errorf("failed to load prediction: %w", err)
	}
	return prediction, nil
}
