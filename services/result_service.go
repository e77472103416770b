package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/halftime-club/paddock-predict/models"
	"github.com/halftime-club/paddock-predict/repositories"
	"github.com/halftime-club/paddock-predict/scoring"
)

type ResultService interface {
	// Replace заменяет результаты группы (этап, тип сессии) целиком.
	// Набор должен пройти структурную валидацию до записи; причина отказа
	// возвращается дословно.
	Replace(ctx context.Context, raceID int, resultType models.ResultType, input []ResultEntryInput) ([]models.RaceResult, error)
	ListByRace(ctx context.Context, raceID int, resultType models.ResultType) ([]models.RaceResult, error)
	SetGloriousSeven(ctx context.Context, raceID int, riderIDs []int) ([]models.GloriousSevenEntry, error)
	// GenerateGloriousSeven собирает семёрку автоматически: зачёт гонщиков по
	// очкам чемпионата, без тройки лидеров и тройки замыкающих, случайные
	// семь из оставшихся.
	GenerateGloriousSeven(ctx context.Context, raceID int) ([]models.GloriousSevenEntry, error)
	GetGloriousSeven(ctx context.Context, raceID int) ([]models.GloriousSevenEntry, error)
}

type ResultEntryInput struct {
	Position int `json:"position"`
	RiderID  int `json:"rider_id"`
}

type resultService struct {
	resultRepo   repositories.ResultRepository
	gloriousRepo repositories.GloriousSevenRepository
	raceRepo     repositories.RaceRepository
	riderRepo    repositories.RiderRepository
	shuffle      func(n int, swap func(i, j int))
}

func NewResultService(
	resultRepo repositories.ResultRepository,
	gloriousRepo repositories.GloriousSevenRepository,
	raceRepo repositories.RaceRepository,
	riderRepo repositories.RiderRepository,
) ResultService {
	return &resultService{
		resultRepo:   resultRepo,
		gloriousRepo: gloriousRepo,
		raceRepo:     raceRepo,
		riderRepo:    riderRepo,
		shuffle:      rand.Shuffle,
	}
}

func (s *resultService) Replace(ctx context.Context, raceID int, resultType models.ResultType, input []ResultEntryInput) ([]models.RaceResult, error) {
	if resultType != models.ResultTypeSprint && resultType != models.ResultTypeRace {
		return nil, ErrInvalidResultType
	}
	if len(input) == 0 {
		return nil, ErrResultsEmpty
	}

	if _, err := s.raceRepo.GetByID(ctx, raceID); err != nil {
		if errors.Is(err, repositories.ErrRaceNotFound) {
			return nil, ErrRaceNotFound
		}
		return nil, fmt.Errorf("failed to load race %d: %w", raceID, err)
	}

	results := make([]models.RaceResult, 0, len(input))
	for _, in := range input {
		results = append(results, models.RaceResult{
			RaceID:     raceID,
			ResultType: resultType,
			Position:   in.Position,
			RiderID:    in.RiderID,
		})
	}

	if err := scoring.ValidateResults(results); err != nil {
		var vErr *scoring.ValidationError
		if errors.As(err, &vErr) {
			return nil, &InvalidResultsError{ResultType: string(resultType), Reason: vErr.Reason}
		}
		return nil, err
	}

	if err := s.resultRepo.ReplaceForRace(ctx, raceID, resultType, results); err != nil {
		if errors.Is(err, repositories.ErrResultRiderInvalid) {
			return nil, ErrRiderNotFound
		}
		return nil, fmt.Errorf("failed to replace results: %w", err)
	}
	return s.resultRepo.ListByRace(ctx, raceID, resultType)
}

func (s *resultService) ListByRace(ctx context.Context, raceID int, resultType models.ResultType) ([]models.RaceResult, error) {
	if resultType != models.ResultTypeSprint && resultType != models.ResultTypeRace {
		return nil, ErrInvalidResultType
	}
	return s.resultRepo.ListByRace(ctx, raceID, resultType)
}

func (s *resultService) SetGloriousSeven(ctx context.Context, raceID int, riderIDs []int) ([]models.GloriousSevenEntry, error) {
	if len(riderIDs) != 7 {
		return nil, ErrGloriousSevenSize
	}
	seen := make(map[int]bool, 7)
	for _, id := range riderIDs {
		if id <= 0 || seen[id] {
			return nil, ErrGloriousSevenSize
		}
		seen[id] = true
	}

	if _, err := s.raceRepo.GetByID(ctx, raceID); err != nil {
		if errors.Is(err, repositories.ErrRaceNotFound) {
			return nil, ErrRaceNotFound
		}
		return nil, fmt.Errorf("failed to load race %d: %w", raceID, err)
	}

	entries := make([]models.GloriousSevenEntry, 0, 7)
	for i, id := range riderIDs {
		entries = append(entries, models.GloriousSevenEntry{
			RaceID:       raceID,
			RiderID:      id,
			DisplayOrder: i + 1,
		})
	}
	if err := s.gloriousRepo.ReplaceForRace(ctx, raceID, entries); err != nil {
		return nil, fmt.Errorf("failed to replace glorious seven: %w", err)
	}
	return s.gloriousRepo.ListByRace(ctx, raceID)
}

func (s *resultService) GenerateGloriousSeven(ctx context.Context, raceID int) ([]models.GloriousSevenEntry, error) {
	race, err := s.raceRepo.GetByID(ctx, raceID)
	if err != nil {
		if errors.Is(err, repositories.ErrRaceNotFound) {
			return nil, ErrRaceNotFound
		}
		return nil, fmt.Errorf("failed to load race %d: %w", raceID, err)
	}

	riders, err := s.riderRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list active riders: %w", err)
	}
	results, err := s.resultRepo.ListBySeason(ctx, race.SeasonYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list season results: %w", err)
	}

	riderIDs := make([]int, 0, len(riders))
	for _, r := range riders {
		riderIDs = append(riderIDs, r.ID)
	}

	standings := scoring.RiderStandings(riderIDs, results)
	candidates := scoring.GloriousSevenCandidates(standings)
	if len(candidates) < 7 {
		return nil, ErrNotEnoughRiders
	}

	picked := append([]scoring.RiderStanding(nil), candidates...)
	s.shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})

	entries := make([]models.GloriousSevenEntry, 0, 7)
	for i, c := range picked[:7] {
		entries = append(entries, models.GloriousSevenEntry{
			RaceID:       raceID,
			RiderID:      c.RiderID,
			DisplayOrder: i + 1,
		})
	}
	if err := s.gloriousRepo.ReplaceForRace(ctx, raceID, entries); err != nil {
		return nil, fmt.Errorf("failed to replace glorious seven: %w", err)
	}
	return s.gloriousRepo.ListByRace(ctx, raceID)
}

func (s *resultService) GetGloriousSeven(ctx context.Context, raceID int) ([]models.GloriousSevenEntry, error) {
	return s.gloriousRepo.ListByRace(ctx, raceID)
}
