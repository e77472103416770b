package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/halftime-club/paddock-predict/models"
	"github.com/halftime-club/paddock-predict/repositories"
	"github.com/halftime-club/paddock-predict/scoring"
)

type StandingsService interface {
	// Leaderboard — таблица сезона: сумма гоночных очков плюс чемпионские
	// бонусы, по убыванию. Сезон всегда задаётся явно.
	Leaderboard(ctx context.Context, seasonYear int) ([]models.LeaderboardEntry, error)
	// Progression — накопительные итоги по этапам для графика прогресса.
	Progression(ctx context.Context, seasonYear int) ([]models.PlayerProgression, error)
}

type standingsService struct {
	tables           scoring.Tables
	playerRepo       repositories.PlayerRepository
	raceRepo         repositories.RaceRepository
	scoreRepo        repositories.ScoreRepository
	championshipRepo repositories.ChampionshipRepository
	logger           *slog.Logger
}

func NewStandingsService(
	tables scoring.Tables,
	playerRepo repositories.PlayerRepository,
	raceRepo repositories.RaceRepository,
	scoreRepo repositories.ScoreRepository,
	championshipRepo repositories.ChampionshipRepository,
	logger *slog.Logger,
) StandingsService {
	return &standingsService{
		tables:           tables,
		playerRepo:       playerRepo,
		raceRepo:         raceRepo,
		scoreRepo:        scoreRepo,
		championshipRepo: championshipRepo,
		logger:           logger,
	}
}

type seasonInputs struct {
	players []models.Player
	races   []models.Race
	scores  []models.PlayerScore
}

func (s *standingsService) fetchSeason(ctx context.Context, seasonYear int) (*seasonInputs, error) {
	if seasonYear <= 0 {
		return nil, ErrSeasonRequired
	}

	in := &seasonInputs{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		in.players, err = s.playerRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list players: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		in.races, err = s.raceRepo.ListBySeason(gCtx, seasonYear)
		if err != nil {
			return fmt.Errorf("failed to list races: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		in.scores, err = s.scoreRepo.ListBySeason(gCtx, seasonYear)
		if err != nil {
			return fmt.Errorf("failed to list scores: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

// championshipPoints считает чемпионские бонусы каждого игрока. Пока итог
// сезона не зафиксирован, бонусов ни у кого нет.
func (s *standingsService) championshipPoints(ctx context.Context, seasonYear int) (map[int]int, error) {
	result, err := s.championshipRepo.GetResultBySeason(ctx, seasonYear)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionshipResultNotFound) {
			return map[int]int{}, nil
		}
		return nil, fmt.Errorf("failed to load championship result: %w", err)
	}

	predictions, err := s.championshipRepo.ListPredictionsBySeason(ctx, seasonYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list championship predictions: %w", err)
	}

	actual := scoring.Podium{
		FirstID:  result.FirstPlaceID,
		SecondID: result.SecondPlaceID,
		ThirdID:  result.ThirdPlaceID,
	}
	points := make(map[int]int, len(predictions))
	for _, p := range predictions {
		predicted := scoring.Podium{
			FirstID:  p.FirstPlaceID,
			SecondID: p.SecondPlaceID,
			ThirdID:  p.ThirdPlaceID,
		}
		points[p.PlayerID] = scoring.ChampionshipPoints(s.tables, predicted, actual)
	}
	return points, nil
}

func (s *standingsService) Leaderboard(ctx context.Context, seasonYear int) ([]models.LeaderboardEntry, error) {
	in, err := s.fetchSeason(ctx, seasonYear)
	if err != nil {
		return nil, err
	}
	bonus, err := s.championshipPoints(ctx, seasonYear)
	if err != nil {
		return nil, err
	}
	return scoring.Leaderboard(in.players, in.scores, bonus), nil
}

func (s *standingsService) Progression(ctx context.Context, seasonYear int) ([]models.PlayerProgression, error) {
	in, err := s.fetchSeason(ctx, seasonYear)
	if err != nil {
		return nil, err
	}
	return scoring.Progressions(in.players, in.races, in.scores), nil
}
