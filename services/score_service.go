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

const latePenaltyReason = "Late prediction submission"

// CalculationResult — итог пересчёта очков этапа. Пустой список прогнозов —
// информационное состояние, не ошибка.
type CalculationResult struct {
	RaceID           int                  `json:"race_id"`
	Preview          bool                 `json:"preview"`
	Scores           []models.PlayerScore `json:"scores"`
	PenaltiesApplied int                  `json:"penalties_applied"`
}

type ScoreService interface {
	// Calculate пересчитывает и сохраняет очки всех прогнозов этапа.
	// Записи очков заменяются целиком, штрафы пишутся в аудит.
	Calculate(ctx context.Context, raceID int) (*CalculationResult, error)
	// Preview — тот же расчёт без записи; использует ровно тот же код, так
	// что предпросмотр и сохранённый результат не могут разойтись.
	Preview(ctx context.Context, raceID int) (*CalculationResult, error)
	ListByRace(ctx context.Context, raceID int) ([]models.PlayerScore, error)
	// Breakdown пересобирает послотовую детализацию из тех же входов, что и
	// расчёт; отдельно она не хранится.
	Breakdown(ctx context.Context, playerID, raceID int) (*scoring.ScoreBreakdown, error)
	// PenaltyHistory — аудит штрафов игрока за опоздания, в порядке записи.
	PenaltyHistory(ctx context.Context, playerID int) ([]models.Penalty, error)
}

type scoreService struct {
	tables         scoring.Tables
	predictionRepo repositories.PredictionRepository
	resultRepo     repositories.ResultRepository
	gloriousRepo   repositories.GloriousSevenRepository
	scoreRepo      repositories.ScoreRepository
	raceRepo       repositories.RaceRepository
	logger         *slog.Logger
}

func NewScoreService(
	tables scoring.Tables,
	predictionRepo repositories.PredictionRepository,
	resultRepo repositories.ResultRepository,
	gloriousRepo repositories.GloriousSevenRepository,
	scoreRepo repositories.ScoreRepository,
	raceRepo repositories.RaceRepository,
	logger *slog.Logger,
) ScoreService {
	return &scoreService{
		tables:         tables,
		predictionRepo: predictionRepo,
		resultRepo:     resultRepo,
		gloriousRepo:   gloriousRepo,
		scoreRepo:      scoreRepo,
		raceRepo:       raceRepo,
		logger:         logger,
	}
}

// raceInputs — всё, что нужно для расчёта одного этапа.
type raceInputs struct {
	race          *models.Race
	predictions   []models.RacePrediction
	sprintResults []models.RaceResult
	raceResults   []models.RaceResult
	glorious      []models.GloriousSevenEntry
	latePredicted []models.RacePrediction // все опоздания сезона
}

func (s *scoreService) fetchInputs(ctx context.Context, raceID int) (*raceInputs, error) {
	race, err := s.raceRepo.GetByID(ctx, raceID)
	if err != nil {
		if errors.Is(err, repositories.ErrRaceNotFound) {
			return nil, ErrRaceNotFound
		}
		return nil, fmt.Errorf("failed to load race %d: %w", raceID, err)
	}

	in := &raceInputs{race: race}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		in.predictions, err = s.predictionRepo.ListByRace(gCtx, raceID)
		if err != nil {
			return fmt.Errorf("failed to fetch predictions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		in.sprintResults, err = s.resultRepo.ListByRace(gCtx, raceID, models.ResultTypeSprint)
		if err != nil {
			return fmt.Errorf("failed to fetch sprint results: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		in.raceResults, err = s.resultRepo.ListByRace(gCtx, raceID, models.ResultTypeRace)
		if err != nil {
			return fmt.Errorf("failed to fetch race results: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		in.glorious, err = s.gloriousRepo.ListByRace(gCtx, raceID)
		if err != nil {
			return fmt.Errorf("failed to fetch glorious seven: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		in.latePredicted, err = s.predictionRepo.ListLateBySeason(gCtx, race.SeasonYear)
		if err != nil {
			return fmt.Errorf("failed to fetch late prediction history: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

// validateInputs — ворота перед любым расчётом: обе группы результатов
// должны существовать и пройти структурную проверку.
func (s *scoreService) validateInputs(in *raceInputs) error {
	if len(in.sprintResults) == 0 || len(in.raceResults) == 0 {
		return ErrResultsNotFound
	}
	if err := scoring.ValidateResults(in.sprintResults); err != nil {
		var vErr *scoring.ValidationError
		if errors.As(err, &vErr) {
			return &InvalidResultsError{ResultType: string(models.ResultTypeSprint), Reason: vErr.Reason}
		}
		return err
	}
	if err := scoring.ValidateResults(in.raceResults); err != nil {
		var vErr *scoring.ValidationError
		if errors.As(err, &vErr) {
			return &InvalidResultsError{ResultType: string(models.ResultTypeRace), Reason: vErr.Reason}
		}
		return err
	}
	return nil
}

func (s *scoreService) lateCounts(in *raceInputs) map[int]int {
	counts := make(map[int]int, len(in.predictions))
	for _, p := range in.predictions {
		counts[p.PlayerID] = scoring.CountLateSubmissions(p.PlayerID, in.race.ID, in.latePredicted)
	}
	return counts
}

func (s *scoreService) compute(ctx context.Context, raceID int) (*raceInputs, []models.PlayerScore, map[int]int, error) {
	in, err := s.fetchInputs(ctx, raceID)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(in.predictions) == 0 {
		return in, nil, nil, nil
	}
	if err := s.validateInputs(in); err != nil {
		return nil, nil, nil, err
	}

	counts := s.lateCounts(in)
	scores := scoring.BatchScores(
		s.tables,
		in.predictions,
		in.sprintResults,
		in.raceResults,
		models.GloriousSevenRiderIDs(in.glorious),
		counts,
	)
	return in, scores, counts, nil
}

func (s *scoreService) Calculate(ctx context.Context, raceID int) (*CalculationResult, error) {
	_, scores, counts, err := s.compute(ctx, raceID)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		s.logger.Info("no predictions to score", slog.Int("race_id", raceID))
		return &CalculationResult{RaceID: raceID, Scores: []models.PlayerScore{}}, nil
	}

	penalties := make([]models.Penalty, 0)
	for _, score := range scores {
		if score.PenaltyPoints > 0 {
			penalties = append(penalties, models.Penalty{
				PlayerID:      score.PlayerID,
				RaceID:        score.RaceID,
				OffenseNumber: counts[score.PlayerID] + 1,
				PenaltyPoints: score.PenaltyPoints,
				Reason:        latePenaltyReason,
			})
		}
	}

	if err := s.scoreRepo.ReplaceForRace(ctx, scores, penalties); err != nil {
		return nil, fmt.Errorf("failed to store scores: %w", err)
	}

	s.logger.Info("scores calculated",
		slog.Int("race_id", raceID),
		slog.Int("scores", len(scores)),
		slog.Int("penalties", len(penalties)),
	)
	return &CalculationResult{
		RaceID:           raceID,
		Scores:           scores,
		PenaltiesApplied: len(penalties),
	}, nil
}

func (s *scoreService) Preview(ctx context.Context, raceID int) (*CalculationResult, error) {
	_, scores, _, err := s.compute(ctx, raceID)
	if err != nil {
		return nil, err
	}
	penaltiesApplied := 0
	for _, score := range scores {
		if score.PenaltyPoints > 0 {
			penaltiesApplied++
		}
	}
	if scores == nil {
		scores = []models.PlayerScore{}
	}
	return &CalculationResult{
		RaceID:           raceID,
		Preview:          true,
		Scores:           scores,
		PenaltiesApplied: penaltiesApplied,
	}, nil
}

func (s *scoreService) ListByRace(ctx context.Context, raceID int) ([]models.PlayerScore, error) {
	return s.scoreRepo.ListByRace(ctx, raceID)
}

func (s *scoreService) PenaltyHistory(ctx context.Context, playerID int) ([]models.Penalty, error) {
	return s.scoreRepo.ListPenaltiesByPlayer(ctx, playerID)
}

func (s *scoreService) Breakdown(ctx context.Context, playerID, raceID int) (*scoring.ScoreBreakdown, error) {
	in, err := s.fetchInputs(ctx, raceID)
	if err != nil {
		return nil, err
	}

	var prediction *models.RacePrediction
	for i := range in.predictions {
		if in.predictions[i].PlayerID == playerID {
			prediction = &in.predictions[i]
			break
		}
	}
	if prediction == nil {
		return nil, ErrPredictionNotFound
	}
	if err := s.validateInputs(in); err != nil {
		return nil, err
	}

	prior := scoring.CountLateSubmissions(playerID, raceID, in.latePredicted)
	bd := scoring.Breakdown(
		s.tables,
		*prediction,
		in.sprintResults,
		in.raceResults,
		models.GloriousSevenRiderIDs(in.glorious),
		prior,
	)
	return &bd, nil
}
