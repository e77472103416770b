package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/halftime-club/paddock-predict/models"
)

var (
	ErrChampionshipPredictionNotFound = errors.New("championship prediction not found")
	ErrChampionshipResultNotFound     = errors.New("championship result not found")
)

type ChampionshipRepository interface {
	// UpsertPrediction — один прогноз подиума на игрока на сезон.
	UpsertPrediction(ctx context.Context, prediction *models.ChampionshipPrediction) error
	GetPredictionByPlayer(ctx context.Context, playerID, seasonYear int) (*models.ChampionshipPrediction, error)
	ListPredictionsBySeason(ctx context.Context, seasonYear int) ([]models.ChampionshipPrediction, error)
	// UpsertResult — один итоговый подиум на сезон.
	UpsertResult(ctx context.Context, result *models.ChampionshipResult) error
	GetResultBySeason(ctx context.Context, seasonYear int) (*models.ChampionshipResult, error)
}

type postgresChampionshipRepository struct {
	db *sql.DB
}

func NewPostgresChampionshipRepository(db *sql.DB) ChampionshipRepository {
	return &postgresChampionshipRepository{db: db}
}

func (r *postgresChampionshipRepository) UpsertPrediction(ctx context.Context, prediction *models.ChampionshipPrediction) error {
	query := `
		INSERT INTO championship_predictions (player_id, season_year, first_place_id, second_place_id, third_place_id, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (player_id, season_year) DO UPDATE SET
			first_place_id = EXCLUDED.first_place_id,
			second_place_id = EXCLUDED.second_place_id,
			third_place_id = EXCLUDED.third_place_id,
			submitted_at = EXCLUDED.submitted_at
		RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		prediction.PlayerID, prediction.SeasonYear,
		prediction.FirstPlaceID, prediction.SecondPlaceID, prediction.ThirdPlaceID,
		prediction.SubmittedAt,
	).Scan(&prediction.ID)
}

func (r *postgresChampionshipRepository) scanPrediction(row interface{ Scan(...interface{}) error }) (*models.ChampionshipPrediction, error) {
	var p models.ChampionshipPrediction
	err := row.Scan(&p.ID, &p.PlayerID, &p.SeasonYear, &p.FirstPlaceID, &p.SecondPlaceID, &p.ThirdPlaceID, &p.SubmittedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChampionshipPredictionNotFound
		}
		return nil, fmt.Errorf("failed to scan championship prediction: %w", err)
	}
	return &p, nil
}

func (r *postgresChampionshipRepository) GetPredictionByPlayer(ctx context.Context, playerID, seasonYear int) (*models.ChampionshipPrediction, error) {
	query := `
		SELECT id, player_id, season_year, first_place_id, second_place_id, third_place_id, submitted_at
		FROM championship_predictions
		WHERE player_id = $1 AND season_year = $2`
	return r.scanPrediction(r.db.QueryRowContext(ctx, query, playerID, seasonYear))
}

func (r *postgresChampionshipRepository) ListPredictionsBySeason(ctx context.Context, seasonYear int) ([]models.ChampionshipPrediction, error) {
	query := `
		SELECT id, player_id, season_year, first_place_id, second_place_id, third_place_id, submitted_at
		FROM championship_predictions
		WHERE season_year = $1
		ORDER BY player_id`
	rows, err := r.db.QueryContext(ctx, query, seasonYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	predictions := make([]models.ChampionshipPrediction, 0)
	for rows.Next() {
		p, errScan := r.scanPrediction(rows)
		if errScan != nil {
			return nil, errScan
		}
		predictions = append(predictions, *p)
	}
	return predictions, rows.Err()
}

func (r *postgresChampionshipRepository) UpsertResult(ctx context.Context, result *models.ChampionshipResult) error {
	query := `
		INSERT INTO championship_results (season_year, first_place_id, second_place_id, third_place_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (season_year) DO UPDATE SET
			first_place_id = EXCLUDED.first_place_id,
			second_place_id = EXCLUDED.second_place_id,
			third_place_id = EXCLUDED.third_place_id
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		result.SeasonYear, result.FirstPlaceID, result.SecondPlaceID, result.ThirdPlaceID,
	).Scan(&result.ID, &result.CreatedAt)
}

func (r *postgresChampionshipRepository) GetResultBySeason(ctx context.Context, seasonYear int) (*models.ChampionshipResult, error) {
	query := `
		SELECT id, season_year, first_place_id, second_place_id, third_place_id, created_at
		FROM championship_results
		WHERE season_year = $1`
	var res models.ChampionshipResult
	err := r.db.QueryRowContext(ctx, query, seasonYear).Scan(
		&res.ID, &res.SeasonYear, &res.FirstPlaceID, &res.SecondPlaceID, &res.ThirdPlaceID, &res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChampionshipResultNotFound
		}
		return nil, fmt.Errorf("failed to scan championship result: %w", err)
	}
	return &res, nil
}
