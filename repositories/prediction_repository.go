package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/halftime-club/paddock-predict/models"
)

var (
	ErrPredictionNotFound     = errors.New("prediction not found")
	ErrPredictionRaceInvalid  = errors.New("prediction references unknown race")
	ErrPredictionRiderInvalid = errors.New("prediction references unknown rider")
)

type PredictionRepository interface {
	// Upsert сохраняет прогноз по ключу (игрок, этап): повторная отправка
	// заменяет предыдущую, дубликатов не бывает.
	Upsert(ctx context.Context, prediction *models.RacePrediction) error
	GetByPlayerAndRace(ctx context.Context, playerID, raceID int) (*models.RacePrediction, error)
	ListByRace(ctx context.Context, raceID int) ([]models.RacePrediction, error)
	// ListLateBySeason возвращает все опоздавшие прогнозы сезона — вход для
	// подсчёта номеров проступков.
	ListLateBySeason(ctx context.Context, seasonYear int) ([]models.RacePrediction, error)
}

type postgresPredictionRepository struct {
	db *sql.DB
}

func NewPostgresPredictionRepository(db *sql.DB) PredictionRepository {
	return &postgresPredictionRepository{db: db}
}

const predictionColumns = `id, player_id, race_id,
		sprint_1st_id, sprint_2nd_id, sprint_3rd_id,
		race_1st_id, race_2nd_id, race_3rd_id,
		glorious_1st_id, glorious_2nd_id, glorious_3rd_id,
		submitted_at, is_late`

func (r *postgresPredictionRepository) scanPrediction(row interface{ Scan(...interface{}) error }) (*models.RacePrediction, error) {
	var p models.RacePrediction
	err := row.Scan(
		&p.ID, &p.PlayerID, &p.RaceID,
		&p.Sprint1stID, &p.Sprint2ndID, &p.Sprint3rdID,
		&p.Race1stID, &p.Race2ndID, &p.Race3rdID,
		&p.Glorious1stID, &p.Glorious2ndID, &p.Glorious3rdID,
		&p.SubmittedAt, &p.IsLate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPredictionNotFound
		}
		return nil, fmt.Errorf("failed to scan prediction: %w", err)
	}
	return &p, nil
}

func (r *postgresPredictionRepository) Upsert(ctx context.Context, prediction *models.RacePrediction) error {
	query := `
		INSERT INTO race_predictions (player_id, race_id,
			sprint_1st_id, sprint_2nd_id, sprint_3rd_id,
			race_1st_id, race_2nd_id, race_3rd_id,
			glorious_1st_id, glorious_2nd_id, glorious_3rd_id,
			submitted_at, is_late)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (player_id, race_id) DO UPDATE SET
			sprint_1st_id = EXCLUDED.sprint_1st_id,
			sprint_2nd_id = EXCLUDED.sprint_2nd_id,
			sprint_3rd_id = EXCLUDED.sprint_3rd_id,
			race_1st_id = EXCLUDED.race_1st_id,
			race_2nd_id = EXCLUDED.race_2nd_id,
			race_3rd_id = EXCLUDED.race_3rd_id,
			glorious_1st_id = EXCLUDED.glorious_1st_id,
			glorious_2nd_id = EXCLUDED.glorious_2nd_id,
			glorious_3rd_id = EXCLUDED.glorious_3rd_id,
			submitted_at = EXCLUDED.submitted_at,
			is_late = EXCLUDED.is_late
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		prediction.PlayerID, prediction.RaceID,
		prediction.Sprint1stID, prediction.Sprint2ndID, prediction.Sprint3rdID,
		prediction.Race1stID, prediction.Race2ndID, prediction.Race3rdID,
		prediction.Glorious1stID, prediction.Glorious2ndID, prediction.Glorious3rdID,
		prediction.SubmittedAt, prediction.IsLate,
	).Scan(&prediction.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			if pqErr.Constraint == "race_predictions_race_id_fkey" {
				return ErrPredictionRaceInvalid
			}
			return ErrPredictionRiderInvalid
		}
		return err
	}
	return nil
}

func (r *postgresPredictionRepository) GetByPlayerAndRace(ctx context.Context, playerID, raceID int) (*models.RacePrediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM race_predictions WHERE player_id = $1 AND race_id = $2`
	return r.scanPrediction(r.db.QueryRowContext(ctx, query, playerID, raceID))
}

func (r *postgresPredictionRepository) ListByRace(ctx context.Context, raceID int) ([]models.RacePrediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM race_predictions WHERE race_id = $1 ORDER BY player_id`
	return r.listPredictions(ctx, query, raceID)
}

func (r *postgresPredictionRepository) ListLateBySeason(ctx context.Context, seasonYear int) ([]models.RacePrediction, error) {
	query := `
		SELECT p.id, p.player_id, p.race_id,
			p.sprint_1st_id, p.sprint_2nd_id, p.sprint_3rd_id,
			p.race_1st_id, p.race_2nd_id, p.race_3rd_id,
			p.glorious_1st_id, p.glorious_2nd_id, p.glorious_3rd_id,
			p.submitted_at, p.is_late
		FROM race_predictions p
		JOIN races r ON p.race_id = r.id
		WHERE p.is_late AND r.season_year = $1`
	return r.listPredictions(ctx, query, seasonYear)
}

func (r *postgresPredictionRepository) listPredictions(ctx context.Context, query string, args ...interface{}) ([]models.RacePrediction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	predictions := make([]models.RacePrediction, 0)
	for rows.Next() {
		p, errScan := r.scanPrediction(rows)
		if errScan != nil {
			return nil, errScan
		}
		predictions = append(predictions, *p)
	}
	return predictions, rows.Err()
}
