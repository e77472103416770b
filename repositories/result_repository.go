package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/halftime-club/paddock-predict/models"
)

var ErrResultRiderInvalid = errors.New("result references unknown rider")

type ResultRepository interface {
	ListByRace(ctx context.Context, raceID int, resultType models.ResultType) ([]models.RaceResult, error)
	// ListBySeason возвращает все результаты сезона обоих типов — вход для
	// зачёта гонщиков.
	ListBySeason(ctx context.Context, seasonYear int) ([]models.RaceResult, error)
	// ReplaceForRace атомарно заменяет все результаты группы (этап, тип
	// сессии): старые записи удаляются, новые вставляются одной транзакцией.
	ReplaceForRace(ctx context.Context, raceID int, resultType models.ResultType, results []models.RaceResult) error
}

type postgresResultRepository struct {
	db *sql.DB
}

func NewPostgresResultRepository(db *sql.DB) ResultRepository {
	return &postgresResultRepository{db: db}
}

func (r *postgresResultRepository) ListByRace(ctx context.Context, raceID int, resultType models.ResultType) ([]models.RaceResult, error) {
	query := `
		SELECT rr.id, rr.race_id, rr.result_type, rr.position, rr.rider_id,
		       rd.id, rd.external_id, rd.name, rd.number, rd.team, rd.active, rd.created_at
		FROM race_results rr
		JOIN riders rd ON rr.rider_id = rd.id
		WHERE rr.race_id = $1 AND rr.result_type = $2
		ORDER BY rr.position`
	rows, err := r.db.QueryContext(ctx, query, raceID, resultType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]models.RaceResult, 0)
	for rows.Next() {
		var res models.RaceResult
		var rider models.Rider
		err := rows.Scan(
			&res.ID, &res.RaceID, &res.ResultType, &res.Position, &res.RiderID,
			&rider.ID, &rider.ExternalID, &rider.Name, &rider.Number, &rider.Team, &rider.Active, &rider.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan race result: %w", err)
		}
		res.Rider = &rider
		results = append(results, res)
	}
	return results, rows.Err()
}

func (r *postgresResultRepository) ListBySeason(ctx context.Context, seasonYear int) ([]models.RaceResult, error) {
	query := `
		SELECT rr.id, rr.race_id, rr.result_type, rr.position, rr.rider_id
		FROM race_results rr
		JOIN races ra ON rr.race_id = ra.id
		WHERE ra.season_year = $1
		ORDER BY rr.race_id, rr.result_type, rr.position`
	rows, err := r.db.QueryContext(ctx, query, seasonYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]models.RaceResult, 0)
	for rows.Next() {
		var res models.RaceResult
		if err := rows.Scan(&res.ID, &res.RaceID, &res.ResultType, &res.Position, &res.RiderID); err != nil {
			return nil, fmt.Errorf("failed to scan season result: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

func (r *postgresResultRepository) ReplaceForRace(ctx context.Context, raceID int, resultType models.ResultType, results []models.RaceResult) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReplaceForRace failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM race_results WHERE race_id = $1 AND result_type = $2`,
		raceID, resultType,
	); err != nil {
		return fmt.Errorf("ReplaceForRace failed to delete old results: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO race_results (race_id, result_type, position, rider_id)
		VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return fmt.Errorf("ReplaceForRace failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, res := range results {
		if _, err := stmt.ExecContext(ctx, raceID, resultType, res.Position, res.RiderID); err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
				return ErrResultRiderInvalid
			}
			return fmt.Errorf("ReplaceForRace failed for position %d: %w", res.Position, err)
		}
	}
	return tx.Commit()
}
