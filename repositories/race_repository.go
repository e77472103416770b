package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/halftime-club/paddock-predict/models"
)

var ErrRaceNotFound = errors.New("race not found")

type RaceRepository interface {
	GetByID(ctx context.Context, id int) (*models.Race, error)
	ListBySeason(ctx context.Context, seasonYear int) ([]models.Race, error)
	// UpsertByRound вставляет или обновляет этап по ключу (сезон, раунд).
	// Номера раундов и даты назначаются только синхронизацией календаря.
	UpsertByRound(ctx context.Context, race *models.Race) error
	UpdateStatus(ctx context.Context, id int, status models.RaceStatus) error
}

type postgresRaceRepository struct {
	db *sql.DB
}

func NewPostgresRaceRepository(db *sql.DB) RaceRepository {
	return &postgresRaceRepository{db: db}
}

func (r *postgresRaceRepository) scanRace(row interface{ Scan(...interface{}) error }) (*models.Race, error) {
	var rc models.Race
	err := row.Scan(
		&rc.ID, &rc.SeasonYear, &rc.RoundNumber, &rc.Name, &rc.Circuit, &rc.Country,
		&rc.SprintDate, &rc.RaceDate, &rc.Deadline, &rc.Status, &rc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRaceNotFound
		}
		return nil, fmt.Errorf("failed to scan race: %w", err)
	}
	return &rc, nil
}

const raceColumns = `id, season_year, round_number, name, circuit, country,
		sprint_date, race_date, deadline, status, created_at`

func (r *postgresRaceRepository) GetByID(ctx context.Context, id int) (*models.Race, error) {
	query := `SELECT ` + raceColumns + ` FROM races WHERE id = $1`
	return r.scanRace(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRaceRepository) ListBySeason(ctx context.Context, seasonYear int) ([]models.Race, error) {
	query := `SELECT ` + raceColumns + ` FROM races WHERE season_year = $1 ORDER BY round_number`
	rows, err := r.db.QueryContext(ctx, query, seasonYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	races := make([]models.Race, 0)
	for rows.Next() {
		rc, errScan := r.scanRace(rows)
		if errScan != nil {
			return nil, errScan
		}
		races = append(races, *rc)
	}
	return races, rows.Err()
}

func (r *postgresRaceRepository) UpsertByRound(ctx context.Context, race *models.Race) error {
	query := `
		INSERT INTO races (season_year, round_number, name, circuit, country, sprint_date, race_date, deadline, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (season_year, round_number) DO UPDATE SET
			name = EXCLUDED.name,
			circuit = EXCLUDED.circuit,
			country = EXCLUDED.country,
			sprint_date = EXCLUDED.sprint_date,
			race_date = EXCLUDED.race_date,
			deadline = EXCLUDED.deadline
		RETURNING id, status, created_at`
	return r.db.QueryRowContext(ctx, query,
		race.SeasonYear, race.RoundNumber, race.Name, race.Circuit, race.Country,
		race.SprintDate, race.RaceDate, race.Deadline, race.Status,
	).Scan(&race.ID, &race.Status, &race.CreatedAt)
}

func (r *postgresRaceRepository) UpdateStatus(ctx context.Context, id int, status models.RaceStatus) error {
	query := `UPDATE races SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRaceNotFound)
}
