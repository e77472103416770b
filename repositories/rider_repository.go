package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/halftime-club/paddock-predict/models"
)

var ErrRiderNotFound = errors.New("rider not found")

type RiderRepository interface {
	GetByID(ctx context.Context, id int) (*models.Rider, error)
	List(ctx context.Context, activeOnly bool) ([]models.Rider, error)
	// UpsertByExternalID вставляет или обновляет гонщика по его ID во
	// внешнем API и всегда помечает его активным.
	UpsertByExternalID(ctx context.Context, rider *models.Rider) error
	// DeactivateExcept снимает флаг active у всех гонщиков, чьих внешних ID
	// нет в последней авторитетной классификации. Возвращает число затронутых.
	DeactivateExcept(ctx context.Context, activeExternalIDs []string) (int, error)
}

type postgresRiderRepository struct {
	db *sql.DB
}

func NewPostgresRiderRepository(db *sql.DB) RiderRepository {
	return &postgresRiderRepository{db: db}
}

func (r *postgresRiderRepository) scanRider(row interface{ Scan(...interface{}) error }) (*models.Rider, error) {
	var rd models.Rider
	err := row.Scan(&rd.ID, &rd.ExternalID, &rd.Name, &rd.Number, &rd.Team, &rd.Active, &rd.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRiderNotFound
		}
		return nil, fmt.Errorf("failed to scan rider: %w", err)
	}
	return &rd, nil
}

func (r *postgresRiderRepository) GetByID(ctx context.Context, id int) (*models.Rider, error) {
	query := `
		SELECT id, external_id, name, number, team, active, created_at
		FROM riders
		WHERE id = $1`
	return r.scanRider(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRiderRepository) List(ctx context.Context, activeOnly bool) ([]models.Rider, error) {
	query := `
		SELECT id, external_id, name, number, team, active, created_at
		FROM riders`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY number`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	riders := make([]models.Rider, 0)
	for rows.Next() {
		rd, errScan := r.scanRider(rows)
		if errScan != nil {
			return nil, errScan
		}
		riders = append(riders, *rd)
	}
	return riders, rows.Err()
}

func (r *postgresRiderRepository) UpsertByExternalID(ctx context.Context, rider *models.Rider) error {
	query := `
		INSERT INTO riders (external_id, name, number, team, active)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (external_id) DO UPDATE SET
			name = EXCLUDED.name,
			number = EXCLUDED.number,
			team = EXCLUDED.team,
			active = TRUE
		RETURNING id, created_at`
	rider.Active = true
	return r.db.QueryRowContext(ctx, query,
		rider.ExternalID, rider.Name, rider.Number, rider.Team,
	).Scan(&rider.ID, &rider.CreatedAt)
}

func (r *postgresRiderRepository) DeactivateExcept(ctx context.Context, activeExternalIDs []string) (int, error) {
	query := `
		UPDATE riders SET active = FALSE
		WHERE active AND NOT (external_id = ANY($1))`
	result, err := r.db.ExecContext(ctx, query, pq.Array(activeExternalIDs))
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	return int(affected), err
}
