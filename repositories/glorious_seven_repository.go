package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/halftime-club/paddock-predict/models"
)

type GloriousSevenRepository interface {
	ListByRace(ctx context.Context, raceID int) ([]models.GloriousSevenEntry, error)
	// ReplaceForRace заменяет состав семёрки этапа целиком.
	ReplaceForRace(ctx context.Context, raceID int, entries []models.GloriousSevenEntry) error
}

type postgresGloriousSevenRepository struct {
	db *sql.DB
}

func NewPostgresGloriousSevenRepository(db *sql.DB) GloriousSevenRepository {
	return &postgresGloriousSevenRepository{db: db}
}

func (r *postgresGloriousSevenRepository) ListByRace(ctx context.Context, raceID int) ([]models.GloriousSevenEntry, error) {
	query := `
		SELECT gs.id, gs.race_id, gs.rider_id, gs.display_order,
		       rd.id, rd.external_id, rd.name, rd.number, rd.team, rd.active, rd.created_at
		FROM glorious_seven gs
		JOIN riders rd ON gs.rider_id = rd.id
		WHERE gs.race_id = $1
		ORDER BY gs.display_order`
	rows, err := r.db.QueryContext(ctx, query, raceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.GloriousSevenEntry, 0, 7)
	for rows.Next() {
		var e models.GloriousSevenEntry
		var rider models.Rider
		err := rows.Scan(
			&e.ID, &e.RaceID, &e.RiderID, &e.DisplayOrder,
			&rider.ID, &rider.ExternalID, &rider.Name, &rider.Number, &rider.Team, &rider.Active, &rider.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan glorious seven entry: %w", err)
		}
		e.Rider = &rider
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *postgresGloriousSevenRepository) ReplaceForRace(ctx context.Context, raceID int, entries []models.GloriousSevenEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReplaceForRace failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM glorious_seven WHERE race_id = $1`, raceID); err != nil {
		return fmt.Errorf("ReplaceForRace failed to delete old entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO glorious_seven (race_id, rider_id, display_order)
		VALUES ($1, $2, $3)`)
	if err != nil {
		return fmt.Errorf("ReplaceForRace failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, raceID, e.RiderID, e.DisplayOrder); err != nil {
			return fmt.Errorf("ReplaceForRace failed for rider %d: %w", e.RiderID, err)
		}
	}
	return tx.Commit()
}
