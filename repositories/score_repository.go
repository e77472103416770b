package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/halftime-club/paddock-predict/models"
)

var ErrScoreNotFound = errors.New("player score not found")

type ScoreRepository interface {
	ListByRace(ctx context.Context, raceID int) ([]models.PlayerScore, error)
	ListBySeason(ctx context.Context, seasonYear int) ([]models.PlayerScore, error)
	// ReplaceForRace сохраняет пересчитанные очки этапа: каждая запись
	// перезаписывается целиком по ключу (игрок, этап), штрафные аудит-записи
	// добавляются в той же транзакции. Частичных обновлений не бывает.
	ReplaceForRace(ctx context.Context, scores []models.PlayerScore, penalties []models.Penalty) error
	ListPenaltiesByPlayer(ctx context.Context, playerID int) ([]models.Penalty, error)
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

const scoreColumns = `id, player_id, race_id,
		sprint_1st_points, sprint_2nd_points, sprint_3rd_points,
		race_1st_points, race_2nd_points, race_3rd_points,
		glorious_7_points, penalty_points, updated_at`

func (r *postgresScoreRepository) scanScore(row interface{ Scan(...interface{}) error }) (*models.PlayerScore, error) {
	var s models.PlayerScore
	err := row.Scan(
		&s.ID, &s.PlayerID, &s.RaceID,
		&s.Sprint1stPoints, &s.Sprint2ndPoints, &s.Sprint3rdPoints,
		&s.Race1stPoints, &s.Race2ndPoints, &s.Race3rdPoints,
		&s.Glorious7Points, &s.PenaltyPoints, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("failed to scan player score: %w", err)
	}
	return &s, nil
}

func (r *postgresScoreRepository) ListByRace(ctx context.Context, raceID int) ([]models.PlayerScore, error) {
	query := `SELECT ` + scoreColumns + ` FROM player_scores WHERE race_id = $1 ORDER BY player_id`
	return r.listScores(ctx, query, raceID)
}

func (r *postgresScoreRepository) ListBySeason(ctx context.Context, seasonYear int) ([]models.PlayerScore, error) {
	query := `
		SELECT s.id, s.player_id, s.race_id,
			s.sprint_1st_points, s.sprint_2nd_points, s.sprint_3rd_points,
			s.race_1st_points, s.race_2nd_points, s.race_3rd_points,
			s.glorious_7_points, s.penalty_points, s.updated_at
		FROM player_scores s
		JOIN races r ON s.race_id = r.id
		WHERE r.season_year = $1
		ORDER BY r.round_number, s.player_id`
	return r.listScores(ctx, query, seasonYear)
}

func (r *postgresScoreRepository) listScores(ctx context.Context, query string, args ...interface{}) ([]models.PlayerScore, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]models.PlayerScore, 0)
	for rows.Next() {
		s, errScan := r.scanScore(rows)
		if errScan != nil {
			return nil, errScan
		}
		scores = append(scores, *s)
	}
	return scores, rows.Err()
}

func (r *postgresScoreRepository) ReplaceForRace(ctx context.Context, scores []models.PlayerScore, penalties []models.Penalty) error {
	if len(scores) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReplaceForRace failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO player_scores (player_id, race_id,
			sprint_1st_points, sprint_2nd_points, sprint_3rd_points,
			race_1st_points, race_2nd_points, race_3rd_points,
			glorious_7_points, penalty_points, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (player_id, race_id) DO UPDATE SET
			sprint_1st_points = EXCLUDED.sprint_1st_points,
			sprint_2nd_points = EXCLUDED.sprint_2nd_points,
			sprint_3rd_points = EXCLUDED.sprint_3rd_points,
			race_1st_points = EXCLUDED.race_1st_points,
			race_2nd_points = EXCLUDED.race_2nd_points,
			race_3rd_points = EXCLUDED.race_3rd_points,
			glorious_7_points = EXCLUDED.glorious_7_points,
			penalty_points = EXCLUDED.penalty_points,
			updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("ReplaceForRace failed to prepare score statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, s := range scores {
		if _, err := stmt.ExecContext(ctx,
			s.PlayerID, s.RaceID,
			s.Sprint1stPoints, s.Sprint2ndPoints, s.Sprint3rdPoints,
			s.Race1stPoints, s.Race2ndPoints, s.Race3rdPoints,
			s.Glorious7Points, s.PenaltyPoints, now,
		); err != nil {
			return fmt.Errorf("ReplaceForRace failed for player %d: %w", s.PlayerID, err)
		}
	}

	for _, p := range penalties {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO penalties (player_id, race_id, offense_number, penalty_points, reason)
			VALUES ($1, $2, $3, $4, $5)`,
			p.PlayerID, p.RaceID, p.OffenseNumber, p.PenaltyPoints, p.Reason,
		); err != nil {
			return fmt.Errorf("ReplaceForRace failed to insert penalty for player %d: %w", p.PlayerID, err)
		}
	}

	return tx.Commit()
}

func (r *postgresScoreRepository) ListPenaltiesByPlayer(ctx context.Context, playerID int) ([]models.Penalty, error) {
	query := `
		SELECT id, player_id, race_id, offense_number, penalty_points, reason, created_at
		FROM penalties
		WHERE player_id = $1
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	penalties := make([]models.Penalty, 0)
	for rows.Next() {
		var p models.Penalty
		if err := rows.Scan(&p.ID, &p.PlayerID, &p.RaceID, &p.OffenseNumber, &p.PenaltyPoints, &p.Reason, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan penalty: %w", err)
		}
		penalties = append(penalties, p)
	}
	return penalties, rows.Err()
}
