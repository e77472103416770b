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
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerNameConflict = errors.New("player name conflict")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	GetByName(ctx context.Context, name string) (*models.Player, error)
	UpdateAvatarKey(ctx context.Context, id int, avatarKey *string) error
	List(ctx context.Context) ([]models.Player, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (name, passphrase_hash, email, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		player.Name,
		player.PassphraseHash,
		player.Email,
		player.Role,
	).Scan(&player.ID, &player.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "players_name_key" {
				return ErrPlayerNameConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresPlayerRepository) scanPlayer(row interface{ Scan(...interface{}) error }) (*models.Player, error) {
	var p models.Player
	err := row.Scan(&p.ID, &p.Name, &p.PassphraseHash, &p.Email, &p.Role, &p.AvatarKey, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}
	return &p, nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT id, name, passphrase_hash, email, role, avatar_key, created_at
		FROM players
		WHERE id = $1`
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) GetByName(ctx context.Context, name string) (*models.Player, error) {
	query := `
		SELECT id, name, passphrase_hash, email, role, avatar_key, created_at
		FROM players
		WHERE name = $1`
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, name))
}

func (r *postgresPlayerRepository) UpdateAvatarKey(ctx context.Context, id int, avatarKey *string) error {
	query := `UPDATE players SET avatar_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, avatarKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `
		SELECT id, name, passphrase_hash, email, role, avatar_key, created_at
		FROM players
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		p, errScan := r.scanPlayer(rows)
		if errScan != nil {
			return nil, errScan
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}
