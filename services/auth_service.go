package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/halftime-club/paddock-predict/models"
	"github.com/halftime-club/paddock-predict/repositories"
)

const minPassphraseLength = 8

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.Player, error)
	Login(ctx context.Context, input models.Credentials) (*models.Player, error)
}

type RegisterInput struct {
	Name       string `json:"name"`
	Passphrase string `json:"passphrase"`
	// Email не обязателен; без него игрок просто не получает напоминания
	// о дедлайнах.
	Email *string `json:"email,omitempty"`
}

type authService struct {
	playerRepo repositories.PlayerRepository
}

func NewAuthService(playerRepo repositories.PlayerRepository) AuthService {
	return &authService{playerRepo: playerRepo}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.Player, error) {
	if input.Name == "" {
		return nil, ErrPlayerNameRequired
	}
	if len(input.Passphrase) < minPassphraseLength {
		return nil, ErrPassphraseTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Passphrase), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash passphrase: %w", err)
	}

	player := &models.Player{
		Name:           input.Name,
		PassphraseHash: string(hash),
		Email:          input.Email,
		Role:           models.RolePlayer,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNameConflict) {
			return nil, ErrPlayerNameConflict
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	player.PassphraseHash = ""
	return player, nil
}

func (s *authService) Login(ctx context.Context, input models.Credentials) (*models.Player, error) {
	player, err := s.playerRepo.GetByName(ctx, input.Name)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find player by name: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(player.PassphraseHash), []byte(input.Passphrase))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare passphrase hash: %w", err)
	}

	player.PassphraseHash = ""
	return player, nil
}
