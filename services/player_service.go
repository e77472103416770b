package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/halftime-club/paddock-predict/models"
	"github.com/halftime-club/paddock-predict/repositories"
	"github.com/halftime-club/paddock-predict/storage"
)

type PlayerService interface {
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	// UploadAvatar загружает аватар в объектное хранилище и привязывает ключ
	// к игроку. Старый объект удаляется, если ключ сменился.
	UploadAvatar(ctx context.Context, playerID int, contentType string, reader io.Reader) (*models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	logger     *slog.Logger
}

func NewPlayerService(playerRepo repositories.PlayerRepository, uploader storage.FileUploader, logger *slog.Logger) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		uploader:   uploader,
		logger:     logger,
	}
}

// populateAvatarURL превращает ключ хранилища в публичный URL и прячет хеш.
func (s *playerService) populateAvatarURL(player *models.Player) {
	if player == nil {
		return
	}
	player.PassphraseHash = ""
	if player.AvatarKey != nil && *player.AvatarKey != "" && s.uploader != nil {
		url := s.uploader.GetPublicURL(*player.AvatarKey)
		if url != "" {
			player.AvatarURL = &url
		}
	}
}

func (s *playerService) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	s.populateAvatarURL(player)
	return player, nil
}

func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range players {
		s.populateAvatarURL(&players[i])
	}
	return players, nil
}

func avatarExtension(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	default:
		return "", ErrAvatarContentType
	}
}

func (s *playerService) UploadAvatar(ctx context.Context, playerID int, contentType string, reader io.Reader) (*models.Player, error) {
	ext, err := avatarExtension(contentType)
	if err != nil {
		return nil, err
	}

	// Хранилище опционально: без него аватары недоступны, но сервер работает.
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("avatars/player_%d%s", playerID, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	// Старый объект с другим расширением больше не нужен.
	if player.AvatarKey != nil && *player.AvatarKey != "" && *player.AvatarKey != key {
		if err := s.uploader.Delete(ctx, *player.AvatarKey); err != nil {
			s.logger.Warn("failed to delete previous avatar",
				slog.Int("player_id", playerID),
				slog.String("key", *player.AvatarKey),
				slog.Any("error", err),
			)
		}
	}

	if err := s.playerRepo.UpdateAvatarKey(ctx, playerID, &key); err != nil {
		return nil, fmt.Errorf("failed to store avatar key: %w", err)
	}
	player.AvatarKey = &key
	s.populateAvatarURL(player)
	return player, nil
}
