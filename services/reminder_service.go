package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/halftime-club/paddock-predict/models"
	"github.com/halftime-club/paddock-predict/repositories"
)

// reminderWindow — за сколько до дедлайна начинаем напоминать.
const reminderWindow = 24 * time.Hour

type ReminderService interface {
	// SendDeadlineReminders пишет игрокам без прогноза на этапы, чей дедлайн
	// наступает в ближайшие сутки. Каждая пара (игрок, этап) получает не
	// больше одного письма за время жизни процесса.
	SendDeadlineReminders(ctx context.Context, seasonYear int) error
}

// DeadlineEmailer — то, что умеет отправить напоминание о дедлайне.
type DeadlineEmailer interface {
	SendDeadlineReminderEmail(playerEmail, playerName string, race *models.Race) error
}

type reminderService struct {
	playerRepo     repositories.PlayerRepository
	raceRepo       repositories.RaceRepository
	predictionRepo repositories.PredictionRepository
	email          DeadlineEmailer
	logger         *slog.Logger
	now            func() time.Time

	mu   sync.Mutex
	sent map[[2]int]bool // (playerID, raceID)
}

func NewReminderService(
	playerRepo repositories.PlayerRepository,
	raceRepo repositories.RaceRepository,
	predictionRepo repositories.PredictionRepository,
	email DeadlineEmailer,
	logger *slog.Logger,
) ReminderService {
	return &reminderService{
		playerRepo:     playerRepo,
		raceRepo:       raceRepo,
		predictionRepo: predictionRepo,
		email:          email,
		logger:         logger,
		now:            time.Now,
		sent:           make(map[[2]int]bool),
	}
}

func (s *reminderService) SendDeadlineReminders(ctx context.Context, seasonYear int) error {
	races, err := s.raceRepo.ListBySeason(ctx, seasonYear)
	if err != nil {
		return fmt.Errorf("failed to list races for reminders: %w", err)
	}

	now := s.now()
	var due []models.Race
	for _, race := range races {
		if race.Status != models.RaceStatusUpcoming {
			continue
		}
		if race.Deadline.After(now) && race.Deadline.Sub(now) <= reminderWindow {
			due = append(due, race)
		}
	}
	if len(due) == 0 {
		return nil
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list players for reminders: %w", err)
	}

	for _, race := range due {
		for _, player := range players {
			if player.Email == nil || *player.Email == "" {
				continue
			}
			key := [2]int{player.ID, race.ID}
			s.mu.Lock()
			already := s.sent[key]
			s.mu.Unlock()
			if already {
				continue
			}

			_, err := s.predictionRepo.GetByPlayerAndRace(ctx, player.ID, race.ID)
			if err == nil {
				continue // прогноз уже есть
			}
			if !errors.Is(err, repositories.ErrPredictionNotFound) {
				return fmt.Errorf("failed to check prediction for reminder: %w", err)
			}

			if err := s.email.SendDeadlineReminderEmail(*player.Email, player.Name, &race); err != nil {
				s.logger.Error("failed to send deadline reminder",
					slog.Int("player_id", player.ID),
					slog.Int("race_id", race.ID),
					slog.Any("error", err),
				)
				continue
			}
			s.mu.Lock()
			s.sent[key] = true
			s.mu.Unlock()
			s.logger.Info("deadline reminder sent",
				slog.Int("player_id", player.ID),
				slog.Int("race_id", race.ID),
			)
		}
	}
	return nil
}
