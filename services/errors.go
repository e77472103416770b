package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed        = errors.New("validation failed")
	ErrPassphraseTooShort      = errors.New("passphrase is too short")
	ErrPlayerNameRequired      = errors.New("player name is required")
	ErrPredictionIncomplete    = errors.New("all nine prediction slots are required")
	ErrGloriousSevenSize       = errors.New("glorious seven set must contain exactly seven riders")
	ErrNotEnoughRiders         = errors.New("not enough riders to select seven")
	ErrChampionshipSealed      = errors.New("championship result is already recorded for this season")
	ErrSeasonRequired          = errors.New("season year is required")
	ErrRaceAlreadyCompleted    = errors.New("race is already completed")
	ErrResultsEmpty            = errors.New("result set must not be empty")
	ErrInvalidResultType       = errors.New("result type must be sprint or race")
	ErrInvalidRaceStatus       = errors.New("invalid race status provided")
	ErrAvatarContentType       = errors.New("avatar must be a jpeg or png image")
	ErrUploadsDisabled         = errors.New("avatar storage is not configured")

	// Ошибки конфликтов
	ErrPlayerNameConflict = errors.New("player name is already in use")

	// Ошибки аутентификации и авторизации
	ErrAuthInvalidCredentials = errors.New("invalid name or passphrase")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Ошибки, специфичные для сущностей
	ErrPlayerNotFound                 = errors.New("player not found")
	ErrRiderNotFound                  = errors.New("rider not found")
	ErrRaceNotFound                   = errors.New("race not found")
	ErrPredictionNotFound             = errors.New("prediction not found")
	ErrScoreNotFound                  = errors.New("score not found")
	ErrResultsNotFound                = errors.New("race results not found")
	ErrChampionshipResultNotFound     = errors.New("championship result not found")
	ErrChampionshipPredictionNotFound = errors.New("championship prediction not found")
)

// InvalidResultsError оборачивает причину отказа валидатора результатов.
// Текст причины доходит до пользователя дословно.
type InvalidResultsError struct {
	ResultType string
	Reason     string
}

func (e *InvalidResultsError) Error() string {
	return "invalid " + e.ResultType + " results: " + e.Reason
}
