package models

import "time"

// RaceStatus представляет статусы этапа, соответствующие ENUM в БД.
type RaceStatus string

const (
	RaceStatusUpcoming   RaceStatus = "upcoming"
	RaceStatusInProgress RaceStatus = "in_progress"
	RaceStatusCompleted  RaceStatus = "completed"
)

// Race — этап календаря. RoundNumber и даты назначаются синхронизацией
// календаря и не меняются; Deadline — старт первой практики (FP1).
type Race struct {
	ID          int        `json:"id" db:"id"`
	SeasonYear  int        `json:"season_year" db:"season_year"`
	RoundNumber int        `json:"round_number" db:"round_number"`
	Name        string     `json:"name" db:"name"`
	Circuit     string     `json:"circuit" db:"circuit"`
	Country     string     `json:"country" db:"country"`
	SprintDate  time.Time  `json:"sprint_date" db:"sprint_date"`
	RaceDate    time.Time  `json:"race_date" db:"race_date"`
	Deadline    time.Time  `json:"deadline" db:"deadline"`
	Status      RaceStatus `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}
