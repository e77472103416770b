package models

import "time"

// RacePrediction — прогноз игрока на этап: топ-3 спринта, топ-3 гонки и
// топ-3 внутри Glorious 7. У игрока не более одного активного прогноза на
// этап — повторная отправка заменяет предыдущий.
type RacePrediction struct {
	ID       int `json:"id" db:"id"`
	PlayerID int `json:"player_id" db:"player_id"`
	RaceID   int `json:"race_id" db:"race_id"`

	Sprint1stID int `json:"sprint_1st_id" db:"sprint_1st_id"`
	Sprint2ndID int `json:"sprint_2nd_id" db:"sprint_2nd_id"`
	Sprint3rdID int `json:"sprint_3rd_id" db:"sprint_3rd_id"`

	Race1stID int `json:"race_1st_id" db:"race_1st_id"`
	Race2ndID int `json:"race_2nd_id" db:"race_2nd_id"`
	Race3rdID int `json:"race_3rd_id" db:"race_3rd_id"`

	Glorious1stID int `json:"glorious_1st_id" db:"glorious_1st_id"`
	Glorious2ndID int `json:"glorious_2nd_id" db:"glorious_2nd_id"`
	Glorious3rdID int `json:"glorious_3rd_id" db:"glorious_3rd_id"`

	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`
	IsLate      bool      `json:"is_late" db:"is_late"`
}
