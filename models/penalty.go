package models

import "time"

// Penalty — аудит-запись о штрафе, append-only. OffenseNumber — порядковый
// номер опоздания игрока за сезон.
type Penalty struct {
	ID            int       `json:"id" db:"id"`
	PlayerID      int       `json:"player_id" db:"player_id"`
	RaceID        int       `json:"race_id" db:"race_id"`
	OffenseNumber int       `json:"offense_number" db:"offense_number"`
	PenaltyPoints int       `json:"penalty_points" db:"penalty_points"`
	Reason        string    `json:"reason" db:"reason"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
