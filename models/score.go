package models

import "time"

// PlayerScore — очки игрока за один этап. Запись всегда перезаписывается
// целиком при пересчёте, частичных обновлений нет. Итог не хранится — он
// выводится из слагаемых.
type PlayerScore struct {
	ID       int `json:"id" db:"id"`
	PlayerID int `json:"player_id" db:"player_id"`
	RaceID   int `json:"race_id" db:"race_id"`

	Sprint1stPoints int `json:"sprint_1st_points" db:"sprint_1st_points"`
	Sprint2ndPoints int `json:"sprint_2nd_points" db:"sprint_2nd_points"`
	Sprint3rdPoints int `json:"sprint_3rd_points" db:"sprint_3rd_points"`

	Race1stPoints int `json:"race_1st_points" db:"race_1st_points"`
	Race2ndPoints int `json:"race_2nd_points" db:"race_2nd_points"`
	Race3rdPoints int `json:"race_3rd_points" db:"race_3rd_points"`

	Glorious7Points int `json:"glorious_7_points" db:"glorious_7_points"`
	PenaltyPoints   int `json:"penalty_points" db:"penalty_points"`

	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PositionPoints суммирует все девять позиционных слагаемых без штрафа.
func (s PlayerScore) PositionPoints() int {
	return s.Sprint1stPoints + s.Sprint2ndPoints + s.Sprint3rdPoints +
		s.Race1stPoints + s.Race2ndPoints + s.Race3rdPoints +
		s.Glorious7Points
}

func (s PlayerScore) TotalPoints() int {
	return s.PositionPoints() - s.PenaltyPoints
}
