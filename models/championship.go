package models

import "time"

// ChampionshipPrediction — единственный на сезон прогноз подиума чемпионата.
type ChampionshipPrediction struct {
	ID            int       `json:"id" db:"id"`
	PlayerID      int       `json:"player_id" db:"player_id"`
	SeasonYear    int       `json:"season_year" db:"season_year"`
	FirstPlaceID  int       `json:"first_place_id" db:"first_place_id"`
	SecondPlaceID int       `json:"second_place_id" db:"second_place_id"`
	ThirdPlaceID  int       `json:"third_place_id" db:"third_place_id"`
	SubmittedAt   time.Time `json:"submitted_at" db:"submitted_at"`
}

// ChampionshipResult — итоговый подиум сезона, одна запись на сезон.
type ChampionshipResult struct {
	ID            int       `json:"id" db:"id"`
	SeasonYear    int       `json:"season_year" db:"season_year"`
	FirstPlaceID  int       `json:"first_place_id" db:"first_place_id"`
	SecondPlaceID int       `json:"second_place_id" db:"second_place_id"`
	ThirdPlaceID  int       `json:"third_place_id" db:"third_place_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
