package models

// LeaderboardEntry — строка общего зачёта сезона. RacePoints — сумма итогов
// по этапам, ChampionshipPoints — очки за прогноз подиума чемпионата.
type LeaderboardEntry struct {
	PlayerID           int    `json:"player_id"`
	PlayerName         string `json:"player_name"`
	RacePoints         int    `json:"race_points"`
	ChampionshipPoints int    `json:"championship_points"`
	TotalPoints        int    `json:"total_points"`
	Rank               int    `json:"rank"`
}

// ProgressionPoint — очки игрока на одном этапе и накопленный итог.
// Points == nil означает, что за этап у игрока нет записи очков; накопленный
// итог в этом случае не продвигается.
type ProgressionPoint struct {
	RaceID       int    `json:"race_id"`
	RoundNumber  int    `json:"round_number"`
	RaceName     string `json:"race_name"`
	Points       *int   `json:"points"`
	RunningTotal int    `json:"running_total"`
}

type PlayerProgression struct {
	PlayerID   int                `json:"player_id"`
	PlayerName string             `json:"player_name"`
	Rounds     []ProgressionPoint `json:"rounds"`
	FinalTotal int                `json:"final_total"`
}
