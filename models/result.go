package models

type ResultType string

const (
	ResultTypeSprint ResultType = "sprint"
	ResultTypeRace   ResultType = "race"
)

// RaceResult — одна финишная позиция в группе (этап, тип сессии).
// Гонщики без классификации (DNF) в группе просто отсутствуют.
type RaceResult struct {
	ID         int        `json:"id" db:"id"`
	RaceID     int        `json:"race_id" db:"race_id"`
	ResultType ResultType `json:"result_type" db:"result_type"`
	Position   int        `json:"position" db:"position"`
	RiderID    int        `json:"rider_id" db:"rider_id"`

	Rider *Rider `json:"rider,omitempty" db:"-"`
}
