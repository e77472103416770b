package models

import "time"

// Rider приходит из внешнего API результатов; ExternalID — его стабильный UUID там.
// Неактивные гонщики не удаляются, пока на них ссылаются исторические результаты.
type Rider struct {
	ID         int       `json:"id" db:"id"`
	ExternalID string    `json:"-" db:"external_id"`
	Name       string    `json:"name" db:"name"`
	Number     int       `json:"number" db:"number"`
	Team       string    `json:"team" db:"team"`
	Active     bool      `json:"active" db:"active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
