package models

import "time"

// PlayerRole соответствует ENUM player_role в БД.
type PlayerRole string

const (
	RolePlayer PlayerRole = "player"
	RoleAdmin  PlayerRole = "admin"
)

type Player struct {
	ID             int        `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	PassphraseHash string     `json:"-" db:"passphrase_hash"`
	Email          *string    `json:"email,omitempty" db:"email"`
	Role           PlayerRole `json:"role" db:"role"`
	AvatarKey      *string    `json:"-" db:"avatar_key"`
	AvatarURL      *string    `json:"avatar_url,omitempty" db:"-"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

type Credentials struct {
	Name       string `json:"name"`
	Passphrase string `json:"passphrase"`
}
