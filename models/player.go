package models

import (
	"time"

	"github.com/google/uuid"
)

// Player is a tournament participant. Players are created once and are
// referenced by id everywhere else; the roster is shared across seasons.
type Player struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
