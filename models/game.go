package models

import (
	"time"

	"github.com/google/uuid"
)

// Game is a single played game inside a tournament. GameNumber is sequential
// and unique within the tournament (not globally); ascending game number is
// the replay order for all chronological derivations.
type Game struct {
	ID           uuid.UUID `json:"id" db:"id"`
	TournamentID uuid.UUID `json:"tournament_id" db:"tournament_id"`
	GameNumber   int       `json:"game_number" db:"game_number"`
	WinnerID     uuid.UUID `json:"winner_id" db:"winner_id"`
	PlayedOn     time.Time `json:"played_on" db:"played_on"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Optional linked data, populated by the service layer.
	Scores []Score `json:"scores,omitempty" db:"-"`
}
