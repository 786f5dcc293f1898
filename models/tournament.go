package models

import (
	"time"

	"github.com/google/uuid"
)

// TournamentStatus mirrors the ENUM in the database.
type TournamentStatus string

const (
	StatusActive    TournamentStatus = "active"
	StatusCompleted TournamentStatus = "completed"
)

// Tournament is one season: a bounded series of games with its own standings
// and a configured game-count target. At most one tournament is active at a
// time; creating a new one demotes the previous active tournament to
// completed. Seasons are ordered by CreatedAt, which defines "previous season".
type Tournament struct {
	ID         uuid.UUID        `json:"id" db:"id"`
	Name       string           `json:"name" db:"name"`
	TotalGames int              `json:"total_games" db:"total_games"`
	PrizeCents int              `json:"prize_cents" db:"prize_cents"`
	Status     TournamentStatus `json:"status" db:"status"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`
}
