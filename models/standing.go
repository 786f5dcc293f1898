package models

import (
	"time"

	"github.com/google/uuid"
)

// Standing is a player's cumulative derived statistics within a scope (global
// or one season). It is a fold over the Game/Score history and must always
// equal the result of replaying that history in full; the persisted standings
// cache is an optimization, never a separate source of truth.
type Standing struct {
	TournamentID     uuid.UUID `json:"tournament_id,omitempty" db:"tournament_id"`
	PlayerID         uuid.UUID `json:"player_id" db:"player_id"`
	PlayerName       string    `json:"player_name" db:"-"`
	GamesPlayed      int       `json:"games_played" db:"games_played"`
	Wins             int       `json:"wins" db:"wins"`
	TotalPoints      int       `json:"total_points" db:"total_points"`
	LongestRoadCount int       `json:"longest_road_count" db:"longest_road_count"`
	LargestArmyCount int       `json:"largest_army_count" db:"largest_army_count"`
	WinStreak        int       `json:"win_streak" db:"win_streak"`
	BestWinStreak    int       `json:"best_win_streak" db:"best_win_streak"`
	UpdatedAt        time.Time `json:"-" db:"updated_at"`
}
