package models

import "github.com/google/uuid"

// Score is one player's result in one game. Exactly one row exists per
// (game, player) pair for every player in the roster at the time the game was
// recorded. At most one player per game may hold each achievement flag.
type Score struct {
	ID          uuid.UUID `json:"id" db:"id"`
	GameID      uuid.UUID `json:"game_id" db:"game_id"`
	PlayerID    uuid.UUID `json:"player_id" db:"player_id"`
	Points      int       `json:"points" db:"points"`
	LongestRoad bool      `json:"longest_road" db:"longest_road"`
	LargestArmy bool      `json:"largest_army" db:"largest_army"`
}
