package models

import "github.com/google/uuid"

// PositionCount records how many replay checkpoints a player has held the
// lead (highest cumulative points) or the bottom (lowest) of a season.
type PositionCount struct {
	PlayerID      uuid.UUID `json:"player_id"`
	PlayerName    string    `json:"player_name"`
	GamesAtTop    int       `json:"games_at_top"`
	GamesAtBottom int       `json:"games_at_bottom"`
}

// ComparisonEntry is one player's differential between the current season and
// the immediately preceding one, both taken at the same game-count cutoff.
type ComparisonEntry struct {
	PlayerID            uuid.UUID `json:"player_id"`
	PlayerName          string    `json:"player_name"`
	CurrentPoints       int       `json:"current_points"`
	PreviousPoints      int       `json:"previous_points"`
	PointsDiff          int       `json:"points_diff"`
	CurrentWins         int       `json:"current_wins"`
	PreviousWins        int       `json:"previous_wins"`
	WinsDiff            int       `json:"wins_diff"`
	CurrentLongestRoad  int       `json:"current_longest_road"`
	PreviousLongestRoad int       `json:"previous_longest_road"`
	LongestRoadDiff     int       `json:"longest_road_diff"`
	CurrentLargestArmy  int       `json:"current_largest_army"`
	PreviousLargestArmy int       `json:"previous_largest_army"`
	LargestArmyDiff     int       `json:"largest_army_diff"`
}

// SeasonComparison aligns the current season with the previous one by game
// index. Cutoff is the number of games considered in each season; the
// previous season contributes however many games it actually has when it is
// shorter than the cutoff.
type SeasonComparison struct {
	CurrentTournamentID  uuid.UUID         `json:"current_tournament_id"`
	PreviousTournamentID uuid.UUID         `json:"previous_tournament_id"`
	Cutoff               int               `json:"cutoff"`
	PreviousGamesUsed    int               `json:"previous_games_used"`
	Entries              []ComparisonEntry `json:"entries"`
}

// ProgressionPoint is a player's cumulative point total at one checkpoint of
// the current and previous season. Nil means the season has not reached that
// checkpoint; Projected marks a current-season value extrapolated from the
// player's average points per game.
type ProgressionPoint struct {
	GameNumber int      `json:"game_number"`
	Current    *float64 `json:"current"`
	Previous   *float64 `json:"previous"`
	Projected  bool     `json:"projected,omitempty"`
}

// ProgressionSeries is the per-player trend line used by the projected-vs-
// actual chart.
type ProgressionSeries struct {
	PlayerID   uuid.UUID          `json:"player_id"`
	PlayerName string             `json:"player_name"`
	Points     []ProgressionPoint `json:"points"`
}

// RiskEstimate is the heuristic chance (whole percent) that a player finishes
// the season in last place. It drives a prediction display, nothing more.
type RiskEstimate struct {
	PlayerID   uuid.UUID `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Rank       int       `json:"rank"`
	LoseChance int       `json:"lose_chance"`
}

// Overview is the dashboard headline block.
type Overview struct {
	PlayersTotal     int         `json:"players_total"`
	TournamentsTotal int         `json:"tournaments_total"`
	GamesTotal       int         `json:"games_total"`
	ActiveTournament *Tournament `json:"active_tournament,omitempty"`
}
