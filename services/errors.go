package services

import "errors"

// Shared sentinel errors, mapped to HTTP statuses at the handler boundary.
var (
	// Not found
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrGameNotFound       = errors.New("game not found")

	// Validation and business rules
	ErrPlayerNameRequired      = errors.New("player name is required")
	ErrTournamentNameRequired  = errors.New("tournament name is required")
	ErrTournamentInvalidTarget = errors.New("tournament total games must be positive")
	ErrTournamentNotActive     = errors.New("tournament is not active")
	ErrGameLimitReached        = errors.New("tournament has reached its configured game count")
	ErrScoresIncomplete        = errors.New("a score is required for every player in the roster")
	ErrScoreNegativePoints     = errors.New("points must not be negative")
	ErrNoWinner                = errors.New("no player reached the win threshold")
	ErrAmbiguousWinner         = errors.New("more than one player holds the highest qualifying score")
	ErrDuplicateAchievement    = errors.New("an achievement may be held by at most one player per game")

	// Conflicts
	ErrPlayerNameConflict     = errors.New("player name is already in use")
	ErrTournamentNameConflict = errors.New("tournament name is already in use")

	// Authentication
	ErrInvalidAdminPassword = errors.New("invalid admin password")
)
