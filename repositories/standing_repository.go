package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wavy-96/catan-chambers/models"
)

var ErrStandingNotFound = errors.New("standing not found")

// StandingRepository persists the per-season standings cache. The cache is an
// optimization over replaying the full game history; ReplaceForTournament
// exists so callers can restore full-recompute parity at any time.
type StandingRepository interface {
	SeedZero(ctx context.Context, exec SQLExecutor, tournamentID uuid.UUID, playerIDs []uuid.UUID) error
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID uuid.UUID) ([]models.Standing, error)
	UpsertBatch(ctx context.Context, exec SQLExecutor, standings []models.Standing) error
	ReplaceForTournament(ctx context.Context, exec SQLExecutor, tournamentID uuid.UUID, standings []models.Standing) error
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// SeedZero inserts a zero-valued standing for every given player, so a fresh
// season renders a full leaderboard before its first game.
func (r *postgresStandingRepository) SeedZero(ctx context.Context, exec SQLExecutor, tournamentID uuid.UUID, playerIDs []uuid.UUID) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO standings (tournament_id, player_id, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (tournament_id, player_id) DO NOTHING`

	now := time.Now()
	for _, playerID := range playerIDs {
		if _, err := executor.ExecContext(ctx, query, tournamentID, playerID, now); err != nil {
			return fmt.Errorf("failed to seed standing for player %s: %w", playerID, err)
		}
	}
	return nil
}

func (r *postgresStandingRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID uuid.UUID) ([]models.Standing, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT s.tournament_id, s.player_id, p.name, s.games_played, s.wins, s.total_points,
		       s.longest_road_count, s.largest_army_count, s.win_streak, s.best_win_streak, s.updated_at
		FROM standings s
		JOIN players p ON s.player_id = p.id
		WHERE s.tournament_id = $1
		ORDER BY s.total_points DESC, s.wins DESC, s.player_id ASC`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]models.Standing, 0)
	for rows.Next() {
		var s models.Standing
		if scanErr := rows.Scan(
			&s.TournamentID, &s.PlayerID, &s.PlayerName, &s.GamesPlayed, &s.Wins, &s.TotalPoints,
			&s.LongestRoadCount, &s.LargestArmyCount, &s.WinStreak, &s.BestWinStreak, &s.UpdatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}

func (r *postgresStandingRepository) UpsertBatch(ctx context.Context, exec SQLExecutor, standings []models.Standing) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO standings (tournament_id, player_id, games_played, wins, total_points,
		                       longest_road_count, largest_army_count, win_streak, best_win_streak, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (tournament_id, player_id) DO UPDATE SET
			games_played = EXCLUDED.games_played,
			wins = EXCLUDED.wins,
			total_points = EXCLUDED.total_points,
			longest_road_count = EXCLUDED.longest_road_count,
			largest_army_count = EXCLUDED.largest_army_count,
			win_streak = EXCLUDED.win_streak,
			best_win_streak = EXCLUDED.best_win_streak,
			updated_at = EXCLUDED.updated_at`

	now := time.Now()
	for _, s := range standings {
		if _, err := executor.ExecContext(ctx, query,
			s.TournamentID, s.PlayerID, s.GamesPlayed, s.Wins, s.TotalPoints,
			s.LongestRoadCount, s.LargestArmyCount, s.WinStreak, s.BestWinStreak, now,
		); err != nil {
			return fmt.Errorf("failed to upsert standing for player %s: %w", s.PlayerID, err)
		}
	}
	return nil
}

// ReplaceForTournament swaps the season's cached standings for a freshly
// recomputed set, typically after a game deletion or an audit repair.
func (r *postgresStandingRepository) ReplaceForTournament(ctx context.Context, exec SQLExecutor, tournamentID uuid.UUID, standings []models.Standing) error {
	executor := r.getExecutor(exec)
	if _, err := executor.ExecContext(ctx,
		`DELETE FROM standings WHERE tournament_id = $1`, tournamentID,
	); err != nil {
		return fmt.Errorf("failed to clear standings for tournament %s: %w", tournamentID, err)
	}
	for i := range standings {
		standings[i].TournamentID = tournamentID
	}
	return r.UpsertBatch(ctx, executor, standings)
}
