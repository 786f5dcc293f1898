package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/wavy-96/catan-chambers/models"
	"github.com/wavy-96/catan-chambers/repositories"
	"github.com/wavy-96/catan-chambers/stats"
)

// StandingsAuditor periodically replays every tournament's game history and
// compares the result against the cached standings rows. Drift means the
// incremental cache maintenance has a bug; the auditor logs it and repairs
// the cache so reads stay correct while the bug is chased.
type StandingsAuditor struct {
	db             *sql.DB
	playerRepo     repositories.PlayerRepository
	tournamentRepo repositories.TournamentRepository
	gameRepo       repositories.GameRepository
	scoreRepo      repositories.ScoreRepository
	standingRepo   repositories.StandingRepository
	logger         *slog.Logger
}

func NewStandingsAuditor(
	db *sql.DB,
	playerRepo repositories.PlayerRepository,
	tournamentRepo repositories.TournamentRepository,
	gameRepo repositories.GameRepository,
	scoreRepo repositories.ScoreRepository,
	standingRepo repositories.StandingRepository,
	logger *slog.Logger,
) *StandingsAuditor {
	return &StandingsAuditor{
		db:             db,
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
		gameRepo:       gameRepo,
		scoreRepo:      scoreRepo,
		standingRepo:   standingRepo,
		logger:         logger,
	}
}

// RunOnce audits every tournament and returns the number that needed repair.
func (a *StandingsAuditor) RunOnce(ctx context.Context) (int, error) {
	tournaments, err := a.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{})
	if err != nil {
		return 0, fmt.Errorf("failed to list tournaments: %w", err)
	}
	players, err := a.playerRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list players: %w", err)
	}

	repaired := 0
	for _, t := range tournaments {
		drifted, err := a.auditTournament(ctx, players, t)
		if err != nil {
			a.logger.Error("standings audit failed",
				slog.String("tournament_id", t.ID.String()),
				slog.Any("error", err))
			continue
		}
		if drifted {
			repaired++
		}
	}
	return repaired, nil
}

func (a *StandingsAuditor) auditTournament(ctx context.Context, players []models.Player, t models.Tournament) (bool, error) {
	games, err := a.gameRepo.ListByTournament(ctx, nil, t.ID)
	if err != nil {
		return false, err
	}
	scores, err := a.scoreRepo.ListByTournament(ctx, nil, t.ID)
	if err != nil {
		return false, err
	}
	cached, err := a.standingRepo.ListByTournament(ctx, nil, t.ID)
	if err != nil {
		return false, err
	}

	expected := stats.Aggregate(players, games, scores)
	if standingsMatch(expected, cached) {
		return false, nil
	}

	a.logger.Warn("standings cache drifted from replay, repairing",
		slog.String("tournament_id", t.ID.String()),
		slog.Int("cached_rows", len(cached)),
		slog.Int("expected_rows", len(expected)))

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := a.standingRepo.ReplaceForTournament(ctx, tx, t.ID, expected); err != nil {
		return false, fmt.Errorf("failed to replace standings: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

// standingsMatch compares replay output with the cache on the counters the
// cache maintains. Names and timestamps are presentation detail and ignored.
func standingsMatch(expected, cached []models.Standing) bool {
	byPlayer := make(map[string]models.Standing, len(cached))
	for _, st := range cached {
		byPlayer[st.PlayerID.String()] = st
	}
	for _, want := range expected {
		got, ok := byPlayer[want.PlayerID.String()]
		if !ok {
			// A player with no rows yet may be absent from the cache only if
			// every counter is zero.
			if want.GamesPlayed != 0 || want.TotalPoints != 0 {
				return false
			}
			continue
		}
		if got.GamesPlayed != want.GamesPlayed ||
			got.Wins != want.Wins ||
			got.TotalPoints != want.TotalPoints ||
			got.LongestRoadCount != want.LongestRoadCount ||
			got.LargestArmyCount != want.LargestArmyCount ||
			got.WinStreak != want.WinStreak ||
			got.BestWinStreak != want.BestWinStreak {
			return false
		}
	}
	return true
}
