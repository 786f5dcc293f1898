package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/wavy-96/catan-chambers/models"
)

var (
	ErrScoreConflict      = errors.New("score already recorded for this game and player")
	ErrScoreInvalidGame   = errors.New("invalid game reference")
	ErrScoreInvalidPlayer = errors.New("invalid player reference")
)

type ScoreRepository interface {
	BatchCreate(ctx context.Context, exec SQLExecutor, scores []models.Score) error
	ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Score, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID uuid.UUID) ([]models.Score, error)
	ListAll(ctx context.Context) ([]models.Score, error)
	DeleteByGame(ctx context.Context, exec SQLExecutor, gameID uuid.UUID) error
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

func (r *postgresScoreRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// BatchCreate inserts a game's full score set. Callers are expected to run it
// inside the same transaction that creates the game row.
func (r *postgresScoreRepository) BatchCreate(ctx context.Context, exec SQLExecutor, scores []models.Score) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO scores (id, game_id, player_id, points, longest_road, largest_army)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for i := range scores {
		if scores[i].ID == uuid.Nil {
			scores[i].ID = uuid.New()
		}
		_, err := executor.ExecContext(ctx, query,
			scores[i].ID, scores[i].GameID, scores[i].PlayerID,
			scores[i].Points, scores[i].LongestRoad, scores[i].LargestArmy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert score for player %s: %w",
				scores[i].PlayerID, r.handleScoreError(err))
		}
	}
	return nil
}

func (r *postgresScoreRepository) ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Score, error) {
	query := `
		SELECT id, game_id, player_id, points, longest_road, largest_army
		FROM scores
		WHERE game_id = $1
		ORDER BY points DESC, player_id ASC`

	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanScores(rows)
}

func (r *postgresScoreRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID uuid.UUID) ([]models.Score, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT s.id, s.game_id, s.player_id, s.points, s.longest_road, s.largest_army
		FROM scores s
		JOIN games g ON s.game_id = g.id
		WHERE g.tournament_id = $1
		ORDER BY g.game_number ASC, s.player_id ASC`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanScores(rows)
}

func (r *postgresScoreRepository) ListAll(ctx context.Context) ([]models.Score, error) {
	query := `
		SELECT id, game_id, player_id, points, longest_road, largest_army
		FROM scores
		ORDER BY game_id ASC, player_id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanScores(rows)
}

// DeleteByGame removes a game's score rows. Must run before deleting the game
// row itself because of the referential relationship.
func (r *postgresScoreRepository) DeleteByGame(ctx context.Context, exec SQLExecutor, gameID uuid.UUID) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM scores WHERE game_id = $1`, gameID)
	return err
}

func scanScores(rows *sql.Rows) ([]models.Score, error) {
	scores := make([]models.Score, 0)
	for rows.Next() {
		var s models.Score
		if err := rows.Scan(
			&s.ID, &s.GameID, &s.PlayerID, &s.Points, &s.LongestRoad, &s.LargestArmy,
		); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

func (r *postgresScoreRepository) handleScoreError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			return ErrScoreConflict
		case "23503":
			switch pqErr.Constraint {
			case "scores_game_id_fkey":
				return ErrScoreInvalidGame
			case "scores_player_id_fkey":
				return ErrScoreInvalidPlayer
			}
		}
	}
	return err
}
