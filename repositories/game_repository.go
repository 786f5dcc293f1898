package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/wavy-96/catan-chambers/models"
)

var (
	ErrGameNotFound          = errors.New("game not found")
	ErrGameNumberConflict    = errors.New("game number already recorded for this tournament")
	ErrGameInvalidTournament = errors.New("invalid tournament reference")
	ErrGameInvalidWinner     = errors.New("invalid winner reference")
)

type GameRepository interface {
	Create(ctx context.Context, exec SQLExecutor, game *models.Game) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID uuid.UUID) ([]models.Game, error)
	ListAll(ctx context.Context) ([]models.Game, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, exec SQLExecutor, id uuid.UUID) error
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

func (r *postgresGameRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGameRepository) Create(ctx context.Context, exec SQLExecutor, g *models.Game) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO games (id, tournament_id, game_number, winner_id, played_on)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	err := executor.QueryRowContext(ctx, query,
		g.ID, g.TournamentID, g.GameNumber, g.WinnerID, g.PlayedOn,
	).Scan(&g.CreatedAt)
	return r.handleGameError(err)
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	query := `
		SELECT id, tournament_id, game_number, winner_id, played_on, created_at
		FROM games
		WHERE id = $1`

	g := &models.Game{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&g.ID, &g.TournamentID, &g.GameNumber, &g.WinnerID, &g.PlayedOn, &g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return g, nil
}

// ListByTournament returns the tournament's games in ascending game-number
// order, the replay order for all chronological derivations.
func (r *postgresGameRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID uuid.UUID) ([]models.Game, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, tournament_id, game_number, winner_id, played_on, created_at
		FROM games
		WHERE tournament_id = $1
		ORDER BY game_number ASC`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGames(rows)
}

func (r *postgresGameRepository) ListAll(ctx context.Context) ([]models.Game, error) {
	query := `
		SELECT id, tournament_id, game_number, winner_id, played_on, created_at
		FROM games
		ORDER BY created_at ASC, game_number ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGames(rows)
}

func (r *postgresGameRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&count)
	return count, err
}

func (r *postgresGameRepository) Delete(ctx context.Context, exec SQLExecutor, id uuid.UUID) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func scanGames(rows *sql.Rows) ([]models.Game, error) {
	games := make([]models.Game, 0)
	for rows.Next() {
		var g models.Game
		if err := rows.Scan(
			&g.ID, &g.TournamentID, &g.GameNumber, &g.WinnerID, &g.PlayedOn, &g.CreatedAt,
		); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (r *postgresGameRepository) handleGameError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			return ErrGameNumberConflict
		case "23503":
			switch pqErr.Constraint {
			case "games_tournament_id_fkey":
				return ErrGameInvalidTournament
			case "games_winner_id_fkey":
				return ErrGameInvalidWinner
			}
		}
	}
	return err
}
