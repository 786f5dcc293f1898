package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wavy-96/catan-chambers/models"
	"github.com/wavy-96/catan-chambers/realtime"
	"github.com/wavy-96/catan-chambers/repositories"
	"github.com/wavy-96/catan-chambers/stats"
)

type ScoreInput struct {
	PlayerID    uuid.UUID `json:"player_id" validate:"required"`
	Points      int       `json:"points" validate:"gte=0"`
	LongestRoad bool      `json:"longest_road"`
	LargestArmy bool      `json:"largest_army"`
}

type RecordGameInput struct {
	PlayedOn time.Time    `json:"played_on"`
	Scores   []ScoreInput `json:"scores" validate:"required,min=1,dive"`
}

// StandingsBroadcaster is the slice of the realtime hub the service needs.
type StandingsBroadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

type GameService interface {
	Record(ctx context.Context, tournamentID uuid.UUID, input RecordGameInput) (*models.Game, error)
	Delete(ctx context.Context, gameID uuid.UUID) error
	ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Game, error)
}

type gameService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	gameRepo       repositories.GameRepository
	scoreRepo      repositories.ScoreRepository
	standingRepo   repositories.StandingRepository
	hub            StandingsBroadcaster
	winThreshold   int
	logger         *slog.Logger
}

func NewGameService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	gameRepo repositories.GameRepository,
	scoreRepo repositories.ScoreRepository,
	standingRepo repositories.StandingRepository,
	hub StandingsBroadcaster,
	winThreshold int,
	logger *slog.Logger,
) GameService {
	return &gameService{
		db:             db,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		gameRepo:       gameRepo,
		scoreRepo:      scoreRepo,
		standingRepo:   standingRepo,
		hub:            hub,
		winThreshold:   winThreshold,
		logger:         logger,
	}
}

// Record validates and persists one game together with its full score set.
// The game, its scores, and the standings cache update share one transaction:
// a game is meaningless without its per-player scores, so consumers never see
// a partial write.
func (s *gameService) Record(ctx context.Context, tournamentID uuid.UUID, input RecordGameInput) (*models.Game, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.Status != models.StatusActive {
		return nil, ErrTournamentNotActive
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	winnerID, err := resolveWinner(players, input.Scores, s.winThreshold)
	if err != nil {
		return nil, err
	}

	playedOn := input.PlayedOn
	if playedOn.IsZero() {
		playedOn = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := s.gameRepo.ListByTournament(ctx, tx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	if len(existing) >= tournament.TotalGames {
		return nil, ErrGameLimitReached
	}

	game := &models.Game{
		TournamentID: tournamentID,
		GameNumber:   nextGameNumber(existing),
		WinnerID:     winnerID,
		PlayedOn:     playedOn,
	}
	if err := s.gameRepo.Create(ctx, tx, game); err != nil {
		return nil, fmt.Errorf("failed to insert game: %w", err)
	}

	scores := make([]models.Score, len(input.Scores))
	for i, in := range input.Scores {
		scores[i] = models.Score{
			GameID:      game.ID,
			PlayerID:    in.PlayerID,
			Points:      in.Points,
			LongestRoad: in.LongestRoad,
			LargestArmy: in.LargestArmy,
		}
	}
	if err := s.scoreRepo.BatchCreate(ctx, tx, scores); err != nil {
		return nil, fmt.Errorf("failed to insert scores: %w", err)
	}

	if err := s.applyGameToStandings(ctx, tx, tournamentID, game, scores); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	game.Scores = scores
	s.broadcastStandings(ctx, tournamentID)
	return game, nil
}

// Delete removes a game and its score rows, then restores the standings cache
// to exactly what a full replay of the remaining history produces. After the
// delete, aggregations must look as if the game had never existed.
func (s *gameService) Delete(ctx context.Context, gameID uuid.UUID) error {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return err
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Scores first: the game row is the referenced side.
	if err := s.scoreRepo.DeleteByGame(ctx, tx, gameID); err != nil {
		return fmt.Errorf("failed to delete scores: %w", err)
	}
	if err := s.gameRepo.Delete(ctx, tx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	games, err := s.gameRepo.ListByTournament(ctx, tx, game.TournamentID)
	if err != nil {
		return fmt.Errorf("failed to list remaining games: %w", err)
	}
	scores, err := s.scoreRepo.ListByTournament(ctx, tx, game.TournamentID)
	if err != nil {
		return fmt.Errorf("failed to list remaining scores: %w", err)
	}

	recomputed := stats.Aggregate(players, games, scores)
	if err := s.standingRepo.ReplaceForTournament(ctx, tx, game.TournamentID, recomputed); err != nil {
		return fmt.Errorf("failed to replace standings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.broadcastStandings(ctx, game.TournamentID)
	return nil
}

func (s *gameService) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Game, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	games, err := s.gameRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	scores, err := s.scoreRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}

	byGame := make(map[uuid.UUID][]models.Score, len(games))
	for _, sc := range scores {
		byGame[sc.GameID] = append(byGame[sc.GameID], sc)
	}
	for i := range games {
		games[i].Scores = byGame[games[i].ID]
	}
	return games, nil
}

// applyGameToStandings maintains the standings cache incrementally for the
// just-recorded game. The deltas mirror what a full replay would produce;
// the periodic audit verifies that parity holds.
func (s *gameService) applyGameToStandings(ctx context.Context, exec repositories.SQLExecutor, tournamentID uuid.UUID, game *models.Game, scores []models.Score) error {
	cached, err := s.standingRepo.ListByTournament(ctx, exec, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to load standings: %w", err)
	}
	byPlayer := make(map[uuid.UUID]*models.Standing, len(cached))
	for i := range cached {
		byPlayer[cached[i].PlayerID] = &cached[i]
	}

	updated := make([]models.Standing, 0, len(scores))
	for _, sc := range scores {
		st, ok := byPlayer[sc.PlayerID]
		if !ok {
			// Player joined after the season was seeded.
			st = &models.Standing{TournamentID: tournamentID, PlayerID: sc.PlayerID}
		}
		st.GamesPlayed++
		st.TotalPoints += sc.Points
		if sc.LongestRoad {
			st.LongestRoadCount++
		}
		if sc.LargestArmy {
			st.LargestArmyCount++
		}
		if sc.PlayerID == game.WinnerID {
			st.Wins++
			st.WinStreak++
			if st.WinStreak > st.BestWinStreak {
				st.BestWinStreak = st.WinStreak
			}
		} else {
			st.WinStreak = 0
		}
		updated = append(updated, *st)
	}
	return s.standingRepo.UpsertBatch(ctx, exec, updated)
}

func (s *gameService) broadcastStandings(ctx context.Context, tournamentID uuid.UUID) {
	if s.hub == nil {
		return
	}
	standings, err := s.standingRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		s.logger.Error("failed to load standings for broadcast",
			slog.String("tournament_id", tournamentID.String()),
			slog.Any("error", err))
		return
	}
	s.hub.BroadcastToRoom(realtime.TournamentRoom(tournamentID), realtime.Message{
		Type:    realtime.TypeStandingsUpdated,
		Payload: standings,
		RoomID:  realtime.TournamentRoom(tournamentID),
	})
}

// nextGameNumber continues the season's numbering from the highest number
// ever assigned, so a mid-history deletion never reuses a number that a later
// game still holds (game_number is unique per tournament).
func nextGameNumber(games []models.Game) int {
	next := 1
	for _, g := range games {
		if g.GameNumber >= next {
			next = g.GameNumber + 1
		}
	}
	return next
}

// resolveWinner checks a game's score set against the roster and returns the
// winner: the player whose score is the unique maximum meeting or exceeding
// the win threshold. A game nobody won, or with two claimants for the top
// qualifying score, is invalid and never reaches the database. Each
// achievement flag may be held by at most one player.
func resolveWinner(roster []models.Player, scores []ScoreInput, winThreshold int) (uuid.UUID, error) {
	known := make(map[uuid.UUID]bool, len(roster))
	for _, p := range roster {
		known[p.ID] = false
	}

	roadHolders, armyHolders := 0, 0
	best, bestCount := -1, 0
	var winnerID uuid.UUID
	for _, sc := range scores {
		seen, ok := known[sc.PlayerID]
		if !ok || seen {
			// Unknown player or duplicate row: the set no longer covers the
			// roster one-to-one.
			return uuid.Nil, ErrScoresIncomplete
		}
		known[sc.PlayerID] = true

		if sc.Points < 0 {
			return uuid.Nil, ErrScoreNegativePoints
		}
		if sc.LongestRoad {
			roadHolders++
		}
		if sc.LargestArmy {
			armyHolders++
		}
		switch {
		case sc.Points > best:
			best = sc.Points
			bestCount = 1
			winnerID = sc.PlayerID
		case sc.Points == best:
			bestCount++
		}
	}
	for _, seen := range known {
		if !seen {
			return uuid.Nil, ErrScoresIncomplete
		}
	}

	if roadHolders > 1 || armyHolders > 1 {
		return uuid.Nil, ErrDuplicateAchievement
	}
	if best < winThreshold {
		return uuid.Nil, ErrNoWinner
	}
	if bestCount > 1 {
		return uuid.Nil, ErrAmbiguousWinner
	}
	return winnerID, nil
}
