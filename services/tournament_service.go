package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/wavy-96/catan-chambers/models"
	"github.com/wavy-96/catan-chambers/repositories"
)

type CreateTournamentInput struct {
	Name       string `json:"name" validate:"required"`
	TotalGames int    `json:"total_games" validate:"required,gt=0"`
	PrizeCents int    `json:"prize_cents" validate:"gte=0"`
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
}

type tournamentService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	standingRepo   repositories.StandingRepository
	archive        ArchiveService // nil when archiving is not configured
	logger         *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	standingRepo repositories.StandingRepository,
	archive ArchiveService,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:             db,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		standingRepo:   standingRepo,
		archive:        archive,
		logger:         logger,
	}
}

// Create starts a new season. In a single transaction it demotes the current
// active tournament to completed, inserts the new one as active, and seeds a
// zero-valued standing for every existing player. The demoted season's final
// standings are exported to the archive afterwards, best effort.
func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	if input.TotalGames <= 0 {
		return nil, ErrTournamentInvalidTarget
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for standings seed: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var demoted *models.Tournament
	active, err := s.tournamentRepo.GetActive(ctx, tx)
	switch {
	case err == nil:
		if updErr := s.tournamentRepo.UpdateStatus(ctx, tx, active.ID, models.StatusCompleted); updErr != nil {
			return nil, fmt.Errorf("failed to complete previous season %s: %w", active.ID, updErr)
		}
		active.Status = models.StatusCompleted
		demoted = active
	case errors.Is(err, repositories.ErrTournamentNotFound):
		// First season ever; nothing to demote.
	default:
		return nil, fmt.Errorf("failed to look up active tournament: %w", err)
	}

	tournament := &models.Tournament{
		Name:       name,
		TotalGames: input.TotalGames,
		PrizeCents: input.PrizeCents,
		Status:     models.StatusActive,
	}
	if err := s.tournamentRepo.Create(ctx, tx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	playerIDs := make([]uuid.UUID, len(players))
	for i, p := range players {
		playerIDs[i] = p.ID
	}
	if err := s.standingRepo.SeedZero(ctx, tx, tournament.ID, playerIDs); err != nil {
		return nil, fmt.Errorf("failed to seed standings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if demoted != nil && s.archive != nil {
		go func(season models.Tournament) {
			if _, archErr := s.archive.ArchiveSeason(context.Background(), &season); archErr != nil {
				s.logger.Error("season archive failed",
					slog.String("tournament_id", season.ID.String()),
					slog.Any("error", archErr))
			}
		}(*demoted)
	}

	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	return s.tournamentRepo.List(ctx, filter)
}
