package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gosimple/slug"

	"github.com/wavy-96/catan-chambers/models"
	"github.com/wavy-96/catan-chambers/repositories"
	"github.com/wavy-96/catan-chambers/stats"
	"github.com/wavy-96/catan-chambers/storage"
)

// ArchiveService exports a completed season's final standings to object
// storage, so the dashboard keeps a permanent record even if rows are later
// pruned from the database.
type ArchiveService interface {
	ArchiveSeason(ctx context.Context, tournament *models.Tournament) (string, error)
}

type seasonExport struct {
	Tournament models.Tournament `json:"tournament"`
	Standings  []models.Standing `json:"standings"`
	ExportedAt time.Time         `json:"exported_at"`
}

type archiveService struct {
	uploader   storage.FileUploader
	playerRepo repositories.PlayerRepository
	gameRepo   repositories.GameRepository
	scoreRepo  repositories.ScoreRepository
	logger     *slog.Logger
}

func NewArchiveService(
	uploader storage.FileUploader,
	playerRepo repositories.PlayerRepository,
	gameRepo repositories.GameRepository,
	scoreRepo repositories.ScoreRepository,
	logger *slog.Logger,
) ArchiveService {
	return &archiveService{
		uploader:   uploader,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		scoreRepo:  scoreRepo,
		logger:     logger,
	}
}

// ArchiveSeason recomputes the season's final standings from the full game
// history (never the cache) and uploads them as JSON. Returns the public URL
// of the archived object.
func (s *archiveService) ArchiveSeason(ctx context.Context, tournament *models.Tournament) (string, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list players: %w", err)
	}
	games, err := s.gameRepo.ListByTournament(ctx, nil, tournament.ID)
	if err != nil {
		return "", fmt.Errorf("failed to list games: %w", err)
	}
	scores, err := s.scoreRepo.ListByTournament(ctx, nil, tournament.ID)
	if err != nil {
		return "", fmt.Errorf("failed to list scores: %w", err)
	}

	export := seasonExport{
		Tournament: *tournament,
		Standings:  stats.Aggregate(players, games, scores),
		ExportedAt: time.Now().UTC(),
	}
	body, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal season export: %w", err)
	}

	key := fmt.Sprintf("seasons/%s-%s.json", slug.Make(tournament.Name), tournament.ID)
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to upload season archive: %w", err)
	}

	s.logger.Info("season archived",
		slog.String("tournament_id", tournament.ID.String()),
		slog.String("key", result.Key),
		slog.String("location", result.Location))
	return result.Location, nil
}
