package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wavy-96/catan-chambers/models"
	"github.com/wavy-96/catan-chambers/repositories"
	"github.com/wavy-96/catan-chambers/stats"
)

// StatsService is the read side: it assembles a consistent snapshot of rows
// from the repositories and runs the pure derivation core over it. Nothing
// here mutates state, so overlapping recomputations are harmless.
type StatsService interface {
	GlobalStandings(ctx context.Context) ([]models.Standing, error)
	TournamentStandings(ctx context.Context, tournamentID uuid.UUID) ([]models.Standing, error)
	Positions(ctx context.Context, tournamentID uuid.UUID) ([]models.PositionCount, error)
	Comparison(ctx context.Context, tournamentID uuid.UUID, cutoff int) (*models.SeasonComparison, error)
	Progression(ctx context.Context, tournamentID uuid.UUID) ([]models.ProgressionSeries, error)
	Risk(ctx context.Context, tournamentID uuid.UUID) ([]models.RiskEstimate, error)
	Overview(ctx context.Context) (*models.Overview, error)
}

type statsService struct {
	playerRepo     repositories.PlayerRepository
	tournamentRepo repositories.TournamentRepository
	gameRepo       repositories.GameRepository
	scoreRepo      repositories.ScoreRepository
}

func NewStatsService(
	playerRepo repositories.PlayerRepository,
	tournamentRepo repositories.TournamentRepository,
	gameRepo repositories.GameRepository,
	scoreRepo repositories.ScoreRepository,
) StatsService {
	return &statsService{
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
		gameRepo:       gameRepo,
		scoreRepo:      scoreRepo,
	}
}

func (s *statsService) GlobalStandings(ctx context.Context) ([]models.Standing, error) {
	var (
		players []models.Player
		games   []models.Game
		scores  []models.Score
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { players, err = s.playerRepo.List(gCtx); return })
	g.Go(func() (err error) { games, err = s.gameRepo.ListAll(gCtx); return })
	g.Go(func() (err error) { scores, err = s.scoreRepo.ListAll(gCtx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats.Aggregate(players, games, scores), nil
}

func (s *statsService) TournamentStandings(ctx context.Context, tournamentID uuid.UUID) ([]models.Standing, error) {
	players, games, scores, err := s.seasonSnapshot(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return stats.Aggregate(players, games, scores), nil
}

func (s *statsService) Positions(ctx context.Context, tournamentID uuid.UUID) ([]models.PositionCount, error) {
	players, games, scores, err := s.seasonSnapshot(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return stats.Positions(players, games, scores), nil
}

// Comparison aligns the season with its predecessor at the given cutoff;
// cutoff <= 0 means "games played so far in this season". A nil result with
// no error means there is no previous season to compare against.
func (s *statsService) Comparison(ctx context.Context, tournamentID uuid.UUID, cutoff int) (*models.SeasonComparison, error) {
	players, tournaments, games, scores, err := s.fullSnapshot(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if cutoff <= 0 {
		for _, g := range games {
			if g.TournamentID == tournamentID {
				cutoff++
			}
		}
	}
	return stats.CompareSeasons(tournaments, tournamentID, players, games, scores, cutoff), nil
}

func (s *statsService) Progression(ctx context.Context, tournamentID uuid.UUID) ([]models.ProgressionSeries, error) {
	players, tournaments, games, scores, err := s.fullSnapshot(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return stats.Progression(tournaments, tournamentID, players, games, scores), nil
}

func (s *statsService) Risk(ctx context.Context, tournamentID uuid.UUID) ([]models.RiskEstimate, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	players, games, scores, err := s.seasonSnapshot(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	standings := stats.Aggregate(players, games, scores)
	return stats.EstimateRisk(standings, len(games), tournament.TotalGames), nil
}

func (s *statsService) Overview(ctx context.Context) (*models.Overview, error) {
	overview := &models.Overview{}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { overview.PlayersTotal, err = s.playerRepo.Count(gCtx); return })
	g.Go(func() (err error) { overview.TournamentsTotal, err = s.tournamentRepo.Count(gCtx); return })
	g.Go(func() (err error) { overview.GamesTotal, err = s.gameRepo.Count(gCtx); return })
	g.Go(func() error {
		active, err := s.tournamentRepo.GetActive(gCtx, nil)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return nil
			}
			return err
		}
		overview.ActiveTournament = active
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}

// seasonSnapshot fetches one tournament's rows concurrently. The scope must
// exist; an unknown id is a caller error at this boundary even though the
// core itself would tolerate it.
func (s *statsService) seasonSnapshot(ctx context.Context, tournamentID uuid.UUID) ([]models.Player, []models.Game, []models.Score, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, nil, nil, ErrTournamentNotFound
		}
		return nil, nil, nil, err
	}

	var (
		players []models.Player
		games   []models.Game
		scores  []models.Score
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { players, err = s.playerRepo.List(gCtx); return })
	g.Go(func() (err error) { games, err = s.gameRepo.ListByTournament(gCtx, nil, tournamentID); return })
	g.Go(func() (err error) { scores, err = s.scoreRepo.ListByTournament(gCtx, nil, tournamentID); return })
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return players, games, scores, nil
}

// fullSnapshot fetches everything cross-season derivations need. The volumes
// here are tens of games, so whole-table reads are the simple and correct
// choice.
func (s *statsService) fullSnapshot(ctx context.Context, tournamentID uuid.UUID) ([]models.Player, []models.Tournament, []models.Game, []models.Score, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, nil, nil, nil, ErrTournamentNotFound
		}
		return nil, nil, nil, nil, err
	}

	var (
		players     []models.Player
		tournaments []models.Tournament
		games       []models.Game
		scores      []models.Score
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { players, err = s.playerRepo.List(gCtx); return })
	g.Go(func() (err error) {
		tournaments, err = s.tournamentRepo.List(gCtx, repositories.ListTournamentsFilter{})
		return
	})
	g.Go(func() (err error) { games, err = s.gameRepo.ListAll(gCtx); return })
	g.Go(func() (err error) { scores, err = s.scoreRepo.ListAll(gCtx); return })
	if err := g.Wait(); err != nil {
		return nil, nil, nil, nil, err
	}
	return players, tournaments, games, scores, nil
}
