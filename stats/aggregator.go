// Package stats derives secondary statistics from raw game and score rows.
//
// Every function in this package is a pure fold over an in-memory snapshot:
// rows in, derived values out. Nothing here touches the database, holds state
// between calls, or assumes the snapshot is complete — a game whose score set
// does not cover the full roster is tolerated (missing scores count as zero),
// and empty input always yields a well-defined zero result.
package stats

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/wavy-96/catan-chambers/models"
)

// Aggregate folds the given score and game rows into cumulative per-player
// standings. The caller controls the scope by what it passes in: all rows for
// global standings, one tournament's rows for season standings.
//
// Every player in the roster gets a standing, zero-valued if they have no
// recorded games. The result is ordered for display: total points descending,
// wins descending, then player id for a stable order.
func Aggregate(players []models.Player, games []models.Game, scores []models.Score) []models.Standing {
	byPlayer := make(map[uuid.UUID]*models.Standing, len(players))
	standings := make([]models.Standing, len(players))
	for i, p := range players {
		standings[i] = models.Standing{PlayerID: p.ID, PlayerName: p.Name}
		byPlayer[p.ID] = &standings[i]
	}

	scoresByGame := make(map[uuid.UUID][]models.Score, len(games))
	for _, sc := range scores {
		scoresByGame[sc.GameID] = append(scoresByGame[sc.GameID], sc)
		s, ok := byPlayer[sc.PlayerID]
		if !ok {
			// Score for a player outside the supplied roster. The boundary
			// should never produce this; skip rather than invent a standing.
			continue
		}
		s.GamesPlayed++
		s.TotalPoints += sc.Points
		if sc.LongestRoad {
			s.LongestRoadCount++
		}
		if sc.LargestArmy {
			s.LargestArmyCount++
		}
	}

	// Streaks need the chronological replay: a win extends the run, any
	// played game that is not a win resets it.
	for _, g := range replayOrder(games) {
		winner := g.WinnerID
		if w, ok := byPlayer[winner]; ok {
			w.Wins++
			w.WinStreak++
			if w.WinStreak > w.BestWinStreak {
				w.BestWinStreak = w.WinStreak
			}
		}
		for _, sc := range scoresByGame[g.ID] {
			if sc.PlayerID == winner {
				continue
			}
			if s, ok := byPlayer[sc.PlayerID]; ok {
				s.WinStreak = 0
			}
		}
	}

	slices.SortFunc(standings, func(a, b models.Standing) int {
		if c := cmp.Compare(b.TotalPoints, a.TotalPoints); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID.String(), b.PlayerID.String())
	})
	return standings
}

// StandingFor returns the standing for one player out of an aggregated set.
// Unknown players get a fully populated zero-valued standing, never a partial
// shape — callers must not special-case "no data".
func StandingFor(standings []models.Standing, playerID uuid.UUID) models.Standing {
	for _, s := range standings {
		if s.PlayerID == playerID {
			return s
		}
	}
	return models.Standing{PlayerID: playerID}
}

// replayOrder returns the games sorted into chronological replay order.
// Within one tournament ascending game number is authoritative, whatever the
// row timestamps say (they can be edited; game numbers cannot). Across
// tournaments, seasons are ordered by their earliest recorded game, with
// tournament id as a deterministic tie-break.
func replayOrder(games []models.Game) []models.Game {
	seasonStart := make(map[uuid.UUID]time.Time, 4)
	for _, g := range games {
		if start, ok := seasonStart[g.TournamentID]; !ok || g.CreatedAt.Before(start) {
			seasonStart[g.TournamentID] = g.CreatedAt
		}
	}

	ordered := make([]models.Game, len(games))
	copy(ordered, games)
	slices.SortFunc(ordered, func(a, b models.Game) int {
		if a.TournamentID != b.TournamentID {
			if c := seasonStart[a.TournamentID].Compare(seasonStart[b.TournamentID]); c != 0 {
				return c
			}
			return cmp.Compare(a.TournamentID.String(), b.TournamentID.String())
		}
		return cmp.Compare(a.GameNumber, b.GameNumber)
	})
	return ordered
}
