package stats

import (
	"cmp"
	"math"
	"slices"

	"github.com/wavy-96/catan-chambers/models"
)

// The lose-chance formula is a display heuristic tuned by inspection, not a
// statistical model. Its constants and shape are load-bearing for behavioral
// compatibility and must not be "improved" in place.
const (
	lastPlaceRisk  = 65.0 // floor risk for the player currently in last place
	safeRisk       = 8.0  // floor risk for a mathematically safe lead
	avgPointSwing  = 3.5  // assumed average point swing between two players per game
	rankPenalty    = 8.0  // maximum extra risk from rank alone
	confidenceGain = 1.5  // how fast season progress overrides the equal-odds prior
	minLoseChance  = 5
	maxLoseChance  = 90
)

// EstimateRisk converts a standings snapshot into each player's estimated
// chance of finishing the season in last place, as a bounded whole percent.
//
// Before any game is played everyone gets equal odds. Once the season is over
// (gamesPlayed >= totalGames) the actual last-place player — lowest points,
// ties broken by fewer wins — gets exactly 100 and everyone else exactly 0.
// In between, the estimate interpolates between the equal-odds prior and a
// gap-from-last heuristic, weighted by season progress, clamped to [5, 90].
//
// The result is ordered by rank (1 = leader).
func EstimateRisk(standings []models.Standing, gamesPlayed, totalGames int) []models.RiskEstimate {
	n := len(standings)
	if n == 0 {
		return nil
	}

	// Rank 1 = most points; among equals, more wins ranks higher, so the
	// final slot is also the terminal last-place player.
	ranked := make([]models.Standing, n)
	copy(ranked, standings)
	slices.SortFunc(ranked, func(a, b models.Standing) int {
		if c := cmp.Compare(b.TotalPoints, a.TotalPoints); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID.String(), b.PlayerID.String())
	})

	estimates := make([]models.RiskEstimate, n)
	for i, s := range ranked {
		estimates[i] = models.RiskEstimate{
			PlayerID:   s.PlayerID,
			PlayerName: s.PlayerName,
			Rank:       i + 1,
		}
	}

	switch {
	case gamesPlayed <= 0:
		equal := int(math.Round(100 / float64(n)))
		for i := range estimates {
			estimates[i].LoseChance = equal
		}
	case gamesPlayed >= totalGames:
		for i := range estimates {
			if i == n-1 {
				estimates[i].LoseChance = 100
			} else {
				estimates[i].LoseChance = 0
			}
		}
	default:
		lastPoints := ranked[n-1].TotalPoints
		equalChance := 100 / float64(n)
		confidence := math.Min(float64(gamesPlayed)/float64(totalGames)*confidenceGain, 1)

		for i, s := range ranked {
			gapFromLast := float64(s.TotalPoints - lastPoints)
			swing := float64(totalGames-gamesPlayed) * avgPointSwing
			margin := math.Min(gapFromLast/math.Max(swing, 1), 1)

			chance := lastPlaceRisk - margin*(lastPlaceRisk-safeRisk)
			chance += float64(i) / math.Max(float64(n-1), 1) * rankPenalty

			adjusted := equalChance + (chance-equalChance)*confidence
			estimates[i].LoseChance = clampPercent(adjusted)
		}
	}
	return estimates
}

func clampPercent(v float64) int {
	switch {
	case v < minLoseChance:
		return minLoseChance
	case v > maxLoseChance:
		return maxLoseChance
	default:
		return int(math.Round(v))
	}
}
