package stats

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
	"github.com/wavy-96/catan-chambers/models"
)

// CompareSeasons computes the per-player differential between the current
// season and the immediately preceding one, both truncated to the first
// cutoff games by ascending game number. Alignment is by game index, never by
// wall-clock date.
//
// It returns nil when there is nothing to compare: the current season is the
// earliest, or the requested tournament is not in the supplied set. A
// previous season shorter than the cutoff is not an error; the comparison
// uses however many games it has.
func CompareSeasons(tournaments []models.Tournament, currentID uuid.UUID, players []models.Player, games []models.Game, scores []models.Score, cutoff int) *models.SeasonComparison {
	previous := seasonBefore(tournaments, currentID)
	if previous == nil {
		return nil
	}
	if cutoff < 0 {
		cutoff = 0
	}

	currentGames := firstGames(games, currentID, cutoff)
	previousGames := firstGames(games, previous.ID, cutoff)

	current := Aggregate(players, currentGames, scoresForGames(scores, currentGames))
	prior := Aggregate(players, previousGames, scoresForGames(scores, previousGames))

	entries := make([]models.ComparisonEntry, 0, len(players))
	for _, p := range players {
		cur := StandingFor(current, p.ID)
		prev := StandingFor(prior, p.ID)
		entries = append(entries, models.ComparisonEntry{
			PlayerID:            p.ID,
			PlayerName:          p.Name,
			CurrentPoints:       cur.TotalPoints,
			PreviousPoints:      prev.TotalPoints,
			PointsDiff:          cur.TotalPoints - prev.TotalPoints,
			CurrentWins:         cur.Wins,
			PreviousWins:        prev.Wins,
			WinsDiff:            cur.Wins - prev.Wins,
			CurrentLongestRoad:  cur.LongestRoadCount,
			PreviousLongestRoad: prev.LongestRoadCount,
			LongestRoadDiff:     cur.LongestRoadCount - prev.LongestRoadCount,
			CurrentLargestArmy:  cur.LargestArmyCount,
			PreviousLargestArmy: prev.LargestArmyCount,
			LargestArmyDiff:     cur.LargestArmyCount - prev.LargestArmyCount,
		})
	}
	slices.SortFunc(entries, func(a, b models.ComparisonEntry) int {
		if c := cmp.Compare(b.CurrentPoints, a.CurrentPoints); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID.String(), b.PlayerID.String())
	})

	return &models.SeasonComparison{
		CurrentTournamentID:  currentID,
		PreviousTournamentID: previous.ID,
		Cutoff:               cutoff,
		PreviousGamesUsed:    len(previousGames),
		Entries:              entries,
	}
}

// Progression builds the per-player trend lines for the projected-vs-actual
// chart: cumulative points in the current and previous season at every
// checkpoint from 1 to the longer season's length. Checkpoints a season has
// not reached are nil, except that the current season is extended past its
// last played game by linear projection at the player's observed average
// points per game.
func Progression(tournaments []models.Tournament, currentID uuid.UUID, players []models.Player, games []models.Game, scores []models.Score) []models.ProgressionSeries {
	currentGames := firstGames(games, currentID, -1)
	var previousGames []models.Game
	if previous := seasonBefore(tournaments, currentID); previous != nil {
		previousGames = firstGames(games, previous.ID, -1)
	}

	checkpoints := max(len(currentGames), len(previousGames))
	currentTotals := cumulativeTotals(players, currentGames, scores)
	previousTotals := cumulativeTotals(players, previousGames, scores)

	series := make([]models.ProgressionSeries, 0, len(players))
	for _, p := range players {
		cur := currentTotals[p.ID]
		prev := previousTotals[p.ID]

		avg := 0.0
		if len(cur) > 0 {
			avg = float64(cur[len(cur)-1]) / float64(len(cur))
		}

		points := make([]models.ProgressionPoint, checkpoints)
		for i := 1; i <= checkpoints; i++ {
			pt := models.ProgressionPoint{GameNumber: i}
			switch {
			case i <= len(cur):
				v := float64(cur[i-1])
				pt.Current = &v
			case len(cur) > 0:
				v := avg * float64(i)
				pt.Current = &v
				pt.Projected = true
			}
			if i <= len(prev) {
				v := float64(prev[i-1])
				pt.Previous = &v
			}
			points[i-1] = pt
		}
		series = append(series, models.ProgressionSeries{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Points:     points,
		})
	}
	slices.SortFunc(series, func(a, b models.ProgressionSeries) int {
		if c := cmp.Compare(a.PlayerName, b.PlayerName); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID.String(), b.PlayerID.String())
	})
	return series
}

// seasonBefore finds the tournament immediately preceding the given one by
// creation order. Nil when the id is unknown or the season is the earliest.
func seasonBefore(tournaments []models.Tournament, currentID uuid.UUID) *models.Tournament {
	ordered := make([]models.Tournament, len(tournaments))
	copy(ordered, tournaments)
	slices.SortFunc(ordered, func(a, b models.Tournament) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	for i, t := range ordered {
		if t.ID == currentID {
			if i == 0 {
				return nil
			}
			return &ordered[i-1]
		}
	}
	return nil
}

// firstGames returns up to n of the tournament's games in ascending
// game-number order; n < 0 means all of them.
func firstGames(games []models.Game, tournamentID uuid.UUID, n int) []models.Game {
	var selected []models.Game
	for _, g := range games {
		if g.TournamentID == tournamentID {
			selected = append(selected, g)
		}
	}
	slices.SortFunc(selected, func(a, b models.Game) int {
		return cmp.Compare(a.GameNumber, b.GameNumber)
	})
	if n >= 0 && len(selected) > n {
		selected = selected[:n]
	}
	return selected
}

func scoresForGames(scores []models.Score, games []models.Game) []models.Score {
	ids := make(map[uuid.UUID]struct{}, len(games))
	for _, g := range games {
		ids[g.ID] = struct{}{}
	}
	var selected []models.Score
	for _, sc := range scores {
		if _, ok := ids[sc.GameID]; ok {
			selected = append(selected, sc)
		}
	}
	return selected
}

// cumulativeTotals replays the given games (already one season's worth) and
// returns, per player, the running point total after each game.
func cumulativeTotals(players []models.Player, games []models.Game, scores []models.Score) map[uuid.UUID][]int {
	scoresByGame := make(map[uuid.UUID][]models.Score)
	for _, sc := range scores {
		scoresByGame[sc.GameID] = append(scoresByGame[sc.GameID], sc)
	}

	running := make(map[uuid.UUID]int, len(players))
	totals := make(map[uuid.UUID][]int, len(players))
	for _, p := range players {
		totals[p.ID] = make([]int, 0, len(games))
	}
	for _, g := range games {
		for _, sc := range scoresByGame[g.ID] {
			if _, ok := totals[sc.PlayerID]; ok {
				running[sc.PlayerID] += sc.Points
			}
		}
		for _, p := range players {
			totals[p.ID] = append(totals[p.ID], running[p.ID])
		}
	}
	return totals
}
