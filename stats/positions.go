package stats

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
	"github.com/wavy-96/catan-chambers/models"
)

// Positions replays one season's games in ascending game-number order and,
// after each game, counts which player holds the highest and which the lowest
// cumulative point total at that checkpoint.
//
// Ties at a checkpoint resolve to the lexicographically lowest player id.
// The rule is arbitrary but uniform, which is the point: repeated runs over
// identical input must always crown the same player.
//
// The result covers the whole roster and is sorted by games at top
// descending, then games at bottom descending, then player id.
func Positions(players []models.Player, games []models.Game, scores []models.Score) []models.PositionCount {
	counts := make([]models.PositionCount, len(players))
	index := make(map[uuid.UUID]int, len(players))
	for i, p := range players {
		counts[i] = models.PositionCount{PlayerID: p.ID, PlayerName: p.Name}
		index[p.ID] = i
	}
	if len(players) == 0 || len(games) == 0 {
		return counts
	}

	scoresByGame := make(map[uuid.UUID][]models.Score, len(games))
	for _, sc := range scores {
		scoresByGame[sc.GameID] = append(scoresByGame[sc.GameID], sc)
	}

	// Roster order sorted by id once, so extreme selection below is a simple
	// first-match scan.
	roster := make([]models.Player, len(players))
	copy(roster, players)
	slices.SortFunc(roster, func(a, b models.Player) int {
		return cmp.Compare(a.ID.String(), b.ID.String())
	})

	cumulative := make(map[uuid.UUID]int, len(players))
	for _, g := range replayOrder(games) {
		for _, sc := range scoresByGame[g.ID] {
			cumulative[sc.PlayerID] += sc.Points
		}

		top, bottom := roster[0].ID, roster[0].ID
		for _, p := range roster[1:] {
			if cumulative[p.ID] > cumulative[top] {
				top = p.ID
			}
			if cumulative[p.ID] < cumulative[bottom] {
				bottom = p.ID
			}
		}
		if i, ok := index[top]; ok {
			counts[i].GamesAtTop++
		}
		if i, ok := index[bottom]; ok {
			counts[i].GamesAtBottom++
		}
	}

	slices.SortFunc(counts, func(a, b models.PositionCount) int {
		if c := cmp.Compare(b.GamesAtTop, a.GamesAtTop); c != 0 {
			return c
		}
		if c := cmp.Compare(b.GamesAtBottom, a.GamesAtBottom); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID.String(), b.PlayerID.String())
	})
	return counts
}
