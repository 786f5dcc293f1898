package stats

import (
	"reflect"
	"testing"

	"github.com/wavy-96/catan-chambers/models"
)

func TestPositionsCountsExtremesPerCheckpoint(t *testing.T) {
	alice, bob, carol := mkPlayer(1, "Alice"), mkPlayer(2, "Bob"), mkPlayer(3, "Carol")
	players := []models.Player{alice, bob, carol}
	tid := tournamentID(1)

	g1 := mkGame(1, tid, 1, alice.ID)
	g2 := mkGame(2, tid, 2, bob.ID)
	g3 := mkGame(3, tid, 3, bob.ID)
	games := []models.Game{g1, g2, g3}
	scores := []models.Score{
		// After g1: alice 10, bob 5, carol 2 -> top alice, bottom carol
		mkScore(g1.ID, alice.ID, 10), mkScore(g1.ID, bob.ID, 5), mkScore(g1.ID, carol.ID, 2),
		// After g2: alice 13, bob 15, carol 6 -> top bob, bottom carol
		mkScore(g2.ID, alice.ID, 3), mkScore(g2.ID, bob.ID, 10), mkScore(g2.ID, carol.ID, 4),
		// After g3: alice 15, bob 25, carol 13 -> top bob, bottom carol
		mkScore(g3.ID, alice.ID, 2), mkScore(g3.ID, bob.ID, 10), mkScore(g3.ID, carol.ID, 7),
	}

	counts := Positions(players, games, scores)

	want := map[string][2]int{
		"Alice": {1, 0},
		"Bob":   {2, 0},
		"Carol": {0, 3},
	}
	for _, c := range counts {
		w := want[c.PlayerName]
		if c.GamesAtTop != w[0] || c.GamesAtBottom != w[1] {
			t.Errorf("%s = top %d / bottom %d, want top %d / bottom %d",
				c.PlayerName, c.GamesAtTop, c.GamesAtBottom, w[0], w[1])
		}
	}

	// Display order: most games at top first.
	if counts[0].PlayerName != "Bob" {
		t.Errorf("counts[0] = %s, want Bob", counts[0].PlayerName)
	}
}

func TestPositionsTieBreakIsDeterministic(t *testing.T) {
	alice, bob := mkPlayer(1, "Alice"), mkPlayer(2, "Bob")
	tid := tournamentID(1)

	// Both players end every checkpoint on identical cumulative totals.
	g1 := mkGame(1, tid, 1, alice.ID)
	g2 := mkGame(2, tid, 2, bob.ID)
	g3 := mkGame(3, tid, 3, alice.ID)
	games := []models.Game{g1, g2, g3}
	var scores []models.Score
	for _, g := range games {
		scores = append(scores, mkScore(g.ID, alice.ID, 8), mkScore(g.ID, bob.ID, 8))
	}

	// The tie must resolve to the same player on every run, regardless of the
	// order the roster is supplied in. Lowest player id wins both extremes.
	rosters := [][]models.Player{
		{alice, bob},
		{bob, alice},
	}
	var baseline []models.PositionCount
	for run := 0; run < 50; run++ {
		counts := Positions(rosters[run%2], games, scores)
		if baseline == nil {
			baseline = counts
			continue
		}
		if !reflect.DeepEqual(counts, baseline) {
			t.Fatalf("run %d diverged from baseline:\ngot  %+v\nwant %+v", run, counts, baseline)
		}
	}

	got := baseline[0]
	if got.PlayerID != alice.ID || got.GamesAtTop != 3 || got.GamesAtBottom != 3 {
		t.Errorf("tied checkpoints resolved to %+v, want Alice with top 3 / bottom 3", got)
	}
}

func TestPositionsDegenerateInput(t *testing.T) {
	alice := mkPlayer(1, "Alice")

	counts := Positions([]models.Player{alice}, nil, nil)
	if len(counts) != 1 || counts[0].GamesAtTop != 0 || counts[0].GamesAtBottom != 0 {
		t.Errorf("no games: counts = %+v, want single zero-valued entry", counts)
	}

	if counts := Positions(nil, nil, nil); len(counts) != 0 {
		t.Errorf("no players: counts = %+v, want empty", counts)
	}
}
