package stats

import (
	"testing"
	"time"

	"github.com/wavy-96/catan-chambers/models"
)

// twoSeasons builds a previous season (2 games) and a current season (3
// games) over the same two-player roster.
//
//	previous: g1 alice 10 / bob 4, g2 alice 6 / bob 10 (bob wins g2)
//	current:  g3 alice 8 / bob 9, g4 alice 10 / bob 2, g5 alice 7 / bob 10
func twoSeasons() (players []models.Player, tournaments []models.Tournament, games []models.Game, scores []models.Score) {
	alice, bob := mkPlayer(1, "Alice"), mkPlayer(2, "Bob")
	players = []models.Player{alice, bob}

	prev := mkTournament(1, "Winter League", 10, fixtureStart)
	cur := mkTournament(2, "Spring League", 10, fixtureStart.Add(30*24*time.Hour))
	tournaments = []models.Tournament{cur, prev} // intentionally unordered

	g1 := mkGame(1, prev.ID, 1, alice.ID)
	g2 := mkGame(2, prev.ID, 2, bob.ID)
	g3 := mkGame(3, cur.ID, 1, bob.ID)
	g4 := mkGame(4, cur.ID, 2, alice.ID)
	g5 := mkGame(5, cur.ID, 3, bob.ID)
	games = []models.Game{g1, g2, g3, g4, g5}

	scores = []models.Score{
		mkScore(g1.ID, alice.ID, 10), mkScore(g1.ID, bob.ID, 4),
		mkScore(g2.ID, alice.ID, 6), mkScoreFlags(g2.ID, bob.ID, 10, true, false),
		mkScore(g3.ID, alice.ID, 8), mkScore(g3.ID, bob.ID, 9),
		mkScore(g4.ID, alice.ID, 10), mkScore(g4.ID, bob.ID, 2),
		mkScore(g5.ID, alice.ID, 7), mkScore(g5.ID, bob.ID, 10),
	}
	return players, tournaments, games, scores
}

func TestCompareSeasonsAtCutoff(t *testing.T) {
	players, tournaments, games, scores := twoSeasons()

	cmp := CompareSeasons(tournaments, tournamentID(2), players, games, scores, 2)
	if cmp == nil {
		t.Fatal("expected a comparison, got nil")
	}
	if cmp.PreviousTournamentID != tournamentID(1) {
		t.Errorf("previous tournament = %s, want %s", cmp.PreviousTournamentID, tournamentID(1))
	}
	if cmp.PreviousGamesUsed != 2 {
		t.Errorf("previous games used = %d, want 2", cmp.PreviousGamesUsed)
	}

	var alice models.ComparisonEntry
	for _, e := range cmp.Entries {
		if e.PlayerName == "Alice" {
			alice = e
		}
	}
	// Alice current (g3+g4): 18 points, 1 win. Previous (g1+g2): 16 points, 1 win.
	if alice.CurrentPoints != 18 || alice.PreviousPoints != 16 || alice.PointsDiff != 2 {
		t.Errorf("alice points = %d/%d/%d, want 18/16/+2",
			alice.CurrentPoints, alice.PreviousPoints, alice.PointsDiff)
	}
	if alice.WinsDiff != 0 {
		t.Errorf("alice wins diff = %d, want 0", alice.WinsDiff)
	}
}

func TestCompareSeasonsShortPreviousSeason(t *testing.T) {
	players, tournaments, games, scores := twoSeasons()

	// Cutoff exceeds the previous season's 2 recorded games: comparison still
	// computed from what is available, never an error.
	cmp := CompareSeasons(tournaments, tournamentID(2), players, games, scores, 3)
	if cmp == nil {
		t.Fatal("expected a comparison, got nil")
	}
	if cmp.Cutoff != 3 || cmp.PreviousGamesUsed != 2 {
		t.Errorf("cutoff/used = %d/%d, want 3/2", cmp.Cutoff, cmp.PreviousGamesUsed)
	}

	var bob models.ComparisonEntry
	for _, e := range cmp.Entries {
		if e.PlayerName == "Bob" {
			bob = e
		}
	}
	// Bob current (all 3 games): 21 points, 2 wins, 0 longest road.
	// Previous (both games): 14 points, 1 win, 1 longest road.
	if bob.CurrentPoints != 21 || bob.PreviousPoints != 14 {
		t.Errorf("bob points = %d/%d, want 21/14", bob.CurrentPoints, bob.PreviousPoints)
	}
	if bob.WinsDiff != 1 || bob.LongestRoadDiff != -1 {
		t.Errorf("bob wins diff = %d, road diff = %d, want +1/-1", bob.WinsDiff, bob.LongestRoadDiff)
	}
}

func TestCompareSeasonsNoComparison(t *testing.T) {
	players, tournaments, games, scores := twoSeasons()

	if cmp := CompareSeasons(tournaments, tournamentID(1), players, games, scores, 2); cmp != nil {
		t.Errorf("earliest season: expected nil comparison, got %+v", cmp)
	}
	if cmp := CompareSeasons(tournaments, tournamentID(9), players, games, scores, 2); cmp != nil {
		t.Errorf("unknown tournament: expected nil comparison, got %+v", cmp)
	}
}

func TestProgressionActualsNullsAndProjection(t *testing.T) {
	alice, bob := mkPlayer(1, "Alice"), mkPlayer(2, "Bob")
	players := []models.Player{alice, bob}

	prev := mkTournament(1, "Winter League", 10, fixtureStart)
	cur := mkTournament(2, "Spring League", 10, fixtureStart.Add(30*24*time.Hour))

	// Previous season ran 4 games; the current one has only played 2.
	var games []models.Game
	var scores []models.Score
	for i := 1; i <= 4; i++ {
		g := mkGame(i, prev.ID, i, alice.ID)
		games = append(games, g)
		scores = append(scores, mkScore(g.ID, alice.ID, 10), mkScore(g.ID, bob.ID, 5))
	}
	for i := 1; i <= 2; i++ {
		g := mkGame(4+i, cur.ID, i, alice.ID)
		games = append(games, g)
		scores = append(scores, mkScore(g.ID, alice.ID, 8), mkScore(g.ID, bob.ID, 6))
	}

	series := Progression([]models.Tournament{prev, cur}, cur.ID, players, games, scores)
	if len(series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(series))
	}

	aliceSeries := series[0] // sorted by player name
	if aliceSeries.PlayerName != "Alice" {
		t.Fatalf("series[0] = %s, want Alice", aliceSeries.PlayerName)
	}
	if len(aliceSeries.Points) != 4 {
		t.Fatalf("checkpoints = %d, want 4 (longer season)", len(aliceSeries.Points))
	}

	// Checkpoints 1-2: actual current totals 8, 16. Checkpoints 3-4: linear
	// projection at 8 points per game observed so far.
	for i, want := range []float64{8, 16, 24, 32} {
		pt := aliceSeries.Points[i]
		if pt.Current == nil || *pt.Current != want {
			t.Errorf("checkpoint %d current = %v, want %v", i+1, pt.Current, want)
		}
		wantProjected := i >= 2
		if pt.Projected != wantProjected {
			t.Errorf("checkpoint %d projected = %v, want %v", i+1, pt.Projected, wantProjected)
		}
		if pt.Previous == nil || *pt.Previous != float64(10*(i+1)) {
			t.Errorf("checkpoint %d previous = %v, want %d", i+1, pt.Previous, 10*(i+1))
		}
	}
}

func TestProgressionWithoutPreviousSeason(t *testing.T) {
	alice := mkPlayer(1, "Alice")
	cur := mkTournament(1, "Winter League", 10, fixtureStart)
	g := mkGame(1, cur.ID, 1, alice.ID)
	scores := []models.Score{mkScore(g.ID, alice.ID, 9)}

	series := Progression([]models.Tournament{cur}, cur.ID, []models.Player{alice}, []models.Game{g}, scores)
	if len(series) != 1 || len(series[0].Points) != 1 {
		t.Fatalf("series = %+v, want one player with one checkpoint", series)
	}
	pt := series[0].Points[0]
	if pt.Current == nil || *pt.Current != 9 || pt.Previous != nil {
		t.Errorf("checkpoint = %+v, want current 9 and nil previous", pt)
	}
}
