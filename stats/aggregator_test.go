package stats

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/wavy-96/catan-chambers/models"
)

func TestAggregateTotalsWinsAndAchievements(t *testing.T) {
	alice, bob := mkPlayer(1, "Alice"), mkPlayer(2, "Bob")
	tid := tournamentID(1)

	g1 := mkGame(1, tid, 1, alice.ID)
	g2 := mkGame(2, tid, 2, bob.ID)
	games := []models.Game{g1, g2}
	scores := []models.Score{
		mkScoreFlags(g1.ID, alice.ID, 10, true, false),
		mkScore(g1.ID, bob.ID, 7),
		mkScoreFlags(g2.ID, alice.ID, 8, false, true),
		mkScoreFlags(g2.ID, bob.ID, 10, true, false),
	}

	standings := Aggregate([]models.Player{alice, bob}, games, scores)
	if len(standings) != 2 {
		t.Fatalf("expected 2 standings, got %d", len(standings))
	}

	got := StandingFor(standings, alice.ID)
	want := models.Standing{
		PlayerID: alice.ID, PlayerName: "Alice",
		GamesPlayed: 2, Wins: 1, TotalPoints: 18,
		LongestRoadCount: 1, LargestArmyCount: 1,
		WinStreak: 0, BestWinStreak: 1,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("alice standing = %+v, want %+v", got, want)
	}

	// Conservation: per-player totals must sum to the sum of all score rows.
	sum := 0
	for _, s := range standings {
		sum += s.TotalPoints
	}
	if sum != 35 {
		t.Errorf("total points across standings = %d, want 35", sum)
	}
}

func TestAggregateZeroValuedStandingForIdlePlayer(t *testing.T) {
	alice, bob, idle := mkPlayer(1, "Alice"), mkPlayer(2, "Bob"), mkPlayer(3, "Carol")
	tid := tournamentID(1)
	g1 := mkGame(1, tid, 1, alice.ID)
	scores := []models.Score{mkScore(g1.ID, alice.ID, 10), mkScore(g1.ID, bob.ID, 4)}

	standings := Aggregate([]models.Player{alice, bob, idle}, []models.Game{g1}, scores)
	got := StandingFor(standings, idle.ID)
	want := models.Standing{PlayerID: idle.ID, PlayerName: "Carol"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("idle player standing = %+v, want zero-valued %+v", got, want)
	}
}

func TestStandingForUnknownPlayerIsTotal(t *testing.T) {
	unknown := playerID(99)
	got := StandingFor(nil, unknown)
	if got.PlayerID != unknown || got.GamesPlayed != 0 || got.TotalPoints != 0 {
		t.Errorf("StandingFor(unknown) = %+v, want fully zero-valued standing", got)
	}
}

func TestAggregateWinStreaks(t *testing.T) {
	alice, bob := mkPlayer(1, "Alice"), mkPlayer(2, "Bob")
	tid := tournamentID(1)

	// Alice wins games 3, 4, 5, loses 6, wins 7 in a 7-game season.
	winners := []uuid.UUID{bob.ID, bob.ID, alice.ID, alice.ID, alice.ID, bob.ID, alice.ID}
	var games []models.Game
	var scores []models.Score
	for i, w := range winners {
		g := mkGame(i+1, tid, i+1, w)
		games = append(games, g)
		for _, p := range []models.Player{alice, bob} {
			pts := 6
			if p.ID == w {
				pts = 10
			}
			scores = append(scores, mkScore(g.ID, p.ID, pts))
		}
	}

	standings := Aggregate([]models.Player{alice, bob}, games, scores)
	got := StandingFor(standings, alice.ID)
	if got.WinStreak != 1 {
		t.Errorf("alice win_streak = %d, want 1", got.WinStreak)
	}
	if got.BestWinStreak != 3 {
		t.Errorf("alice best_win_streak = %d, want 3", got.BestWinStreak)
	}
	if got.Wins != 4 {
		t.Errorf("alice wins = %d, want 4", got.Wins)
	}
}

func TestAggregateReplaysByGameNumberWithinSeason(t *testing.T) {
	alice, bob := mkPlayer(1, "Alice"), mkPlayer(2, "Bob")
	tid := tournamentID(1)

	// Bob wins game 1, Alice wins games 2 and 3 — but game 3's recording
	// timestamp was edited to predate the others. Game number, not the
	// timestamp, is the replay order within a season.
	g1 := mkGame(1, tid, 1, bob.ID)
	g2 := mkGame(2, tid, 2, alice.ID)
	g3 := mkGame(3, tid, 3, alice.ID)
	g3.CreatedAt = fixtureStart.Add(-48 * time.Hour)

	games := []models.Game{g1, g2, g3}
	var scores []models.Score
	for _, g := range games {
		for _, p := range []models.Player{alice, bob} {
			pts := 6
			if p.ID == g.WinnerID {
				pts = 10
			}
			scores = append(scores, mkScore(g.ID, p.ID, pts))
		}
	}

	standings := Aggregate([]models.Player{alice, bob}, games, scores)
	got := StandingFor(standings, alice.ID)
	if got.WinStreak != 2 {
		t.Errorf("alice win_streak = %d, want 2", got.WinStreak)
	}
	if got.BestWinStreak != 2 {
		t.Errorf("alice best_win_streak = %d, want 2", got.BestWinStreak)
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	alice, bob := mkPlayer(1, "Alice"), mkPlayer(2, "Bob")
	tid := tournamentID(1)
	g1 := mkGame(1, tid, 1, alice.ID)
	g2 := mkGame(2, tid, 2, alice.ID)
	players := []models.Player{alice, bob}
	games := []models.Game{g2, g1} // intentionally out of order
	scores := []models.Score{
		mkScore(g1.ID, alice.ID, 10), mkScore(g1.ID, bob.ID, 3),
		mkScore(g2.ID, alice.ID, 11), mkScore(g2.ID, bob.ID, 5),
	}

	first := Aggregate(players, games, scores)
	second := Aggregate(players, games, scores)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("recomputation diverged:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestAggregateToleratesMissingScoreRows(t *testing.T) {
	alice, bob := mkPlayer(1, "Alice"), mkPlayer(2, "Bob")
	tid := tournamentID(1)
	g1 := mkGame(1, tid, 1, alice.ID)
	// Bob's score row for g1 is missing: treated as zero, never a crash.
	scores := []models.Score{mkScore(g1.ID, alice.ID, 10)}

	standings := Aggregate([]models.Player{alice, bob}, []models.Game{g1}, scores)
	gotBob := StandingFor(standings, bob.ID)
	if gotBob.GamesPlayed != 0 || gotBob.TotalPoints != 0 {
		t.Errorf("bob standing = %+v, want zero for missing score rows", gotBob)
	}
	gotAlice := StandingFor(standings, alice.ID)
	if gotAlice.Wins != 1 {
		t.Errorf("alice wins = %d, want 1", gotAlice.Wins)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	if got := Aggregate(nil, nil, nil); len(got) != 0 {
		t.Errorf("Aggregate(nil, nil, nil) = %+v, want empty", got)
	}
}

func TestAggregateDisplayOrder(t *testing.T) {
	alice, bob, carol := mkPlayer(1, "Alice"), mkPlayer(2, "Bob"), mkPlayer(3, "Carol")
	tid := tournamentID(1)
	g1 := mkGame(1, tid, 1, carol.ID)
	scores := []models.Score{
		mkScore(g1.ID, alice.ID, 5),
		mkScore(g1.ID, bob.ID, 8),
		mkScore(g1.ID, carol.ID, 10),
	}

	standings := Aggregate([]models.Player{alice, bob, carol}, []models.Game{g1}, scores)
	order := []uuid.UUID{carol.ID, bob.ID, alice.ID}
	for i, want := range order {
		if standings[i].PlayerID != want {
			t.Fatalf("standings[%d].PlayerID = %s, want %s", i, standings[i].PlayerID, want)
		}
	}
}
