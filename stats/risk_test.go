package stats

import (
	"testing"

	"github.com/wavy-96/catan-chambers/models"
)

func standingsOf(pointsByName map[string]int, winsByName map[string]int) []models.Standing {
	names := []string{"Alice", "Bob", "Carol", "Dave", "Erin"}
	var standings []models.Standing
	n := 1
	for _, name := range names {
		pts, ok := pointsByName[name]
		if !ok {
			continue
		}
		standings = append(standings, models.Standing{
			PlayerID:    playerID(n),
			PlayerName:  name,
			TotalPoints: pts,
			Wins:        winsByName[name],
		})
		n++
	}
	return standings
}

func chanceOf(t *testing.T, estimates []models.RiskEstimate, name string) int {
	t.Helper()
	for _, e := range estimates {
		if e.PlayerName == name {
			return e.LoseChance
		}
	}
	t.Fatalf("no estimate for %s in %+v", name, estimates)
	return 0
}

func TestEstimateRiskEqualOddsBeforeFirstGame(t *testing.T) {
	tests := []struct {
		players int
		want    int
	}{
		{players: 4, want: 25},
		{players: 3, want: 33},
		{players: 6, want: 17},
	}
	for _, tt := range tests {
		var standings []models.Standing
		for i := 1; i <= tt.players; i++ {
			standings = append(standings, models.Standing{PlayerID: playerID(i)})
		}
		estimates := EstimateRisk(standings, 0, 20)
		for _, e := range estimates {
			if e.LoseChance != tt.want {
				t.Errorf("%d players: chance = %d, want %d", tt.players, e.LoseChance, tt.want)
			}
		}
	}
}

func TestEstimateRiskTerminal(t *testing.T) {
	// Carol and Dave are tied on points; Dave has fewer wins and finishes
	// last, even though the totals are close.
	standings := standingsOf(
		map[string]int{"Alice": 52, "Bob": 44, "Carol": 41, "Dave": 41},
		map[string]int{"Alice": 9, "Bob": 5, "Carol": 4, "Dave": 2},
	)

	estimates := EstimateRisk(standings, 20, 20)
	if got := chanceOf(t, estimates, "Dave"); got != 100 {
		t.Errorf("last place chance = %d, want exactly 100", got)
	}
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		if got := chanceOf(t, estimates, name); got != 0 {
			t.Errorf("%s chance = %d, want exactly 0", name, got)
		}
	}
}

func TestEstimateRiskMidSeasonScenario(t *testing.T) {
	// 4 players, 20-game target, 5 games in: A leads with 40, D trails with
	// 10. Worked through the formula: D 73 raw blended to 43, A 28, B 33,
	// C 38.
	standings := standingsOf(
		map[string]int{"Alice": 40, "Bob": 30, "Carol": 20, "Dave": 10},
		map[string]int{"Alice": 3, "Bob": 1, "Carol": 1, "Dave": 0},
	)

	estimates := EstimateRisk(standings, 5, 20)
	want := map[string]int{"Alice": 28, "Bob": 33, "Carol": 38, "Dave": 43}
	for name, w := range want {
		if got := chanceOf(t, estimates, name); got != w {
			t.Errorf("%s chance = %d, want %d", name, got, w)
		}
	}

	// Rank order must track the standings.
	for i, name := range []string{"Alice", "Bob", "Carol", "Dave"} {
		if estimates[i].PlayerName != name || estimates[i].Rank != i+1 {
			t.Errorf("estimates[%d] = %s rank %d, want %s rank %d",
				i, estimates[i].PlayerName, estimates[i].Rank, name, i+1)
		}
	}
}

func TestEstimateRiskLowerClamp(t *testing.T) {
	// Large roster early in the season with a mathematically safe leader: the
	// equal-odds prior (100/25 = 4) dominates and would pull the leader's
	// blended chance below the floor.
	var standings []models.Standing
	for i := 1; i <= 25; i++ {
		standings = append(standings, models.Standing{
			PlayerID:    playerID(i),
			TotalPoints: 20000 - i*600,
		})
	}

	estimates := EstimateRisk(standings, 10, 100)
	if got := estimates[0].LoseChance; got != 5 {
		t.Errorf("leader chance = %d, want clamped floor 5", got)
	}
}

func TestEstimateRiskStaysBounded(t *testing.T) {
	for players := 2; players <= 8; players++ {
		for played := 1; played < 20; played++ {
			var standings []models.Standing
			for i := 1; i <= players; i++ {
				standings = append(standings, models.Standing{
					PlayerID:    playerID(i),
					TotalPoints: i * 7,
				})
			}
			for _, e := range EstimateRisk(standings, played, 20) {
				if e.LoseChance < 5 || e.LoseChance > 90 {
					t.Fatalf("players=%d played=%d: chance %d out of [5,90]",
						players, played, e.LoseChance)
				}
			}
		}
	}
}

func TestEstimateRiskDegenerateInput(t *testing.T) {
	if got := EstimateRisk(nil, 3, 20); got != nil {
		t.Errorf("no players: got %+v, want nil", got)
	}
	// Zero-game target with nothing played still means equal odds, not a
	// division by zero.
	standings := standingsOf(map[string]int{"Alice": 0, "Bob": 0}, nil)
	estimates := EstimateRisk(standings, 0, 0)
	for _, e := range estimates {
		if e.LoseChance != 50 {
			t.Errorf("chance = %d, want 50", e.LoseChance)
		}
	}
}
