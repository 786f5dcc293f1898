package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/wavy-96/catan-chambers/models"
)

func rosterOf(n int) []models.Player {
	players := make([]models.Player, n)
	for i := range players {
		players[i] = models.Player{
			ID:   uuid.MustParse(fmt.Sprintf("00000000-0000-4000-8001-%012x", i+1)),
			Name: fmt.Sprintf("player-%d", i+1),
		}
	}
	return players
}

func TestResolveWinner(t *testing.T) {
	roster := rosterOf(3)
	alice, bob, carol := roster[0].ID, roster[1].ID, roster[2].ID

	tests := []struct {
		name       string
		scores     []ScoreInput
		wantWinner uuid.UUID
		wantErr    error
	}{
		{
			name: "unique top score at threshold wins",
			scores: []ScoreInput{
				{PlayerID: alice, Points: 10, LongestRoad: true},
				{PlayerID: bob, Points: 8, LargestArmy: true},
				{PlayerID: carol, Points: 6},
			},
			wantWinner: alice,
		},
		{
			name: "nobody reaches the threshold",
			scores: []ScoreInput{
				{PlayerID: alice, Points: 9},
				{PlayerID: bob, Points: 8},
				{PlayerID: carol, Points: 7},
			},
			wantErr: ErrNoWinner,
		},
		{
			name: "two players tie at the top qualifying score",
			scores: []ScoreInput{
				{PlayerID: alice, Points: 11},
				{PlayerID: bob, Points: 11},
				{PlayerID: carol, Points: 5},
			},
			wantErr: ErrAmbiguousWinner,
		},
		{
			name: "tie below the winner does not block",
			scores: []ScoreInput{
				{PlayerID: alice, Points: 12},
				{PlayerID: bob, Points: 8},
				{PlayerID: carol, Points: 8},
			},
			wantWinner: alice,
		},
		{
			name: "missing roster member",
			scores: []ScoreInput{
				{PlayerID: alice, Points: 10},
				{PlayerID: bob, Points: 7},
			},
			wantErr: ErrScoresIncomplete,
		},
		{
			name: "duplicate score row for one player",
			scores: []ScoreInput{
				{PlayerID: alice, Points: 10},
				{PlayerID: alice, Points: 4},
				{PlayerID: carol, Points: 6},
			},
			wantErr: ErrScoresIncomplete,
		},
		{
			name: "score for a player outside the roster",
			scores: []ScoreInput{
				{PlayerID: alice, Points: 10},
				{PlayerID: bob, Points: 7},
				{PlayerID: uuid.MustParse("00000000-0000-4000-8001-0000000000ff"), Points: 6},
			},
			wantErr: ErrScoresIncomplete,
		},
		{
			name: "negative points",
			scores: []ScoreInput{
				{PlayerID: alice, Points: 10},
				{PlayerID: bob, Points: -1},
				{PlayerID: carol, Points: 6},
			},
			wantErr: ErrScoreNegativePoints,
		},
		{
			name: "longest road claimed twice",
			scores: []ScoreInput{
				{PlayerID: alice, Points: 10, LongestRoad: true},
				{PlayerID: bob, Points: 8, LongestRoad: true},
				{PlayerID: carol, Points: 6},
			},
			wantErr: ErrDuplicateAchievement,
		},
		{
			name: "largest army claimed twice",
			scores: []ScoreInput{
				{PlayerID: alice, Points: 10},
				{PlayerID: bob, Points: 8, LargestArmy: true},
				{PlayerID: carol, Points: 6, LargestArmy: true},
			},
			wantErr: ErrDuplicateAchievement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner, err := resolveWinner(roster, tt.scores, 10)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("resolveWinner() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveWinner() unexpected error: %v", err)
			}
			if winner != tt.wantWinner {
				t.Fatalf("resolveWinner() = %s, want %s", winner, tt.wantWinner)
			}
		})
	}
}

func TestNextGameNumberAfterMidSeasonDeletion(t *testing.T) {
	numbered := func(numbers ...int) []models.Game {
		games := make([]models.Game, len(numbers))
		for i, n := range numbers {
			games[i] = models.Game{GameNumber: n}
		}
		return games
	}

	tests := []struct {
		name  string
		games []models.Game
		want  int
	}{
		{name: "fresh season starts at one", games: nil, want: 1},
		{name: "unbroken history continues the sequence", games: numbered(1, 2, 3), want: 4},
		// Game 3 of 5 was deleted; reusing the row count would assign 5
		// again and collide with the surviving game 5.
		{name: "gap from a deleted game is never refilled", games: numbered(1, 2, 4, 5), want: 6},
		{name: "order of rows does not matter", games: numbered(5, 1, 4, 2), want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextGameNumber(tt.games); got != tt.want {
				t.Fatalf("nextGameNumber() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveWinnerHonorsThreshold(t *testing.T) {
	roster := rosterOf(2)
	scores := []ScoreInput{
		{PlayerID: roster[0].ID, Points: 7},
		{PlayerID: roster[1].ID, Points: 5},
	}

	if _, err := resolveWinner(roster, scores, 10); !errors.Is(err, ErrNoWinner) {
		t.Fatalf("threshold 10: error = %v, want %v", err, ErrNoWinner)
	}
	winner, err := resolveWinner(roster, scores, 7)
	if err != nil {
		t.Fatalf("threshold 7: unexpected error: %v", err)
	}
	if winner != roster[0].ID {
		t.Fatalf("threshold 7: winner = %s, want %s", winner, roster[0].ID)
	}
}
