package stats

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wavy-96/catan-chambers/models"
)

var fixtureStart = time.Date(2025, time.March, 1, 19, 0, 0, 0, time.UTC)

func testID(kind byte, n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-4000-80%02x-%012x", kind, n))
}

func playerID(n int) uuid.UUID     { return testID(0x01, n) }
func gameID(n int) uuid.UUID       { return testID(0x02, n) }
func tournamentID(n int) uuid.UUID { return testID(0x03, n) }

func mkPlayer(n int, name string) models.Player {
	return models.Player{ID: playerID(n), Name: name, CreatedAt: fixtureStart}
}

func mkTournament(n int, name string, totalGames int, createdAt time.Time) models.Tournament {
	return models.Tournament{
		ID:         tournamentID(n),
		Name:       name,
		TotalGames: totalGames,
		Status:     models.StatusCompleted,
		CreatedAt:  createdAt,
	}
}

// mkGame derives a globally unique game id from an arbitrary sequence number
// and spaces recording timestamps an hour apart so replay order matches.
func mkGame(seq int, tid uuid.UUID, number int, winner uuid.UUID) models.Game {
	return models.Game{
		ID:           gameID(seq),
		TournamentID: tid,
		GameNumber:   number,
		WinnerID:     winner,
		PlayedOn:     fixtureStart.Add(time.Duration(seq) * 24 * time.Hour),
		CreatedAt:    fixtureStart.Add(time.Duration(seq) * time.Hour),
	}
}

func mkScore(gid, pid uuid.UUID, points int) models.Score {
	return models.Score{ID: uuid.New(), GameID: gid, PlayerID: pid, Points: points}
}

func mkScoreFlags(gid, pid uuid.UUID, points int, longestRoad, largestArmy bool) models.Score {
	sc := mkScore(gid, pid, points)
	sc.LongestRoad = longestRoad
	sc.LargestArmy = largestArmy
	return sc
}
