package realtime

import "github.com/google/uuid"

// TournamentRoom names the hub room for one season's subscribers.
func TournamentRoom(tournamentID uuid.UUID) string {
	return "tournament_" + tournamentID.String()
}
