package handlers

import (
	"net/http"
	"strconv"

	"github.com/wavy-96/catan-chambers/services"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GlobalStandings aggregates every game ever played across all seasons.
func (h *StatsHandler) GlobalStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.statsService.GlobalStandings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, standings, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) TournamentStandings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := uuidParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	standings, err := h.statsService.TournamentStandings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, standings, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Positions reports how often each player held first or last place after a
// game, over the season so far.
func (h *StatsHandler) Positions(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := uuidParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	positions, err := h.statsService.Positions(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, positions, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Comparison lines the season up against its predecessor at the same number
// of games. ?cutoff=N overrides the default of "games played so far". A
// season with no predecessor yields an empty body with 204.
func (h *StatsHandler) Comparison(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := uuidParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	cutoff := 0
	if raw := r.URL.Query().Get("cutoff"); raw != "" {
		cutoff, err = strconv.Atoi(raw)
		if err != nil || cutoff <= 0 {
			errorResponse(w, r, http.StatusBadRequest, "cutoff must be a positive integer")
			return
		}
	}

	comparison, err := h.statsService.Comparison(r.Context(), tournamentID, cutoff)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if comparison == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := writeJSON(w, http.StatusOK, comparison, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) Progression(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := uuidParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	series, err := h.statsService.Progression(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, series, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) Risk(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := uuidParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	estimates, err := h.statsService.Risk(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, estimates, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.statsService.Overview(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, overview, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
