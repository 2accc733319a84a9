package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/Dosada05/tournament-fixtures/services"
)

type MatchHandler struct {
	responder
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService, logger *slog.Logger) *MatchHandler {
	return &MatchHandler{responder: responder{logger: logger}, matchService: ms}
}

// ListHandler godoc
// @Summary      List tournament matches in schedule order
// @Tags         matches
// @Produce      json
// @Param        tournamentID path  string true  "Tournament ID"
// @Param        status       query string false "scheduled, completed or cancelled"
// @Param        round        query int    false "Round number"
// @Success      200 {object} map[string][]models.Match
// @Failure      400,404 {object} map[string]string
// @Router       /tournaments/{tournamentID}/matches [get]
func (h *MatchHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getUUIDFromURL(r, "tournamentID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	var filter services.ListMatchesFilter
	query := r.URL.Query()
	if statusStr := query.Get("status"); statusStr != "" {
		status := models.MatchStatus(statusStr)
		switch status {
		case models.MatchStatusScheduled, models.MatchStatusCompleted, models.MatchStatusCancelled:
			filter.Status = &status
		default:
			h.badRequestResponse(w, r, errors.New("invalid status query parameter"))
			return
		}
	}
	if roundStr := query.Get("round"); roundStr != "" {
		round, err := strconv.Atoi(roundStr)
		if err != nil || round < 1 {
			h.badRequestResponse(w, r, errors.New("invalid round query parameter"))
			return
		}
		filter.Round = &round
	}

	matches, err := h.matchService.ListMatches(r.Context(), tournamentID, filter)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOK(w, r, http.StatusOK, jsonResponse{"matches": matches})
}

// CompleteHandler godoc
// @Summary      Submit the final score of a match
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        tournamentID path string true "Tournament ID"
// @Param        matchID      path string true "Match ID"
// @Param        input body services.CompleteMatchInput true "Score"
// @Success      200 {object} map[string]models.Match
// @Failure      400,401,403,404,409,422 {object} map[string]string
// @Security     BearerAuth
// @Router       /tournaments/{tournamentID}/matches/{matchID}/complete [post]
func (h *MatchHandler) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		h.unauthorizedResponse(w, r, "authentication required")
		return
	}
	tournamentID, err := getUUIDFromURL(r, "tournamentID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	matchID, err := getUUIDFromURL(r, "matchID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	var input services.CompleteMatchInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.CompleteMatch(r.Context(), actor, tournamentID, matchID, input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOK(w, r, http.StatusOK, jsonResponse{"match": match})
}

// CancelHandler godoc
// @Summary      Cancel a scheduled league match
// @Tags         matches
// @Produce      json
// @Param        tournamentID path string true "Tournament ID"
// @Param        matchID      path string true "Match ID"
// @Success      200 {object} map[string]models.Match
// @Failure      400,401,403,404,409 {object} map[string]string
// @Security     BearerAuth
// @Router       /tournaments/{tournamentID}/matches/{matchID}/cancel [post]
func (h *MatchHandler) CancelHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		h.unauthorizedResponse(w, r, "authentication required")
		return
	}
	tournamentID, err := getUUIDFromURL(r, "tournamentID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	matchID, err := getUUIDFromURL(r, "matchID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.CancelMatch(r.Context(), actor, tournamentID, matchID)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOK(w, r, http.StatusOK, jsonResponse{"match": match})
}
