package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/tournament-fixtures/services"
)

type StandingsHandler struct {
	responder
	standingsService services.StandingsService
}

func NewStandingsHandler(ss services.StandingsService, logger *slog.Logger) *StandingsHandler {
	return &StandingsHandler{responder: responder{logger: logger}, standingsService: ss}
}

// GetHandler godoc
// @Summary      Current standings
// @Description  Ranked by points, goal difference, then goals for.
// @Tags         standings
// @Produce      json
// @Param        tournamentID path string true "Tournament ID"
// @Success      200 {object} map[string][]models.Standing
// @Failure      400,404 {object} map[string]string
// @Router       /tournaments/{tournamentID}/standings [get]
func (h *StandingsHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getUUIDFromURL(r, "tournamentID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	table, err := h.standingsService.GetStandings(r.Context(), tournamentID)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOK(w, r, http.StatusOK, jsonResponse{"standings": table})
}
