package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/Dosada05/tournament-fixtures/services"
	"github.com/google/uuid"
)

type TournamentHandler struct {
	responder
	tournamentService services.TournamentService
	fixtureService    services.FixtureService
}

func NewTournamentHandler(ts services.TournamentService, fs services.FixtureService, logger *slog.Logger) *TournamentHandler {
	return &TournamentHandler{
		responder:         responder{logger: logger},
		tournamentService: ts,
		fixtureService:    fs,
	}
}

type inviteTeamRequest struct {
	TeamID uuid.UUID `json:"teamId"`
}

// TeamID may be omitted when the caller manages exactly one invited team.
type rsvpRequest struct {
	TeamID uuid.UUID                  `json:"teamId,omitempty"`
	Status models.ParticipationStatus `json:"status"`
}

// CreateHandler godoc
// @Summary      Create a tournament
// @Tags         tournaments
// @Accept       json
// @Produce      json
// @Param        input body services.CreateTournamentInput true "Tournament"
// @Success      201 {object} map[string]models.Tournament
// @Failure      401,409,422 {object} map[string]string
// @Security     BearerAuth
// @Router       /tournaments [post]
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		h.unauthorizedResponse(w, r, "authentication required to create tournament")
		return
	}

	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Create(r.Context(), actor, input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOK(w, r, http.StatusCreated, jsonResponse{"tournament": tournament})
}

// GetByIDHandler godoc
// @Summary      Get a tournament with its teams and matches
// @Tags         tournaments
// @Produce      json
// @Param        tournamentID path string true "Tournament ID"
// @Success      200 {object} map[string]models.Tournament
// @Failure      400,404 {object} map[string]string
// @Router       /tournaments/{tournamentID} [get]
func (h *TournamentHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDFromURL(r, "tournamentID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Get(r.Context(), id)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOK(w, r, http.StatusOK, jsonResponse{"tournament": tournament})
}

// ListHandler godoc
// @Summary      List tournaments
// @Tags         tournaments
// @Produce      json
// @Param        status   query string false "upcoming, in_progress, completed or cancelled"
// @Param        format   query string false "league, knockout or custom"
// @Param        owner_id query string false "Owner user ID"
// @Param        limit    query int    false "Page size (default 20)"
// @Param        offset   query int    false "Offset"
// @Success      200 {object} map[string][]models.Tournament
// @Failure      400 {object} map[string]string
// @Router       /tournaments [get]
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	var filter services.ListTournamentsFilter
	query := r.URL.Query()

	if statusStr := query.Get("status"); statusStr != "" {
		status := models.TournamentStatus(statusStr)
		switch status {
		case models.StatusUpcoming, models.StatusInProgress, models.StatusCompleted, models.StatusCancelled:
			filter.Status = &status
		default:
			h.badRequestResponse(w, r, errors.New("invalid status query parameter"))
			return
		}
	}
	if formatStr := query.Get("format"); formatStr != "" {
		format := models.TournamentFormat(formatStr)
		switch format {
		case models.FormatLeague, models.FormatKnockout, models.FormatCustom:
			filter.Format = &format
		default:
			h.badRequestResponse(w, r, errors.New("invalid format query parameter"))
			return
		}
	}
	if ownerStr := query.Get("owner_id"); ownerStr != "" {
		ownerID, err := uuid.Parse(ownerStr)
		if err != nil {
			h.badRequestResponse(w, r, errors.New("invalid owner_id query parameter"))
			return
		}
		filter.OwnerID = &ownerID
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			h.badRequestResponse(w, r, errors.New("invalid limit query parameter"))
			return
		}
		filter.Limit = limit
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			h.badRequestResponse(w, r, errors.New("invalid offset query parameter"))
			return
		}
		filter.Offset = offset
	}

	tournaments, err := h.tournamentService.List(r.Context(), filter)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOK(w, r, http.StatusOK, jsonResponse{"tournaments": tournaments})
}

// UpdateHandler godoc
// @Summary      Update a tournament
// @Description  Name, description, format and start date can change while the tournament is upcoming. Status may only be set to cancelled.
// @Tags         tournaments
// @Accept       json
// @Produce      json
// @Param        tournamentID path string true "Tournament ID"
// @Param        input body services.UpdateTournamentInput true "Changes"
// @Success      200 {object} map[string]models.Tournament
// @Failure      400,401,403,404,409,422 {object} map[string]string
// @Security     BearerAuth
// @Router       /tournaments/{tournamentID} [put]
func (h *TournamentHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		h.unauthorizedResponse(w, r, "authentication required")
		return
	}
	id, err := getUUIDFromURL(r, "tournamentID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	var input services.UpdateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Update(r.Context(), actor, id, input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOK(w, r, http.StatusOK, jsonResponse{"tournament": tournament})
}

// DeleteHandler godoc
// @Summary      Delete a tournament
// @Description  Removes the tournament with its participants and matches. A tournament in progress must be cancelled first.
// @Tags         tournaments
// @Param        tournamentID path string true "Tournament ID"
// @Success      204
// @Failure      400,401,403,404,409 {object} map[string]string
// @Security     BearerAuth
// @Router       /tournaments/{tournamentID} [delete]
func (h *TournamentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		h.unauthorizedResponse(w, r, "authentication required")
		return
	}
	id, err := getUUIDFromURL(r, "tournamentID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.Delete(r.Context(), actor, id); err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// InviteTeamHandler godoc
// @Summary      Invite a team to an upcoming tournament
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        tournamentID path string true "Tournament ID"
// @Param        input body inviteTeamRequest true "Team"
// @Success      201 {object} map[string]models.TournamentTeam
// @Failure      400,401,403,404,409,422 {object} map[string]string
// @Security     BearerAuth
// @Router       /tournaments/{tournamentID}/invite [post]
func (h *TournamentHandler) InviteTeamHandler(w http.ResponseWriter, r *http.Request) {
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
	var input inviteTeamRequest
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	participation, err := h.tournamentService.InviteTeam(r.Context(), actor, tournamentID, input.TeamID)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOK(w, r, http.StatusCreated, jsonResponse{"participant": participation})
}

// RSVPHandler godoc
// @Summary      Accept or decline a tournament invite
// @Description  Only the manager of the invited team may answer. Without teamId the caller's single invited team is used.
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        tournamentID path string true "Tournament ID"
// @Param        input body rsvpRequest true "Answer"
// @Success      200 {object} map[string]models.TournamentTeam
// @Failure      400,401,403,404,409,422 {object} map[string]string
// @Security     BearerAuth
// @Router       /tournaments/{tournamentID}/rsvp [post]
func (h *TournamentHandler) RSVPHandler(w http.ResponseWriter, r *http.Request) {
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
	var input rsvpRequest
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	participation, err := h.tournamentService.RespondToInvite(r.Context(), actor, tournamentID, input.TeamID, input.Status)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOK(w, r, http.StatusOK, jsonResponse{"participant": participation})
}

// GenerateFixturesHandler godoc
// @Summary      Generate the fixture list and start the tournament
// @Description  League tournaments get a full round-robin; knockout tournaments get their first round.
// @Tags         fixtures
// @Accept       json
// @Produce      json
// @Param        tournamentID path string true "Tournament ID"
// @Param        input body services.GenerateFixturesInput true "Schedule"
// @Success      201 {object} map[string][]models.Match
// @Failure      400,401,403,404,409,422 {object} map[string]string
// @Security     BearerAuth
// @Router       /tournaments/{tournamentID}/generate-fixtures [post]
func (h *TournamentHandler) GenerateFixturesHandler(w http.ResponseWriter, r *http.Request) {
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
	var input services.GenerateFixturesInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	matches, err := h.fixtureService.GenerateFixtures(r.Context(), actor, tournamentID, input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOK(w, r, http.StatusCreated, jsonResponse{"matches": matches})
}

// AdvanceHandler godoc
// @Summary      Advance a knockout tournament
// @Description  Draws the next round once every match of the current round is completed, or records the champion after the final.
// @Tags         fixtures
// @Produce      json
// @Param        tournamentID path string true "Tournament ID"
// @Success      200 {object} map[string]services.AdvanceResult
// @Failure      400,401,403,404,409 {object} map[string]string
// @Security     BearerAuth
// @Router       /tournaments/{tournamentID}/advance [post]
func (h *TournamentHandler) AdvanceHandler(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.fixtureService.AdvanceKnockoutRound(r.Context(), actor, tournamentID)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOK(w, r, http.StatusOK, jsonResponse{"advance": result})
}
