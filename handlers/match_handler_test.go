package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/Dosada05/tournament-fixtures/fixtures"
	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/Dosada05/tournament-fixtures/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMatchesHandler(t *testing.T) {
	ts := newTestServer()
	tournamentID := uuid.New()

	var got services.ListMatchesFilter
	ts.matches.listFn = func(_ context.Context, id uuid.UUID, filter services.ListMatchesFilter) ([]models.Match, error) {
		assert.Equal(t, tournamentID, id)
		got = filter
		return []models.Match{}, nil
	}

	rec := ts.do(t, http.MethodGet, "/api/tournaments/"+tournamentID.String()+"/matches?status=completed&round=2", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, got.Status)
	assert.Equal(t, models.MatchStatusCompleted, *got.Status)
	require.NotNil(t, got.Round)
	assert.Equal(t, 2, *got.Round)

	for _, query := range []string{"status=live", "round=0", "round=two"} {
		rec := ts.do(t, http.MethodGet, "/api/tournaments/"+tournamentID.String()+"/matches?"+query, "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestCompleteMatchHandler(t *testing.T) {
	ts := newTestServer()
	tournamentID, matchID := uuid.New(), uuid.New()
	token := tokenFor(t, uuid.New(), models.RolePlayer)
	path := fmt.Sprintf("/api/tournaments/%s/matches/%s/complete", tournamentID, matchID)

	ts.matches.completeFn = func(_ context.Context, _ services.Actor, tID, mID uuid.UUID, input services.CompleteMatchInput) (*models.Match, error) {
		assert.Equal(t, tournamentID, tID)
		assert.Equal(t, matchID, mID)
		return &models.Match{ID: mID, Status: models.MatchStatusCompleted, HomeScore: input.HomeScore, AwayScore: input.AwayScore}, nil
	}
	rec := ts.do(t, http.MethodPost, path, `{"homeScore":2,"awayScore":1}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"homeScore": 2`)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"negative score", services.ErrNegativeScore, http.StatusUnprocessableEntity},
		{"already completed", services.ErrMatchNotScheduled, http.StatusConflict},
		{"knockout draw", fmt.Errorf("complete: %w", fixtures.ErrDrawInKnockout), http.StatusUnprocessableEntity},
		{"unknown match", services.ErrMatchNotFound, http.StatusNotFound},
		{"not manager", services.ErrForbiddenOperation, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.matches.completeFn = func(context.Context, services.Actor, uuid.UUID, uuid.UUID, services.CompleteMatchInput) (*models.Match, error) {
				return nil, tt.err
			}
			rec := ts.do(t, http.MethodPost, path, `{"homeScore":1,"awayScore":1}`, token)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	rec = ts.do(t, http.MethodPost, path, `{"homeScore":1}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, fmt.Sprintf("/api/tournaments/%s/matches/bad/complete", tournamentID), `{"homeScore":1,"awayScore":0}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelMatchHandler(t *testing.T) {
	ts := newTestServer()
	token := tokenFor(t, uuid.New(), models.RoleAdmin)
	path := fmt.Sprintf("/api/tournaments/%s/matches/%s/cancel", uuid.New(), uuid.New())

	ts.matches.cancelFn = func(_ context.Context, _ services.Actor, _, mID uuid.UUID) (*models.Match, error) {
		return &models.Match{ID: mID, Status: models.MatchStatusCancelled}, nil
	}
	rec := ts.do(t, http.MethodPost, path, "", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status": "cancelled"`)

	ts.matches.cancelFn = func(context.Context, services.Actor, uuid.UUID, uuid.UUID) (*models.Match, error) {
		return nil, services.ErrKnockoutCancelForbidden
	}
	rec = ts.do(t, http.MethodPost, path, "", token)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStandingsHandler(t *testing.T) {
	ts := newTestServer()
	tournamentID := uuid.New()
	leader := uuid.New()

	ts.standings.getFn = func(_ context.Context, id uuid.UUID) ([]models.Standing, error) {
		if id != tournamentID {
			return nil, services.ErrTournamentNotFound
		}
		return []models.Standing{{Rank: 1, TeamID: leader, Points: 6, MatchesPlayed: 2, Wins: 2}}, nil
	}

	rec := ts.do(t, http.MethodGet, "/api/tournaments/"+tournamentID.String()+"/standings", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Standings []models.Standing `json:"standings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Standings, 1)
	assert.Equal(t, leader, body.Standings[0].TeamID)
	assert.Equal(t, 6, body.Standings[0].Points)

	rec = ts.do(t, http.MethodGet, "/api/tournaments/"+uuid.NewString()+"/standings", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
