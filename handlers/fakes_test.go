package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/tournament-fixtures/middleware"
	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/Dosada05/tournament-fixtures/services"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

type fakeTournamentService struct {
	createFn  func(ctx context.Context, actor services.Actor, input services.CreateTournamentInput) (*models.Tournament, error)
	getFn     func(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	listFn    func(ctx context.Context, filter services.ListTournamentsFilter) ([]models.Tournament, error)
	updateFn  func(ctx context.Context, actor services.Actor, id uuid.UUID, input services.UpdateTournamentInput) (*models.Tournament, error)
	deleteFn  func(ctx context.Context, actor services.Actor, id uuid.UUID) error
	inviteFn  func(ctx context.Context, actor services.Actor, tournamentID, teamID uuid.UUID) (*models.TournamentTeam, error)
	respondFn func(ctx context.Context, actor services.Actor, tournamentID, teamID uuid.UUID, status models.ParticipationStatus) (*models.TournamentTeam, error)
}

func (f *fakeTournamentService) Create(ctx context.Context, actor services.Actor, input services.CreateTournamentInput) (*models.Tournament, error) {
	return f.createFn(ctx, actor, input)
}

func (f *fakeTournamentService) Get(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	return f.getFn(ctx, id)
}

func (f *fakeTournamentService) List(ctx context.Context, filter services.ListTournamentsFilter) ([]models.Tournament, error) {
	return f.listFn(ctx, filter)
}

func (f *fakeTournamentService) Update(ctx context.Context, actor services.Actor, id uuid.UUID, input services.UpdateTournamentInput) (*models.Tournament, error) {
	return f.updateFn(ctx, actor, id, input)
}

func (f *fakeTournamentService) Delete(ctx context.Context, actor services.Actor, id uuid.UUID) error {
	return f.deleteFn(ctx, actor, id)
}

func (f *fakeTournamentService) InviteTeam(ctx context.Context, actor services.Actor, tournamentID, teamID uuid.UUID) (*models.TournamentTeam, error) {
	return f.inviteFn(ctx, actor, tournamentID, teamID)
}

func (f *fakeTournamentService) RespondToInvite(ctx context.Context, actor services.Actor, tournamentID, teamID uuid.UUID, status models.ParticipationStatus) (*models.TournamentTeam, error) {
	return f.respondFn(ctx, actor, tournamentID, teamID, status)
}

func (f *fakeTournamentService) AutoCompleteTournaments(context.Context) (int, error) {
	return 0, nil
}

type fakeFixtureService struct {
	generateFn func(ctx context.Context, actor services.Actor, tournamentID uuid.UUID, input services.GenerateFixturesInput) ([]models.Match, error)
	advanceFn  func(ctx context.Context, actor services.Actor, tournamentID uuid.UUID) (*services.AdvanceResult, error)
}

func (f *fakeFixtureService) GenerateFixtures(ctx context.Context, actor services.Actor, tournamentID uuid.UUID, input services.GenerateFixturesInput) ([]models.Match, error) {
	return f.generateFn(ctx, actor, tournamentID, input)
}

func (f *fakeFixtureService) AdvanceKnockoutRound(ctx context.Context, actor services.Actor, tournamentID uuid.UUID) (*services.AdvanceResult, error) {
	return f.advanceFn(ctx, actor, tournamentID)
}

type fakeMatchService struct {
	listFn     func(ctx context.Context, tournamentID uuid.UUID, filter services.ListMatchesFilter) ([]models.Match, error)
	completeFn func(ctx context.Context, actor services.Actor, tournamentID, matchID uuid.UUID, input services.CompleteMatchInput) (*models.Match, error)
	cancelFn   func(ctx context.Context, actor services.Actor, tournamentID, matchID uuid.UUID) (*models.Match, error)
}

func (f *fakeMatchService) ListMatches(ctx context.Context, tournamentID uuid.UUID, filter services.ListMatchesFilter) ([]models.Match, error) {
	return f.listFn(ctx, tournamentID, filter)
}

func (f *fakeMatchService) CompleteMatch(ctx context.Context, actor services.Actor, tournamentID, matchID uuid.UUID, input services.CompleteMatchInput) (*models.Match, error) {
	return f.completeFn(ctx, actor, tournamentID, matchID, input)
}

func (f *fakeMatchService) CancelMatch(ctx context.Context, actor services.Actor, tournamentID, matchID uuid.UUID) (*models.Match, error) {
	return f.cancelFn(ctx, actor, tournamentID, matchID)
}

type fakeStandingsService struct {
	getFn func(ctx context.Context, tournamentID uuid.UUID) ([]models.Standing, error)
}

func (f *fakeStandingsService) GetStandings(ctx context.Context, tournamentID uuid.UUID) ([]models.Standing, error) {
	return f.getFn(ctx, tournamentID)
}

type testServer struct {
	tournaments *fakeTournamentService
	fixtures    *fakeFixtureService
	matches     *fakeMatchService
	standings   *fakeStandingsService
	router      chi.Router
}

// newTestServer mounts the handlers the same way the application router does.
func newTestServer() *testServer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := &testServer{
		tournaments: &fakeTournamentService{},
		fixtures:    &fakeFixtureService{},
		matches:     &fakeMatchService{},
		standings:   &fakeStandingsService{},
	}
	th := NewTournamentHandler(ts.tournaments, ts.fixtures, logger)
	mh := NewMatchHandler(ts.matches, logger)
	sh := NewStandingsHandler(ts.standings, logger)

	r := chi.NewRouter()
	r.Route("/api/tournaments", func(r chi.Router) {
		r.Get("/", th.ListHandler)
		r.Get("/{tournamentID}", th.GetByIDHandler)
		r.Get("/{tournamentID}/matches", mh.ListHandler)
		r.Get("/{tournamentID}/standings", sh.GetHandler)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(testSecret))
			r.Post("/", th.CreateHandler)
			r.Put("/{tournamentID}", th.UpdateHandler)
			r.Delete("/{tournamentID}", th.DeleteHandler)
			r.Post("/{tournamentID}/invite", th.InviteTeamHandler)
			r.Post("/{tournamentID}/rsvp", th.RSVPHandler)
			r.Post("/{tournamentID}/generate-fixtures", th.GenerateFixturesHandler)
			r.Post("/{tournamentID}/advance", th.AdvanceHandler)
			r.Post("/{tournamentID}/matches/{matchID}/complete", mh.CompleteHandler)
			r.Post("/{tournamentID}/matches/{matchID}/cancel", mh.CancelHandler)
		})
	})
	ts.router = r
	return ts
}

func tokenFor(t *testing.T, userID uuid.UUID, role models.UserRole) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"role":    string(role),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

