package services

import (
	"context"
	"testing"

	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStandings_FreshThenCached(t *testing.T) {
	e := newEnv()
	owner := uuid.New()
	tour, teams := startedLeague(t, e, owner, 4)

	table, err := e.standings.GetStandings(context.Background(), tour.ID)
	require.NoError(t, err)
	require.Len(t, table, 4)
	for i, row := range table {
		assert.Equal(t, i+1, row.Rank)
		assert.Equal(t, teams[i], row.TeamID)
		assert.Zero(t, row.Points)
		require.NotNil(t, row.Team)
	}
	assert.Contains(t, e.cache.tables, tour.ID)

	m := e.store.matchesOf(tour.ID)[0]
	_, err = e.matches.CompleteMatch(context.Background(), Actor{UserID: owner}, tour.ID, m.ID,
		CompleteMatchInput{HomeScore: intPtr(0), AwayScore: intPtr(4)})
	require.NoError(t, err)
	assert.NotContains(t, e.cache.tables, tour.ID)

	table, err = e.standings.GetStandings(context.Background(), tour.ID)
	require.NoError(t, err)
	assert.Equal(t, m.AwayTeamID, table[0].TeamID)
	assert.Equal(t, 3, table[0].Points)
	assert.Equal(t, 4, table[0].GoalDifference)
	assert.Equal(t, m.HomeTeamID, table[3].TeamID)
	assert.Equal(t, -4, table[3].GoalDifference)
}

func TestGetStandings_IgnoresUnconfirmedTeams(t *testing.T) {
	e := newEnv()
	tour := e.store.addTournament(uuid.New(), "league", "upcoming")
	teams := e.store.confirmedTeams(tour.ID, 2)
	invited := e.store.addTeam("Invited")
	e.store.enroll(tour.ID, invited.ID, "invited")

	table, err := e.standings.GetStandings(context.Background(), tour.ID)
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, teams[0], table[0].TeamID)
	assert.Equal(t, teams[1], table[1].TeamID)
}

func TestGetStandings_UnknownTournament(t *testing.T) {
	e := newEnv()
	_, err := e.standings.GetStandings(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestGetStandings_MutationDuringFoldIsNotCached(t *testing.T) {
	e := newEnv()
	owner := uuid.New()
	tour, _ := startedLeague(t, e, owner, 4)
	m := e.store.matchesOf(tour.ID)[0]

	paused := &pausingMatchRepo{fakeMatchRepo: fakeMatchRepo{store: e.store}}
	paused.onList = func() {
		_, err := e.matches.CompleteMatch(context.Background(), Actor{UserID: owner}, tour.ID, m.ID,
			CompleteMatchInput{HomeScore: intPtr(3), AwayScore: intPtr(0)})
		require.NoError(t, err)
	}
	racing := NewStandingsService(fakeTournamentRepo{store: e.store}, fakeTournamentTeamRepo{store: e.store},
		paused, e.cache, discardLogger())

	stale, err := racing.GetStandings(context.Background(), tour.ID)
	require.NoError(t, err)
	assert.Zero(t, totalPlayed(stale))
	assert.NotContains(t, e.cache.tables, tour.ID)
	assert.Equal(t, 1, e.cache.skipped)

	fresh, err := e.standings.GetStandings(context.Background(), tour.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, totalPlayed(fresh))
	assert.Contains(t, e.cache.tables, tour.ID)
}

func totalPlayed(table []models.Standing) int {
	n := 0
	for _, row := range table {
		n += row.MatchesPlayed
	}
	return n
}
