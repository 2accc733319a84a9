package standings

import (
	"testing"

	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func completed(home, away uuid.UUID, homeScore, awayScore int) models.Match {
	return models.Match{
		ID:         uuid.New(),
		HomeTeamID: home,
		AwayTeamID: away,
		Status:     models.MatchStatusCompleted,
		HomeScore:  intPtr(homeScore),
		AwayScore:  intPtr(awayScore),
	}
}

func teamIDs(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids
}

func byTeam(table []models.Standing) map[uuid.UUID]models.Standing {
	out := make(map[uuid.UUID]models.Standing, len(table))
	for _, s := range table {
		out[s.TeamID] = s
	}
	return out
}

func TestCompute_NoMatchesKeepsInputOrder(t *testing.T) {
	teams := teamIDs(4)

	table := Compute(teams, nil)

	require.Len(t, table, 4)
	for i, s := range table {
		assert.Equal(t, teams[i], s.TeamID)
		assert.Equal(t, i+1, s.Rank)
		assert.Zero(t, s.MatchesPlayed)
		assert.Zero(t, s.Points)
		assert.Zero(t, s.GoalDifference)
	}
}

func TestCompute_EmptyTeams(t *testing.T) {
	table := Compute(nil, nil)
	assert.Empty(t, table)
}

func TestCompute_HomeWin(t *testing.T) {
	teams := teamIDs(2)
	home, away := teams[0], teams[1]

	table := byTeam(Compute(teams, []models.Match{completed(home, away, 3, 1)}))

	h := table[home]
	assert.Equal(t, 1, h.MatchesPlayed)
	assert.Equal(t, 1, h.Wins)
	assert.Equal(t, 3, h.GoalsFor)
	assert.Equal(t, 1, h.GoalsAgainst)
	assert.Equal(t, 2, h.GoalDifference)
	assert.Equal(t, 3, h.Points)
	assert.Equal(t, 1, h.Rank)

	a := table[away]
	assert.Equal(t, 1, a.MatchesPlayed)
	assert.Equal(t, 1, a.Losses)
	assert.Equal(t, 1, a.GoalsFor)
	assert.Equal(t, 3, a.GoalsAgainst)
	assert.Equal(t, 0, a.Points)
	assert.Equal(t, 2, a.Rank)
}

func TestCompute_AwayWin(t *testing.T) {
	teams := teamIDs(2)
	table := Compute(teams, []models.Match{completed(teams[0], teams[1], 0, 2)})

	assert.Equal(t, teams[1], table[0].TeamID)
	assert.Equal(t, 3, table[0].Points)
	assert.Equal(t, 1, table[1].Losses)
}

func TestCompute_Draw(t *testing.T) {
	teams := teamIDs(2)

	table := Compute(teams, []models.Match{completed(teams[0], teams[1], 2, 2)})

	for _, s := range table {
		assert.Equal(t, 1, s.MatchesPlayed)
		assert.Equal(t, 1, s.Draws)
		assert.Equal(t, 1, s.Points)
		assert.Equal(t, 0, s.GoalDifference)
	}
	// equal on every criterion: input order decides
	assert.Equal(t, teams[0], table[0].TeamID)
	assert.Equal(t, 1, table[0].Rank)
	assert.Equal(t, 2, table[1].Rank)
}

func TestCompute_GoalDifferenceBreaksPointsTie(t *testing.T) {
	teams := teamIDs(4)
	a, b, c, d := teams[0], teams[1], teams[2], teams[3]
	matches := []models.Match{
		completed(a, c, 1, 0),
		completed(a, d, 2, 1), // A: 6 pts, gd +2
		completed(b, c, 3, 0),
		completed(b, d, 2, 0), // B: 6 pts, gd +5
	}

	table := Compute(teams, matches)

	assert.Equal(t, b, table[0].TeamID)
	assert.Equal(t, a, table[1].TeamID)
	assert.Equal(t, 6, table[0].Points)
	assert.Equal(t, 5, table[0].GoalDifference)
	assert.Equal(t, 2, table[1].GoalDifference)
}

func TestCompute_GoalsForBreaksGoalDifferenceTie(t *testing.T) {
	teams := teamIDs(4)
	a, b, c, d := teams[0], teams[1], teams[2], teams[3]
	matches := []models.Match{
		completed(a, c, 1, 0),
		completed(b, d, 3, 2),
	}

	table := Compute(teams, matches)

	assert.Equal(t, b, table[0].TeamID)
	assert.Equal(t, a, table[1].TeamID)
}

func TestCompute_IgnoresUnfinishedMatches(t *testing.T) {
	teams := teamIDs(2)
	scheduled := completed(teams[0], teams[1], 5, 0)
	scheduled.Status = models.MatchStatusScheduled
	cancelled := completed(teams[1], teams[0], 4, 0)
	cancelled.Status = models.MatchStatusCancelled
	missingScore := models.Match{HomeTeamID: teams[0], AwayTeamID: teams[1], Status: models.MatchStatusCompleted, HomeScore: intPtr(1)}

	table := Compute(teams, []models.Match{scheduled, cancelled, missingScore})

	for _, s := range table {
		assert.Zero(t, s.MatchesPlayed)
		assert.Zero(t, s.GoalsFor)
		assert.Zero(t, s.Points)
	}
}

func TestCompute_IgnoresTeamsOutsideRoster(t *testing.T) {
	teams := teamIDs(1)
	outsider := uuid.New()

	table := Compute(teams, []models.Match{completed(teams[0], outsider, 1, 0)})

	require.Len(t, table, 1)
	assert.Equal(t, 3, table[0].Points)
}

func TestCompute_Idempotent(t *testing.T) {
	teams := teamIDs(3)
	matches := []models.Match{
		completed(teams[0], teams[1], 1, 1),
		completed(teams[1], teams[2], 0, 2),
		completed(teams[2], teams[0], 3, 3),
	}

	first := Compute(teams, matches)
	second := Compute(teams, matches)

	assert.Equal(t, first, second)
}

func TestApplyToParticipants(t *testing.T) {
	teams := teamIDs(3)
	table := Compute(teams[:2], []models.Match{completed(teams[0], teams[1], 2, 0)})
	participants := []*models.TournamentTeam{
		{TeamID: teams[0], Points: 99},
		{TeamID: teams[1]},
		{TeamID: teams[2], Wins: 4, Points: 12},
		nil,
	}

	ApplyToParticipants(table, participants)

	assert.Equal(t, 3, participants[0].Points)
	assert.Equal(t, 2, participants[0].GoalDifference)
	assert.Equal(t, 1, participants[1].Losses)
	assert.Zero(t, participants[2].Wins)
	assert.Zero(t, participants[2].Points)
}
