// Package standings derives a league table from completed match results.
package standings

import (
	"sort"

	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/google/uuid"
)

const (
	PointsForWin  = 3
	PointsForDraw = 1
)

// Compute folds completed matches into one Standing per team and ranks them by
// points, goal difference and goals for, all descending. Remaining ties keep
// the order of teams. Ranks are consecutive, never shared.
//
// Matches that are not completed, or lack a score, are skipped, as are the
// sides of a match whose team is not in teams. Compute never fails.
func Compute(teams []uuid.UUID, matches []models.Match) []models.Standing {
	table := make([]models.Standing, len(teams))
	index := make(map[uuid.UUID]int, len(teams))
	for i, id := range teams {
		table[i] = models.Standing{TeamID: id}
		if _, dup := index[id]; !dup {
			index[id] = i
		}
	}

	for _, m := range matches {
		if !m.IsScored() {
			continue
		}
		home, away := *m.HomeScore, *m.AwayScore
		if i, ok := index[m.HomeTeamID]; ok {
			fold(&table[i], home, away)
		}
		if i, ok := index[m.AwayTeamID]; ok {
			fold(&table[i], away, home)
		}
	}

	sort.SliceStable(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.GoalsFor > b.GoalsFor
	})

	for i := range table {
		table[i].Rank = i + 1
	}
	return table
}

func fold(s *models.Standing, scored, conceded int) {
	s.MatchesPlayed++
	s.GoalsFor += scored
	s.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		s.Wins++
	case scored == conceded:
		s.Draws++
	default:
		s.Losses++
	}
	s.GoalDifference = s.GoalsFor - s.GoalsAgainst
	s.Points = PointsForWin*s.Wins + PointsForDraw*s.Draws
}

// ApplyToParticipants copies a computed table onto participation records so
// the persisted aggregate always comes from the same fold. Participants without
// a row are reset to zero.
func ApplyToParticipants(table []models.Standing, participants []*models.TournamentTeam) {
	byTeam := make(map[uuid.UUID]models.Standing, len(table))
	for _, s := range table {
		byTeam[s.TeamID] = s
	}
	for _, p := range participants {
		if p == nil {
			continue
		}
		s := byTeam[p.TeamID]
		p.MatchesPlayed = s.MatchesPlayed
		p.Wins = s.Wins
		p.Draws = s.Draws
		p.Losses = s.Losses
		p.GoalsFor = s.GoalsFor
		p.GoalsAgainst = s.GoalsAgainst
		p.GoalDifference = s.GoalDifference
		p.Points = s.Points
	}
}
