package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/Dosada05/tournament-fixtures/repositories"
	"github.com/Dosada05/tournament-fixtures/standings"
	"github.com/google/uuid"
)

// results keeps the persisted aggregates and tournament completion in step with
// completed matches. Both helpers run inside the caller's transaction.
type results struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TournamentTeamRepository
	matchRepo      repositories.MatchRepository
}

func (r results) confirmedTeams(ctx context.Context, exec repositories.SQLExecutor, tournamentID uuid.UUID) ([]*models.TournamentTeam, error) {
	confirmed := models.ParticipationConfirmed
	participants, err := r.teamRepo.ListByTournament(ctx, exec, tournamentID, &confirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmed teams for tournament %s: %w", tournamentID, err)
	}
	return participants, nil
}

func (r results) completedMatches(ctx context.Context, exec repositories.SQLExecutor, tournamentID uuid.UUID) ([]models.Match, error) {
	completed := models.MatchStatusCompleted
	matches, err := r.matchRepo.ListByTournament(ctx, exec, tournamentID, repositories.ListMatchesFilter{Status: &completed})
	if err != nil {
		return nil, fmt.Errorf("failed to list completed matches for tournament %s: %w", tournamentID, err)
	}
	return matches, nil
}

// table folds the completed matches over the confirmed roster.
func (r results) table(ctx context.Context, exec repositories.SQLExecutor, tournamentID uuid.UUID) ([]models.Standing, []*models.TournamentTeam, error) {
	participants, err := r.confirmedTeams(ctx, exec, tournamentID)
	if err != nil {
		return nil, nil, err
	}
	matches, err := r.completedMatches(ctx, exec, tournamentID)
	if err != nil {
		return nil, nil, err
	}
	table := standings.Compute(teamIDs(participants), matches)
	attachTeams(table, participants)
	return table, participants, nil
}

// refreshSnapshot rewrites every confirmed team's aggregate from a fresh fold.
func (r results) refreshSnapshot(ctx context.Context, exec repositories.SQLExecutor, tournamentID uuid.UUID) ([]models.Standing, error) {
	table, participants, err := r.table(ctx, exec, tournamentID)
	if err != nil {
		return nil, err
	}
	standings.ApplyToParticipants(table, participants)
	if err := r.teamRepo.UpdateAggregates(ctx, exec, participants); err != nil {
		return nil, fmt.Errorf("failed to persist standings snapshot for tournament %s: %w", tournamentID, err)
	}
	return table, nil
}

// closeLeagueIfFinished completes a league once no scheduled match is left. The
// leader of the table, if anyone has played, becomes the winner.
func (r results) closeLeagueIfFinished(ctx context.Context, exec repositories.SQLExecutor, t *models.Tournament, table []models.Standing) (bool, *uuid.UUID, error) {
	if t.Format != models.FormatLeague || t.Status != models.StatusInProgress {
		return false, nil, nil
	}
	scheduled := models.MatchStatusScheduled
	pending, err := r.matchRepo.ListByTournament(ctx, exec, t.ID, repositories.ListMatchesFilter{Status: &scheduled})
	if err != nil {
		return false, nil, fmt.Errorf("failed to check pending matches for tournament %s: %w", t.ID, err)
	}
	if len(pending) > 0 {
		return false, nil, nil
	}

	var winner *uuid.UUID
	if len(table) > 0 && table[0].MatchesPlayed > 0 {
		id := table[0].TeamID
		winner = &id
	}
	if err := r.tournamentRepo.Complete(ctx, exec, t.ID, winner); err != nil {
		return false, nil, fmt.Errorf("failed to complete tournament %s: %w", t.ID, err)
	}
	t.Status = models.StatusCompleted
	t.WinnerTeamID = winner
	return true, winner, nil
}

func teamIDs(participants []*models.TournamentTeam) []uuid.UUID {
	ids := make([]uuid.UUID, len(participants))
	for i, p := range participants {
		ids[i] = p.TeamID
	}
	return ids
}

func attachTeams(table []models.Standing, participants []*models.TournamentTeam) {
	byID := make(map[uuid.UUID]*models.Team, len(participants))
	for _, p := range participants {
		byID[p.TeamID] = p.Team
	}
	for i := range table {
		table[i].Team = byID[table[i].TeamID]
	}
}

type tournamentCompletedPayload struct {
	TournamentID uuid.UUID  `json:"tournamentId"`
	WinnerTeamID *uuid.UUID `json:"winnerTeamId,omitempty"`
}
