package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/google/uuid"
)

var (
	ErrTournamentTeamNotFound      = errors.New("tournament participation not found")
	ErrTournamentTeamConflict      = errors.New("team already participates in this tournament")
	ErrTournamentTeamInvalidTeam   = errors.New("invalid team reference")
	ErrTournamentTeamInvalidParent = errors.New("invalid tournament reference")
)

type TournamentTeamRepository interface {
	Invite(ctx context.Context, participation *models.TournamentTeam) error
	GetByTournamentAndTeam(ctx context.Context, exec SQLExecutor, tournamentID, teamID uuid.UUID) (*models.TournamentTeam, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID uuid.UUID, status *models.ParticipationStatus) ([]*models.TournamentTeam, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id uuid.UUID, status models.ParticipationStatus) error
	AssignSeeds(ctx context.Context, exec SQLExecutor, participations []*models.TournamentTeam) error
	UpdateAggregates(ctx context.Context, exec SQLExecutor, participations []*models.TournamentTeam) error
}

type postgresTournamentTeamRepository struct {
	db *sql.DB
}

func NewPostgresTournamentTeamRepository(db *sql.DB) TournamentTeamRepository {
	return &postgresTournamentTeamRepository{db: db}
}

func (r *postgresTournamentTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const tournamentTeamSelect = `
	SELECT tt.id, tt.tournament_id, tt.team_id, tt.status, tt.seed, tt.joined_at,
	       tt.matches_played, tt.wins, tt.draws, tt.losses, tt.goals_for, tt.goals_against,
	       tt.goal_difference, tt.points,
	       t.id, t.name, t.manager_id, t.roster_size, t.created_at
	FROM tournament_teams tt
	JOIN teams t ON t.id = tt.team_id`

func scanTournamentTeam(rowScanner interface{ Scan(...interface{}) error }) (*models.TournamentTeam, error) {
	var tt models.TournamentTeam
	var team models.Team
	err := rowScanner.Scan(
		&tt.ID, &tt.TournamentID, &tt.TeamID, &tt.Status, &tt.Seed, &tt.JoinedAt,
		&tt.MatchesPlayed, &tt.Wins, &tt.Draws, &tt.Losses, &tt.GoalsFor, &tt.GoalsAgainst,
		&tt.GoalDifference, &tt.Points,
		&team.ID, &team.Name, &team.ManagerID, &team.RosterSize, &team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentTeamNotFound
		}
		return nil, err
	}
	tt.Team = &team
	return &tt, nil
}

func (r *postgresTournamentTeamRepository) Invite(ctx context.Context, p *models.TournamentTeam) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	query := `
		INSERT INTO tournament_teams (id, tournament_id, team_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING joined_at`
	err := r.db.QueryRowContext(ctx, query, p.ID, p.TournamentID, p.TeamID, p.Status).Scan(&p.JoinedAt)
	return r.handleTournamentTeamError(err)
}

func (r *postgresTournamentTeamRepository) GetByTournamentAndTeam(ctx context.Context, exec SQLExecutor, tournamentID, teamID uuid.UUID) (*models.TournamentTeam, error) {
	query := tournamentTeamSelect + ` WHERE tt.tournament_id = $1 AND tt.team_id = $2`
	return scanTournamentTeam(r.getExecutor(exec).QueryRowContext(ctx, query, tournamentID, teamID))
}

// ListByTournament returns participations in seed order; unseeded teams follow in join order.
func (r *postgresTournamentTeamRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID uuid.UUID, status *models.ParticipationStatus) ([]*models.TournamentTeam, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(tournamentTeamSelect)
	queryBuilder.WriteString(` WHERE tt.tournament_id = $1`)
	args := []interface{}{tournamentID}
	if status != nil {
		queryBuilder.WriteString(` AND tt.status = $2`)
		args = append(args, *status)
	}
	queryBuilder.WriteString(` ORDER BY tt.seed ASC NULLS LAST, tt.joined_at ASC, tt.id ASC`)

	rows, err := r.getExecutor(exec).QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournament teams: %w", err)
	}
	defer rows.Close()

	participations := make([]*models.TournamentTeam, 0)
	for rows.Next() {
		p, scanErr := scanTournamentTeam(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		participations = append(participations, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return participations, nil
}

func (r *postgresTournamentTeamRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id uuid.UUID, status models.ParticipationStatus) error {
	query := `UPDATE tournament_teams SET status = $1 WHERE id = $2`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, status, id)
	if err != nil {
		return r.handleTournamentTeamError(err)
	}
	return checkAffectedRows(result, ErrTournamentTeamNotFound)
}

func (r *postgresTournamentTeamRepository) AssignSeeds(ctx context.Context, exec SQLExecutor, participations []*models.TournamentTeam) error {
	executor := r.getExecutor(exec)
	query := `UPDATE tournament_teams SET seed = $1 WHERE id = $2`
	for _, p := range participations {
		result, err := executor.ExecContext(ctx, query, p.Seed, p.ID)
		if err != nil {
			return fmt.Errorf("failed to assign seed for team %s: %w", p.TeamID, err)
		}
		if err = checkAffectedRows(result, ErrTournamentTeamNotFound); err != nil {
			return err
		}
	}
	return nil
}

// UpdateAggregates overwrites the persisted standings snapshot of each participation.
func (r *postgresTournamentTeamRepository) UpdateAggregates(ctx context.Context, exec SQLExecutor, participations []*models.TournamentTeam) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE tournament_teams SET
			matches_played = $1, wins = $2, draws = $3, losses = $4,
			goals_for = $5, goals_against = $6, goal_difference = $7, points = $8
		WHERE id = $9`
	for _, p := range participations {
		result, err := executor.ExecContext(ctx, query,
			p.MatchesPlayed, p.Wins, p.Draws, p.Losses,
			p.GoalsFor, p.GoalsAgainst, p.GoalDifference, p.Points,
			p.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update aggregates for team %s: %w", p.TeamID, err)
		}
		if err = checkAffectedRows(result, ErrTournamentTeamNotFound); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresTournamentTeamRepository) handleTournamentTeamError(err error) error {
	if err == nil {
		return nil
	}
	code, constraint, ok := pqErrorCode(err)
	if !ok {
		return err
	}
	switch code {
	case pqUniqueViolation:
		return ErrTournamentTeamConflict
	case pqForeignKeyViolation:
		switch constraint {
		case "tournament_teams_team_id_fkey":
			return ErrTournamentTeamInvalidTeam
		case "tournament_teams_tournament_id_fkey":
			return ErrTournamentTeamInvalidParent
		}
	}
	return err
}
