package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/google/uuid"
)

var (
	ErrMatchNotFound         = errors.New("match not found")
	ErrMatchNotScheduled     = errors.New("match is not in scheduled state")
	ErrMatchInvalidTeam      = errors.New("match team conflict or invalid")
	ErrMatchInvalidVenue     = errors.New("match venue conflict or invalid")
	ErrMatchDuplicateFixture = errors.New("fixture already exists for this round")
)

type ListMatchesFilter struct {
	Status *models.MatchStatus
	Round  *int
}

type MatchRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id uuid.UUID) (*models.Match, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID uuid.UUID, filter ListMatchesFilter) ([]models.Match, error)
	Complete(ctx context.Context, exec SQLExecutor, id uuid.UUID, homeScore, awayScore int, completedAt time.Time) error
	Cancel(ctx context.Context, exec SQLExecutor, id uuid.UUID) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `
	id, tournament_id, home_team_id, away_team_id, venue_id, scheduled_at, duration_minutes,
	round, order_in_round, status, home_score, away_score, completed_at, created_at`

func scanMatch(rowScanner interface{ Scan(...interface{}) error }, m *models.Match) error {
	err := rowScanner.Scan(
		&m.ID, &m.TournamentID, &m.HomeTeamID, &m.AwayTeamID, &m.VenueID, &m.ScheduledAt, &m.DurationMinutes,
		&m.Round, &m.OrderInRound, &m.Status, &m.HomeScore, &m.AwayScore, &m.CompletedAt, &m.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMatchNotFound
	}
	return err
}

// CreateBatch inserts all matches through exec; callers pass a transaction to keep the batch atomic.
func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches
			(id, tournament_id, home_team_id, away_team_id, venue_id, scheduled_at, duration_minutes, round, order_in_round, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	for _, m := range matches {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		if m.DurationMinutes == 0 {
			m.DurationMinutes = models.DefaultMatchDurationMinutes
		}
		err := executor.QueryRowContext(ctx, query,
			m.ID, m.TournamentID, m.HomeTeamID, m.AwayTeamID, m.VenueID, m.ScheduledAt,
			m.DurationMinutes, m.Round, m.OrderInRound, m.Status,
		).Scan(&m.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert match round %d #%d: %w", m.Round, m.OrderInRound, r.handleMatchError(err))
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id uuid.UUID) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	if exec != nil {
		query += ` FOR UPDATE`
	}
	var m models.Match
	if err := scanMatch(r.getExecutor(exec).QueryRowContext(ctx, query, id), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID uuid.UUID, filter ListMatchesFilter) ([]models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE tournament_id = $1`)
	args := []interface{}{tournamentID}
	argID := 2

	if filter.Status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.Round != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND round = $%d", argID))
		args = append(args, *filter.Round)
	}
	queryBuilder.WriteString(" ORDER BY round ASC, order_in_round ASC")

	rows, err := r.getExecutor(exec).QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if scanErr := scanMatch(rows, &m); scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

// Complete records the final score. Only a scheduled match can be completed, so a
// second submission affects no rows.
func (r *postgresMatchRepository) Complete(ctx context.Context, exec SQLExecutor, id uuid.UUID, homeScore, awayScore int, completedAt time.Time) error {
	query := `
		UPDATE matches
		SET status = $1, home_score = $2, away_score = $3, completed_at = $4
		WHERE id = $5 AND status = $6`
	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		models.MatchStatusCompleted, homeScore, awayScore, completedAt, id, models.MatchStatusScheduled)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotScheduled)
}

func (r *postgresMatchRepository) Cancel(ctx context.Context, exec SQLExecutor, id uuid.UUID) error {
	query := `UPDATE matches SET status = $1 WHERE id = $2 AND status = $3`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, models.MatchStatusCancelled, id, models.MatchStatusScheduled)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotScheduled)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	code, constraint, ok := pqErrorCode(err)
	if !ok {
		return err
	}
	switch code {
	case pqUniqueViolation:
		return ErrMatchDuplicateFixture
	case pqForeignKeyViolation:
		switch constraint {
		case "matches_home_team_id_fkey", "matches_away_team_id_fkey":
			return ErrMatchInvalidTeam
		case "matches_venue_id_fkey":
			return ErrMatchInvalidVenue
		}
	case pqCheckViolation:
		if constraint == "matches_distinct_teams" {
			return ErrMatchInvalidTeam
		}
	}
	return err
}
