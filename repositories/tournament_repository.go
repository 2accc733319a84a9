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
	ErrTournamentNotFound      = errors.New("tournament not found")
	ErrTournamentNameConflict  = errors.New("tournament name conflict for this owner")
	ErrTournamentInvalidVenue  = errors.New("invalid venue reference")
	ErrTournamentInvalidWinner = errors.New("invalid winner team reference")
)

type ListTournamentsFilter struct {
	OwnerID *uuid.UUID
	Status  *models.TournamentStatus
	Format  *models.TournamentFormat
	Limit   int
	Offset  int
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, exec SQLExecutor, id uuid.UUID) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	Delete(ctx context.Context, exec SQLExecutor, id uuid.UUID) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id uuid.UUID, status models.TournamentStatus) error
	SaveSchedule(ctx context.Context, exec SQLExecutor, id uuid.UUID, venueID uuid.UUID, startAt time.Time, daysPerRound int) error
	Complete(ctx context.Context, exec SQLExecutor, id uuid.UUID, winnerTeamID *uuid.UUID) error
	ListInProgress(ctx context.Context, format models.TournamentFormat) ([]*models.Tournament, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const tournamentColumns = `
	id, name, description, format, status, owner_id, start_date,
	venue_id, fixtures_start_at, days_per_round, winner_team_id, created_at, updated_at`

func scanTournament(rowScanner interface{ Scan(...interface{}) error }, t *models.Tournament) error {
	return rowScanner.Scan(
		&t.ID, &t.Name, &t.Description, &t.Format, &t.Status, &t.OwnerID, &t.StartDate,
		&t.VenueID, &t.FixturesStartAt, &t.DaysPerRound, &t.WinnerTeamID, &t.CreatedAt, &t.UpdatedAt,
	)
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	query := `
		INSERT INTO tournaments (id, name, description, format, status, owner_id, start_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		t.ID, t.Name, t.Description, t.Format, t.Status, t.OwnerID, t.StartDate,
	).Scan(&t.CreatedAt, &t.UpdatedAt)

	return r.handleTournamentError(err)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id uuid.UUID) (*models.Tournament, error) {
	// FOR UPDATE is only meaningful inside a transaction; the plain read is used otherwise.
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`
	if exec != nil {
		query += ` FOR UPDATE`
	}

	t := &models.Tournament{}
	err := scanTournament(r.getExecutor(exec).QueryRowContext(ctx, query, id), t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + tournamentColumns + ` FROM tournaments WHERE 1=1`)

	args := []interface{}{}
	argID := 1

	if filter.OwnerID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND owner_id = $%d", argID))
		args = append(args, *filter.OwnerID)
		argID++
	}
	if filter.Status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.Format != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND format = $%d", argID))
		args = append(args, *filter.Format)
		argID++
	}

	queryBuilder.WriteString(" ORDER BY start_date DESC, created_at DESC")

	if filter.Limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argID))
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argID))
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if scanErr := scanTournament(rows, &t); scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

// Update rewrites the editable fields and refreshes t.UpdatedAt.
func (r *postgresTournamentRepository) Update(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	query := `
		UPDATE tournaments
		SET name = $1, description = $2, format = $3, status = $4, start_date = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		t.Name, t.Description, t.Format, t.Status, t.StartDate, t.ID,
	).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTournamentNotFound
		}
		return r.handleTournamentError(err)
	}
	return nil
}

// Delete removes the tournament; participations and matches go with it via ON DELETE CASCADE.
func (r *postgresTournamentRepository) Delete(ctx context.Context, exec SQLExecutor, id uuid.UUID) error {
	query := `DELETE FROM tournaments WHERE id = $1`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id uuid.UUID, status models.TournamentStatus) error {
	query := `UPDATE tournaments SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, status, id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) SaveSchedule(ctx context.Context, exec SQLExecutor, id uuid.UUID, venueID uuid.UUID, startAt time.Time, daysPerRound int) error {
	query := `
		UPDATE tournaments
		SET venue_id = $1, fixtures_start_at = $2, days_per_round = $3, updated_at = NOW()
		WHERE id = $4`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, venueID, startAt, daysPerRound, id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// Complete marks the tournament completed and records the winner, if any.
func (r *postgresTournamentRepository) Complete(ctx context.Context, exec SQLExecutor, id uuid.UUID, winnerTeamID *uuid.UUID) error {
	query := `
		UPDATE tournaments
		SET status = $1, winner_team_id = $2, updated_at = NOW()
		WHERE id = $3`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, models.StatusCompleted, winnerTeamID, id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) ListInProgress(ctx context.Context, format models.TournamentFormat) ([]*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE status = $1 AND format = $2`
	rows, err := r.db.QueryContext(ctx, query, models.StatusInProgress, format)
	if err != nil {
		return nil, fmt.Errorf("failed to query in-progress tournaments: %w", err)
	}
	defer rows.Close()

	var tournaments []*models.Tournament
	for rows.Next() {
		var t models.Tournament
		if scanErr := scanTournament(rows, &t); scanErr != nil {
			return nil, fmt.Errorf("failed to scan tournament: %w", scanErr)
		}
		tournaments = append(tournaments, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during tournament rows iteration: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	code, constraint, ok := pqErrorCode(err)
	if !ok {
		return err
	}
	switch code {
	case pqUniqueViolation:
		if constraint == "tournaments_owner_id_name_key" {
			return ErrTournamentNameConflict
		}
	case pqForeignKeyViolation:
		switch constraint {
		case "tournaments_venue_id_fkey":
			return ErrTournamentInvalidVenue
		case "tournaments_winner_team_id_fkey":
			return ErrTournamentInvalidWinner
		}
	}
	return err
}
