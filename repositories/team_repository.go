package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/google/uuid"
)

var ErrTeamNotFound = errors.New("team not found")

// TeamRepository reads teams managed by the team-membership service.
type TeamRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	query := `SELECT id, name, manager_id, roster_size, created_at FROM teams WHERE id = $1`
	var team models.Team
	err := r.db.QueryRowContext(ctx, query, id).Scan(&team.ID, &team.Name, &team.ManagerID, &team.RosterSize, &team.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}
