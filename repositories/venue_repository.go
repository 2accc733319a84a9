package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/google/uuid"
)

var ErrVenueNotFound = errors.New("venue not found")

type VenueRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Venue, error)
}

type postgresVenueRepository struct {
	db *sql.DB
}

func NewPostgresVenueRepository(db *sql.DB) VenueRepository {
	return &postgresVenueRepository{db: db}
}

func (r *postgresVenueRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	var v models.Venue
	err := r.db.QueryRowContext(ctx, `SELECT id, name, city FROM venues WHERE id = $1`, id).Scan(&v.ID, &v.Name, &v.City)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}
