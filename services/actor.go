package services

import (
	"context"

	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/google/uuid"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID uuid.UUID
	Role   models.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Только владелец турнира или администратор управляет расписанием и результатами.
func authorizeTournamentManager(t *models.Tournament, actor Actor) error {
	if actor.IsAdmin() || (actor.UserID != uuid.Nil && t.OwnerID == actor.UserID) {
		return nil
	}
	return ErrForbiddenOperation
}

// Notifier pushes tournament events to live subscribers.
type Notifier interface {
	Publish(tournamentID uuid.UUID, eventType string, payload interface{})
}

// StandingsCache holds folded tables. Version/SetIfVersion let a reader store a
// table only if no Invalidate happened since it started folding.
type StandingsCache interface {
	Get(ctx context.Context, tournamentID uuid.UUID) ([]models.Standing, bool, error)
	Version(ctx context.Context, tournamentID uuid.UUID) (int64, error)
	SetIfVersion(ctx context.Context, tournamentID uuid.UUID, version int64, table []models.Standing) (bool, error)
	Invalidate(ctx context.Context, tournamentID uuid.UUID) error
}

// SchedulePublisher mirrors the fixture list to a public document.
type SchedulePublisher interface {
	Publish(ctx context.Context, tournament *models.Tournament, matches []models.Match) (string, error)
	Unpublish(ctx context.Context, tournamentID uuid.UUID) error
}

type noopNotifier struct{}

func (noopNotifier) Publish(uuid.UUID, string, interface{}) {}
