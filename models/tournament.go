package models

import (
	"time"

	"github.com/google/uuid"
)

// TournamentStatus представляет статусы турнира, соответствующие ENUM в БД.
type TournamentStatus string

const (
	StatusUpcoming   TournamentStatus = "upcoming"
	StatusInProgress TournamentStatus = "in_progress"
	StatusCompleted  TournamentStatus = "completed"
	StatusCancelled  TournamentStatus = "cancelled"
)

type TournamentFormat string

const (
	FormatLeague   TournamentFormat = "league"
	FormatKnockout TournamentFormat = "knockout"
	FormatCustom   TournamentFormat = "custom"
)

// Tournament представляет турнир.
type Tournament struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Description *string          `json:"description,omitempty" db:"description"`
	Format      TournamentFormat `json:"format" db:"format"`
	Status      TournamentStatus `json:"status" db:"status"`
	OwnerID     uuid.UUID        `json:"createdById" db:"owner_id"`
	StartDate   time.Time        `json:"startDate" db:"start_date"`

	// Параметры расписания, сохраняются при генерации матчей.
	VenueID         *uuid.UUID `json:"venueId,omitempty" db:"venue_id"`
	FixturesStartAt *time.Time `json:"fixturesStartAt,omitempty" db:"fixtures_start_at"`
	DaysPerRound    *int       `json:"daysPerRound,omitempty" db:"days_per_round"`

	WinnerTeamID *uuid.UUID `json:"winnerTeamId,omitempty" db:"winner_team_id"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Teams   []TournamentTeam `json:"teams,omitempty" db:"-"`
	Matches []Match          `json:"matches,omitempty" db:"-"`
}

// HasSchedule reports whether fixture generation has recorded its parameters.
func (t *Tournament) HasSchedule() bool {
	return t.VenueID != nil && t.FixturesStartAt != nil && t.DaysPerRound != nil
}
