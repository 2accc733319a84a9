package models

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	ManagerID  uuid.UUID `json:"managerId" db:"manager_id"`
	RosterSize int       `json:"rosterSize" db:"roster_size"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type ParticipationStatus string

const (
	ParticipationInvited   ParticipationStatus = "invited"
	ParticipationConfirmed ParticipationStatus = "confirmed"
	ParticipationDeclined  ParticipationStatus = "declined"
)

// TournamentTeam is a team's participation record in a tournament. The aggregate
// fields are a persisted copy of the standings fold and are only ever written from it.
type TournamentTeam struct {
	ID           uuid.UUID           `json:"id" db:"id"`
	TournamentID uuid.UUID           `json:"tournamentId" db:"tournament_id"`
	TeamID       uuid.UUID           `json:"teamId" db:"team_id"`
	Status       ParticipationStatus `json:"status" db:"status"`
	Seed         *int                `json:"seed,omitempty" db:"seed"`
	JoinedAt     time.Time           `json:"joinedAt" db:"joined_at"`

	MatchesPlayed  int `json:"matchesPlayed" db:"matches_played"`
	Wins           int `json:"wins" db:"wins"`
	Draws          int `json:"draws" db:"draws"`
	Losses         int `json:"losses" db:"losses"`
	GoalsFor       int `json:"goalsFor" db:"goals_for"`
	GoalsAgainst   int `json:"goalsAgainst" db:"goals_against"`
	GoalDifference int `json:"goalDifference" db:"goal_difference"`
	Points         int `json:"points" db:"points"`

	Team *Team `json:"team,omitempty" db:"-"`
}
