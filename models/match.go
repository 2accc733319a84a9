package models

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusCancelled MatchStatus = "cancelled"
)

const DefaultMatchDurationMinutes = 90

// Match is a scheduled or completed fixture. A completed match always carries
// both scores; a scheduled one carries neither.
type Match struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	TournamentID    uuid.UUID   `json:"tournamentId" db:"tournament_id"`
	HomeTeamID      uuid.UUID   `json:"homeTeamId" db:"home_team_id"`
	AwayTeamID      uuid.UUID   `json:"awayTeamId" db:"away_team_id"`
	VenueID         uuid.UUID   `json:"venueId" db:"venue_id"`
	ScheduledAt     time.Time   `json:"date" db:"scheduled_at"`
	DurationMinutes int         `json:"duration" db:"duration_minutes"`
	Round           int         `json:"round" db:"round"`
	OrderInRound    int         `json:"orderInRound" db:"order_in_round"`
	Status          MatchStatus `json:"status" db:"status"`
	HomeScore       *int        `json:"homeScore,omitempty" db:"home_score"`
	AwayScore       *int        `json:"awayScore,omitempty" db:"away_score"`
	CompletedAt     *time.Time  `json:"completedAt,omitempty" db:"completed_at"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
}

// IsScored reports whether the match is completed with both scores present.
func (m Match) IsScored() bool {
	return m.Status == MatchStatusCompleted && m.HomeScore != nil && m.AwayScore != nil
}
