package fixtures

import (
	"time"

	"github.com/google/uuid"
)

// DefaultDaysPerRound is used when the caller does not specify a round interval.
const DefaultDaysPerRound = 7

// Schedule holds the parameters shared by every fixture of a batch.
type Schedule struct {
	VenueID      uuid.UUID
	StartDate    time.Time
	DaysPerRound int
}

type Params struct {
	Teams []uuid.UUID
	Schedule
}

// Fixture is a generated, not yet persisted, pairing. Round is 1-based.
type Fixture struct {
	Round        int       `json:"round"`
	OrderInRound int       `json:"orderInRound"`
	HomeTeamID   uuid.UUID `json:"homeTeamId"`
	AwayTeamID   uuid.UUID `json:"awayTeamId"`
	VenueID      uuid.UUID `json:"venueId"`
	ScheduledAt  time.Time `json:"scheduledAt"`
}

type Generator interface {
	Generate(params Params) ([]Fixture, error)

	Name() string
}

func (s Schedule) validate() error {
	if s.VenueID == uuid.Nil {
		return ErrVenueRequired
	}
	if s.StartDate.IsZero() {
		return ErrStartDateRequired
	}
	if s.DaysPerRound < 1 {
		return ErrInvalidDaysPerRound
	}
	return nil
}

// RoundDate returns the kickoff of a 1-based round. AddDate keeps the wall
// clock time of StartDate in its location.
func (s Schedule) RoundDate(round int) time.Time {
	return s.StartDate.AddDate(0, 0, (round-1)*s.DaysPerRound)
}

func (p Params) validate() error {
	if len(p.Teams) < 2 {
		return ErrNotEnoughTeams
	}
	seen := make(map[uuid.UUID]struct{}, len(p.Teams))
	for _, id := range p.Teams {
		if id == uuid.Nil {
			return ErrEmptyTeamID
		}
		if _, ok := seen[id]; ok {
			return ErrDuplicateTeam
		}
		seen[id] = struct{}{}
	}
	return p.Schedule.validate()
}

func (s Schedule) fixture(round, order int, home, away uuid.UUID) Fixture {
	return Fixture{
		Round:        round,
		OrderInRound: order,
		HomeTeamID:   home,
		AwayTeamID:   away,
		VenueID:      s.VenueID,
		ScheduledAt:  s.RoundDate(round),
	}
}
