package services

import (
	"errors"

	"github.com/Dosada05/tournament-fixtures/fixtures"
)

// Общие ошибки, используемые в сервисах и маппинге HTTP.
var (
	ErrTournamentNotFound    = errors.New("tournament not found")
	ErrMatchNotFound         = errors.New("match not found")
	ErrTeamNotFound          = errors.New("team not found")
	ErrParticipationNotFound = errors.New("team is not invited to this tournament")

	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	// Ошибки состояния (409)
	ErrTournamentNotUpcoming    = errors.New("fixtures can only be generated for an upcoming tournament")
	ErrTournamentNotInProgress  = errors.New("tournament is not in progress")
	ErrFixturesAlreadyGenerated = errors.New("fixtures have already been generated for this tournament")
	ErrFixturesNotGenerated     = errors.New("fixtures have not been generated for this tournament")
	ErrNotKnockout              = errors.New("operation is only available for knockout tournaments")
	ErrKnockoutCancelForbidden  = errors.New("knockout matches cannot be cancelled")
	ErrMatchNotScheduled        = errors.New("match has already been completed or cancelled")
	ErrRosterLocked             = errors.New("tournament roster can no longer change")
	ErrTeamAlreadyInvited       = errors.New("team is already invited to this tournament")
	ErrInviteAlreadyAnswered    = errors.New("invite has already been answered")
	ErrTournamentNameConflict   = errors.New("you already have a tournament with this name")
	ErrTournamentDetailsLocked  = errors.New("tournament details can only be changed before it starts")
	ErrTournamentAlreadyClosed  = errors.New("tournament is already completed or cancelled")
	ErrTournamentDeleteInPlay   = errors.New("cancel the tournament before deleting it")

	// Ошибки валидации (422), оборачивают fixtures.ErrValidation
	ErrNameRequired       = fixtures.NewValidationError("tournament name is required")
	ErrInvalidFormat      = fixtures.NewValidationError("format must be one of league, knockout, custom")
	ErrUnsupportedFormat  = fixtures.NewValidationError("fixtures can only be generated for league or knockout tournaments")
	ErrScoreRequired      = fixtures.NewValidationError("homeScore and awayScore are required")
	ErrNegativeScore      = fixtures.NewValidationError("scores must be non-negative integers")
	ErrUnknownVenue       = fixtures.NewValidationError("venue does not exist")
	ErrTeamIDRequired     = fixtures.NewValidationError("teamId is required")
	ErrInvalidRSVPOutcome = fixtures.NewValidationError("status must be confirmed or declined")
	ErrInvalidStatusEdit  = fixtures.NewValidationError("status can only be changed to cancelled")
	ErrAmbiguousInvite    = fixtures.NewValidationError("teamId is required when you manage more than one invited team")
)
