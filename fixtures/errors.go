package fixtures

import "errors"

// ErrValidation is the root of every input error returned by the generators.
// Callers branch on it with errors.Is; the concrete error carries the message
// that is shown to the user.
var ErrValidation = errors.New("validation failed")

var (
	ErrNotEnoughTeams      = NewValidationError("at least 2 teams required")
	ErrDuplicateTeam       = NewValidationError("duplicate team in participant list")
	ErrEmptyTeamID         = NewValidationError("team id must not be empty")
	ErrVenueRequired       = NewValidationError("venue is required")
	ErrStartDateRequired   = NewValidationError("start date is required")
	ErrInvalidDaysPerRound = NewValidationError("days per round must be at least 1")
	ErrRoundNotComplete    = NewValidationError("all matches of the current round must be completed first")
	ErrDrawInKnockout      = NewValidationError("knockout matches cannot end in a draw")
	ErrInvalidRound        = NewValidationError("round contains no matches")
)

// ErrBracketInconsistent means persisted knockout matches do not form a valid bracket.
var ErrBracketInconsistent = errors.New("knockout bracket is inconsistent")

type validationError struct {
	msg string
}

func NewValidationError(msg string) error {
	return &validationError{msg: msg}
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }
