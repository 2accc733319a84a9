package fixtures

import (
	"fmt"
	"sort"

	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/google/uuid"
)

// Stage is the state of a knockout bracket, derived from its latest round.
type Stage int

const (
	StageRoundPending Stage = iota
	StageRoundInProgress
	StageRoundComplete
	StageTournamentComplete
)

func (s Stage) String() string {
	switch s {
	case StageRoundPending:
		return "round_pending"
	case StageRoundInProgress:
		return "round_in_progress"
	case StageRoundComplete:
		return "round_complete"
	case StageTournamentComplete:
		return "tournament_complete"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Round is one knockout round: its matches in bracket order and the teams that
// skipped it with a bye.
type Round struct {
	Number  int
	Matches []models.Match
	Byes    []uuid.UUID
}

// Stage reports how far the round has progressed. A round whose advancing set
// is a single team finishes the tournament.
func (r Round) Stage() Stage {
	completed := 0
	for _, m := range r.Matches {
		if m.IsScored() {
			completed++
		}
	}
	switch {
	case completed == 0 && len(r.Matches) > 0:
		return StageRoundPending
	case completed < len(r.Matches):
		return StageRoundInProgress
	}
	if len(r.Matches)+len(r.Byes) == 1 {
		return StageTournamentComplete
	}
	return StageRoundComplete
}

// Advancing returns the teams entering the next round: byes first, then match
// winners in bracket order. Putting byes first keeps a single bye from landing
// on the same team twice in a row.
func (r Round) Advancing() ([]uuid.UUID, error) {
	if len(r.Matches) == 0 {
		return nil, ErrInvalidRound
	}
	next := make([]uuid.UUID, 0, len(r.Byes)+len(r.Matches))
	next = append(next, r.Byes...)
	for _, m := range r.Matches {
		if !m.IsScored() {
			return nil, ErrRoundNotComplete
		}
		switch {
		case *m.HomeScore > *m.AwayScore:
			next = append(next, m.HomeTeamID)
		case *m.AwayScore > *m.HomeScore:
			next = append(next, m.AwayTeamID)
		default:
			return nil, ErrDrawInKnockout
		}
	}
	return next, nil
}

type KnockoutGenerator struct{}

func NewKnockoutGenerator() *KnockoutGenerator {
	return &KnockoutGenerator{}
}

func (g *KnockoutGenerator) Name() string {
	return "Knockout"
}

// Generate builds the first round only, pairing seeds as given (1v2, 3v4, ...).
// With an odd field the last seed gets a bye. Later rounds depend on results
// and come from GenerateNextRound.
func (g *KnockoutGenerator) Generate(params Params) ([]Fixture, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	fixtures, _ := pairRound(params.Teams, 1, params.Schedule)
	return fixtures, nil
}

// GenerateNextRound returns the fixtures following a completed round, or nil
// when a single winner remains.
func (g *KnockoutGenerator) GenerateNextRound(completed Round, schedule Schedule) ([]Fixture, error) {
	if err := schedule.validate(); err != nil {
		return nil, err
	}
	if completed.Number < 1 {
		return nil, ErrInvalidRound
	}
	advancing, err := completed.Advancing()
	if err != nil {
		return nil, err
	}
	if len(advancing) == 1 {
		return nil, nil
	}
	fixtures, _ := pairRound(advancing, completed.Number+1, schedule)
	return fixtures, nil
}

// Champion returns the winner once the bracket is decided.
func Champion(rounds []Round) (uuid.UUID, bool) {
	if len(rounds) == 0 {
		return uuid.Nil, false
	}
	last := rounds[len(rounds)-1]
	if last.Stage() != StageTournamentComplete {
		return uuid.Nil, false
	}
	advancing, err := last.Advancing()
	if err != nil || len(advancing) != 1 {
		return uuid.Nil, false
	}
	return advancing[0], true
}

// CurrentStage is the stage of the latest generated round.
func CurrentStage(rounds []Round) Stage {
	if len(rounds) == 0 {
		return StageRoundPending
	}
	return rounds[len(rounds)-1].Stage()
}

func pairRound(teams []uuid.UUID, round int, schedule Schedule) ([]Fixture, []uuid.UUID) {
	fixtures := make([]Fixture, 0, len(teams)/2)
	for i := 0; i+1 < len(teams); i += 2 {
		fixtures = append(fixtures, schedule.fixture(round, i/2+1, teams[i], teams[i+1]))
	}
	var byes []uuid.UUID
	if len(teams)%2 == 1 {
		byes = []uuid.UUID{teams[len(teams)-1]}
	}
	return fixtures, byes
}

// Replay rebuilds the bracket from seeds and persisted matches. Byes are not
// stored: a team alive in a round but absent from its matches had a bye.
// Matches within a round are ordered by their bracket position.
func Replay(seeds []uuid.UUID, matches []models.Match) ([]Round, error) {
	if len(matches) == 0 {
		return nil, nil
	}

	byRound := make(map[int][]models.Match)
	maxRound := 0
	for _, m := range matches {
		if m.Round < 1 {
			return nil, fmt.Errorf("%w: match %s has round %d", ErrBracketInconsistent, m.ID, m.Round)
		}
		byRound[m.Round] = append(byRound[m.Round], m)
		if m.Round > maxRound {
			maxRound = m.Round
		}
	}

	rounds := make([]Round, 0, maxRound)
	alive := seeds
	for number := 1; number <= maxRound; number++ {
		roundMatches := byRound[number]
		if len(roundMatches) == 0 {
			return nil, fmt.Errorf("%w: round %d has no matches", ErrBracketInconsistent, number)
		}
		sort.SliceStable(roundMatches, func(i, j int) bool {
			return roundMatches[i].OrderInRound < roundMatches[j].OrderInRound
		})

		playing := make(map[uuid.UUID]struct{}, len(roundMatches)*2)
		for _, m := range roundMatches {
			playing[m.HomeTeamID] = struct{}{}
			playing[m.AwayTeamID] = struct{}{}
		}
		aliveSet := make(map[uuid.UUID]struct{}, len(alive))
		var byes []uuid.UUID
		for _, id := range alive {
			aliveSet[id] = struct{}{}
			if _, ok := playing[id]; !ok {
				byes = append(byes, id)
			}
		}
		for id := range playing {
			if _, ok := aliveSet[id]; !ok {
				return nil, fmt.Errorf("%w: team %s plays round %d without qualifying", ErrBracketInconsistent, id, number)
			}
		}

		round := Round{Number: number, Matches: roundMatches, Byes: byes}
		rounds = append(rounds, round)

		if number < maxRound {
			next, err := round.Advancing()
			if err != nil {
				return nil, fmt.Errorf("%w: round %d: %v", ErrBracketInconsistent, number, err)
			}
			alive = next
		}
	}
	return rounds, nil
}
