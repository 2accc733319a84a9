package fixtures

import "github.com/google/uuid"

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

// Generate builds a single round-robin with the circle method. An odd field is
// padded with a bye slot (uuid.Nil) and pairings against it are dropped, so the
// schedule has n-1 rounds for even n and n rounds for odd n.
func (g *RoundRobinGenerator) Generate(params Params) ([]Fixture, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	pairs := roundRobinPairs(params.Teams)
	fixtures := make([]Fixture, 0, len(pairs))
	order := 0
	for i, p := range pairs {
		if i == 0 || pairs[i-1].round != p.round {
			order = 0
		}
		order++
		fixtures = append(fixtures, params.fixture(p.round, order, p.home, p.away))
	}
	return fixtures, nil
}

type pairing struct {
	round int
	home  uuid.UUID
	away  uuid.UUID
}

// roundRobinPairs keeps working[0] fixed and rotates the rest. The fixed team
// alternates home and away by round; every other pairing puts the upper-half
// slot at home. Each rotating team visits every slot exactly once, so no team
// is at home more than ceil((n-1)/2)+1 times.
func roundRobinPairs(teams []uuid.UUID) []pairing {
	working := make([]uuid.UUID, len(teams), len(teams)+1)
	copy(working, teams)
	if len(working)%2 == 1 {
		working = append(working, uuid.Nil)
	}

	size := len(working)
	rounds := size - 1
	pairs := make([]pairing, 0, rounds*size/2)

	for round := 0; round < rounds; round++ {
		for i := 0; i < size/2; i++ {
			home := working[i]
			away := working[size-1-i]
			if home == uuid.Nil || away == uuid.Nil {
				continue
			}
			if i == 0 && round%2 == 1 {
				home, away = away, home
			}
			pairs = append(pairs, pairing{round: round + 1, home: home, away: away})
		}
		rotate(working)
	}
	return pairs
}

func rotate(teams []uuid.UUID) {
	if len(teams) <= 2 {
		return
	}
	last := teams[len(teams)-1]
	copy(teams[2:], teams[1:len(teams)-1])
	teams[1] = last
}
