package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/Dosada05/tournament-fixtures/repositories"
	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore backs every fake repository so a test sees one consistent state.
type memStore struct {
	mu          sync.Mutex
	tournaments map[uuid.UUID]*models.Tournament
	teams       map[uuid.UUID]*models.Team
	entries     []*models.TournamentTeam
	matches     []*models.Match
	venues      map[uuid.UUID]*models.Venue

	failCreateBatch error
	txCount         int
}

func newMemStore() *memStore {
	return &memStore{
		tournaments: make(map[uuid.UUID]*models.Tournament),
		teams:       make(map[uuid.UUID]*models.Team),
		venues:      make(map[uuid.UUID]*models.Venue),
	}
}

func (s *memStore) addVenue() uuid.UUID {
	v := &models.Venue{ID: uuid.New(), Name: "Central Park", City: "Springfield"}
	s.venues[v.ID] = v
	return v.ID
}

func (s *memStore) addTournament(owner uuid.UUID, format models.TournamentFormat, status models.TournamentStatus) *models.Tournament {
	t := &models.Tournament{
		ID:        uuid.New(),
		Name:      "Cup " + string(format),
		Format:    format,
		Status:    status,
		OwnerID:   owner,
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	s.tournaments[t.ID] = t
	return t
}

func (s *memStore) addTeam(name string) *models.Team {
	team := &models.Team{ID: uuid.New(), Name: name, ManagerID: uuid.New(), RosterSize: 11}
	s.teams[team.ID] = team
	return team
}

func (s *memStore) enroll(tournamentID, teamID uuid.UUID, status models.ParticipationStatus) *models.TournamentTeam {
	entry := &models.TournamentTeam{
		ID:           uuid.New(),
		TournamentID: tournamentID,
		TeamID:       teamID,
		Status:       status,
		JoinedAt:     time.Date(2025, 1, 1, 0, 0, len(s.entries), 0, time.UTC),
		Team:         s.teams[teamID],
	}
	s.entries = append(s.entries, entry)
	return entry
}

// confirmedTeams enrolls n new confirmed teams and returns their ids in join order.
func (s *memStore) confirmedTeams(tournamentID uuid.UUID, n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := 0; i < n; i++ {
		team := s.addTeam(string(rune('A' + i)))
		s.enroll(tournamentID, team.ID, models.ParticipationConfirmed)
		ids[i] = team.ID
	}
	return ids
}

func (s *memStore) matchesOf(tournamentID uuid.UUID) []*models.Match {
	var out []*models.Match
	for _, m := range s.matches {
		if m.TournamentID == tournamentID {
			out = append(out, m)
		}
	}
	return out
}

// --- Transactor ---

type fakeTransactor struct{ store *memStore }

func (f fakeTransactor) WithinTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	f.store.mu.Lock()
	f.store.txCount++
	f.store.mu.Unlock()
	return fn(nil)
}

// --- Tournaments ---

type fakeTournamentRepo struct{ store *memStore }

func (r fakeTournamentRepo) Create(_ context.Context, t *models.Tournament) error {
	for _, existing := range r.store.tournaments {
		if existing.OwnerID == t.OwnerID && existing.Name == t.Name {
			return repositories.ErrTournamentNameConflict
		}
	}
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	r.store.tournaments[t.ID] = &cp
	return nil
}

func (r fakeTournamentRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id uuid.UUID) (*models.Tournament, error) {
	t, ok := r.store.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	cp := *t
	return &cp, nil
}

func (r fakeTournamentRepo) List(_ context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0)
	for _, t := range r.store.tournaments {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Format != nil && t.Format != *filter.Format {
			continue
		}
		if filter.OwnerID != nil && t.OwnerID != *filter.OwnerID {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r fakeTournamentRepo) Update(_ context.Context, _ repositories.SQLExecutor, t *models.Tournament) error {
	stored, ok := r.store.tournaments[t.ID]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	for _, existing := range r.store.tournaments {
		if existing.ID != t.ID && existing.OwnerID == t.OwnerID && existing.Name == t.Name {
			return repositories.ErrTournamentNameConflict
		}
	}
	t.UpdatedAt = time.Now()
	*stored = *t
	return nil
}

// Delete mirrors ON DELETE CASCADE on tournament_teams and matches.
func (r fakeTournamentRepo) Delete(_ context.Context, _ repositories.SQLExecutor, id uuid.UUID) error {
	if _, ok := r.store.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.store.tournaments, id)

	entries := r.store.entries[:0]
	for _, e := range r.store.entries {
		if e.TournamentID != id {
			entries = append(entries, e)
		}
	}
	r.store.entries = entries

	matches := r.store.matches[:0]
	for _, m := range r.store.matches {
		if m.TournamentID != id {
			matches = append(matches, m)
		}
	}
	r.store.matches = matches
	return nil
}

func (r fakeTournamentRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, id uuid.UUID, status models.TournamentStatus) error {
	t, ok := r.store.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	return nil
}

func (r fakeTournamentRepo) SaveSchedule(_ context.Context, _ repositories.SQLExecutor, id uuid.UUID, venueID uuid.UUID, startAt time.Time, daysPerRound int) error {
	t, ok := r.store.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.VenueID = &venueID
	t.FixturesStartAt = &startAt
	t.DaysPerRound = &daysPerRound
	return nil
}

func (r fakeTournamentRepo) Complete(_ context.Context, _ repositories.SQLExecutor, id uuid.UUID, winner *uuid.UUID) error {
	t, ok := r.store.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = models.StatusCompleted
	t.WinnerTeamID = winner
	return nil
}

func (r fakeTournamentRepo) ListInProgress(_ context.Context, format models.TournamentFormat) ([]*models.Tournament, error) {
	var out []*models.Tournament
	for _, t := range r.store.tournaments {
		if t.Status == models.StatusInProgress && t.Format == format {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

// --- Participations ---

type fakeTournamentTeamRepo struct{ store *memStore }

func (r fakeTournamentTeamRepo) Invite(_ context.Context, p *models.TournamentTeam) error {
	for _, e := range r.store.entries {
		if e.TournamentID == p.TournamentID && e.TeamID == p.TeamID {
			return repositories.ErrTournamentTeamConflict
		}
	}
	p.ID = uuid.New()
	p.JoinedAt = time.Now()
	cp := *p
	r.store.entries = append(r.store.entries, &cp)
	return nil
}

func (r fakeTournamentTeamRepo) GetByTournamentAndTeam(_ context.Context, _ repositories.SQLExecutor, tournamentID, teamID uuid.UUID) (*models.TournamentTeam, error) {
	for _, e := range r.store.entries {
		if e.TournamentID == tournamentID && e.TeamID == teamID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repositories.ErrTournamentTeamNotFound
}

func (r fakeTournamentTeamRepo) ListByTournament(_ context.Context, _ repositories.SQLExecutor, tournamentID uuid.UUID, status *models.ParticipationStatus) ([]*models.TournamentTeam, error) {
	out := make([]*models.TournamentTeam, 0)
	for _, e := range r.store.entries {
		if e.TournamentID != tournamentID || (status != nil && e.Status != *status) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Seed, out[j].Seed
		switch {
		case a != nil && b != nil:
			return *a < *b
		case a != nil:
			return true
		case b != nil:
			return false
		}
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})
	return out, nil
}

func (r fakeTournamentTeamRepo) find(id uuid.UUID) *models.TournamentTeam {
	for _, e := range r.store.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (r fakeTournamentTeamRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, id uuid.UUID, status models.ParticipationStatus) error {
	e := r.find(id)
	if e == nil {
		return repositories.ErrTournamentTeamNotFound
	}
	e.Status = status
	return nil
}

func (r fakeTournamentTeamRepo) AssignSeeds(_ context.Context, _ repositories.SQLExecutor, participations []*models.TournamentTeam) error {
	for _, p := range participations {
		e := r.find(p.ID)
		if e == nil {
			return repositories.ErrTournamentTeamNotFound
		}
		e.Seed = p.Seed
	}
	return nil
}

func (r fakeTournamentTeamRepo) UpdateAggregates(_ context.Context, _ repositories.SQLExecutor, participations []*models.TournamentTeam) error {
	for _, p := range participations {
		e := r.find(p.ID)
		if e == nil {
			return repositories.ErrTournamentTeamNotFound
		}
		e.MatchesPlayed, e.Wins, e.Draws, e.Losses = p.MatchesPlayed, p.Wins, p.Draws, p.Losses
		e.GoalsFor, e.GoalsAgainst, e.GoalDifference, e.Points = p.GoalsFor, p.GoalsAgainst, p.GoalDifference, p.Points
	}
	return nil
}

// --- Teams and venues ---

type fakeTeamRepo struct{ store *memStore }

func (r fakeTeamRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Team, error) {
	team, ok := r.store.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	cp := *team
	return &cp, nil
}

type fakeVenueRepo struct{ store *memStore }

func (r fakeVenueRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Venue, error) {
	v, ok := r.store.venues[id]
	if !ok {
		return nil, repositories.ErrVenueNotFound
	}
	return v, nil
}

// --- Matches ---

type fakeMatchRepo struct{ store *memStore }

// pausingMatchRepo runs onList once, after the listing was read and before it is
// returned, to interleave a write with an in-flight read.
type pausingMatchRepo struct {
	fakeMatchRepo
	onList func()
}

func (r *pausingMatchRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID uuid.UUID, filter repositories.ListMatchesFilter) ([]models.Match, error) {
	out, err := r.fakeMatchRepo.ListByTournament(ctx, exec, tournamentID, filter)
	if hook := r.onList; hook != nil {
		r.onList = nil
		hook()
	}
	return out, err
}

func (r fakeMatchRepo) CreateBatch(_ context.Context, _ repositories.SQLExecutor, matches []*models.Match) error {
	if r.store.failCreateBatch != nil {
		return r.store.failCreateBatch
	}
	for _, m := range matches {
		m.ID = uuid.New()
		m.CreatedAt = time.Now()
		cp := *m
		r.store.matches = append(r.store.matches, &cp)
	}
	return nil
}

func (r fakeMatchRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id uuid.UUID) (*models.Match, error) {
	for _, m := range r.store.matches {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r fakeMatchRepo) ListByTournament(_ context.Context, _ repositories.SQLExecutor, tournamentID uuid.UUID, filter repositories.ListMatchesFilter) ([]models.Match, error) {
	out := make([]models.Match, 0)
	for _, m := range r.store.matches {
		if m.TournamentID != tournamentID {
			continue
		}
		if filter.Status != nil && m.Status != *filter.Status {
			continue
		}
		if filter.Round != nil && m.Round != *filter.Round {
			continue
		}
		out = append(out, *m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Round != out[j].Round {
			return out[i].Round < out[j].Round
		}
		return out[i].OrderInRound < out[j].OrderInRound
	})
	return out, nil
}

func (r fakeMatchRepo) Complete(_ context.Context, _ repositories.SQLExecutor, id uuid.UUID, homeScore, awayScore int, completedAt time.Time) error {
	for _, m := range r.store.matches {
		if m.ID == id {
			if m.Status != models.MatchStatusScheduled {
				return repositories.ErrMatchNotScheduled
			}
			m.Status = models.MatchStatusCompleted
			m.HomeScore, m.AwayScore = &homeScore, &awayScore
			m.CompletedAt = &completedAt
			return nil
		}
	}
	return repositories.ErrMatchNotScheduled
}

func (r fakeMatchRepo) Cancel(_ context.Context, _ repositories.SQLExecutor, id uuid.UUID) error {
	for _, m := range r.store.matches {
		if m.ID == id {
			if m.Status != models.MatchStatusScheduled {
				return repositories.ErrMatchNotScheduled
			}
			m.Status = models.MatchStatusCancelled
			return nil
		}
	}
	return repositories.ErrMatchNotScheduled
}

// --- Collaborators ---

type publishedEvent struct {
	TournamentID uuid.UUID
	Type         string
	Payload      interface{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (n *recordingNotifier) Publish(tournamentID uuid.UUID, eventType string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, publishedEvent{TournamentID: tournamentID, Type: eventType, Payload: payload})
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, e := range n.events {
		out[i] = e.Type
	}
	return out
}

type memCache struct {
	tables      map[uuid.UUID][]models.Standing
	versions    map[uuid.UUID]int64
	invalidated []uuid.UUID
	skipped     int
	gets        int
}

func newMemCache() *memCache {
	return &memCache{tables: make(map[uuid.UUID][]models.Standing), versions: make(map[uuid.UUID]int64)}
}

func (c *memCache) Get(_ context.Context, id uuid.UUID) ([]models.Standing, bool, error) {
	c.gets++
	table, ok := c.tables[id]
	return table, ok, nil
}

func (c *memCache) Version(_ context.Context, id uuid.UUID) (int64, error) {
	return c.versions[id], nil
}

func (c *memCache) SetIfVersion(_ context.Context, id uuid.UUID, version int64, table []models.Standing) (bool, error) {
	if c.versions[id] != version {
		c.skipped++
		return false, nil
	}
	c.tables[id] = table
	return true, nil
}

func (c *memCache) Invalidate(_ context.Context, id uuid.UUID) error {
	c.versions[id]++
	delete(c.tables, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

type recordingPublisher struct {
	published   map[uuid.UUID]int
	unpublished []uuid.UUID
}

func (p *recordingPublisher) Unpublish(_ context.Context, id uuid.UUID) error {
	p.unpublished = append(p.unpublished, id)
	return nil
}

func (p *recordingPublisher) Publish(_ context.Context, t *models.Tournament, matches []models.Match) (string, error) {
	if p.published == nil {
		p.published = make(map[uuid.UUID]int)
	}
	p.published[t.ID] = len(matches)
	return "https://cdn.example.com/" + t.ID.String(), nil
}

// env wires every service over one in-memory store.
type env struct {
	store     *memStore
	cache     *memCache
	notifier  *recordingNotifier
	publisher *recordingPublisher

	tournaments TournamentService
	fixtures    FixtureService
	matches     MatchService
	standings   StandingsService
}

func newEnv() *env {
	store := newMemStore()
	e := &env{
		store:     store,
		cache:     newMemCache(),
		notifier:  &recordingNotifier{},
		publisher: &recordingPublisher{},
	}
	tx := fakeTransactor{store: store}
	tournamentRepo := fakeTournamentRepo{store: store}
	teamEntries := fakeTournamentTeamRepo{store: store}
	matchRepo := fakeMatchRepo{store: store}
	logger := discardLogger()

	e.tournaments = NewTournamentService(tx, tournamentRepo, teamEntries, fakeTeamRepo{store: store}, matchRepo, e.cache, e.publisher, e.notifier, logger)
	e.fixtures = NewFixtureService(tx, tournamentRepo, teamEntries, matchRepo, fakeVenueRepo{store: store}, e.cache, e.publisher, e.notifier, logger)
	e.matches = NewMatchService(tx, tournamentRepo, teamEntries, matchRepo, e.cache, e.notifier, logger)
	e.standings = NewStandingsService(tournamentRepo, teamEntries, matchRepo, e.cache, logger)
	return e
}

func intPtr(v int) *int { return &v }
