package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/tournament-fixtures/fixtures"
	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/Dosada05/tournament-fixtures/repositories"
	"github.com/google/uuid"
)

type GenerateFixturesInput struct {
	VenueID      uuid.UUID `json:"venueId"`
	StartDate    time.Time `json:"startDate"`
	DaysPerRound *int      `json:"daysPerRound,omitempty"`
}

// AdvanceResult describes what an advance did: either a new round was drawn or
// the bracket produced its champion.
type AdvanceResult struct {
	Stage    string         `json:"stage"`
	Round    int            `json:"round,omitempty"`
	Matches  []models.Match `json:"matches,omitempty"`
	Champion *uuid.UUID     `json:"championTeamId,omitempty"`
}

type FixtureService interface {
	GenerateFixtures(ctx context.Context, actor Actor, tournamentID uuid.UUID, input GenerateFixturesInput) ([]models.Match, error)
	AdvanceKnockoutRound(ctx context.Context, actor Actor, tournamentID uuid.UUID) (*AdvanceResult, error)
}

type fixtureService struct {
	tx             repositories.Transactor
	tournamentRepo repositories.TournamentRepository
	participants   repositories.TournamentTeamRepository
	matchRepo      repositories.MatchRepository
	venueRepo      repositories.VenueRepository
	knockout       *fixtures.KnockoutGenerator
	roundRobin     fixtures.Generator
	cache          StandingsCache
	publisher      SchedulePublisher
	notifier       Notifier
	logger         *slog.Logger
}

func NewFixtureService(
	tx repositories.Transactor,
	tournamentRepo repositories.TournamentRepository,
	participants repositories.TournamentTeamRepository,
	matchRepo repositories.MatchRepository,
	venueRepo repositories.VenueRepository,
	cache StandingsCache,
	publisher SchedulePublisher,
	notifier Notifier,
	logger *slog.Logger,
) FixtureService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &fixtureService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		participants:   participants,
		matchRepo:      matchRepo,
		venueRepo:      venueRepo,
		knockout:       fixtures.NewKnockoutGenerator(),
		roundRobin:     fixtures.NewRoundRobinGenerator(),
		cache:          cache,
		publisher:      publisher,
		notifier:       notifier,
		logger:         logger,
	}
}

func (s *fixtureService) generatorFor(format models.TournamentFormat) (fixtures.Generator, error) {
	switch format {
	case models.FormatLeague:
		return s.roundRobin, nil
	case models.FormatKnockout:
		return s.knockout, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// GenerateFixtures draws the schedule for an upcoming tournament and starts it.
// Either every fixture is stored and the tournament moves to in_progress, or
// nothing changes.
func (s *fixtureService) GenerateFixtures(ctx context.Context, actor Actor, tournamentID uuid.UUID, input GenerateFixturesInput) ([]models.Match, error) {
	daysPerRound := fixtures.DefaultDaysPerRound
	if input.DaysPerRound != nil {
		daysPerRound = *input.DaysPerRound
	}
	schedule := fixtures.Schedule{
		VenueID:      input.VenueID,
		StartDate:    input.StartDate,
		DaysPerRound: daysPerRound,
	}

	var tournament *models.Tournament
	var created []models.Match

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, err := loadTournament(ctx, s.tournamentRepo, exec, tournamentID)
		if err != nil {
			return err
		}
		if err := authorizeTournamentManager(t, actor); err != nil {
			return err
		}
		if t.Status != models.StatusUpcoming {
			return ErrTournamentNotUpcoming
		}
		generator, err := s.generatorFor(t.Format)
		if err != nil {
			return err
		}

		existing, err := s.matchRepo.ListByTournament(ctx, exec, t.ID, repositories.ListMatchesFilter{})
		if err != nil {
			return fmt.Errorf("failed to check existing matches: %w", err)
		}
		if len(existing) > 0 {
			return ErrFixturesAlreadyGenerated
		}

		confirmed := models.ParticipationConfirmed
		participants, err := s.participants.ListByTournament(ctx, exec, t.ID, &confirmed)
		if err != nil {
			return fmt.Errorf("failed to list confirmed teams: %w", err)
		}

		generated, err := generator.Generate(fixtures.Params{Teams: teamIDs(participants), Schedule: schedule})
		if err != nil {
			return err
		}

		if _, err := s.venueRepo.GetByID(ctx, schedule.VenueID); err != nil {
			if errors.Is(err, repositories.ErrVenueNotFound) {
				return ErrUnknownVenue
			}
			return fmt.Errorf("failed to check venue %s: %w", schedule.VenueID, err)
		}

		if t.Format == models.FormatKnockout {
			for i, p := range participants {
				seed := i + 1
				p.Seed = &seed
			}
			if err := s.participants.AssignSeeds(ctx, exec, participants); err != nil {
				return fmt.Errorf("failed to assign seeds: %w", err)
			}
		}

		created, err = s.persistFixtures(ctx, exec, t.ID, generated)
		if err != nil {
			return err
		}
		if err := s.tournamentRepo.SaveSchedule(ctx, exec, t.ID, schedule.VenueID, schedule.StartDate, schedule.DaysPerRound); err != nil {
			return fmt.Errorf("failed to save schedule parameters: %w", err)
		}
		if err := s.tournamentRepo.UpdateStatus(ctx, exec, t.ID, models.StatusInProgress); err != nil {
			return fmt.Errorf("failed to start tournament: %w", err)
		}

		t.Status = models.StatusInProgress
		t.VenueID = &schedule.VenueID
		t.FixturesStartAt = &schedule.StartDate
		t.DaysPerRound = &schedule.DaysPerRound
		tournament = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "fixtures generated",
		slog.String("tournament_id", tournamentID.String()),
		slog.String("generator", s.mustGeneratorName(tournament.Format)),
		slog.Int("matches", len(created)))

	invalidateStandings(ctx, s.cache, s.logger, tournamentID)
	s.notifier.Publish(tournamentID, fixtures.EventFixturesGenerated, created)
	s.publishSchedule(ctx, tournament)
	return created, nil
}

// AdvanceKnockoutRound moves a knockout bracket forward once its current round
// is complete: it draws the next round, or records the champion after the final.
func (s *fixtureService) AdvanceKnockoutRound(ctx context.Context, actor Actor, tournamentID uuid.UUID) (*AdvanceResult, error) {
	var tournament *models.Tournament
	var result *AdvanceResult

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, err := loadTournament(ctx, s.tournamentRepo, exec, tournamentID)
		if err != nil {
			return err
		}
		if err := authorizeTournamentManager(t, actor); err != nil {
			return err
		}
		if t.Format != models.FormatKnockout {
			return ErrNotKnockout
		}
		if t.Status != models.StatusInProgress {
			return ErrTournamentNotInProgress
		}
		if !t.HasSchedule() {
			return ErrFixturesNotGenerated
		}

		confirmed := models.ParticipationConfirmed
		participants, err := s.participants.ListByTournament(ctx, exec, t.ID, &confirmed)
		if err != nil {
			return fmt.Errorf("failed to list seeded teams: %w", err)
		}
		matches, err := s.matchRepo.ListByTournament(ctx, exec, t.ID, repositories.ListMatchesFilter{})
		if err != nil {
			return fmt.Errorf("failed to list matches: %w", err)
		}
		rounds, err := fixtures.Replay(teamIDs(participants), matches)
		if err != nil {
			return err
		}
		if len(rounds) == 0 {
			return ErrFixturesNotGenerated
		}

		current := rounds[len(rounds)-1]
		switch stage := current.Stage(); stage {
		case fixtures.StageRoundPending, fixtures.StageRoundInProgress:
			return fixtures.ErrRoundNotComplete

		case fixtures.StageTournamentComplete:
			champion, ok := fixtures.Champion(rounds)
			if !ok {
				return fmt.Errorf("%w: final round has no single winner", fixtures.ErrBracketInconsistent)
			}
			if err := s.tournamentRepo.Complete(ctx, exec, t.ID, &champion); err != nil {
				return fmt.Errorf("failed to complete tournament: %w", err)
			}
			t.Status = models.StatusCompleted
			t.WinnerTeamID = &champion
			result = &AdvanceResult{Stage: stage.String(), Round: current.Number, Champion: &champion}

		default:
			next, err := s.knockout.GenerateNextRound(current, scheduleOf(t))
			if err != nil {
				return err
			}
			created, err := s.persistFixtures(ctx, exec, t.ID, next)
			if err != nil {
				return err
			}
			result = &AdvanceResult{Stage: fixtures.StageRoundPending.String(), Round: current.Number + 1, Matches: created}
		}
		tournament = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Champion != nil {
		s.logger.InfoContext(ctx, "knockout tournament completed",
			slog.String("tournament_id", tournamentID.String()),
			slog.String("champion_team_id", result.Champion.String()))
		s.notifier.Publish(tournamentID, fixtures.EventTournamentCompleted, tournamentCompletedPayload{
			TournamentID: tournamentID,
			WinnerTeamID: result.Champion,
		})
		return result, nil
	}

	s.logger.InfoContext(ctx, "knockout round drawn",
		slog.String("tournament_id", tournamentID.String()),
		slog.Int("round", result.Round),
		slog.Int("matches", len(result.Matches)))
	s.notifier.Publish(tournamentID, fixtures.EventRoundAdvanced, result)
	s.publishSchedule(ctx, tournament)
	return result, nil
}

func (s *fixtureService) persistFixtures(ctx context.Context, exec repositories.SQLExecutor, tournamentID uuid.UUID, generated []fixtures.Fixture) ([]models.Match, error) {
	batch := make([]*models.Match, len(generated))
	for i, f := range generated {
		batch[i] = &models.Match{
			TournamentID:    tournamentID,
			HomeTeamID:      f.HomeTeamID,
			AwayTeamID:      f.AwayTeamID,
			VenueID:         f.VenueID,
			ScheduledAt:     f.ScheduledAt,
			DurationMinutes: models.DefaultMatchDurationMinutes,
			Round:           f.Round,
			OrderInRound:    f.OrderInRound,
			Status:          models.MatchStatusScheduled,
		}
	}
	if err := s.matchRepo.CreateBatch(ctx, exec, batch); err != nil {
		return nil, fmt.Errorf("failed to store fixtures: %w", err)
	}
	created := make([]models.Match, len(batch))
	for i, m := range batch {
		created[i] = *m
	}
	return created, nil
}

// publishSchedule is best effort: the stored fixtures are authoritative.
func (s *fixtureService) publishSchedule(ctx context.Context, t *models.Tournament) {
	if s.publisher == nil || t == nil {
		return
	}
	matches, err := s.matchRepo.ListByTournament(ctx, nil, t.ID, repositories.ListMatchesFilter{})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load matches for schedule publishing",
			slog.String("tournament_id", t.ID.String()), slog.Any("error", err))
		return
	}
	location, err := s.publisher.Publish(ctx, t, matches)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to publish schedule",
			slog.String("tournament_id", t.ID.String()), slog.Any("error", err))
		return
	}
	s.logger.InfoContext(ctx, "schedule published",
		slog.String("tournament_id", t.ID.String()), slog.String("location", location))
}

func (s *fixtureService) mustGeneratorName(format models.TournamentFormat) string {
	g, err := s.generatorFor(format)
	if err != nil {
		return string(format)
	}
	return g.Name()
}

func scheduleOf(t *models.Tournament) fixtures.Schedule {
	return fixtures.Schedule{
		VenueID:      *t.VenueID,
		StartDate:    *t.FixturesStartAt,
		DaysPerRound: *t.DaysPerRound,
	}
}
