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

type CompleteMatchInput struct {
	HomeScore *int `json:"homeScore"`
	AwayScore *int `json:"awayScore"`
}

func (in CompleteMatchInput) validate() error {
	if in.HomeScore == nil || in.AwayScore == nil {
		return ErrScoreRequired
	}
	if *in.HomeScore < 0 || *in.AwayScore < 0 {
		return ErrNegativeScore
	}
	return nil
}

type ListMatchesFilter struct {
	Status *models.MatchStatus
	Round  *int
}

type MatchService interface {
	ListMatches(ctx context.Context, tournamentID uuid.UUID, filter ListMatchesFilter) ([]models.Match, error)
	CompleteMatch(ctx context.Context, actor Actor, tournamentID, matchID uuid.UUID, input CompleteMatchInput) (*models.Match, error)
	CancelMatch(ctx context.Context, actor Actor, tournamentID, matchID uuid.UUID) (*models.Match, error)
}

type matchService struct {
	tx             repositories.Transactor
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	results        results
	cache          StandingsCache
	notifier       Notifier
	logger         *slog.Logger
	now            func() time.Time
}

func NewMatchService(
	tx repositories.Transactor,
	tournamentRepo repositories.TournamentRepository,
	participants repositories.TournamentTeamRepository,
	matchRepo repositories.MatchRepository,
	cache StandingsCache,
	notifier Notifier,
	logger *slog.Logger,
) MatchService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &matchService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		results:        results{tournamentRepo: tournamentRepo, teamRepo: participants, matchRepo: matchRepo},
		cache:          cache,
		notifier:       notifier,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *matchService) ListMatches(ctx context.Context, tournamentID uuid.UUID, filter ListMatchesFilter) ([]models.Match, error) {
	if _, err := loadTournament(ctx, s.tournamentRepo, nil, tournamentID); err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.ListByTournament(ctx, nil, tournamentID, repositories.ListMatchesFilter{
		Status: filter.Status,
		Round:  filter.Round,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %s: %w", tournamentID, err)
	}
	return matches, nil
}

// CompleteMatch records a final score exactly once. The persisted standings
// snapshot is rebuilt from all completed matches in the same transaction.
func (s *matchService) CompleteMatch(ctx context.Context, actor Actor, tournamentID, matchID uuid.UUID, input CompleteMatchInput) (*models.Match, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	home, away := *input.HomeScore, *input.AwayScore

	var match *models.Match
	var table []models.Standing
	var closed bool
	var winner *uuid.UUID

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, m, err := s.lockScheduledMatch(ctx, exec, actor, tournamentID, matchID)
		if err != nil {
			return err
		}
		if t.Format == models.FormatKnockout && home == away {
			return fixtures.ErrDrawInKnockout
		}

		completedAt := s.now().UTC()
		if err := s.matchRepo.Complete(ctx, exec, m.ID, home, away, completedAt); err != nil {
			if errors.Is(err, repositories.ErrMatchNotScheduled) {
				return ErrMatchNotScheduled
			}
			return fmt.Errorf("failed to complete match %s: %w", m.ID, err)
		}
		m.Status = models.MatchStatusCompleted
		m.HomeScore = &home
		m.AwayScore = &away
		m.CompletedAt = &completedAt
		match = m

		table, err = s.results.refreshSnapshot(ctx, exec, t.ID)
		if err != nil {
			return err
		}
		closed, winner, err = s.results.closeLeagueIfFinished(ctx, exec, t, table)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "match completed",
		slog.String("tournament_id", tournamentID.String()),
		slog.String("match_id", matchID.String()),
		slog.Int("home_score", home),
		slog.Int("away_score", away))

	invalidateStandings(ctx, s.cache, s.logger, tournamentID)
	s.notifier.Publish(tournamentID, fixtures.EventMatchCompleted, match)
	s.notifier.Publish(tournamentID, fixtures.EventStandingsUpdated, table)
	if closed {
		s.notifier.Publish(tournamentID, fixtures.EventTournamentCompleted, tournamentCompletedPayload{
			TournamentID: tournamentID,
			WinnerTeamID: winner,
		})
	}
	return match, nil
}

// CancelMatch withdraws a scheduled league match. Knockout matches decide who
// advances, so they cannot be cancelled.
func (s *matchService) CancelMatch(ctx context.Context, actor Actor, tournamentID, matchID uuid.UUID) (*models.Match, error) {
	var match *models.Match
	var closed bool
	var winner *uuid.UUID

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, m, err := s.lockScheduledMatch(ctx, exec, actor, tournamentID, matchID)
		if err != nil {
			return err
		}
		if t.Format == models.FormatKnockout {
			return ErrKnockoutCancelForbidden
		}
		if err := s.matchRepo.Cancel(ctx, exec, m.ID); err != nil {
			if errors.Is(err, repositories.ErrMatchNotScheduled) {
				return ErrMatchNotScheduled
			}
			return fmt.Errorf("failed to cancel match %s: %w", m.ID, err)
		}
		m.Status = models.MatchStatusCancelled
		match = m

		table, _, err := s.results.table(ctx, exec, t.ID)
		if err != nil {
			return err
		}
		closed, winner, err = s.results.closeLeagueIfFinished(ctx, exec, t, table)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "match cancelled",
		slog.String("tournament_id", tournamentID.String()),
		slog.String("match_id", matchID.String()))

	invalidateStandings(ctx, s.cache, s.logger, tournamentID)
	s.notifier.Publish(tournamentID, fixtures.EventMatchCancelled, match)
	if closed {
		s.notifier.Publish(tournamentID, fixtures.EventTournamentCompleted, tournamentCompletedPayload{
			TournamentID: tournamentID,
			WinnerTeamID: winner,
		})
	}
	return match, nil
}

func (s *matchService) lockScheduledMatch(ctx context.Context, exec repositories.SQLExecutor, actor Actor, tournamentID, matchID uuid.UUID) (*models.Tournament, *models.Match, error) {
	t, err := loadTournament(ctx, s.tournamentRepo, exec, tournamentID)
	if err != nil {
		return nil, nil, err
	}
	if err := authorizeTournamentManager(t, actor); err != nil {
		return nil, nil, err
	}
	if t.Status != models.StatusInProgress {
		return nil, nil, ErrTournamentNotInProgress
	}

	m, err := s.matchRepo.GetByID(ctx, exec, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, nil, ErrMatchNotFound
		}
		return nil, nil, fmt.Errorf("failed to load match %s: %w", matchID, err)
	}
	if m.TournamentID != t.ID {
		return nil, nil, ErrMatchNotFound
	}
	if m.Status != models.MatchStatusScheduled {
		return nil, nil, ErrMatchNotScheduled
	}
	return t, m, nil
}
