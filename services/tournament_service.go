package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/tournament-fixtures/fixtures"
	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/Dosada05/tournament-fixtures/repositories"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type CreateTournamentInput struct {
	Name        string                  `json:"name"`
	Description *string                 `json:"description,omitempty"`
	Format      models.TournamentFormat `json:"format"`
	StartDate   time.Time               `json:"startDate"`
}

// UpdateTournamentInput carries a partial edit; nil fields are left unchanged.
type UpdateTournamentInput struct {
	Name        *string                  `json:"name,omitempty"`
	Description *string                  `json:"description,omitempty"`
	Format      *models.TournamentFormat `json:"format,omitempty"`
	StartDate   *time.Time               `json:"startDate,omitempty"`
	Status      *models.TournamentStatus `json:"status,omitempty"`
}

func (in UpdateTournamentInput) changesDetails() bool {
	return in.Name != nil || in.Description != nil || in.Format != nil || in.StartDate != nil
}

type ListTournamentsFilter struct {
	OwnerID *uuid.UUID
	Status  *models.TournamentStatus
	Format  *models.TournamentFormat
	Limit   int
	Offset  int
}

type TournamentService interface {
	Create(ctx context.Context, actor Actor, input CreateTournamentInput) (*models.Tournament, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateTournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	InviteTeam(ctx context.Context, actor Actor, tournamentID, teamID uuid.UUID) (*models.TournamentTeam, error)
	RespondToInvite(ctx context.Context, actor Actor, tournamentID, teamID uuid.UUID, status models.ParticipationStatus) (*models.TournamentTeam, error)
	AutoCompleteTournaments(ctx context.Context) (int, error)
}

type tournamentService struct {
	tx             repositories.Transactor
	tournamentRepo repositories.TournamentRepository
	participants   repositories.TournamentTeamRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	cache          StandingsCache
	publisher      SchedulePublisher
	notifier       Notifier
	results        results
	logger         *slog.Logger
}

func NewTournamentService(
	tx repositories.Transactor,
	tournamentRepo repositories.TournamentRepository,
	participants repositories.TournamentTeamRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	cache StandingsCache,
	publisher SchedulePublisher,
	notifier Notifier,
	logger *slog.Logger,
) TournamentService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &tournamentService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		participants:   participants,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		cache:          cache,
		publisher:      publisher,
		notifier:       notifier,
		results:        results{tournamentRepo: tournamentRepo, teamRepo: participants, matchRepo: matchRepo},
		logger:         logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, actor Actor, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	switch input.Format {
	case models.FormatLeague, models.FormatKnockout, models.FormatCustom:
	default:
		return nil, ErrInvalidFormat
	}
	if input.StartDate.IsZero() {
		return nil, fixtures.ErrStartDateRequired
	}
	if actor.UserID == uuid.Nil {
		return nil, ErrForbiddenOperation
	}

	t := &models.Tournament{
		Name:        name,
		Description: input.Description,
		Format:      input.Format,
		Status:      models.StatusUpcoming,
		OwnerID:     actor.UserID,
		StartDate:   input.StartDate,
	}
	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament created",
		slog.String("tournament_id", t.ID.String()),
		slog.String("format", string(t.Format)),
		slog.String("owner_id", t.OwnerID.String()))
	return t, nil
}

// Get loads the tournament with its participants and matches.
func (s *tournamentService) Get(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	t, err := s.getTournament(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	var teams []*models.TournamentTeam
	var matches []models.Match

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var loadErr error
		teams, loadErr = s.participants.ListByTournament(gctx, nil, id, nil)
		if loadErr != nil {
			return fmt.Errorf("failed to load teams for tournament %s: %w", id, loadErr)
		}
		return nil
	})
	g.Go(func() error {
		var loadErr error
		matches, loadErr = s.matchRepo.ListByTournament(gctx, nil, id, repositories.ListMatchesFilter{})
		if loadErr != nil {
			return fmt.Errorf("failed to load matches for tournament %s: %w", id, loadErr)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t.Teams = make([]models.TournamentTeam, len(teams))
	for i, p := range teams {
		t.Teams[i] = *p
	}
	t.Matches = matches
	return t, nil
}

func (s *tournamentService) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	list, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{
		OwnerID: filter.OwnerID,
		Status:  filter.Status,
		Format:  filter.Format,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return list, nil
}

// Update edits an upcoming tournament. Status may only move to cancelled, which
// is also allowed once play has started.
func (s *tournamentService) Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateTournamentInput) (*models.Tournament, error) {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		input.Name = &name
	}
	if input.Format != nil {
		switch *input.Format {
		case models.FormatLeague, models.FormatKnockout, models.FormatCustom:
		default:
			return nil, ErrInvalidFormat
		}
	}
	if input.StartDate != nil && input.StartDate.IsZero() {
		return nil, fixtures.ErrStartDateRequired
	}
	if input.Status != nil && *input.Status != models.StatusCancelled {
		return nil, ErrInvalidStatusEdit
	}

	var updated *models.Tournament
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, txErr := s.getTournament(ctx, exec, id)
		if txErr != nil {
			return txErr
		}
		if txErr = authorizeTournamentManager(t, actor); txErr != nil {
			return txErr
		}

		if input.changesDetails() {
			if t.Status != models.StatusUpcoming {
				return ErrTournamentDetailsLocked
			}
			if input.Name != nil {
				t.Name = *input.Name
			}
			if input.Description != nil {
				t.Description = input.Description
			}
			if input.Format != nil {
				t.Format = *input.Format
			}
			if input.StartDate != nil {
				t.StartDate = *input.StartDate
			}
		}
		if input.Status != nil && t.Status != models.StatusCancelled {
			if t.Status == models.StatusCompleted {
				return ErrTournamentAlreadyClosed
			}
			t.Status = models.StatusCancelled
		}

		if txErr = s.tournamentRepo.Update(ctx, exec, t); txErr != nil {
			if errors.Is(txErr, repositories.ErrTournamentNameConflict) {
				return ErrTournamentNameConflict
			}
			if errors.Is(txErr, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("failed to update tournament %s: %w", id, txErr)
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "tournament updated",
		slog.String("tournament_id", id.String()),
		slog.String("status", string(updated.Status)))
	return updated, nil
}

// Delete removes the tournament with its participations and matches. A running
// tournament has to be cancelled first.
func (s *tournamentService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, txErr := s.getTournament(ctx, exec, id)
		if txErr != nil {
			return txErr
		}
		if txErr = authorizeTournamentManager(t, actor); txErr != nil {
			return txErr
		}
		if t.Status == models.StatusInProgress {
			return ErrTournamentDeleteInPlay
		}
		if txErr = s.tournamentRepo.Delete(ctx, exec, id); txErr != nil {
			if errors.Is(txErr, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("failed to delete tournament %s: %w", id, txErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidateStandings(ctx, s.cache, s.logger, id)
	if s.publisher != nil {
		if err := s.publisher.Unpublish(ctx, id); err != nil {
			s.logger.WarnContext(ctx, "failed to remove published schedule",
				slog.String("tournament_id", id.String()), slog.Any("error", err))
		}
	}
	s.logger.InfoContext(ctx, "tournament deleted", slog.String("tournament_id", id.String()))
	return nil
}

func (s *tournamentService) InviteTeam(ctx context.Context, actor Actor, tournamentID, teamID uuid.UUID) (*models.TournamentTeam, error) {
	if teamID == uuid.Nil {
		return nil, ErrTeamIDRequired
	}
	t, err := s.getTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	if err := authorizeTournamentManager(t, actor); err != nil {
		return nil, err
	}
	if t.Status != models.StatusUpcoming {
		return nil, ErrRosterLocked
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %s: %w", teamID, err)
	}

	participation := &models.TournamentTeam{
		TournamentID: tournamentID,
		TeamID:       teamID,
		Status:       models.ParticipationInvited,
		Team:         team,
	}
	if err := s.participants.Invite(ctx, participation); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentTeamConflict):
			return nil, ErrTeamAlreadyInvited
		case errors.Is(err, repositories.ErrTournamentTeamInvalidTeam):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrTournamentTeamInvalidParent):
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to invite team %s to tournament %s: %w", teamID, tournamentID, err)
	}

	s.logger.InfoContext(ctx, "team invited",
		slog.String("tournament_id", tournamentID.String()),
		slog.String("team_id", teamID.String()))
	return participation, nil
}

// RespondToInvite records the team manager's answer. The confirmed roster feeds
// the standings, so the cached table is dropped on every answer. A nil teamID
// picks the one invited team the actor manages.
func (s *tournamentService) RespondToInvite(ctx context.Context, actor Actor, tournamentID, teamID uuid.UUID, status models.ParticipationStatus) (*models.TournamentTeam, error) {
	if status != models.ParticipationConfirmed && status != models.ParticipationDeclined {
		return nil, ErrInvalidRSVPOutcome
	}

	if teamID == uuid.Nil {
		resolved, err := s.invitedTeamOf(ctx, actor, tournamentID)
		if err != nil {
			return nil, err
		}
		teamID = resolved
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %s: %w", teamID, err)
	}
	if !actor.IsAdmin() && team.ManagerID != actor.UserID {
		return nil, ErrForbiddenOperation
	}

	var participation *models.TournamentTeam
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, txErr := s.getTournament(ctx, exec, tournamentID)
		if txErr != nil {
			return txErr
		}
		if t.Status != models.StatusUpcoming {
			return ErrRosterLocked
		}

		participation, txErr = s.participants.GetByTournamentAndTeam(ctx, exec, tournamentID, teamID)
		if txErr != nil {
			if errors.Is(txErr, repositories.ErrTournamentTeamNotFound) {
				return ErrParticipationNotFound
			}
			return fmt.Errorf("failed to load participation: %w", txErr)
		}
		if participation.Status != models.ParticipationInvited {
			return ErrInviteAlreadyAnswered
		}
		if txErr = s.participants.UpdateStatus(ctx, exec, participation.ID, status); txErr != nil {
			return fmt.Errorf("failed to update participation status: %w", txErr)
		}
		participation.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateStandings(ctx, s.cache, s.logger, tournamentID)
	s.logger.InfoContext(ctx, "invite answered",
		slog.String("tournament_id", tournamentID.String()),
		slog.String("team_id", teamID.String()),
		slog.String("status", string(status)))
	return participation, nil
}

func (s *tournamentService) invitedTeamOf(ctx context.Context, actor Actor, tournamentID uuid.UUID) (uuid.UUID, error) {
	if _, err := s.getTournament(ctx, nil, tournamentID); err != nil {
		return uuid.Nil, err
	}
	invited := models.ParticipationInvited
	pending, err := s.participants.ListByTournament(ctx, nil, tournamentID, &invited)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to list invites for tournament %s: %w", tournamentID, err)
	}

	var found []uuid.UUID
	for _, p := range pending {
		if p.Team != nil && p.Team.ManagerID == actor.UserID {
			found = append(found, p.TeamID)
		}
	}
	switch len(found) {
	case 0:
		return uuid.Nil, ErrParticipationNotFound
	case 1:
		return found[0], nil
	default:
		return uuid.Nil, ErrAmbiguousInvite
	}
}

// AutoCompleteTournaments closes every in-progress league that has no scheduled
// matches left. A failure on one tournament does not stop the others.
func (s *tournamentService) AutoCompleteTournaments(ctx context.Context) (int, error) {
	candidates, err := s.tournamentRepo.ListInProgress(ctx, models.FormatLeague)
	if err != nil {
		return 0, err
	}

	closed := 0
	var errs []error
	for _, candidate := range candidates {
		var done bool
		var winner *uuid.UUID
		txErr := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
			t, getErr := s.getTournament(ctx, exec, candidate.ID)
			if getErr != nil {
				return getErr
			}
			all, listErr := s.matchRepo.ListByTournament(ctx, exec, t.ID, repositories.ListMatchesFilter{})
			if listErr != nil {
				return fmt.Errorf("failed to list matches: %w", listErr)
			}
			if len(all) == 0 {
				return nil
			}
			table, tableErr := s.results.refreshSnapshot(ctx, exec, t.ID)
			if tableErr != nil {
				return tableErr
			}
			var closeErr error
			done, winner, closeErr = s.results.closeLeagueIfFinished(ctx, exec, t, table)
			return closeErr
		})
		if txErr != nil {
			s.logger.ErrorContext(ctx, "auto-complete failed",
				slog.String("tournament_id", candidate.ID.String()),
				slog.Any("error", txErr))
			errs = append(errs, fmt.Errorf("tournament %s: %w", candidate.ID, txErr))
			continue
		}
		if done {
			closed++
			s.notifier.Publish(candidate.ID, fixtures.EventTournamentCompleted, tournamentCompletedPayload{
				TournamentID: candidate.ID,
				WinnerTeamID: winner,
			})
			s.logger.InfoContext(ctx, "tournament auto-completed", slog.String("tournament_id", candidate.ID.String()))
		}
	}
	return closed, errors.Join(errs...)
}

func (s *tournamentService) getTournament(ctx context.Context, exec repositories.SQLExecutor, id uuid.UUID) (*models.Tournament, error) {
	return loadTournament(ctx, s.tournamentRepo, exec, id)
}

func loadTournament(ctx context.Context, repo repositories.TournamentRepository, exec repositories.SQLExecutor, id uuid.UUID) (*models.Tournament, error) {
	t, err := repo.GetByID(ctx, exec, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %s: %w", id, err)
	}
	return t, nil
}

func invalidateStandings(ctx context.Context, cache StandingsCache, logger *slog.Logger, tournamentID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, tournamentID); err != nil {
		logger.WarnContext(ctx, "failed to invalidate standings cache",
			slog.String("tournament_id", tournamentID.String()),
			slog.Any("error", err))
	}
}
