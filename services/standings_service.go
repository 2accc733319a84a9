package services

import (
	"context"
	"log/slog"

	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/Dosada05/tournament-fixtures/repositories"
	"github.com/google/uuid"
)

type StandingsService interface {
	GetStandings(ctx context.Context, tournamentID uuid.UUID) ([]models.Standing, error)
}

type standingsService struct {
	tournamentRepo repositories.TournamentRepository
	results        results
	cache          StandingsCache
	logger         *slog.Logger
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	participants repositories.TournamentTeamRepository,
	matchRepo repositories.MatchRepository,
	cache StandingsCache,
	logger *slog.Logger,
) StandingsService {
	return &standingsService{
		tournamentRepo: tournamentRepo,
		results:        results{tournamentRepo: tournamentRepo, teamRepo: participants, matchRepo: matchRepo},
		cache:          cache,
		logger:         logger,
	}
}

// GetStandings always derives the table from completed matches. The cache only
// holds a copy between mutations; cache errors fall back to the fold.
func (s *standingsService) GetStandings(ctx context.Context, tournamentID uuid.UUID) ([]models.Standing, error) {
	if _, err := loadTournament(ctx, s.tournamentRepo, nil, tournamentID); err != nil {
		return nil, err
	}

	if s.cache == nil {
		table, _, err := s.results.table(ctx, nil, tournamentID)
		return table, err
	}

	table, ok, err := s.cache.Get(ctx, tournamentID)
	if err != nil {
		s.logger.WarnContext(ctx, "standings cache read failed",
			slog.String("tournament_id", tournamentID.String()), slog.Any("error", err))
	} else if ok {
		return table, nil
	}

	// Версию читаем до свёртки: если между чтением и записью прошла мутация,
	// SetIfVersion не сохранит устаревшую таблицу.
	version, versionErr := s.cache.Version(ctx, tournamentID)

	table, _, err = s.results.table(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}

	if versionErr != nil {
		s.logger.WarnContext(ctx, "standings cache version read failed",
			slog.String("tournament_id", tournamentID.String()), slog.Any("error", versionErr))
		return table, nil
	}
	stored, err := s.cache.SetIfVersion(ctx, tournamentID, version, table)
	if err != nil {
		s.logger.WarnContext(ctx, "standings cache write failed",
			slog.String("tournament_id", tournamentID.String()), slog.Any("error", err))
	} else if !stored {
		s.logger.DebugContext(ctx, "standings changed while folding, cache write skipped",
			slog.String("tournament_id", tournamentID.String()))
	}
	return table, nil
}
