package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

var (
	ErrEmptyJobName    = errors.New("job name is required")
	ErrInvalidInterval = errors.New("job interval must be positive")
)

// Service wraps a gocron scheduler for the background jobs of the service.
type Service struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	stopOnce  sync.Once
	stopErr   error
}

func New(logger *slog.Logger) (*Service, error) {
	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					logger.Error("scheduler job panicked",
						slog.String("job_id", jobID.String()),
						slog.String("job_name", jobName),
						slog.Any("panic", recoverData))
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return &Service{scheduler: sched, logger: logger}, nil
}

func (s *Service) Start() {
	s.logger.Info("scheduler starting")
	s.scheduler.Start()
}

// Stop останавливает планировщик и ждёт завершения запущенных задач.
func (s *Service) Stop() error {
	s.stopOnce.Do(func() {
		s.logger.Info("scheduler stopping")
		s.stopErr = s.scheduler.Shutdown()
	})
	return s.stopErr
}

// AddIntervalJob runs task every interval, starting immediately. Overlapping runs
// are skipped; each run gets a context bounded by the interval.
func (s *Service) AddIntervalJob(name string, interval time.Duration, task func(ctx context.Context) error) (gocron.Job, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyJobName
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	jobLogger := s.logger.With(slog.String("job_name", name), slog.Duration("interval", interval))

	wrapped := func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()
		jobLogger.Debug("scheduler job started")
		if err := task(ctx); err != nil {
			jobLogger.Error("scheduler job failed", slog.Any("error", err))
			return
		}
		jobLogger.Debug("scheduler job completed")
	}

	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(wrapped),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		jobLogger.Error("failed to register scheduler job", slog.Any("error", err))
		return nil, err
	}
	jobLogger.Info("scheduler job registered")
	return job, nil
}

// AutoCompleter is the part of the tournament service the reconcile job drives.
type AutoCompleter interface {
	AutoCompleteTournaments(ctx context.Context) (int, error)
}

const ReconcileJobName = "tournament_auto_complete"

// RegisterReconcileJob closes league tournaments whose fixtures are all played or
// cancelled but which were not closed inline.
func RegisterReconcileJob(s *Service, completer AutoCompleter, interval time.Duration) (gocron.Job, error) {
	return s.AddIntervalJob(ReconcileJobName, interval, func(ctx context.Context) error {
		n, err := completer.AutoCompleteTournaments(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			s.logger.Info("tournaments auto-completed", slog.Int("count", n))
		}
		return nil
	})
}
