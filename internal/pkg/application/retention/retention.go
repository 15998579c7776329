package retention

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/diwise/iot-telemetry-alerts/internal/pkg/infrastructure/metrics"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("iot-telemetry-alerts/retention")

var (
	ErrConcurrentRun  = errors.New("a retention run is already in progress")
	ErrRetentionStage = errors.New("retention stage failed")
)

const (
	StageHourly = "hourly"
	StageDaily  = "daily"
	StagePurge  = "purge"
)

type RunReport = types.RetentionRunCompleted

//go:generate moq -rm -out readingstore_mock.go . ReadingStore
type ReadingStore interface {
	CompactionBuckets(ctx context.Context, granularity storage.Granularity, from, to time.Time, limit int) ([]storage.Bucket, error)
	CollapseBucket(ctx context.Context, b storage.Bucket) (int64, error)
	PurgeReadings(ctx context.Context, before time.Time, limit int) (int64, error)
}

//go:generate moq -rm -out scheduler_mock.go . Scheduler
type Scheduler interface {
	// Run executes the enabled stages in order. Overlapping runs are rejected with
	// ErrConcurrentRun. Stage failures are joined into the returned error but never
	// stop later stages.
	Run(ctx context.Context) (RunReport, error)
	// Trigger is Run started out of band, e.g. by an operator.
	Trigger(ctx context.Context) (RunReport, error)
	Start(ctx context.Context) error
	Stop()
}

type scheduler struct {
	cfg       Config
	store     ReadingStore
	messenger messaging.MsgContext
	lease     *lease

	running atomic.Bool
	now     func() time.Time

	mu     sync.Mutex
	cron   *cron.Cron
	cancel context.CancelFunc
}

// New creates a scheduler. The messenger and redis client are optional, with a
// redis client runs are also exclusive across instances.
func New(cfg Config, store ReadingStore, m messaging.MsgContext, client *redis.Client) Scheduler {
	s := &scheduler{
		cfg:       cfg,
		store:     store,
		messenger: m,
		now:       func() time.Time { return time.Now().UTC() },
	}

	if client != nil {
		s.lease = &lease{client: client, key: cfg.LeaseKey, ttl: cfg.LeaseTTL}
	}

	return s
}

func (s *scheduler) Start(ctx context.Context) error {
	loc, err := s.cfg.Location()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(s.cfg.Schedule, func() { s.scheduled(runCtx) })
	if err != nil {
		cancel()
		return fmt.Errorf("invalid retention schedule: %w", err)
	}

	c.Start()
	s.cron, s.cancel = c, cancel

	logging.GetFromContext(ctx).Info("retention scheduler started", "schedule", s.cfg.Schedule, "timezone", loc.String())

	return nil
}

// Stop cancels a running job and waits for it to return.
func (s *scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return
	}

	s.cancel()
	<-s.cron.Stop().Done()
	s.cron = nil
}

func (s *scheduler) Run(ctx context.Context) (RunReport, error) {
	return s.run(ctx, "scheduled")
}

// scheduled runs on the cron trigger, where no caller sees the returned error.
// Stage failures are already logged by run.
func (s *scheduler) scheduled(ctx context.Context) {
	log := logging.GetFromContext(ctx)

	_, err := s.run(ctx, "scheduled")
	switch {
	case err == nil, errors.Is(err, ErrRetentionStage):
	case errors.Is(err, ErrConcurrentRun):
		log.Info("scheduled retention run skipped", "err", err.Error())
	default:
		log.Error("scheduled retention run failed", "err", err.Error())
	}
}

func (s *scheduler) Trigger(ctx context.Context) (RunReport, error) {
	return s.run(ctx, "manual")
}

func (s *scheduler) run(ctx context.Context, trigger string) (report RunReport, err error) {
	log := logging.GetFromContext(ctx).With("trigger", trigger)

	if !s.running.CompareAndSwap(false, true) {
		metrics.RetentionRunsTotal.WithLabelValues("rejected").Inc()
		return RunReport{}, ErrConcurrentRun
	}
	defer s.running.Store(false)

	if s.lease != nil {
		token, ok, lerr := s.lease.acquire(ctx)
		if lerr != nil {
			metrics.RetentionRunsTotal.WithLabelValues("failed").Inc()
			return RunReport{}, fmt.Errorf("could not acquire retention lease: %w", lerr)
		}
		if !ok {
			metrics.RetentionRunsTotal.WithLabelValues("rejected").Inc()
			return RunReport{}, ErrConcurrentRun
		}
		defer func() {
			if rerr := s.lease.release(context.WithoutCancel(ctx), token); rerr != nil {
				log.Warn("could not release retention lease", "err", rerr.Error())
			}
		}()
	}

	ctx, span := tracer.Start(ctx, "retention-run")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	now := s.now()
	report.StartedAt = now

	log.Info("retention run started")

	stages := []struct {
		name    string
		enabled bool
		run     func(context.Context, time.Time) (int64, int64, error)
	}{
		{StageHourly, s.cfg.Hourly.Enabled, s.compactHourly},
		{StageDaily, s.cfg.Daily.Enabled, s.compactDaily},
		{StagePurge, s.cfg.Purge.Enabled, s.purge},
	}

	var errs []error

	for _, st := range stages {
		result := types.RetentionStageResult{Stage: st.name, Enabled: st.enabled}

		if st.enabled {
			start := time.Now()
			buckets, deleted, stageErr := st.run(ctx, now)
			metrics.RetentionStageDuration.WithLabelValues(st.name).Observe(time.Since(start).Seconds())
			metrics.RetentionDeletedTotal.WithLabelValues(st.name).Add(float64(deleted))

			result.Buckets, result.Deleted = buckets, deleted

			if stageErr != nil {
				result.Error = stageErr.Error()
				errs = append(errs, fmt.Errorf("%w %s: %w", ErrRetentionStage, st.name, stageErr))
			}

			log.Debug("retention stage done", "stage", st.name, "buckets", buckets, "deleted", deleted)
		}

		report.Stages = append(report.Stages, result)
	}

	report.FinishedAt = s.now()
	err = errors.Join(errs...)

	if err != nil {
		metrics.RetentionRunsTotal.WithLabelValues("failed").Inc()
		log.Error("retention run finished with errors", "err", err.Error(), "duration", report.FinishedAt.Sub(report.StartedAt))
	} else {
		metrics.RetentionRunsTotal.WithLabelValues("completed").Inc()
		log.Info("retention run completed", "duration", report.FinishedAt.Sub(report.StartedAt))
	}

	if s.messenger != nil {
		if perr := s.messenger.PublishOnTopic(ctx, &report); perr != nil {
			log.Warn("could not publish retention report", "err", perr.Error())
		}
	}

	return report, err
}

// compactHourly collapses hour buckets that have fully elapsed at least
// StartAfterHours ago and lie within RangeDays before that cutoff.
func (s *scheduler) compactHourly(ctx context.Context, now time.Time) (int64, int64, error) {
	to := storage.Hourly.Truncate(now.Add(-time.Duration(s.cfg.Hourly.StartAfterHours) * time.Hour))
	from := to.AddDate(0, 0, -s.cfg.Hourly.RangeDays)
	return s.compact(ctx, storage.Hourly, from, to)
}

func (s *scheduler) compactDaily(ctx context.Context, now time.Time) (int64, int64, error) {
	to := storage.Daily.Truncate(now.AddDate(0, 0, -s.cfg.Daily.StartAfterDays))
	from := to.AddDate(0, 0, -s.cfg.Daily.RangeDays)
	return s.compact(ctx, storage.Daily, from, to)
}

func (s *scheduler) compact(ctx context.Context, g storage.Granularity, from, to time.Time) (int64, int64, error) {
	var buckets, deleted int64

	for {
		n, d, done, err := s.compactChunk(ctx, g, from, to)
		buckets += n
		deleted += d

		if err != nil {
			return buckets, deleted, err
		}
		if done {
			return buckets, deleted, nil
		}

		if err := s.yield(ctx); err != nil {
			return buckets, deleted, err
		}
	}
}

func (s *scheduler) compactChunk(ctx context.Context, g storage.Granularity, from, to time.Time) (int64, int64, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ChunkTimeout)
	defer cancel()

	bb, err := s.store.CompactionBuckets(ctx, g, from, to, s.cfg.ChunkSize)
	if err != nil {
		return 0, 0, false, err
	}

	var deleted int64
	for _, b := range bb {
		n, err := s.store.CollapseBucket(ctx, b)
		deleted += n
		if err != nil {
			return 0, deleted, false, fmt.Errorf("could not collapse bucket %s@%s: %w", b.SensorID, b.Start.Format(time.RFC3339), err)
		}
	}

	// a chunk that deletes nothing would be returned again by the next query
	done := len(bb) < s.cfg.ChunkSize || deleted == 0

	return int64(len(bb)), deleted, done, nil
}

func (s *scheduler) purge(ctx context.Context, now time.Time) (int64, int64, error) {
	before := now.AddDate(0, 0, -s.cfg.Purge.MaxAgeDays)

	var deleted int64

	for {
		n, err := s.purgeChunk(ctx, before)
		deleted += n

		if err != nil {
			return 0, deleted, err
		}
		if n < int64(s.cfg.ChunkSize) {
			return 0, deleted, nil
		}

		if err := s.yield(ctx); err != nil {
			return 0, deleted, err
		}
	}
}

func (s *scheduler) purgeChunk(ctx context.Context, before time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ChunkTimeout)
	defer cancel()

	return s.store.PurgeReadings(ctx, before, s.cfg.ChunkSize)
}

func (s *scheduler) yield(ctx context.Context) error {
	if s.cfg.Yield <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(s.cfg.Yield)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
