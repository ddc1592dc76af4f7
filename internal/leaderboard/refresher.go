package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/gymquest/internal/telemetry/metrics"
	"github.com/2beens/gymquest/internal/telemetry/tracing"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultRefreshSpec = "@every 1m"
	refreshTimeout     = 2 * time.Minute
)

//go:generate mockgen -source=$GOFILE -destination=refresher_mocks_test.go -package=leaderboard_test

type snapshotStore interface {
	Snapshot(ctx context.Context) ([]Entry, error)
	MaterializeRanks(ctx context.Context) (int64, error)
}

type rankingRebuilder interface {
	Rebuild(ctx context.Context, entries []Entry) error
}

// Refresher periodically reconciles the ranking set with postgres and stores the
// computed ranks in the leaderboard table.
type Refresher struct {
	store          snapshotStore
	ranking        rankingRebuilder
	metricsManager *metrics.Manager
	cron           *cron.Cron
}

func NewRefresher(store snapshotStore, ranking rankingRebuilder, metricsManager *metrics.Manager) *Refresher {
	return &Refresher{
		store:          store,
		ranking:        ranking,
		metricsManager: metricsManager,
		cron:           cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Start schedules Refresh with a cron spec, e.g. "@every 1m", and runs it once right away.
func (r *Refresher) Start(ctx context.Context, spec string) error {
	if spec == "" {
		spec = DefaultRefreshSpec
	}

	if _, err := r.cron.AddFunc(spec, func() {
		refreshCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
		defer cancel()
		if err := r.Refresh(refreshCtx); err != nil {
			log.Errorf("leaderboard refresh: %s", err)
		}
	}); err != nil {
		return fmt.Errorf("add leaderboard refresh job [%s]: %w", spec, err)
	}

	go func() {
		if err := r.Refresh(ctx); err != nil {
			log.Errorf("initial leaderboard refresh: %s", err)
		}
	}()

	r.cron.Start()
	log.Debugf("leaderboard refresher started, schedule: %s", spec)
	return nil
}

// Stop halts scheduling and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}

func (r *Refresher) Refresh(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "leaderboard.refresh")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		r.metricsManager.CounterLeaderboardRefreshes.WithLabelValues(outcome).Inc()
		r.metricsManager.HistogramLeaderboardRefresh.Observe(time.Since(start).Seconds())
	}()

	entries, err := r.store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	if err := r.ranking.Rebuild(ctx, entries); err != nil {
		return fmt.Errorf("rebuild ranking: %w", err)
	}

	updated, err := r.store.MaterializeRanks(ctx)
	if err != nil {
		return fmt.Errorf("materialize ranks: %w", err)
	}

	log.Tracef("leaderboard refreshed: %d users, %d rows updated", len(entries), updated)
	return nil
}
