package achievements

import (
	"context"
	"fmt"

	"github.com/2beens/gymquest/internal/telemetry/metrics"
	"github.com/2beens/gymquest/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=evaluator_mocks_test.go -package=achievements_test

type achievementsRepo interface {
	ProgressState(ctx context.Context, userID int) (progressCount, level int, err error)
	Unlock(ctx context.Context, userID int, milestones []Milestone) ([]Achievement, error)
}

type Evaluator struct {
	repo           achievementsRepo
	metricsManager *metrics.Manager
}

func NewEvaluator(repo achievementsRepo, metricsManager *metrics.Manager) *Evaluator {
	return &Evaluator{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

// Evaluate unlocks every milestone the user qualifies for and returns only the
// newly unlocked ones. Repeated calls return an empty list.
func (e *Evaluator) Evaluate(ctx context.Context, userID int) (_ []Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "achievements.evaluate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	progressCount, level, err := e.repo.ProgressState(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("progress state: %w", err)
	}

	candidates := Unlockable(progressCount, level)
	if len(candidates) == 0 {
		return []Achievement{}, nil
	}

	unlocked, err := e.repo.Unlock(ctx, userID, candidates)
	if err != nil {
		return nil, fmt.Errorf("unlock: %w", err)
	}

	for _, a := range unlocked {
		log.Debugf("user %d unlocked achievement [%s]", userID, a.Name)
		e.metricsManager.CounterAchievementsUnlocked.WithLabelValues(a.Name).Inc()
	}
	return unlocked, nil
}
