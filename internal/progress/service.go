package progress

import (
	"context"
	"fmt"

	"github.com/2beens/gymquest/internal/achievements"
	"github.com/2beens/gymquest/internal/exercises"
	"github.com/2beens/gymquest/internal/telemetry/metrics"
	"github.com/2beens/gymquest/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=progress_test

type exerciseCatalog interface {
	Get(ctx context.Context, id int) (*exercises.Exercise, error)
}

type progressRepo interface {
	Record(ctx context.Context, userID int, exercise *exercises.Exercise, reps int) (*Progression, error)
}

type rankTracker interface {
	Update(ctx context.Context, userID, exp int) error
	Rank(ctx context.Context, userID int) (int, error)
}

type achievementsEvaluator interface {
	Evaluate(ctx context.Context, userID int) ([]achievements.Achievement, error)
}

type Service struct {
	catalog        exerciseCatalog
	repo           progressRepo
	ranker         rankTracker
	evaluator      achievementsEvaluator
	metricsManager *metrics.Manager
}

func NewService(
	catalog exerciseCatalog,
	repo progressRepo,
	ranker rankTracker,
	evaluator achievementsEvaluator,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		catalog:        catalog,
		repo:           repo,
		ranker:         ranker,
		evaluator:      evaluator,
		metricsManager: metricsManager,
	}
}

// Record credits a completed set to the user. Once the submission is committed, failures
// of the ranking set or the achievements check are logged and do not fail the call:
// the periodic leaderboard refresh and the next evaluation catch up on them.
func (s *Service) Record(ctx context.Context, userID, exerciseID, reps int) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progress.record")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("exercise.id", exerciseID))

	if reps < 0 {
		return nil, ErrNegativeReps
	}

	exercise, err := s.catalog.Get(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	progression, err := s.repo.Record(ctx, userID, exercise, reps)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}

	s.metricsManager.CounterProgressSubmissions.Inc()
	s.metricsManager.CounterExpAwarded.Add(float64(progression.ExpEarned))
	if progression.PointsAwarded > 0 {
		s.metricsManager.CounterRewardPointsAwarded.Add(float64(progression.PointsAwarded))
	}

	result := &Result{
		Progression:  *progression,
		Achievements: []achievements.Achievement{},
	}

	if err := s.ranker.Update(ctx, userID, progression.TotalExp); err != nil {
		log.Errorf("record progress, update rank of user %d: %s", userID, err)
	} else if rank, err := s.ranker.Rank(ctx, userID); err != nil {
		log.Errorf("record progress, get rank of user %d: %s", userID, err)
	} else {
		result.Rank = rank
	}

	unlocked, err := s.evaluator.Evaluate(ctx, userID)
	if err != nil {
		log.Errorf("record progress, evaluate achievements of user %d: %s", userID, err)
	} else {
		result.Achievements = unlocked
	}

	log.Debugf(
		"user %d did %d reps of exercise %d: +%d exp, total %d, level %d",
		userID, reps, exerciseID, progression.ExpEarned, progression.TotalExp, progression.Level,
	)
	return result, nil
}
