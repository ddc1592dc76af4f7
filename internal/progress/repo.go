package progress

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/2beens/gymquest/internal/achievements"
	"github.com/2beens/gymquest/internal/exercises"
	"github.com/2beens/gymquest/internal/telemetry/tracing"
	"github.com/2beens/gymquest/internal/users"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Record stores one submission and credits the user in a single transaction. The user row
// stays locked until commit, so parallel submissions of the same user never lose EXP
// and the daily streak is advanced at most once per submission.
func (r *Repo) Record(ctx context.Context, userID int, exercise *exercises.Exercise, reps int) (_ *Progression, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.record")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.Int("exercise.id", exercise.ID),
		attribute.Int("reps", reps),
	)

	if reps < 0 {
		return nil, ErrNegativeReps
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	user, err := users.LockForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	p := &Progression{
		ExpEarned: exercise.ExpFor(reps),
	}
	if p.ExpEarned > math.MaxInt32 || user.Exp > math.MaxInt32-p.ExpEarned {
		return nil, ErrExpOutOfRange
	}
	if err := tx.QueryRow(
		ctx,
		`INSERT INTO user_progress (user_id, exercise_id, reps_completed, exp_earned)
			VALUES ($1, $2, $3, $4)
		RETURNING id;`,
		userID, exercise.ID, reps, p.ExpEarned,
	).Scan(&p.ProgressID); err != nil {
		return nil, fmt.Errorf("insert progress: %w", err)
	}

	p.LeveledUp, err = user.AddExp(p.ExpEarned)
	if err != nil {
		return nil, err
	}
	p.PointsAwarded = user.AddRewardPoints(p.ExpEarned)

	if err := users.SaveProgression(ctx, tx, user); err != nil {
		return nil, err
	}

	streak, err := users.SaveStreak(ctx, tx, userID, time.Now())
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO leaderboard (user_id, total_exp, updated_at)
			VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET total_exp = EXCLUDED.total_exp, updated_at = now();`,
		userID, user.Exp,
	); err != nil {
		return nil, fmt.Errorf("upsert leaderboard: %w", err)
	}

	if p.LeveledUp {
		if err := achievements.InsertActivity(ctx, tx, userID, levelUpActivity(user.Level)); err != nil {
			return nil, err
		}
	}
	if p.PointsAwarded > 0 {
		if err := achievements.InsertActivity(ctx, tx, userID, rewardPointsActivity(p.PointsAwarded)); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	p.TotalExp = user.Exp
	p.Level = user.Level
	p.RewardPoints = user.RewardPoints
	p.Streak = streak.Current
	return p, nil
}

func (r *Repo) ExerciseTotals(ctx context.Context, userID, exerciseID int) (_ exercises.UserTotals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.exerciseTotals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var totals exercises.UserTotals
	var lastDoneAt *time.Time
	if err := r.db.QueryRow(
		ctx,
		`
			SELECT count(*), COALESCE(sum(reps_completed), 0), COALESCE(sum(exp_earned), 0), max(completed_at)
			FROM user_progress
			WHERE user_id = $1 AND exercise_id = $2;`,
		userID, exerciseID,
	).Scan(&totals.Sets, &totals.Reps, &totals.Exp, &lastDoneAt); err != nil {
		return exercises.UserTotals{}, fmt.Errorf("query totals: %w", err)
	}
	totals.LastDoneAt = lastDoneAt
	return totals, nil
}

// History returns the most recent submissions first, limit 0 means all.
func (r *Repo) History(ctx context.Context, userID, limit int) (_ []Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT p.id, p.user_id, p.exercise_id, e.name, p.reps_completed, p.exp_earned, p.completed_at
			FROM user_progress p
				JOIN exercise e ON e.id = p.exercise_id
			WHERE p.user_id = $1
			ORDER BY p.completed_at DESC, p.id DESC
			LIMIT NULLIF($2, 0);`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	history := make([]Progress, 0)
	for rows.Next() {
		var p Progress
		if err := rows.Scan(&p.ID, &p.UserID, &p.ExerciseID, &p.ExerciseName, &p.RepsCompleted, &p.ExpEarned, &p.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		history = append(history, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return history, nil
}
