package achievements

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/gymquest/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrUserNotFound = errors.New("user not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// ProgressState returns what the milestones are evaluated against.
func (r *Repo) ProgressState(ctx context.Context, userID int) (progressCount, level int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.progressState")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	err = r.db.QueryRow(
		ctx,
		`
			SELECT
				(SELECT count(*) FROM user_progress WHERE user_id = u.id),
				u.level
			FROM app_user u
			WHERE u.id = $1;`,
		userID,
	).Scan(&progressCount, &level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, ErrUserNotFound
		}
		return 0, 0, err
	}
	return progressCount, level, nil
}

// Unlock creates the achievements the user does not have yet, with one activity entry
// per newly created achievement, all in one transaction. Already unlocked ones are skipped.
func (r *Repo) Unlock(ctx context.Context, userID int, milestones []Milestone) (_ []Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.unlock")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Int("candidates", len(milestones)))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	unlocked := make([]Achievement, 0)
	for _, m := range milestones {
		a := Achievement{
			UserID:      userID,
			Name:        m.Name,
			Description: m.Description,
		}
		err := tx.QueryRow(
			ctx,
			`INSERT INTO achievement (user_id, name, description)
				VALUES ($1, $2, $3)
				ON CONFLICT ON CONSTRAINT achievement_user_name_key DO NOTHING
			RETURNING id, created_at;`,
			userID, m.Name, m.Description,
		).Scan(&a.ID, &a.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// already unlocked
				continue
			}
			return nil, fmt.Errorf("insert achievement %s: %w", m.Name, err)
		}

		if err := InsertActivity(ctx, tx, userID, EarnedActivity(m.Name)); err != nil {
			return nil, err
		}
		unlocked = append(unlocked, a)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	span.SetAttributes(attribute.Int("unlocked", len(unlocked)))
	return unlocked, nil
}

func (r *Repo) List(ctx context.Context, userID int) ([]Achievement, error) {
	return r.RecentAchievements(ctx, userID, 0)
}

// RecentAchievements returns the newest achievements first, all of them when limit <= 0.
func (r *Repo) RecentAchievements(ctx context.Context, userID, limit int) (_ []Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.recent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, name, description, created_at
			FROM achievement
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT NULLIF($2, 0);`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	achievements := make([]Achievement, 0)
	for rows.Next() {
		var a Achievement
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Description, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		achievements = append(achievements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return achievements, nil
}

// RecentActivities returns the newest activity entries first, all of them when limit <= 0.
func (r *Repo) RecentActivities(ctx context.Context, userID, limit int) (_ []Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.recent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, description, timestamp
			FROM user_activity
			WHERE user_id = $1
			ORDER BY timestamp DESC, id DESC
			LIMIT NULLIF($2, 0);`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	activities := make([]Activity, 0)
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Description, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return activities, nil
}

// InsertActivity appends to the user's activity feed inside the caller's transaction.
func InsertActivity(ctx context.Context, tx pgx.Tx, userID int, description string) error {
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO user_activity (user_id, description) VALUES ($1, $2);`,
		userID, description,
	); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}
