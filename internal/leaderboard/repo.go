package leaderboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/gymquest/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
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

// Snapshot reads every user's EXP from the users table, which is the source of truth.
func (r *Repo) Snapshot(ctx context.Context) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.leaderboard.snapshot")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, username, exp, level FROM app_user ORDER BY exp DESC, id;`)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.UserID, &e.Username, &e.TotalExp, &e.Level); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	assignRanks(entries, 0, 1)

	span.SetAttributes(attribute.Int("count", len(entries)))
	return entries, nil
}

// MaterializeRanks syncs the leaderboard table with the users table and stores every
// user's rank. The table is locked for writes meanwhile, so a progress commit lands
// either before or after the recomputation, never in the middle of it.
func (r *Repo) MaterializeRanks(ctx context.Context) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.leaderboard.materialize")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err := tx.Exec(ctx, `LOCK TABLE leaderboard IN SHARE ROW EXCLUSIVE MODE;`); err != nil {
		return 0, fmt.Errorf("lock leaderboard: %w", err)
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO leaderboard (user_id, total_exp)
			SELECT id, exp FROM app_user
		ON CONFLICT (user_id) DO NOTHING;`,
	); err != nil {
		return 0, fmt.Errorf("insert missing entries: %w", err)
	}

	tag, err := tx.Exec(
		ctx,
		`
			UPDATE leaderboard l
			SET total_exp = ranked.exp, rank = ranked.rank, updated_at = now()
			FROM (
				SELECT id, exp, RANK() OVER (ORDER BY exp DESC) AS rank
				FROM app_user
			) ranked
			WHERE l.user_id = ranked.id
				AND (l.total_exp <> ranked.exp OR l.rank <> ranked.rank);`,
	)
	if err != nil {
		return 0, fmt.Errorf("update ranks: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	span.SetAttributes(attribute.Int64("updated", tag.RowsAffected()))
	return tag.RowsAffected(), nil
}

// Page reads a leaderboard page from the materialized ranks. Used when the ranking set is unavailable.
func (r *Repo) Page(ctx context.Context, offset, limit int) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.leaderboard.page")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT l.rank, l.user_id, u.username, l.total_exp, u.level
			FROM leaderboard l
				JOIN app_user u ON u.id = l.user_id
			ORDER BY l.total_exp DESC, l.user_id
			OFFSET $1 LIMIT $2;`,
		offset, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Rank, &e.UserID, &e.Username, &e.TotalExp, &e.Level); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return entries, nil
}

// Rank computes the user's rank from the current totals.
func (r *Repo) Rank(ctx context.Context, userID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.leaderboard.rank")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var rank int
	if err := r.db.QueryRow(
		ctx,
		`
			SELECT 1 + (SELECT count(*) FROM leaderboard o WHERE o.total_exp > l.total_exp)
			FROM leaderboard l
			WHERE l.user_id = $1;`,
		userID,
	).Scan(&rank); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotRanked
		}
		return 0, err
	}
	return rank, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM leaderboard;`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Profiles fills usernames and levels of the given entries.
func (r *Repo) Profiles(ctx context.Context, entries []Entry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.leaderboard.profiles")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if len(entries) == 0 {
		return nil
	}

	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.UserID)
	}

	rows, err := r.db.Query(ctx, `SELECT id, username, level FROM app_user WHERE id = ANY($1);`, ids)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	type profile struct {
		username string
		level    int
	}
	profiles := make(map[int]profile, len(ids))
	for rows.Next() {
		var id int
		var p profile
		if err := rows.Scan(&id, &p.username, &p.level); err != nil {
			return fmt.Errorf("scan profile: %w", err)
		}
		profiles[id] = p
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows: %w", err)
	}

	for i := range entries {
		if p, ok := profiles[entries[i].UserID]; ok {
			entries[i].Username = p.username
			entries[i].Level = p.level
		}
	}
	return nil
}
