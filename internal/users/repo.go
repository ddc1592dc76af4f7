package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymquest/internal/telemetry/tracing"
	"github.com/2beens/gymquest/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
)

const userColumns = `id, username, email, bio, password_hash, exp, level, reward_points, is_admin, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Create inserts the user together with its leaderboard entry.
func (r *Repo) Create(ctx context.Context, user User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if user.Level < 1 {
		user.Level = LevelForExp(user.Exp)
	}

	err = tx.QueryRow(
		ctx,
		`INSERT INTO app_user
				(username, email, bio, password_hash, exp, level, reward_points, is_admin)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at;`,
		user.Username, user.Email, user.Bio, user.PasswordHash,
		user.Exp, user.Level, user.RewardPoints, user.IsAdmin,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO leaderboard (user_id, total_exp) VALUES ($1, $2);`,
		user.ID, user.Exp,
	); err != nil {
		return nil, fmt.Errorf("insert leaderboard entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))
	return &user, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM app_user WHERE id = $1;`, id)
	return scanUser(row)
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByUsername")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM app_user WHERE username = $1;`, username)
	return scanUser(row)
}

func (r *Repo) IsAdmin(ctx context.Context, id int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.isAdmin")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	var isAdmin bool
	if err := r.db.QueryRow(ctx, `SELECT is_admin FROM app_user WHERE id = $1;`, id).Scan(&isAdmin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrUserNotFound
		}
		return false, err
	}
	return isAdmin, nil
}

// UpdateProfile changes the editable account fields.
func (r *Repo) UpdateProfile(ctx context.Context, id int, update ProfileUpdate) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updateProfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE app_user SET username = $1, email = $2, bio = $3 WHERE id = $4;`,
		update.Username, update.Email, update.Bio, id,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpsertAdmin creates the admin account or resets its password and admin flag.
func (r *Repo) UpsertAdmin(ctx context.Context, username, email, passwordHash string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.upsertAdmin")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var id int
	err = tx.QueryRow(
		ctx,
		`INSERT INTO app_user (username, email, password_hash, is_admin)
				VALUES ($1, $2, $3, TRUE)
			ON CONFLICT ON CONSTRAINT app_user_username_key
				DO UPDATE SET password_hash = EXCLUDED.password_hash, is_admin = TRUE
			RETURNING id;`,
		username, email, passwordHash,
	).Scan(&id)
	if err != nil {
		return 0, mapUniqueViolation(err)
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO leaderboard (user_id, total_exp)
			SELECT id, exp FROM app_user WHERE id = $1
			ON CONFLICT (user_id) DO NOTHING;`,
		id,
	); err != nil {
		return 0, fmt.Errorf("insert leaderboard entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// LockForUpdate loads the user and locks its row until tx ends. Every EXP and reward
// points mutation goes through it, so concurrent submissions of one user are serialized.
func LockForUpdate(ctx context.Context, tx pgx.Tx, id int) (*User, error) {
	row := tx.QueryRow(ctx, `SELECT `+userColumns+` FROM app_user WHERE id = $1 FOR UPDATE;`, id)
	return scanUser(row)
}

// SaveProgression persists exp, level and reward points of a user locked with LockForUpdate.
func SaveProgression(ctx context.Context, tx pgx.Tx, user *User) error {
	tag, err := tx.Exec(
		ctx,
		`UPDATE app_user SET exp = $1, level = $2, reward_points = $3 WHERE id = $4;`,
		user.Exp, user.Level, user.RewardPoints, user.ID,
	)
	if err != nil {
		return fmt.Errorf("update progression: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Streak returns the stored streak of the user, a user without activity gets the zero value.
func (r *Repo) Streak(ctx context.Context, id int) (_ Streak, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.streak")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	return getStreak(ctx, r.db, id)
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getStreak(ctx context.Context, db rowQuerier, userID int) (Streak, error) {
	var streak Streak
	err := db.QueryRow(
		ctx,
		`SELECT current_streak, longest_streak, last_active_date FROM user_streak WHERE user_id = $1;`,
		userID,
	).Scan(&streak.Current, &streak.Longest, &streak.LastActiveOn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Streak{}, nil
		}
		return Streak{}, fmt.Errorf("query streak: %w", err)
	}
	return streak, nil
}

// SaveStreak advances the streak of a user locked with LockForUpdate for activity at `at`.
func SaveStreak(ctx context.Context, tx pgx.Tx, userID int, at time.Time) (Streak, error) {
	prev, err := getStreak(ctx, tx, userID)
	if err != nil {
		return Streak{}, err
	}

	next := prev.Next(at)
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO user_streak (user_id, current_streak, longest_streak, last_active_date, updated_at)
			VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (user_id) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_active_date = EXCLUDED.last_active_date,
			updated_at = now();`,
		userID, next.Current, next.Longest, next.LastActiveOn,
	); err != nil {
		return Streak{}, fmt.Errorf("upsert streak: %w", err)
	}
	return next, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Bio, &u.PasswordHash,
		&u.Exp, &u.Level, &u.RewardPoints, &u.IsAdmin, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func mapUniqueViolation(err error) error {
	constraint, ok := pkg.UniqueViolationConstraint(err)
	if !ok {
		return err
	}
	switch constraint {
	case "app_user_username_key":
		return ErrUsernameTaken
	case "app_user_email_key":
		return ErrEmailTaken
	}
	return err
}
