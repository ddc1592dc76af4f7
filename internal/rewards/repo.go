package rewards

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/gymquest/internal/achievements"
	"github.com/2beens/gymquest/internal/telemetry/tracing"
	"github.com/2beens/gymquest/internal/users"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const rewardColumns = `id, name, description, points_cost, is_active, created_at, updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Redeem debits the reward cost and records the redemption atomically. On any error
// neither the balance nor the redemption log changes.
func (r *Repo) Redeem(ctx context.Context, userID, rewardID int) (_ *Redemption, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.rewards.redeem")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("reward.id", rewardID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	reward, err := scanReward(tx.QueryRow(
		ctx,
		`SELECT `+rewardColumns+` FROM reward WHERE id = $1 FOR SHARE;`,
		rewardID,
	))
	if err != nil {
		return nil, err
	}
	if !reward.IsActive {
		return nil, ErrRewardInactive
	}

	user, err := users.LockForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if user.RewardPoints < reward.PointsCost {
		return nil, ErrInsufficientPoints
	}

	user.RewardPoints -= reward.PointsCost
	if err := users.SaveProgression(ctx, tx, user); err != nil {
		return nil, err
	}

	redemption := &Redemption{
		UserReward: UserReward{
			UserID:     userID,
			RewardID:   reward.ID,
			RewardName: reward.Name,
			PointsCost: reward.PointsCost,
		},
		RemainingPoints: user.RewardPoints,
	}
	if err := tx.QueryRow(
		ctx,
		`INSERT INTO user_reward (user_id, reward_id) VALUES ($1, $2) RETURNING id, redeemed_at;`,
		userID, reward.ID,
	).Scan(&redemption.ID, &redemption.RedeemedAt); err != nil {
		return nil, fmt.Errorf("insert user reward: %w", err)
	}

	if err := achievements.InsertActivity(ctx, tx, userID, redeemedActivity(reward.Name)); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return redemption, nil
}

func (r *Repo) Add(ctx context.Context, reward NewReward) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.rewards.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var id int
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO reward (name, description, points_cost) VALUES ($1, $2, $3) RETURNING id;`,
		reward.Name, reward.Description, reward.PointsCost,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert reward: %w", err)
	}
	return id, nil
}

// Deactivate soft deletes the reward, past redemptions keep referencing it.
func (r *Repo) Deactivate(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.rewards.deactivate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE reward SET is_active = FALSE, updated_at = now() WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRewardNotFound
	}
	return nil
}

func (r *Repo) ListActive(ctx context.Context) ([]Reward, error) {
	return r.list(ctx, `SELECT `+rewardColumns+` FROM reward WHERE is_active ORDER BY points_cost, id;`)
}

func (r *Repo) ListAll(ctx context.Context) ([]Reward, error) {
	return r.list(ctx, `SELECT `+rewardColumns+` FROM reward ORDER BY id;`)
}

func (r *Repo) list(ctx context.Context, query string) (_ []Reward, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.rewards.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	rewards := make([]Reward, 0)
	for rows.Next() {
		reward, err := scanReward(rows)
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, *reward)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return rewards, nil
}

func (r *Repo) UserRewards(ctx context.Context, userID int) (_ []UserReward, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.rewards.userRewards")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT ur.id, ur.user_id, ur.reward_id, rw.name, rw.points_cost, ur.redeemed_at
			FROM user_reward ur
				JOIN reward rw ON rw.id = ur.reward_id
			WHERE ur.user_id = $1
			ORDER BY ur.redeemed_at DESC, ur.id DESC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	redeemed := make([]UserReward, 0)
	for rows.Next() {
		var ur UserReward
		if err := rows.Scan(&ur.ID, &ur.UserID, &ur.RewardID, &ur.RewardName, &ur.PointsCost, &ur.RedeemedAt); err != nil {
			return nil, fmt.Errorf("scan user reward: %w", err)
		}
		redeemed = append(redeemed, ur)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return redeemed, nil
}

func (r *Repo) Stats(ctx context.Context) (_ DashboardStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.rewards.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var stats DashboardStats
	if err := r.db.QueryRow(
		ctx,
		`
			SELECT
				(SELECT count(*) FROM app_user),
				(SELECT count(*) FROM user_reward),
				(SELECT count(*) FROM reward WHERE is_active);`,
	).Scan(&stats.Users, &stats.Redemptions, &stats.ActiveRewards); err != nil {
		return DashboardStats{}, err
	}
	return stats, nil
}

func scanReward(row pgx.Row) (*Reward, error) {
	var rw Reward
	if err := row.Scan(&rw.ID, &rw.Name, &rw.Description, &rw.PointsCost, &rw.IsActive, &rw.CreatedAt, &rw.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRewardNotFound
		}
		return nil, fmt.Errorf("scan reward: %w", err)
	}
	return &rw, nil
}
