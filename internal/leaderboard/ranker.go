package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/2beens/gymquest/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
)

const (
	rankingKey        = "gymquest-leaderboard"
	rankingRebuildKey = "gymquest-leaderboard-rebuild"
	rebuildChunkSize  = 500
)

// Ranker keeps the ranking in a redis sorted set scored by EXP, so updates and rank
// lookups are O(log n). Members encode MaxInt64-userID zero padded: redis orders equal
// scores by member in reverse when reading descending, which yields ascending user ids.
type Ranker struct {
	redisClient *redis.Client
}

func NewRanker(redisClient *redis.Client) *Ranker {
	return &Ranker{
		redisClient: redisClient,
	}
}

func member(userID int) string {
	return fmt.Sprintf("%019d", math.MaxInt64-int64(userID))
}

func userIDFromMember(m any) (int, error) {
	s, ok := m.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected ranking member %v", m)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse ranking member %s: %w", s, err)
	}
	return int(math.MaxInt64 - n), nil
}

func (r *Ranker) Update(ctx context.Context, userID, exp int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "ranker.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("exp", exp))

	return r.redisClient.ZAdd(ctx, rankingKey, &redis.Z{
		Score:  float64(exp),
		Member: member(userID),
	}).Err()
}

// Rank returns 1 + the number of users with strictly more EXP.
func (r *Ranker) Rank(ctx context.Context, userID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "ranker.rank")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	score, err := r.redisClient.ZScore(ctx, rankingKey, member(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotRanked
		}
		return 0, err
	}

	greater, err := r.redisClient.ZCount(
		ctx, rankingKey, "("+strconv.FormatFloat(score, 'f', -1, 64), "+inf",
	).Result()
	if err != nil {
		return 0, err
	}
	return int(greater) + 1, nil
}

// Top returns limit entries starting at offset, best first. Usernames and levels are not set.
func (r *Ranker) Top(ctx context.Context, offset, limit int) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "ranker.top")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("offset", offset), attribute.Int("limit", limit))

	if limit <= 0 {
		return []Entry{}, nil
	}

	members, err := r.redisClient.ZRevRangeWithScores(ctx, rankingKey, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(members))
	for _, m := range members {
		userID, err := userIDFromMember(m.Member)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			UserID:   userID,
			TotalExp: int(m.Score),
		})
	}
	if len(entries) == 0 {
		return entries, nil
	}

	greater, err := r.redisClient.ZCount(
		ctx, rankingKey, "("+strconv.Itoa(entries[0].TotalExp), "+inf",
	).Result()
	if err != nil {
		return nil, err
	}
	assignRanks(entries, offset, int(greater)+1)

	return entries, nil
}

func (r *Ranker) Count(ctx context.Context) (int, error) {
	count, err := r.redisClient.ZCard(ctx, rankingKey).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Rebuild reconciles the ranking with the given snapshot. The new set is built under a
// temporary key, merged with the live set keeping the higher score of each member, and
// renamed over the live one in a single MULTI/EXEC, so readers never see a partial set.
// EXP never decreases, so the merge keeps updates that landed after the snapshot was taken,
// and users that signed up since then stay ranked.
func (r *Ranker) Rebuild(ctx context.Context, entries []Entry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "ranker.rebuild")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("entries", len(entries)))

	if len(entries) == 0 {
		return r.redisClient.Del(ctx, rankingKey).Err()
	}

	if err := r.redisClient.Del(ctx, rankingRebuildKey).Err(); err != nil {
		return fmt.Errorf("clear rebuild set: %w", err)
	}

	for start := 0; start < len(entries); start += rebuildChunkSize {
		end := min(start+rebuildChunkSize, len(entries))
		members := make([]*redis.Z, 0, end-start)
		for _, e := range entries[start:end] {
			members = append(members, &redis.Z{
				Score:  float64(e.TotalExp),
				Member: member(e.UserID),
			})
		}
		if err := r.redisClient.ZAdd(ctx, rankingRebuildKey, members...).Err(); err != nil {
			return fmt.Errorf("fill rebuild set: %w", err)
		}
	}

	if _, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZUnionStore(ctx, rankingRebuildKey, &redis.ZStore{
			Keys:      []string{rankingRebuildKey, rankingKey},
			Aggregate: "MAX",
		})
		pipe.Rename(ctx, rankingRebuildKey, rankingKey)
		return nil
	}); err != nil {
		return fmt.Errorf("swap ranking set: %w", err)
	}
	return nil
}
