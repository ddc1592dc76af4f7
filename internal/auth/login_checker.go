package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

// UserID resolves the session token to its user. The bool is false for
// unknown or expired sessions, which is not an error.
func (lc *LoginChecker) UserID(ctx context.Context, token string) (int, bool, error) {
	if token == "" {
		return 0, false, nil
	}

	sessionKey := sessionKeyPrefix + token
	cmd := lc.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}

	session, err := parseSession(token, cmd.Val())
	if err != nil {
		return 0, false, err
	}

	if time.Since(session.CreatedAt) > lc.ttl {
		return 0, false, nil
	}

	return session.UserID, true, nil
}
