package tools

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/2beens/gymquest/internal/config"
	"github.com/2beens/gymquest/internal/db"
	"github.com/2beens/gymquest/internal/leaderboard"
	"github.com/2beens/gymquest/internal/telemetry/metrics"
	"github.com/2beens/gymquest/pkg"
)

const minAdminPasswordLen = 8

var ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", minAdminPasswordLen)

func dbParams(cfg *config.Config, dbPassword string) db.NewDBPoolParams {
	return db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: dbPassword,
		SSLMode:    cfg.PostgresSSLMode,
	}
}

// MigrateDB applies all pending migrations and returns the resulting schema version.
func MigrateDB(cfg *config.Config, dbPassword string) (uint, error) {
	return db.Migrate(db.ConnString(dbParams(cfg, dbPassword)))
}

// RebuildLeaderboard materializes ranks in postgres and reloads the redis ranking
// from the users table, same as one tick of the scheduled refresh.
func RebuildLeaderboard(ctx context.Context, cfg *config.Config, dbPassword, redisPassword string) error {
	dbPool, err := db.NewDBPool(ctx, dbParams(cfg, dbPassword))
	if err != nil {
		return fmt.Errorf("new db pool: %w", err)
	}
	defer dbPool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: redisPassword,
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			fmt.Printf("close redis client: %s\n", err)
		}
	}()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	metricsManager := metrics.NewManager("tools", "leaderboard", prometheus.NewRegistry())
	refresher := leaderboard.NewRefresher(leaderboard.NewRepo(dbPool), leaderboard.NewRanker(rdb), metricsManager)

	return refresher.Refresh(ctx)
}

// HashAdminPassword produces the value expected in GYMQUEST_ADMIN_PASSWORD_HASH.
func HashAdminPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	if len(password) < minAdminPasswordLen {
		return "", ErrPasswordTooShort
	}
	return pkg.HashPassword(password)
}
