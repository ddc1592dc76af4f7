package testing

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/2beens/gymquest/internal/db"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// GetDBPool connects to the integration tests postgres and migrates it to the latest schema.
// POSTGRES_HOST and POSTGRES_PASS override the local defaults.
func GetDBPool(t *testing.T) (context.Context, *pgxpool.Pool) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		host = "localhost"
	}
	t.Logf("using postgres host: %s", host)

	params := db.NewDBPoolParams{
		DBHost:     host,
		DBPort:     "5432",
		DBName:     "gymquest_test",
		DBPassword: os.Getenv("POSTGRES_PASS"),
	}

	version, err := db.Migrate(db.ConnString(params))
	require.NoError(t, err)
	t.Logf("db migrated to version %d", version)

	dbPool, err := db.NewDBPool(ctx, params)
	require.NoError(t, err)
	t.Cleanup(dbPool.Close)

	return ctx, dbPool
}

// CreateUser inserts a user with fake unique credentials and its leaderboard row.
func CreateUser(ctx context.Context, t *testing.T, dbPool *pgxpool.Pool, exp int) int {
	t.Helper()

	var id int
	err := dbPool.QueryRow(
		ctx,
		`INSERT INTO app_user (username, email, password_hash, exp, level)
			VALUES ($1, $2, 'x', $3, $3 / 100 + 1)
		RETURNING id;`,
		gofakeit.Username()+gofakeit.DigitN(6), gofakeit.DigitN(6)+gofakeit.Email(), exp,
	).Scan(&id)
	require.NoError(t, err)

	_, err = dbPool.Exec(ctx, `INSERT INTO leaderboard (user_id, total_exp) VALUES ($1, $2);`, id, exp)
	require.NoError(t, err)
	return id
}

// CreateExercise adds a catalog entry and returns its id.
func CreateExercise(ctx context.Context, t *testing.T, dbPool *pgxpool.Pool, expPerRep int) int {
	t.Helper()

	var id int
	err := dbPool.QueryRow(
		ctx,
		`INSERT INTO exercise (name, description, difficulty, exp_per_rep)
			VALUES ($1, $2, 'beginner', $3)
		RETURNING id;`,
		gofakeit.HipsterWord()+" "+gofakeit.DigitN(4), gofakeit.Sentence(6), expPerRep,
	).Scan(&id)
	require.NoError(t, err)
	return id
}
