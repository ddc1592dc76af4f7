package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/2beens/gymquest/internal/config"
	"github.com/2beens/gymquest/tools"
)

// rebuild the leaderboard ranks outside the scheduled refresh
func main() {
	fmt.Println("starting leaderboard rebuild ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development | ddev | dockerdev ]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	timeout := flag.Duration("timeout", 2*time.Minute, "max duration of the rebuild")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := tools.RebuildLeaderboard(
		ctx,
		cfg,
		os.Getenv("GYMQUEST_DB_PASS"),
		os.Getenv("GYMQUEST_REDIS_PASS"),
	); err != nil {
		fmt.Printf("leaderboard rebuild failed: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("\nleaderboard rebuild completed")
}
