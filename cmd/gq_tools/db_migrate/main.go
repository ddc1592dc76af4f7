package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/2beens/gymquest/internal/config"
	"github.com/2beens/gymquest/tools"
)

// apply pending db migrations
func main() {
	fmt.Println("starting db migration ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development | ddev | dockerdev ]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	version, err := tools.MigrateDB(cfg, os.Getenv("GYMQUEST_DB_PASS"))
	if err != nil {
		fmt.Printf("db migration failed: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("\ndb migration completed, schema version: %d\n", version)
}
