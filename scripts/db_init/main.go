package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	dbfs "github.com/kfglabs/directory/db"
	"github.com/kfglabs/directory/internal/config"
	"github.com/kfglabs/directory/internal/db"
)

// Creates the directory database, applies pending migrations and loads the
// dev fixtures. Safe to rerun; migrations and seeds are idempotent.
func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DatabasePath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Directory database ready at %s.\n", cfg.DatabasePath)
}
