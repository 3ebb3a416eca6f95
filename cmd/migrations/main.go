package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"path/filepath"

	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/crosswordpolls/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/crosswordpolls/internal/config"
)

func main() {
	var basePath string
	var all bool
	flag.StringVar(&basePath, "dir", filepath.Join(".", "internal", "adapters", "repository", "postgres", "migrations"), "Migrations directory")
	flag.BoolVar(&all, "all", false, "Apply every *.up.sql file in order")
	flag.Parse()

	if !all && flag.NArg() < 1 {
		log.Fatal("a migration name or -all is required.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.Postgres.ConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	var files []string
	if all {
		files, err = postgres.UpMigrationFiles(basePath)
	} else {
		var name string
		name, err = postgres.MigrationFile(basePath, flag.Arg(0))
		files = []string{name}
	}
	if err != nil {
		log.Fatal(err)
	}

	if err := postgres.ExecMigrations(context.Background(), db, basePath, files); err != nil {
		log.Fatal(err)
	}

	for _, name := range files {
		fmt.Printf("Migration file %s executed successfully.\n", name)
	}
}
