package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	flag.Parse()
	args := flag.Args()

	if len(args) < 1 {
		log.Fatal("usage: migrate <up|down|version>")
	}

	postgresURL := os.Getenv("POSTGRES_URL")
	if postgresURL == "" {
		log.Fatal("POSTGRES_URL environment variable is required")
	}

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "file://migrations"
	}

	m, err := migrate.New(migrationsPath, postgresURL)
	if err != nil {
		log.Fatalf("[migrate] init: %v", err)
	}
	defer func() { _, _ = m.Close() }()

	switch args[0] {
	case "up":
		err = m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			log.Print("[migrate] no pending migrations")
			return
		}
		if err != nil {
			log.Fatalf("[migrate] up: %v", err)
		}
		log.Print("[migrate] migrations applied")

	case "down":
		err = m.Steps(-1)
		if errors.Is(err, migrate.ErrNoChange) {
			log.Print("[migrate] nothing to roll back")
			return
		}
		if err != nil {
			log.Fatalf("[migrate] down: %v", err)
		}
		log.Print("[migrate] rolled back one step")

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Print("[migrate] no migrations applied yet")
			return
		}
		if err != nil {
			log.Fatalf("[migrate] version: %v", err)
		}
		log.Printf("[migrate] version=%d dirty=%v", version, dirty)

	default:
		log.Fatalf("[migrate] unknown command %q", args[0])
	}
}
