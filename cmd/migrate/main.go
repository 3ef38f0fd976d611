// migrate applies the embedded schema migrations.
//
//	go run ./cmd/migrate -direction up -dsn postgres://postgres@localhost:5432/portfolio?sslmode=disable
//
// Without -dsn, the connection is built from the TOML config and PORTFOLIO_POSTGRES_PASS.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/2beens/portfolio/internal/config"
	"github.com/2beens/portfolio/internal/db"
	"github.com/2beens/portfolio/internal/db/migrate"

	"github.com/sethvargo/go-envconfig"
	log "github.com/sirupsen/logrus"
)

type migrateEnv struct {
	PostgresPassword string `env:"PORTFOLIO_POSTGRES_PASS"`
}

func main() {
	dsn := flag.String("dsn", "", "postgres connection URL")
	direction := flag.String("direction", migrate.DirectionUp, "migration direction: up or down")
	env := flag.String("env", "development", "environment used when -dsn is empty")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	if *dsn == "" {
		cfg, err := config.Load(*env, *configPath)
		if err != nil {
			log.Fatalf("load config: %s", err)
		}
		*dsn = db.ConnParams{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			DBName:   cfg.PostgresDBName,
			User:     cfg.PostgresUser,
			Password: postgresPassword(),
		}.DSN()
	}

	if err := migrate.Run(*dsn, *direction); err != nil {
		log.Errorf("migrate: %s", err)
		os.Exit(1)
	}
	log.Infof("migrations %s done", *direction)
}

func postgresPassword() string {
	var e migrateEnv
	if err := envconfig.Process(context.Background(), &e); err != nil {
		log.Warnf("read postgres password: %s", err)
	}
	return e.PostgresPassword
}
