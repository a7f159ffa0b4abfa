// migrate aplica las migraciones goose embebidas sobre la base configurada.
//
// Uso: go run ./cmd/migrate -cmd=up|down|status|redo|reset|version [-version=YYYYMMDDHHMMSS]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/jhoicas/stockmaster-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockmaster-api/pkg/config"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
	"github.com/jhoicas/stockmaster-api/pkg/migrate"
)

func main() {
	cmd := flag.String("cmd", "up", "comando de migración: up|down|status|redo|reset|version")
	version := flag.String("version", "", "versión destino (YYYYMMDDHHMMSS) para -cmd=version")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).
		With().Str("cmd", *cmd).Logger()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	switch *cmd {
	case "version":
		if *version == "" {
			log.Fatal().Msg("falta -version para el comando version")
		}
		err = migrate.MigrateToVersion(ctx, db, *version)
	case "up", "down", "status", "redo", "reset":
		err = migrate.Run(ctx, db, *cmd)
	default:
		log.Fatal().Msgf("comando desconocido %q", *cmd)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("migración fallida")
	}
	log.Info().Msg("migración completada")
}
