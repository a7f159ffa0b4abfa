package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockmaster-api/pkg/config"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
	"github.com/jhoicas/stockmaster-api/pkg/migrate"
)

// storage agrupa los adaptadores de persistencia del driver elegido.
type storage struct {
	locations repository.LocationRepository
	products  repository.ProductRepository
	moves     repository.MoveRepository
	stock     repository.StockRepository
	users     repository.UserRepository
	tx        inventory.TxRunner
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	switch cfg.App.StorageDriver {
	case config.StorageMemory:
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		repos := memory.NewRepositories(memory.NewStore())
		return &storage{
			locations: repos.Locations,
			products:  repos.Products,
			moves:     repos.Moves,
			stock:     repos.Stock,
			users:     repos.Users,
			tx:        repos.Tx,
			close:     func() {},
		}, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.App.MigrateOnStart {
			if err := migrate.Up(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migraciones: %w", err)
			}
			log.Info().Msg("migraciones aplicadas")
		}
		return &storage{
			locations: postgres.NewLocationRepository(pool),
			products:  postgres.NewProductRepository(pool),
			moves:     postgres.NewMoveRepository(pool),
			stock:     postgres.NewStockRepository(pool),
			users:     postgres.NewUserRepository(pool),
			tx:        postgres.NewTxRunner(pool),
			close:     pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("driver de almacenamiento desconocido %q", cfg.App.StorageDriver)
	}
}
