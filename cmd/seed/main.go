// seed crea el manager inicial y, con -demo, un catálogo de ejemplo con recepciones hechas.
//
// Uso: go run ./cmd/seed -login=admin -email=admin@stockmaster.local -password=... [-demo]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/application/auth"
	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockmaster-api/pkg/config"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
	"github.com/jhoicas/stockmaster-api/pkg/migrate"
)

// bootstrap autoriza el alta del primer manager; no se persiste como autor de nada.
var bootstrap = domain.Actor{UserID: "seed", Role: domain.RoleManager}

type demoProduct struct {
	sku, name, category string
	price, received     int64
}

var demoCatalog = []demoProduct{
	{"LAP-001", "Laptop Pro 14", "Electronics", 1200, 25},
	{"MON-027", "Monitor 27\"", "Electronics", 320, 8},
	{"CHR-010", "Silla ergonómica", "Furniture", 180, 40},
	{"DSK-120", "Escritorio 120 cm", "Furniture", 250, 3},
	{"PAP-A4", "Resma papel A4", "Office", 6, 0},
}

func main() {
	login := flag.String("login", "admin", "login_id del manager inicial")
	email := flag.String("email", "admin@stockmaster.local", "email del manager inicial")
	password := flag.String("password", "", "password del manager inicial (obligatorio)")
	demo := flag.Bool("demo", false, "crear productos de ejemplo con stock")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "falta -password")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := migrate.Up(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	user, err := authUC.RegisterUser(ctx, bootstrap, dto.RegisterRequest{
		LoginID:  *login,
		Email:    *email,
		Password: *password,
		Name:     "Administrador",
		Role:     domain.RoleManager,
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Str("login", *login).Msg("manager ya existe, se omite")
	case err != nil:
		log.Fatal().Err(err).Msg("crear manager")
	default:
		log.Info().Str("user_id", user.ID).Str("login", user.LoginID).Msg("manager creado")
	}

	if !*demo {
		return
	}
	manager, err := userRepo.GetByLogin(ctx, *login)
	if err != nil || manager == nil {
		log.Fatal().Err(err).Msg("leer manager")
	}
	actor := domain.Actor{UserID: manager.ID, Role: manager.Role}
	if err := seedCatalog(ctx, pool, actor, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("catálogo de ejemplo")
	}
}

func seedCatalog(ctx context.Context, pool *pgxpool.Pool, actor domain.Actor, cfg *config.Config, log *logger.Logger) error {
	products := postgres.NewProductRepository(pool)
	locations := postgres.NewLocationRepository(pool)
	moves := postgres.NewMoveRepository(pool)
	stock := postgres.NewStockRepository(pool)

	vendor, internal, err := baseLocations(ctx, locations)
	if err != nil {
		return err
	}
	productUC := usecase.NewProductUseCase(products, stock, moves, nil, cfg.Inventory.LowStockThreshold, log)
	ledgerUC := inventory.NewLedgerUseCase(postgres.NewTxRunner(pool), products, locations, moves, nil, nil, log)
	for _, d := range demoCatalog {
		p, err := productUC.Create(ctx, actor, dto.CreateProductRequest{
			SKU:      d.sku,
			Name:     d.name,
			Category: d.category,
			Price:    decimal.NewFromInt(d.price),
		})
		if errors.Is(err, domain.ErrDuplicateSKU) {
			log.Info().Str("sku", d.sku).Msg("producto ya existe, se omite")
			continue
		}
		if err != nil {
			return fmt.Errorf("producto %s: %w", d.sku, err)
		}
		if d.received == 0 {
			continue
		}
		_, err = ledgerUC.PostMove(ctx, actor, dto.CreateMoveRequest{
			ProductID: p.ID,
			SourceID:  vendor,
			DestID:    internal,
			Quantity:  decimal.NewFromInt(d.received),
			Type:      entity.MoveReceipt,
			Reference: "SEED",
		})
		if err != nil {
			return fmt.Errorf("recepción %s: %w", d.sku, err)
		}
	}
	return nil
}

func baseLocations(ctx context.Context, repo *postgres.LocationRepo) (vendor, internal int64, err error) {
	all, err := repo.List(ctx, "")
	if err != nil {
		return 0, 0, err
	}
	for _, l := range all {
		switch {
		case l.Kind == entity.LocationVendor && vendor == 0:
			vendor = l.ID
		case l.Kind == entity.LocationInternal && internal == 0:
			internal = l.ID
		}
	}
	if vendor == 0 || internal == 0 {
		return 0, 0, fmt.Errorf("faltan ubicaciones base (vendor/internal)")
	}
	return vendor, internal, nil
}
