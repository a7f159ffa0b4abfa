package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

func seedProduct(t *testing.T, repos *Repositories) *entity.Product {
	t.Helper()
	p := &entity.Product{SKU: "P-1", Name: "Producto", Price: decimal.NewFromInt(5)}
	require.NoError(t, repos.Products.Create(context.Background(), p))
	return p
}

func TestNewStore_UbicacionesBase(t *testing.T) {
	repos := NewRepositories(NewStore())
	locs, err := repos.Locations.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, locs, 3)
	assert.Equal(t, entity.LocationVendor, locs[0].Kind)
	assert.Equal(t, "WH/Stock", locs[1].Name)
	assert.Equal(t, entity.LocationCustomer, locs[2].Kind)
}

func TestTxRunner_RollbackDeshaceTodo(t *testing.T) {
	repos := NewRepositories(NewStore())
	p := seedProduct(t, repos)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repos.Tx.Run(ctx, func(moves repository.MoveRepository, stock repository.StockRepository, locs repository.LocationRepository) error {
		require.NoError(t, locs.Create(ctx, &entity.Location{Name: "WH/Shelf A", Kind: entity.LocationInternal}))
		m := &entity.StockMove{ProductID: p.ID, SourceID: 1, DestID: 2, Quantity: decimal.NewFromInt(3), Type: entity.MoveReceipt, Status: entity.StatusDraft}
		require.NoError(t, moves.Create(ctx, m))
		require.NoError(t, moves.UpdateStatus(ctx, m.ID, entity.StatusDraft, entity.StatusReady, nil))
		require.NoError(t, stock.Upsert(ctx, &entity.Stock{ProductID: p.ID, LocationID: 2, Quantity: decimal.NewFromInt(3)}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	locs, err := repos.Locations.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, locs, 3)
	_, total, err := repos.Moves.Search(ctx, inventory.MoveFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	st, err := repos.Stock.Get(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.True(t, st.Quantity.IsZero())
}

func TestTxRunner_CommitPersiste(t *testing.T) {
	repos := NewRepositories(NewStore())
	p := seedProduct(t, repos)
	ctx := context.Background()

	err := repos.Tx.Run(ctx, func(_ repository.MoveRepository, stock repository.StockRepository, _ repository.LocationRepository) error {
		return stock.Upsert(ctx, &entity.Stock{ProductID: p.ID, LocationID: 2, Quantity: decimal.NewFromInt(7)})
	})
	require.NoError(t, err)
	st, err := repos.Stock.Get(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.True(t, st.Quantity.Equal(decimal.NewFromInt(7)))
}

func TestTxRunner_PanicHaceRollback(t *testing.T) {
	repos := NewRepositories(NewStore())
	p := seedProduct(t, repos)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = repos.Tx.Run(ctx, func(_ repository.MoveRepository, stock repository.StockRepository, _ repository.LocationRepository) error {
			_ = stock.Upsert(ctx, &entity.Stock{ProductID: p.ID, LocationID: 2, Quantity: decimal.NewFromInt(7)})
			panic("fallo")
		})
	})
	st, err := repos.Stock.Get(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.True(t, st.Quantity.IsZero())
}

func TestMoveRepo_UpdateStatusEsCAS(t *testing.T) {
	repos := NewRepositories(NewStore())
	p := seedProduct(t, repos)
	ctx := context.Background()
	m := &entity.StockMove{ProductID: p.ID, SourceID: 1, DestID: 2, Quantity: decimal.NewFromInt(1), Type: entity.MoveReceipt, Status: entity.StatusDraft}
	require.NoError(t, repos.Moves.Create(ctx, m))

	require.NoError(t, repos.Moves.UpdateStatus(ctx, m.ID, entity.StatusDraft, entity.StatusCanceled, nil))
	err := repos.Moves.UpdateStatus(ctx, m.ID, entity.StatusDraft, entity.StatusReady, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestProductRepo_SKUUnico(t *testing.T) {
	repos := NewRepositories(NewStore())
	seedProduct(t, repos)
	err := repos.Products.Create(context.Background(), &entity.Product{SKU: "P-1", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
}
