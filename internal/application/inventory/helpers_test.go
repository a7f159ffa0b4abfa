package inventory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
)

// Ubicaciones sembradas por memory.NewStore.
const (
	vendorID   int64 = 1
	stockID    int64 = 2
	customerID int64 = 3
)

var (
	manager = domain.Actor{UserID: "u-manager", Role: domain.RoleManager}
	staff   = domain.Actor{UserID: "u-staff", Role: domain.RoleStaff}
)

type fixture struct {
	repos      *memory.Repositories
	ledger     *LedgerUseCase
	adjustment *AdjustmentUseCase
	reconcile  *ReconcileUseCase
	productID  int64
}

// tickingClock avanza un segundo en cada llamada para que created_at sea estrictamente creciente.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memory.NewRepositories(memory.NewStore())
	p := &entity.Product{SKU: "LAP-001", Name: "Laptop Pro", Category: "Electronics", Price: decimal.NewFromInt(1200)}
	require.NoError(t, repos.Products.Create(context.Background(), p))
	return &fixture{
		repos:      repos,
		ledger:     NewLedgerUseCase(repos.Tx, repos.Products, repos.Locations, repos.Moves, nil, nil, nil).WithClock(tickingClock()),
		adjustment: NewAdjustmentUseCase(repos.Tx, repos.Products, repos.Locations, nil, nil, nil),
		reconcile:  NewReconcileUseCase(repos.Moves, repos.Stock, nil),
		productID:  p.ID,
	}
}

func (f *fixture) post(t *testing.T, typ string, src, dst int64, qty int64, status string) *dto.MoveResponse {
	t.Helper()
	m, err := f.ledger.PostMove(context.Background(), staff, dto.CreateMoveRequest{
		ProductID: f.productID,
		SourceID:  src,
		DestID:    dst,
		Quantity:  decimal.NewFromInt(qty),
		Type:      typ,
		Status:    status,
	})
	require.NoError(t, err)
	return m
}

func (f *fixture) stock(t *testing.T, locationID int64) decimal.Decimal {
	t.Helper()
	st, err := f.repos.Stock.Get(context.Background(), f.productID, locationID)
	require.NoError(t, err)
	return st.Quantity
}

func (f *fixture) ledgerStock(t *testing.T, locationID int64) decimal.Decimal {
	t.Helper()
	balances, err := f.repos.Moves.LedgerBalances(context.Background())
	require.NoError(t, err)
	for _, b := range balances {
		if b.ProductID == f.productID && b.LocationID == locationID {
			return b.Quantity
		}
	}
	return decimal.Zero
}
