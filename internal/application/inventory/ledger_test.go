package inventory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

func TestPostMove_ReceiptYDelivery(t *testing.T) {
	f := newFixture(t)

	receipt := f.post(t, entity.MoveReceipt, vendorID, stockID, 50, "")
	assert.Equal(t, entity.StatusDone, receipt.Status)
	assert.Equal(t, "MV-00001", receipt.Reference)
	assert.NotNil(t, receipt.DoneAt)
	assert.True(t, f.stock(t, stockID).Equal(decimal.NewFromInt(50)))
	assert.True(t, f.ledgerStock(t, stockID).Equal(decimal.NewFromInt(50)))

	f.post(t, entity.MoveDelivery, stockID, customerID, 30, "")
	assert.True(t, f.stock(t, stockID).Equal(decimal.NewFromInt(20)))
	assert.True(t, f.ledgerStock(t, stockID).Equal(decimal.NewFromInt(20)))
}

func TestPostMove_DeliverySinStockRechazada(t *testing.T) {
	f := newFixture(t)
	f.post(t, entity.MoveReceipt, vendorID, stockID, 20, "")

	_, err := f.ledger.PostMove(context.Background(), staff, dto.CreateMoveRequest{
		ProductID: f.productID, SourceID: stockID, DestID: customerID,
		Quantity: decimal.NewFromInt(100), Type: entity.MoveDelivery,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.True(t, f.stock(t, stockID).Equal(decimal.NewFromInt(20)))
	hist, err := f.ledger.History(context.Background(), dto.MoveHistoryQuery{Type: entity.MoveDelivery})
	require.NoError(t, err)
	assert.Equal(t, int64(0), hist.Total, "el movimiento rechazado no debe quedar en el ledger")
}

func TestPostMove_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := dto.CreateMoveRequest{ProductID: f.productID, SourceID: vendorID, DestID: stockID, Quantity: decimal.NewFromInt(1), Type: entity.MoveReceipt}

	in := base
	in.SourceID, in.DestID, in.Type = stockID, stockID, entity.MoveInternal
	_, err := f.ledger.PostMove(ctx, staff, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "transferencia a la misma ubicación")

	in = base
	in.SourceID = customerID
	_, err = f.ledger.PostMove(ctx, staff, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "receipt desde cliente")

	in = base
	in.Quantity = decimal.Zero
	_, err = f.ledger.PostMove(ctx, staff, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = base
	in.Type = entity.MoveAdjustment
	_, err = f.ledger.PostMove(ctx, staff, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = base
	in.ProductID = 999
	_, err = f.ledger.PostMove(ctx, staff, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in = base
	in.DestID = 999
	_, err = f.ledger.PostMove(ctx, staff, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.ledger.PostMove(ctx, domain.Actor{}, base)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestStagedFlow_DraftReadyDone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft := f.post(t, entity.MoveReceipt, vendorID, stockID, 50, entity.StatusDraft)
	assert.Equal(t, entity.StatusDraft, draft.Status)
	assert.True(t, f.stock(t, stockID).IsZero(), "un borrador no afecta el stock")

	ready, err := f.ledger.MarkReady(ctx, staff, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReady, ready.Status)

	_, err = f.ledger.MarkReady(ctx, staff, draft.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	done, err := f.ledger.Validate(ctx, staff, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDone, done.Status)
	assert.True(t, f.stock(t, stockID).Equal(decimal.NewFromInt(50)))

	_, err = f.ledger.Validate(ctx, staff, draft.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = f.ledger.Cancel(ctx, staff, draft.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.True(t, f.stock(t, stockID).Equal(decimal.NewFromInt(50)), "validar dos veces no aplica dos veces")
}

func TestMarkReady_SinStockQuedaWaiting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.post(t, entity.MoveReceipt, vendorID, stockID, 5, "")

	draft := f.post(t, entity.MoveDelivery, stockID, customerID, 8, entity.StatusDraft)
	m, err := f.ledger.MarkReady(ctx, staff, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusWaiting, m.Status)

	_, err = f.ledger.Validate(ctx, staff, draft.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	got, err := f.ledger.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusWaiting, got.Status, "un validate fallido no cambia el estado")

	f.post(t, entity.MoveReceipt, vendorID, stockID, 3, "")
	done, err := f.ledger.Validate(ctx, staff, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDone, done.Status)
	assert.True(t, f.stock(t, stockID).IsZero())
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := f.post(t, entity.MoveReceipt, vendorID, stockID, 10, entity.StatusDraft)

	m, err := f.ledger.Cancel(ctx, staff, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCanceled, m.Status)

	_, err = f.ledger.Validate(ctx, staff, draft.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.True(t, f.stock(t, stockID).IsZero())

	_, err = f.ledger.Cancel(ctx, staff, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus_Despacho(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := f.post(t, entity.MoveReceipt, vendorID, stockID, 10, entity.StatusDraft)

	m, err := f.ledger.UpdateStatus(ctx, staff, draft.ID, dto.UpdateMoveStatusRequest{Status: entity.StatusDone})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDone, m.Status)

	_, err = f.ledger.UpdateStatus(ctx, staff, draft.ID, dto.UpdateMoveStatusRequest{Status: entity.StatusDraft})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidate_ConcurrenteAplicaUnaVez(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := f.post(t, entity.MoveReceipt, vendorID, stockID, 10, entity.StatusDraft)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.Validate(ctx, staff, draft.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
	assert.Equal(t, 1, ok)
	assert.True(t, f.stock(t, stockID).Equal(decimal.NewFromInt(10)))
}

func TestHistory_FiltraOrdenaYPagina(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		f.post(t, entity.MoveReceipt, vendorID, stockID, 10, "")
	}
	for i := 0; i < 3; i++ {
		f.post(t, entity.MoveDelivery, stockID, customerID, 1, "")
	}

	page1, err := f.ledger.History(ctx, dto.MoveHistoryQuery{Type: entity.MoveReceipt, Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, page1.Items, 10)
	assert.Equal(t, int64(15), page1.Total)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Equal(t, int64(15), page1.Items[0].ID, "más reciente primero")

	page2, err := f.ledger.History(ctx, dto.MoveHistoryQuery{Type: entity.MoveReceipt, Page: 2, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, page2.Items, 5)
	for i, m := range page2.Items {
		assert.Equal(t, entity.MoveReceipt, m.Type)
		if i > 0 {
			assert.True(t, m.CreatedAt.Before(page2.Items[i-1].CreatedAt))
		}
	}
	assert.Equal(t, int64(1), page2.Items[4].ID)

	byCode, err := f.ledger.History(ctx, dto.MoveHistoryQuery{Search: "#MV16"})
	require.NoError(t, err)
	require.Len(t, byCode.Items, 1)
	assert.Equal(t, entity.MoveDelivery, byCode.Items[0].Type)

	byName, err := f.ledger.History(ctx, dto.MoveHistoryQuery{Search: "partners/customers"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), byName.Total)

	_, err = f.ledger.History(ctx, dto.MoveHistoryQuery{Type: "loss"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
