package memory

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks bajo el lock de escritura del store. Si fn falla (o entra en
// pánico) se reproduce el journal de deshacer antes de liberar el lock.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos atados a la transacción. fn no debe usar repos fuera de tx del
// mismo store: el lock ya está tomado.
func (r *TxRunner) Run(ctx context.Context, fn func(
	moveRepo repository.MoveRepository,
	stockRepo repository.StockRepository,
	locationRepo repository.LocationRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t := &tx{}
	defer func() {
		if p := recover(); p != nil {
			t.rollback()
			panic(p)
		}
	}()
	if err := fn(&MoveRepo{s: r.s, tx: t}, &StockRepo{s: r.s, tx: t}, &LocationRepo{s: r.s, tx: t}); err != nil {
		t.rollback()
		return err
	}
	return nil
}
