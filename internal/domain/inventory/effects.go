package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// Effect es el cambio de stock derivado que produce un movimiento done en una ubicación interna.
type Effect struct {
	LocationID int64
	Delta      decimal.Decimal
}

// Effects calcula los cambios de stock de un movimiento al pasar a done: -qty en el origen si
// es interno, +qty en el destino si es interno. Un ajuste aplica su cantidad con signo en su
// única ubicación. Vendor y customer no llevan stock. El resultado va ordenado por LocationID,
// que es el orden en que se bloquean las filas de stock.
func Effects(m *entity.StockMove, src, dst *entity.Location) []Effect {
	var out []Effect
	if m.Type == entity.MoveAdjustment {
		if dst.IsInternal() && !m.Quantity.IsZero() {
			out = append(out, Effect{LocationID: dst.ID, Delta: m.Quantity})
		}
		return out
	}
	if src.IsInternal() {
		out = append(out, Effect{LocationID: src.ID, Delta: m.Quantity.Neg()})
	}
	if dst.IsInternal() {
		out = append(out, Effect{LocationID: dst.ID, Delta: m.Quantity})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocationID < out[j].LocationID })
	return out
}

// BalanceKey identifica un saldo derivado.
type BalanceKey struct {
	ProductID  int64
	LocationID int64
}

// Balances recalcula el stock derivado por (producto, ubicación interna) a partir de los
// movimientos done. Los movimientos en otro estado se ignoran.
func Balances(moves []*entity.StockMoveView) map[BalanceKey]decimal.Decimal {
	out := make(map[BalanceKey]decimal.Decimal)
	for _, v := range moves {
		if v.Status != entity.StatusDone {
			continue
		}
		src := &entity.Location{ID: v.SourceID, Kind: v.SourceKind}
		dst := &entity.Location{ID: v.DestID, Kind: v.DestKind}
		for _, e := range Effects(&v.StockMove, src, dst) {
			k := BalanceKey{ProductID: v.ProductID, LocationID: e.LocationID}
			out[k] = out[k].Add(e.Delta)
		}
	}
	return out
}
